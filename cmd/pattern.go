package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/platescope/pkg/discovery"
	"github.com/sw33tLie/platescope/pkg/plate"
)

var patternCmd = &cobra.Command{
	Use:   "pattern",
	Short: "Look up consecutive plates of one 3-letter prefix",
	RunE: func(cmd *cobra.Command, _ []string) error {
		prefix, _ := cmd.Flags().GetString("prefix")
		count, _ := cmd.Flags().GetInt("count")
		return runPattern(cmd.Context(), prefix, count)
	},
}

func init() {
	rootCmd.AddCommand(patternCmd)
	patternCmd.Flags().StringP("prefix", "p", "", "3-letter prefix, e.g. PBX")
	patternCmd.Flags().IntP("count", "n", 100, "Number of plates to try")
}

func runPattern(ctx context.Context, prefix string, count int) error {
	p, err := plate.ValidatePattern(prefix)
	if err != nil {
		return &discovery.ConfigError{Field: "pattern", Err: err}
	}
	if count <= 0 {
		return &discovery.ConfigError{Field: "count", Err: fmt.Errorf("must be greater than 0, got %d", count)}
	}
	fmt.Printf("Generating %d plates with pattern %s****\n", count, p)

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.loop.RunPattern(ctx, p, count)
	return finishRun("Pattern "+p, summary, err)
}
