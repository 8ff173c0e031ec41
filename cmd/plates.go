package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/platescope/internal/utils"
)

var platesCmd = &cobra.Command{
	Use:   "plates",
	Short: "Look up every plate listed in a file (one per line)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		file, _ := cmd.Flags().GetString("file")
		if file == "" {
			return fmt.Errorf("--file is required")
		}
		return runPlates(cmd.Context(), file)
	},
}

func init() {
	rootCmd.AddCommand(platesCmd)
	platesCmd.Flags().StringP("file", "f", "", "File with one plate per line")
}

func runPlates(ctx context.Context, file string) error {
	raws, err := utils.ReadLines(file)
	if err != nil {
		return err
	}
	if len(raws) == 0 {
		return fmt.Errorf("%s contains no plates", file)
	}
	fmt.Printf("Looking up %d plates...\n", len(raws))

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.loop.RunPlates(ctx, raws)
	return finishRun("Plate file", summary, err)
}
