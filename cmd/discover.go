package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/platescope/pkg/discovery"
	"github.com/sw33tLie/platescope/pkg/plate"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Generate random plates and save the ones the registry knows",
	RunE: func(cmd *cobra.Command, _ []string) error {
		count, _ := cmd.Flags().GetInt("count")
		regionName, _ := cmd.Flags().GetString("region")

		var region byte
		if regionName != "" {
			r, err := plate.LookupRegion(regionName)
			if err != nil {
				return &discovery.ConfigError{Field: "region", Err: err}
			}
			region = r.Code
		}
		return runDiscover(cmd.Context(), count, region)
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)
	discoverCmd.Flags().IntP("count", "n", 10, "Number of plates to save")
	discoverCmd.Flags().StringP("region", "r", "", "Region name or letter (default: any region)")
}

func runDiscover(ctx context.Context, count int, region byte) error {
	if count <= 0 {
		return &discovery.ConfigError{Field: "count", Err: fmt.Errorf("must be greater than 0, got %d", count)}
	}
	if r, ok := plate.RegionByCode(region); ok {
		fmt.Printf("Generating plates for %s (%c)\n", r.Name, r.Code)
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.loop.Run(ctx, count, region)
	return finishRun("Discovery", summary, err)
}
