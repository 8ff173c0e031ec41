package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/platescope/internal/utils"
	"github.com/sw33tLie/platescope/pkg/discovery"
	"github.com/sw33tLie/platescope/pkg/plate"
	"github.com/sw33tLie/platescope/pkg/storage"
)

const defaultPatternsFile = "patterns.txt"

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Sweep every 3-letter prefix listed in a file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		file, _ := cmd.Flags().GetString("file")
		count, _ := cmd.Flags().GetInt("count")
		return runPatterns(cmd.Context(), file, count)
	},
}

var patternsExtractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Write the prefixes of every stored plate to a patterns file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		output, _ := cmd.Flags().GetString("output")
		show, _ := cmd.Flags().GetBool("show")

		backend, path := datasetConfig()
		sink, err := storage.OpenSink(backend, path)
		if err != nil {
			return err
		}
		defer sink.Close()

		plates, err := sink.LoadExisting(cmd.Context())
		if err != nil {
			return err
		}
		prefixes := plate.ExtractPrefixes(plates)

		lines := make([]string, len(prefixes))
		for i, p := range prefixes {
			lines[i] = p.Prefix
		}
		if err := os.WriteFile(output, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
			return err
		}
		fmt.Printf("Extracted %d unique patterns to %s\n", len(prefixes), output)

		if show {
			rows := make([][]string, len(prefixes))
			for i, p := range prefixes {
				rows[i] = []string{p.Prefix, strconv.Itoa(p.Count)}
			}
			fmt.Println(renderTable([]string{"PATTERN", "PLATES"}, rows))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(patternsCmd)
	patternsCmd.Flags().StringP("file", "f", defaultPatternsFile, "File with one 3-letter prefix per line")
	patternsCmd.Flags().IntP("count", "n", 50, "Number of plates to try per prefix")

	patternsCmd.AddCommand(patternsExtractCmd)
	patternsExtractCmd.Flags().StringP("output", "o", defaultPatternsFile, "Where to write the patterns")
	patternsExtractCmd.Flags().Bool("show", false, "Also print how many plates each pattern has")
}

func runPatterns(ctx context.Context, file string, count int) error {
	if count <= 0 {
		return &discovery.ConfigError{Field: "count", Err: fmt.Errorf("must be greater than 0, got %d", count)}
	}
	prefixes, err := utils.ReadLines(file)
	if err != nil {
		return err
	}
	if len(prefixes) == 0 {
		return fmt.Errorf("%s contains no patterns", file)
	}
	fmt.Printf("Processing %d patterns (%d plates each)...\n", len(prefixes), count)

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.loop.RunPatterns(ctx, prefixes, count)
	return finishRun("Pattern file", summary, err)
}
