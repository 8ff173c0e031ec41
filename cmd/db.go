package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/platescope/internal/utils"
	"github.com/sw33tLie/platescope/pkg/plate"
	"github.com/sw33tLie/platescope/pkg/storage"
)

// dbCmd represents the db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Interact with the plate dataset",
}

// shellCmd represents the shell command
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive sqlite3 shell on a SQLite dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, path := datasetConfig()
		if backend != storage.BackendSQLite {
			return fmt.Errorf("db shell needs the sqlite backend (use --backend sqlite)")
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("database file not found: %s", path)
		}

		// Check if sqlite3 is in PATH
		sqlitePath, err := exec.LookPath("sqlite3")
		if err != nil {
			return fmt.Errorf("sqlite3 command not found in your PATH. Please install it to use the db shell")
		}

		fmt.Println("--> Starting interactive shell... (Ctrl+D to exit)")
		c := exec.Command(sqlitePath, path)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr

		return c.Run()
	},
}

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints statistics about the plates in the dataset.",
	RunE: func(cmd *cobra.Command, args []string) error {
		top, _ := cmd.Flags().GetInt("top")

		backend, path := datasetConfig()
		sink, err := storage.OpenSink(backend, path)
		if err != nil {
			return err
		}
		defer sink.Close()

		records, err := sink.Records(cmd.Context())
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No data in the dataset to generate stats.")
			return nil
		}

		stats := storage.BuildStats(records, top)
		fmt.Println(renderKeyValues("Dataset "+path, [][2]string{
			{"Plates", strconv.Itoa(stats.Total)},
			{"Cars", strconv.Itoa(stats.Cars)},
			{"Motorcycles", strconv.Itoa(stats.Motorcycles)},
		}))

		regionRows := make([][]string, len(stats.Regions))
		for i, r := range stats.Regions {
			regionRows[i] = []string{string(r.Code), r.Name, strconv.Itoa(r.Count)}
		}
		fmt.Println(renderTable([]string{"CODE", "REGION", "PLATES"}, regionRows))

		prefixRows := make([][]string, len(stats.TopPrefixes))
		for i, p := range stats.TopPrefixes {
			prefixRows[i] = []string{p.Prefix, strconv.Itoa(p.Count)}
		}
		fmt.Println(renderTable([]string{"PATTERN", "PLATES"}, prefixRows))

		if db, ok := sink.(*storage.DB); ok {
			runs, err := db.RunCounts(cmd.Context())
			if err != nil {
				utils.Log.Warnf("Could not list runs: %v", err)
				return nil
			}
			runRows := make([][]string, len(runs))
			for i, r := range runs {
				runRows[i] = []string{r.RunID, r.StartedAt, strconv.Itoa(r.Count)}
			}
			fmt.Println(renderTable([]string{"RUN", "STARTED", "PLATES"}, runRows))
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every stored record as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		backend, path := datasetConfig()
		sink, err := storage.OpenSink(backend, path)
		if err != nil {
			return err
		}
		defer sink.Close()

		records, err := sink.Records(cmd.Context())
		if err != nil {
			return err
		}

		w := os.Stdout
		if output != "" && output != "-" {
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		if err := storage.WriteCSV(w, records); err != nil {
			return err
		}
		if w != os.Stdout {
			fmt.Printf("Exported %d records to %s\n", len(records), output)
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Append the records of a CSV dataset to the configured dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		if from == "" {
			return fmt.Errorf("--from is required")
		}

		backend, path := datasetConfig()
		lock, err := utils.NewStoreLock(path)
		if err != nil {
			return err
		}
		if err := lock.Lock(); err != nil {
			return err
		}
		defer lock.Unlock()

		sink, err := storage.OpenSink(backend, path)
		if err != nil {
			return err
		}
		defer sink.Close()

		existing, err := sink.LoadExisting(cmd.Context())
		if err != nil {
			return err
		}
		known := make(map[string]bool, len(existing))
		for _, p := range existing {
			known[p] = true
		}

		records, err := storage.NewCSV(from).Records(cmd.Context())
		if err != nil {
			return err
		}

		imported := 0
		for _, r := range records {
			p, err := plate.Normalize(r.Plate)
			if err != nil {
				utils.Log.Debugf("Skipping %q: %v", r.Plate, err)
				continue
			}
			if known[p] {
				continue
			}
			r.Plate = p
			if err := sink.Append(cmd.Context(), r); err != nil {
				return err
			}
			known[p] = true
			imported++
		}
		fmt.Printf("Imported %d of %d records into %s\n", imported, len(records), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(shellCmd)
	dbCmd.AddCommand(statsCmd)
	dbCmd.AddCommand(exportCmd)
	dbCmd.AddCommand(importCmd)

	statsCmd.Flags().Int("top", 10, "Number of most common patterns to show")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	importCmd.Flags().String("from", "", "CSV dataset to import")
}
