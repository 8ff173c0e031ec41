package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/sw33tLie/platescope/pkg/discovery"
)

// printEvent streams run progress to stdout. Lookup errors are logged by the loop itself.
func printEvent(e discovery.Event) {
	switch e.Kind {
	case discovery.EventSkip:
		fmt.Printf("⏭️  %s already in dataset, skipping\n", e.Plate)
	case discovery.EventFound:
		fmt.Printf("✅ Saved %s (%d/%d)\n", e.Plate, e.Saved, e.Target)
	case discovery.EventNotFound:
		fmt.Printf("·  No vehicle registered as %s\n", e.Plate)
	case discovery.EventPattern:
		fmt.Printf("🆕 New valid pattern found! %s****\n", e.Pattern)
	case discovery.EventInvalid:
		if e.Plate != "" {
			fmt.Printf("❌ %s is not a valid plate, skipping\n", e.Plate)
		} else {
			fmt.Printf("❌ Pattern %s is not valid, skipping\n", e.Pattern)
		}
	case discovery.EventPrefix:
		fmt.Printf("\n[%d/%d] Processing pattern %s\n", e.Index, e.Total, e.Pattern)
	}
}

func printSummary(title string, s discovery.Summary) {
	fmt.Println()
	fmt.Println(renderKeyValues(title, [][2]string{
		{"Saved", fmt.Sprintf("%d/%d", s.Saved, s.Target)},
		{"Lookups", strconv.Itoa(s.Attempts)},
		{"Already known", strconv.Itoa(s.Skipped)},
		{"Invalid", strconv.Itoa(s.Invalid)},
		{"Errors", strconv.Itoa(s.Failures)},
	}))
	if s.Aborted {
		fmt.Fprintln(os.Stderr, "Target not reached: attempt budget exhausted.")
	}
}

func renderKeyValues(title string, rows [][2]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(title)
	for _, r := range rows {
		tw.AppendRow(table.Row{r[0], r[1]})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight},
	})
	return tw.Render()
}

func renderTable(headers []string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, v := range row {
			r[i] = v
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}
