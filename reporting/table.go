// Package reporting prints and exports lab.Lab run results, grounded on
// internal/bot/live_bot_helpers.go's go-pretty table usage and
// pkg/reporting/grid_reporter.go's excelize workbook usage.
package reporting

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/aldermoss/genlab/cell"
	"github.com/aldermoss/genlab/lab"
)

// PrintStatsTable renders a per-generation history as a rounded-style
// table, one row per (algo, generation) pair, mirroring printStartupInfo's
// table.NewWriter/SetStyle/SetColumnConfigs sequence.
func PrintStatsTable(w io.Writer, history []lab.GenerationStats) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("GENERATION HISTORY")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Algo", "Generation", "Best Score", "Timestamp"})
	for _, s := range history {
		t.AppendRow(table.Row{
			strconv.Itoa(s.AlgoID),
			s.Generation,
			fmt.Sprintf("%.6f", s.BestScore),
			s.Timestamp.Format("15:04:05"),
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 8, WidthMax: 8, Align: text.AlignLeft},
		{Number: 2, WidthMin: 12, WidthMax: 12, Align: text.AlignRight},
		{Number: 3, WidthMin: 16, WidthMax: 20, Align: text.AlignRight},
		{Number: 4, WidthMin: 10, WidthMax: 10, Align: text.AlignLeft},
	})

	t.Render()
}

// PrintBestCell renders the final best CellData as a small key/value table.
func PrintBestCell(w io.Writer, best cell.CellData) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("BEST CELL")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"Score", fmt.Sprintf("%.6f", best.Score)},
		{"Genome length", len(best.Genome)},
		{"Version", best.Version},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 15, WidthMax: 15, Align: text.AlignLeft},
		{Number: 2, WidthMin: 20, WidthMax: 30, Align: text.AlignLeft},
	})

	t.Render()
}
