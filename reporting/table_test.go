package reporting

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/aldermoss/genlab/cell"
	"github.com/aldermoss/genlab/lab"
)

func TestPrintStatsTableRendersEveryRow(t *testing.T) {
	var buf bytes.Buffer
	history := []lab.GenerationStats{
		{AlgoID: 0, Generation: 0, BestScore: 1.5, Timestamp: time.Unix(0, 0)},
		{AlgoID: 0, Generation: 1, BestScore: 0.75, Timestamp: time.Unix(0, 0)},
	}
	PrintStatsTable(&buf, history)
	out := buf.String()
	if !strings.Contains(out, "GENERATION HISTORY") {
		t.Fatalf("expected title in output, got:\n%s", out)
	}
	if !strings.Contains(out, "1.500000") || !strings.Contains(out, "0.750000") {
		t.Fatalf("expected both best scores rendered, got:\n%s", out)
	}
}

func TestPrintStatsTableHandlesEmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	PrintStatsTable(&buf, nil)
	if buf.Len() == 0 {
		t.Fatalf("expected a rendered table even with no rows")
	}
}

func TestPrintBestCellRendersScoreAndGenomeLength(t *testing.T) {
	var buf bytes.Buffer
	PrintBestCell(&buf, cell.CellData{Genome: cell.Genome{0.1, 0.2, 0.3}, Score: 2.25, Version: 1})
	out := buf.String()
	if !strings.Contains(out, "2.250000") {
		t.Fatalf("expected score rendered, got:\n%s", out)
	}
	if !strings.Contains(out, "3") {
		t.Fatalf("expected genome length 3 rendered, got:\n%s", out)
	}
}
