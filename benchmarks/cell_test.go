package benchmarks

import (
	"testing"

	"github.com/aldermoss/genlab/cell"
)

func TestCellResetClearsScoreAndClonesGenome(t *testing.T) {
	c := &Cell{data: cell.CellData{Genome: cell.Genome{0.1}, Score: 42}}
	fresh := cell.Genome{0.9, 0.8}
	c.Reset(fresh)
	fresh[0] = 0.0
	if c.data.Score != 0 {
		t.Fatalf("expected score reset to 0, got %v", c.data.Score)
	}
	if c.data.Genome[0] == 0.0 {
		t.Fatalf("expected Reset to clone the incoming genome, not alias it")
	}
}

func TestCellGenomeVersionAdaptIsIdentity(t *testing.T) {
	c := &Cell{}
	g := cell.Genome{0.3, 0.4}
	if got := c.GenomeVersionAdapt(g, 7); len(got) != 2 || got[0] != 0.3 {
		t.Fatalf("expected identity adapt for a benchmark cell with no schema history, got %v", got)
	}
}
