package darwin

import (
	"math/rand"
	"testing"

	"github.com/aldermoss/genlab/cell"
)

func newSortedPop(rng *rand.Rand, n, genomeLen int) []cell.CellData {
	pop := make([]cell.CellData, n)
	for i := range pop {
		pop[i] = cell.CellData{
			Genome: cell.RandomGenome(rng, genomeLen),
			Score:  float64(n - i), // best-first descending scores
		}
	}
	return pop
}

func TestInitPopulationLength(t *testing.T) {
	d := New(rand.New(rand.NewSource(1)))
	best := cell.RandomGenome(rand.New(rand.NewSource(2)), 10)
	genomes, err := d.InitPopulation(best, 10, 50, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(genomes) != 50 {
		t.Fatalf("expected 50 genomes, got %d", len(genomes))
	}
	for i, g := range genomes {
		if len(g) != 10 {
			t.Fatalf("genome %d: expected length 10, got %d", i, len(g))
		}
	}
}

func TestInitPopulationWithEmptyBestGenomeIsAllRandom(t *testing.T) {
	d := New(rand.New(rand.NewSource(1)))
	genomes, err := d.InitPopulation(nil, 7, 20, 4)
	if err != nil {
		t.Fatalf("unexpected error for empty bestGenome seed: %v", err)
	}
	if len(genomes) != 20 {
		t.Fatalf("expected 20 genomes, got %d", len(genomes))
	}
	for i, g := range genomes {
		if len(g) != 7 {
			t.Fatalf("genome %d: expected length 7, got %d", i, len(g))
		}
	}
}

func TestInitPopulationRejectsWrongLengthBestGenome(t *testing.T) {
	d := New(rand.New(rand.NewSource(1)))
	best := cell.RandomGenome(rand.New(rand.NewSource(2)), 6)
	if _, err := d.InitPopulation(best, 10, 20, 4); err == nil {
		t.Fatalf("expected CodeError for a bestGenome whose length does not match genomeLength")
	}
}

func TestProcessResultsConservesLength(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	d := New(rng)
	pop := newSortedPop(rng, 100, 8)
	elites := pop[:10]
	genomes, err := d.ProcessResults(elites, pop)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(genomes) != len(pop) {
		t.Fatalf("expected %d genomes, got %d (length conservation violated)", len(pop), len(genomes))
	}
}

func TestProcessResultsRejectsEmptyPopulation(t *testing.T) {
	d := New(rand.New(rand.NewSource(1)))
	if _, err := d.ProcessResults(nil, nil); err == nil {
		t.Fatalf("expected error for empty population")
	}
}

func TestProcessResultsRejectsEmptyElites(t *testing.T) {
	d := New(rand.New(rand.NewSource(1)))
	pop := newSortedPop(rand.New(rand.NewSource(2)), 10, 4)
	if _, err := d.ProcessResults(nil, pop); err == nil {
		t.Fatalf("expected error for empty elite set")
	}
}

func TestProcessResultsRejectsTooManyElites(t *testing.T) {
	d := New(rand.New(rand.NewSource(1)))
	pop := newSortedPop(rand.New(rand.NewSource(2)), 5, 4)
	if _, err := d.ProcessResults(pop, pop); err == nil {
		t.Fatalf("expected error when nelites+1 > pop")
	}
}

func TestFirstProcessResultsUnconditionallySeedsLastBestCell(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	d := New(rng)
	pop := newSortedPop(rng, 30, 6)
	if _, err := d.ProcessResults(pop[:3], pop); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.haveBestCell {
		t.Fatalf("expected lastBestCell seeded after first ProcessResults call")
	}
}

func TestResetReturnsToFreshLifecycle(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	d := New(rng)
	pop := newSortedPop(rng, 30, 6)
	d.ProcessResults(pop[:3], pop)
	d.Reset()
	if d.state != lifecycleFresh || d.haveBestCell {
		t.Fatalf("expected Reset to clear lifecycle and best-cell state")
	}
}

func TestProcessResultsDeterministicUnderFixedSeed(t *testing.T) {
	run := func() []cell.Genome {
		rng := rand.New(rand.NewSource(99))
		d := New(rng)
		pop := newSortedPop(rand.New(rand.NewSource(1)), 40, 5)
		out, err := d.ProcessResults(pop[:4], pop)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return out
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("length mismatch across runs")
	}
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("genome %d gene %d differs across identically-seeded runs", i, j)
			}
		}
	}
}
