package darwin

import (
	"math/rand"
	"testing"

	"github.com/aldermoss/genlab/cell"
)

func TestWrap01StaysInRange(t *testing.T) {
	cases := []float64{-1.5, -0.2, 0, 0.3, 1.0, 2.7}
	for _, x := range cases {
		y := wrap01(x)
		if y < 0 || y >= 1 {
			t.Fatalf("wrap01(%v) = %v out of [0,1)", x, y)
		}
	}
}

func TestMutateGenomeDirectStaysInDomain(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := cell.Genome{0.1, 0.5, 0.9}
	out := mutateGenomeDirect(g, 0.75, 0.5, rng)
	if len(out) != len(g) {
		t.Fatalf("expected same length, got %d", len(out))
	}
	for i, v := range out {
		if v < 0 || v >= 1 {
			t.Fatalf("gene %d out of domain: %v", i, v)
		}
	}
}

func TestMutateGenomeStaysInDomain(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := cell.Genome{0.1, 0.5, 0.9}
	out := mutateGenome(g, 0.4, 0.3, rng)
	for i, v := range out {
		if v < 0 || v >= 1 {
			t.Fatalf("gene %d out of domain: %v", i, v)
		}
	}
}

func TestMutateGenomeZeroRateLeavesGenesUntouched(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := cell.Genome{0.25, 0.75}
	out := mutateGenome(g, 0, 0, rng)
	for i := range g {
		if out[i] != g[i] {
			t.Fatalf("expected gene %d untouched at rate 0, got %v vs %v", i, out[i], g[i])
		}
	}
}
