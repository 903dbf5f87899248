// Package method defines the variation-method contract shared by every
// pluggable genetic operator (Darwin, RandomOpti, ...) and a registry that
// hands the Lab a fresh instance per method name at Start time.
package method

import (
	"encoding/json"
	"math/rand"

	"github.com/aldermoss/genlab/cell"
)

// Method rewrites one generation's population into the next. It is
// polymorphic over the variant set via the Registry below rather than
// subclassing; Methods never see LabConfig.MaximizeScore — Lab hides the
// maximize/minimize choice behind AlgoResult's sort direction (spec §9).
type Method interface {
	// LoadConfig absorbs the method's own configuration payload.
	LoadConfig(options json.RawMessage) error

	// InitPopulation emits popSize genomes of genomeLength genes each. If
	// bestGenome is empty, every genome is random. If bestGenome has
	// length genomeLength, the first output is bestGenome, the next
	// nelite-1 are mutated copies of it, and the remainder are random. A
	// bestGenome of nonzero but wrong length is a CodeError. genomeLength
	// mirrors the original genalgo trait handing init_method the owning
	// Algo directly (algo.get_genome_length()), rather than asking every
	// Method to infer a length from a possibly-empty seed.
	InitPopulation(bestGenome cell.Genome, genomeLength, popSize, nelite int) ([]cell.Genome, error)

	// ProcessResults emits exactly len(fullSortedPop) new genomes forming
	// the next generation, consuming elites (best-first) and the full
	// sorted population.
	ProcessResults(elites, fullSortedPop []cell.CellData) ([]cell.Genome, error)

	// Reset clears method-local per-run memory.
	Reset()

	// ValidateConfig fails when parameters are out of range.
	ValidateConfig() error
}

// Factory builds a fresh Method instance scoped to its own RNG, seeded by
// the caller for reproducibility (spec §9: "RNG scoped to the method
// instance").
type Factory func(rng *rand.Rand) Method
