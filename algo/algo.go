// Package algo defines the Algo contract: an evolutionary search process
// that owns a cell population, converts genomes to cells, and exposes a
// typed side-channel for host queries and commands.
package algo

import (
	"encoding/json"

	"github.com/aldermoss/genlab/cell"
	"github.com/aldermoss/genlab/dataset"
)

// AlgoID identifies one registered algo inside a Lab.
type AlgoID = int

// Algo owns a vector of cells of type C, a method name, and an optional
// impr_genes mask (carried in AlgoConfiguration, not here). Implementations
// must keep every cell's genome length equal to GenomeLength().
type Algo[C cell.Cell] interface {
	// GenomeLength is the constant genome length for this cell type.
	GenomeLength() int

	// CreateCellFromGenome copies g into a fresh cell with score 0.
	CreateCellFromGenome(g cell.Genome) C

	// InitializeCells performs one-shot per-run setup over the initial
	// population (e.g. stamping a shared fitness-function handle).
	InitializeCells(cells []C)

	// ProcessData calls cells[i].Action(data) for every cell. Must not
	// resize pop.
	ProcessData(cells []C, data dataset.Record)

	// SendSpecialData answers a typed side-channel query (e.g. "expected
	// optimum"). The returned JSON is opaque to the Lab.
	SendSpecialData(params json.RawMessage) (json.RawMessage, error)

	// RecvSpecialData applies a typed side-channel command (e.g. change
	// fitness function mid-run). Must be idempotent for repeated identical
	// inputs.
	RecvSpecialData(params json.RawMessage) error

	// CheckGenerationOver decides whether the current generation should
	// end. Every builtin Algo returns true unconditionally (spec §9 open
	// question (b)); the hook stays available for future multi-pass algos.
	CheckGenerationOver() bool

	// Reset clears per-run mutable state. Must be idempotent.
	Reset()
}
