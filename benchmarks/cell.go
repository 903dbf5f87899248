package benchmarks

import "github.com/aldermoss/genlab/cell"

// fctContext is the per-algo state every Cell shares: the active math
// function and coordinate scope. Cells hold a pointer to one shared context
// rather than cloning it per cell (spec §9 design note: avoid per-cell
// aliasing cost by passing a context reference instead of embedding a
// cloned fitness function). Cells only read it; FunctionAlgo.RecvSpecialData
// updates its fields in place, so a change reaches every cell at once.
type fctContext struct {
	fct   MathFct
	scope cell.Scope
}

// Cell is the benchmark candidate solution: a genome scored against the
// function and scope of its owning FunctionAlgo.
type Cell struct {
	data CellState
	ctx  *fctContext
}

// CellState is the plain CellData payload, kept separate from ctx so
// cloning a Cell's data never drags the shared context along.
type CellState = cell.CellData

func (c *Cell) Data() cell.CellData { return c.data }

func (c *Cell) Action(_ []float64) {
	coords := cell.GenomeToCoords(c.ctx.scope, c.data.Genome)
	ndim := len(coords)
	c.data.Score = absDiff(c.ctx.fct.Minimum(ndim), c.ctx.fct.Calc(coords))
}

func (c *Cell) Reset(genome cell.Genome) {
	c.data.Genome = genome.Clone()
	c.data.Score = 0
}

func (c *Cell) GenomeVersionAdapt(genome cell.Genome, _ uint64) cell.Genome {
	return genome
}

func absDiff(a, b float64) float64 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}
