package algo

import (
	"sort"

	"github.com/aldermoss/genlab/cell"
)

// Result is the per-generation, per-algo scratch buffer: sorted cell
// snapshots, injected exterior elites, and the elite count. Constructed
// empty at the start of each generation's post-processing phase and
// discarded before the next generation begins.
type Result struct {
	CellsData      []cell.CellData
	ExteriorElites []cell.CellData
	NElite         int
}

// NewResult allocates an empty Result with the given elite count.
func NewResult(nelite int) *Result {
	return &Result{NElite: nelite}
}

// LoadCells snapshots every cell's CellData into the result.
func LoadCells[C cell.Cell](r *Result, cells []C) {
	for _, c := range cells {
		r.CellsData = append(r.CellsData, c.Data())
	}
}

// SortCells orders CellsData descending when maximize is true, ascending
// otherwise, with stable ties (spec §8 sort-stability invariant).
func (r *Result) SortCells(maximize bool) {
	if maximize {
		sort.SliceStable(r.CellsData, func(i, j int) bool {
			return r.CellsData[i].Score > r.CellsData[j].Score
		})
	} else {
		sort.SliceStable(r.CellsData, func(i, j int) bool {
			return r.CellsData[i].Score < r.CellsData[j].Score
		})
	}
}

// GetElites returns the first NElite sorted cells followed by every
// exterior elite, in that order — exactly NElite+len(ExteriorElites)
// entries (spec §8 elite-pool-composition invariant), with NElite capped
// at len(CellsData).
func (r *Result) GetElites() []cell.CellData {
	n := r.NElite
	if n > len(r.CellsData) {
		n = len(r.CellsData)
	}
	res := make([]cell.CellData, 0, n+len(r.ExteriorElites))
	res = append(res, r.CellsData[:n]...)
	res = append(res, r.ExteriorElites...)
	return res
}

// CloneTopCells returns deep clones of the top NElite sorted cells, for
// propagation across the give-graph (clones, never live references, per
// spec §5's anti-aliasing rule).
func (r *Result) CloneTopCells() []cell.CellData {
	n := r.NElite
	if n > len(r.CellsData) {
		n = len(r.CellsData)
	}
	res := make([]cell.CellData, n)
	for i := 0; i < n; i++ {
		res[i] = r.CellsData[i].Clone()
	}
	return res
}
