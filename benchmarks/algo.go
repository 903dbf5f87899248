package benchmarks

import (
	"encoding/json"
	"fmt"
	"runtime"
	"sync"

	"github.com/aldermoss/genlab/cell"
	"github.com/aldermoss/genlab/dataset"
	"github.com/aldermoss/genlab/errcode"
)

// FunctionAlgo wraps one benchmark MathFct behind the Algo contract (spec
// §4.8), grounded on original_source's BenchmarkAlgo/BenchmarkCell pair.
// A FunctionAlgo with no function configured yet panics on
// InitializeCells, mirroring the source's "No math function was set up"
// guard.
type FunctionAlgo struct {
	name string
	ctx  *fctContext
	dim  int

	// Workers bounds the goroutine pool ProcessData uses to score cells in
	// parallel; 0 selects runtime.NumCPU() (spec §5's addition, grounded on
	// the teacher's ParallelEvaluator worker-pool pattern).
	Workers int
}

// NewFunctionAlgo builds a FunctionAlgo for the named function over
// [lo,hi]^dim.
func NewFunctionAlgo(name string, dim int, lo, hi float64) (*FunctionAlgo, error) {
	fct, err := GetFctByName(name)
	if err != nil {
		return nil, &errcode.ValidationError{Label: name}
	}
	return &FunctionAlgo{
		name: name,
		dim:  dim,
		ctx:  &fctContext{fct: fct, scope: cell.Scope{Lo: lo, Hi: hi}},
	}, nil
}

func (a *FunctionAlgo) GenomeLength() int { return a.dim }

func (a *FunctionAlgo) CreateCellFromGenome(g cell.Genome) *Cell {
	return &Cell{data: cell.CellData{Genome: g.Clone(), Score: 0, Version: 1}}
}

func (a *FunctionAlgo) InitializeCells(cells []*Cell) {
	if a.ctx.fct == nil {
		panic("benchmarks: no math function was set up before initialisation")
	}
	for _, c := range cells {
		c.ctx = a.ctx
	}
}

func (a *FunctionAlgo) ProcessData(cells []*Cell, data dataset.Record) {
	workers := a.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers <= 1 || len(cells) < workers {
		for _, c := range cells {
			c.Action(data)
		}
		return
	}

	var wg sync.WaitGroup
	chunk := (len(cells) + workers - 1) / workers
	for start := 0; start < len(cells); start += chunk {
		end := start + chunk
		if end > len(cells) {
			end = len(cells)
		}
		wg.Add(1)
		go func(slice []*Cell) {
			defer wg.Done()
			for _, c := range slice {
				c.Action(data)
			}
		}(cells[start:end])
	}
	wg.Wait()
}

type specialDataRequest struct {
	Method string    `json:"method"`
	Scope  []float64 `json:"scope"`
}

func (a *FunctionAlgo) SendSpecialData(params json.RawMessage) (json.RawMessage, error) {
	var req specialDataRequest
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, &errcode.JsonSerializationError{Inner: err}
	}
	if req.Method == "" {
		return nil, &errcode.ValidationError{Label: errcode.CodeUnknownMethodField}
	}
	switch req.Method {
	case "expected_optimum":
		if len(req.Scope) != 2 {
			return nil, &errcode.ValidationError{Label: errcode.CodeMissingScopeField}
		}
		scope := cell.Scope{Lo: req.Scope[0], Hi: req.Scope[1]}
		optimum := a.ctx.fct.ExpectedOptimum(a.dim)
		genes := make([]float64, len(optimum))
		for i, coord := range optimum {
			genes[i] = cell.CoordToGene(scope, coord)
		}
		return json.Marshal(map[string]any{"result": genes})
	default:
		return nil, &errcode.ValidationError{Label: errcode.CodeUnknownMethodName}
	}
}

type recvSpecialDataPayload struct {
	Scope        []float64 `json:"scope,omitempty"`
	MathFct      string    `json:"mathfct,omitempty"`
	NbDimensions *int      `json:"nb_dimensions,omitempty"`
}

// RecvSpecialData is idempotent: applying the same payload twice leaves
// the same (scope, function, dimension) triple installed, since every
// field is a plain assignment (spec §8 "Idempotent recv_special_data").
func (a *FunctionAlgo) RecvSpecialData(params json.RawMessage) error {
	var req recvSpecialDataPayload
	if err := json.Unmarshal(params, &req); err != nil {
		return &errcode.JsonSerializationError{Inner: err}
	}
	if len(req.Scope) == 2 {
		a.ctx.scope = cell.Scope{Lo: req.Scope[0], Hi: req.Scope[1]}
	}
	if req.MathFct != "" {
		fct, err := GetFctByName(req.MathFct)
		if err != nil {
			return fmt.Errorf("recv_special_data: %w", err)
		}
		a.ctx.fct = fct
		a.name = req.MathFct
	}
	if req.NbDimensions != nil {
		a.dim = *req.NbDimensions
	}
	return nil
}

func (a *FunctionAlgo) CheckGenerationOver() bool { return true }

func (a *FunctionAlgo) Reset() {}
