// Package lab implements the generation engine: it holds a set of algos
// with per-algo configurations, runs generations end to end, routes elite
// cells along the configured give-graph, and drives each algo's method to
// rebuild its population.
package lab

import (
	"encoding/json"
	"log"
	"math/rand"
	"strconv"
	"time"

	"github.com/aldermoss/genlab/algo"
	"github.com/aldermoss/genlab/cell"
	"github.com/aldermoss/genlab/dataset"
	"github.com/aldermoss/genlab/errcode"
	"github.com/aldermoss/genlab/method"
)

// GenerationStats is the per-algo, per-generation telemetry snapshot
// handed to OnGenerationComplete, grounded on the teacher's
// GenerationStats.
type GenerationStats struct {
	AlgoID     algo.AlgoID
	Generation int
	BestScore  float64
	Timestamp  time.Time
}

// registeredAlgo bundles one algo with its configuration and per-run
// scratch state. The algo's concrete cell type is erased to C, the Lab's
// shared type parameter.
type registeredAlgo[C cell.Cell] struct {
	impl       algo.Algo[C]
	cfg        algo.AlgoConfiguration
	cells      []C
	bestGenome cell.Genome
	method     method.Method
	pop        int
	nelite     int
}

// Lab is the engine. All algos registered on one Lab share the cell type
// C (spec §2 C6).
type Lab[C cell.Cell] struct {
	Config LabConfig

	algos      []*registeredAlgo[C]
	outAlgo    algo.AlgoID
	outAlgoSet bool

	rng   *rand.Rand
	seed  int64
	state State

	datasetIDs []string
	datasets   map[string]dataset.Handler
	generation int

	StatsHistory         []GenerationStats
	OnGenerationComplete func(algo.AlgoID, GenerationStats)

	Verbose bool
}

// NewLab creates an empty, Unconfigured Lab seeded for reproducibility.
// A zero seed draws from the current time, matching the teacher's
// EvolutionEngine convention.
func NewLab[C cell.Cell](cfg LabConfig, seed int64) *Lab[C] {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Lab[C]{
		Config:   cfg,
		outAlgo:  -1,
		rng:      rand.New(rand.NewSource(seed)),
		seed:     seed,
		state:    Unconfigured,
		datasets: make(map[string]dataset.Handler),
	}
}

// State reports the current lifecycle state.
func (l *Lab[C]) State() State { return l.state }

// RegisterDataset attaches a named dataset handler that every generation's
// dataset pass will drain in registration order. Re-registering an
// existing id replaces its handler.
func (l *Lab[C]) RegisterDataset(id string, handler dataset.Handler) {
	if _, exists := l.datasets[id]; !exists {
		l.datasetIDs = append(l.datasetIDs, id)
	}
	l.datasets[id] = handler
}

// RemoveDataset detaches a previously registered dataset.
func (l *Lab[C]) RemoveDataset(id string) error {
	if _, ok := l.datasets[id]; !ok {
		return &errcode.DatasetDoesntExistError{ID: id}
	}
	delete(l.datasets, id)
	for i, existing := range l.datasetIDs {
		if existing == id {
			l.datasetIDs = append(l.datasetIDs[:i], l.datasetIDs[i+1:]...)
			break
		}
	}
	return nil
}

// orderedDatasets returns registered dataset handlers in registration
// order, for runDatasetPass.
func (l *Lab[C]) orderedDatasets() []dataset.Handler {
	out := make([]dataset.Handler, 0, len(l.datasetIDs))
	for _, id := range l.datasetIDs {
		out = append(out, l.datasets[id])
	}
	return out
}

// RegisterNewAlgo appends impl with a default AlgoConfiguration and a
// freshly random best-genome buffer, returning its AlgoID.
func (l *Lab[C]) RegisterNewAlgo(impl algo.Algo[C]) algo.AlgoID {
	id := len(l.algos)
	cfg := algo.DefaultAlgoConfiguration("algo-" + strconv.Itoa(id))
	l.algos = append(l.algos, &registeredAlgo[C]{
		impl:       impl,
		cfg:        cfg,
		bestGenome: cell.RandomGenome(l.rng, impl.GenomeLength()),
	})
	if l.state == Unconfigured {
		l.state = Configured
	}
	if len(l.algos) == 1 {
		l.outAlgo = id
		l.outAlgoSet = true
	} else {
		l.outAlgoSet = false
	}
	return id
}

// ConfigureAlgo validates cfg against the known method-name set before
// installing it, restoring the prior configuration on failure (spec
// §4.5).
func (l *Lab[C]) ConfigureAlgo(id algo.AlgoID, cfg algo.AlgoConfiguration) error {
	ra, err := l.algoAt(id)
	if err != nil {
		return err
	}
	if !buildRegistry().Has(cfg.Method) {
		return &errcode.ValidationError{Label: cfg.Method}
	}
	prior := ra.cfg
	ra.cfg = cfg
	if err := l.validateMethodOptions(cfg); err != nil {
		ra.cfg = prior
		return err
	}
	return nil
}

// validateMethodOptions instantiates a throwaway method (seeded
// independently of the Lab's own RNG stream, so pre-Start validation
// never perturbs run determinism) to parse and validate method_options.
func (l *Lab[C]) validateMethodOptions(cfg algo.AlgoConfiguration) error {
	throwaway := rand.New(rand.NewSource(1))
	m, err := buildRegistry().New(cfg.Method, throwaway)
	if err != nil {
		return &errcode.ValidationError{Label: cfg.Method}
	}
	if err := m.LoadConfig(cfg.MethodOptions); err != nil {
		return err
	}
	return m.ValidateConfig()
}

// ApplyMap bulk-replaces every algo's configuration. list must have the
// same length as the registered algo count; every method name must be
// known.
func (l *Lab[C]) ApplyMap(list []algo.AlgoConfiguration) error {
	if len(list) != len(l.algos) {
		return &errcode.SizeError{Field: "apply_map", Expected: len(l.algos), Got: len(list)}
	}
	reg := buildRegistry()
	for _, cfg := range list {
		if !reg.Has(cfg.Method) {
			return &errcode.ValidationError{Label: cfg.Method}
		}
	}
	prior := make([]algo.AlgoConfiguration, len(l.algos))
	for i, ra := range l.algos {
		prior[i] = ra.cfg
	}
	for i, cfg := range list {
		l.algos[i].cfg = cfg
		if err := l.validateMethodOptions(cfg); err != nil {
			for j, p := range prior {
				l.algos[j].cfg = p
			}
			return err
		}
	}
	l.outAlgoSet = false
	return nil
}

// SetOutputAlgorithm designates the algo whose rank-0 cell is read at the
// end of Start.
func (l *Lab[C]) SetOutputAlgorithm(id algo.AlgoID) error {
	if _, err := l.algoAt(id); err != nil {
		return err
	}
	l.outAlgo = id
	l.outAlgoSet = true
	return nil
}

// ImportBestGenome seeds the best-genome buffer used by InitPopulation.
// A nil id applies genome to every algo.
func (l *Lab[C]) ImportBestGenome(genome cell.Genome, id *algo.AlgoID) error {
	if id != nil {
		ra, err := l.algoAt(*id)
		if err != nil {
			return err
		}
		ra.bestGenome = genome.Clone()
		return nil
	}
	for _, ra := range l.algos {
		ra.bestGenome = genome.Clone()
	}
	return nil
}

// ExportBestGenome returns a copy of algo id's current best-genome buffer.
func (l *Lab[C]) ExportBestGenome(id algo.AlgoID) (cell.Genome, error) {
	ra, err := l.algoAt(id)
	if err != nil {
		return nil, err
	}
	return ra.bestGenome.Clone(), nil
}

// SendSpecialData forwards a side-channel query to algo id.
func (l *Lab[C]) SendSpecialData(id algo.AlgoID, params json.RawMessage) (json.RawMessage, error) {
	ra, err := l.algoAt(id)
	if err != nil {
		return nil, err
	}
	return ra.impl.SendSpecialData(params)
}

// RecvSpecialData forwards a side-channel command to algo id. The Algo
// contract requires this be idempotent for repeated identical inputs
// (spec §8).
func (l *Lab[C]) RecvSpecialData(id algo.AlgoID, params json.RawMessage) error {
	ra, err := l.algoAt(id)
	if err != nil {
		return err
	}
	return ra.impl.RecvSpecialData(params)
}

func (l *Lab[C]) algoAt(id algo.AlgoID) (*registeredAlgo[C], error) {
	if id < 0 || id >= len(l.algos) {
		return nil, &errcode.IdDoesntExistError{ID: id}
	}
	return l.algos[id], nil
}

// validateStart implements spec §4.5's Validation clause.
func (l *Lab[C]) validateStart() error {
	if err := l.Config.Validate(); err != nil {
		return err
	}
	if len(l.algos) == 0 {
		return &errcode.NotSetError{Label: "algos"}
	}
	if len(l.algos) > 1 && !l.outAlgoSet {
		return &errcode.NotSetError{Label: "out_algo"}
	}
	reg := buildRegistry()
	for _, ra := range l.algos {
		if ra.cfg.Method == "" {
			return &errcode.NotSetError{Label: "method"}
		}
		if !reg.Has(ra.cfg.Method) {
			return &errcode.ValidationError{Label: ra.cfg.Method}
		}
	}
	return nil
}

// Start validates configuration, builds a fresh method registry,
// initializes every algo's population, then runs nGenerations generations
// in order. Returns the best CellData seen at the out_algo's rank 0 at the
// end of the final generation.
func (l *Lab[C]) Start(nGenerations int) (cell.CellData, error) {
	if err := l.validateStart(); err != nil {
		return cell.CellData{}, err
	}

	reg := buildRegistry()
	for _, ra := range l.algos {
		pop, nelite := ra.cfg.GetPopAndElite(l.Config.PopulationTotal, l.Config.EliteRatio)
		ra.pop = pop
		ra.nelite = nelite

		seed := l.rng.Int63()
		m, err := reg.New(ra.cfg.Method, rand.New(rand.NewSource(seed)))
		if err != nil {
			return cell.CellData{}, &errcode.ValidationError{Label: ra.cfg.Method}
		}
		if err := m.LoadConfig(ra.cfg.MethodOptions); err != nil {
			return cell.CellData{}, err
		}
		if err := m.ValidateConfig(); err != nil {
			return cell.CellData{}, err
		}
		ra.method = m

		genomes, err := m.InitPopulation(ra.bestGenome, ra.impl.GenomeLength(), pop, nelite)
		if err != nil {
			return cell.CellData{}, err
		}
		if len(genomes) != pop {
			return cell.CellData{}, &errcode.SizeError{Field: "init_population", Expected: pop, Got: len(genomes)}
		}
		cells := make([]C, pop)
		for i, g := range genomes {
			cells[i] = ra.impl.CreateCellFromGenome(g)
		}
		ra.impl.InitializeCells(cells)
		ra.cells = cells
	}

	l.state = Initialised
	l.state = Running

	var lastBest cell.CellData
	for gen := 0; gen < nGenerations; gen++ {
		best, err := l.runGeneration(gen)
		if err != nil {
			l.state = Configured
			return cell.CellData{}, err
		}
		lastBest = best
		l.generation = gen + 1
		if l.Verbose {
			log.Printf("generation %d/%d best=%.6f", gen+1, nGenerations, lastBest.Score)
		}
	}

	l.state = Complete
	l.state = Configured
	return lastBest, nil
}

// runGeneration executes the six contractual steps of spec §4.5 once.
func (l *Lab[C]) runGeneration(gen int) (cell.CellData, error) {
	// Step 1: drain every dataset in order, feeding each record to every
	// algo in registration order (dataset_pass.go).
	l.runDatasetPass()

	results := make([]*algo.Result, len(l.algos))
	for i, ra := range l.algos {
		results[i] = algo.NewResult(ra.nelite)
	}

	var candidateBest cell.CellData
	haveCandidate := false
	for i, ra := range l.algos {
		algo.LoadCells(results[i], ra.cells)
		results[i].SortCells(l.Config.MaximizeScore)
		if i == l.outAlgo && len(results[i].CellsData) > 0 {
			candidateBest = results[i].CellsData[0]
			haveCandidate = true
		}
	}

	for i, ra := range l.algos {
		top := results[i].CloneTopCells()
		for _, j := range ra.cfg.Give {
			if j < 0 || j >= len(results) {
				return cell.CellData{}, &errcode.IdDoesntExistError{ID: j}
			}
			cloned := make([]cell.CellData, len(top))
			for k, c := range top {
				cloned[k] = c.Clone()
			}
			results[j].ExteriorElites = append(results[j].ExteriorElites, cloned...)
		}
	}

	for i, ra := range l.algos {
		elites := results[i].GetElites()
		genomes, err := ra.method.ProcessResults(elites, results[i].CellsData)
		if err != nil {
			return cell.CellData{}, err
		}
		if len(genomes) != len(ra.cells) {
			return cell.CellData{}, &errcode.SizeError{Field: "process_results", Expected: len(ra.cells), Got: len(genomes)}
		}
		for k, g := range genomes {
			ra.cells[k].Reset(g)
		}
		ra.impl.Reset()
	}

	if !haveCandidate {
		return cell.CellData{}, &errcode.CodeError{Label: "lab: out_algo produced no candidate best"}
	}

	now := time.Now()
	for i := range l.algos {
		stats := GenerationStats{
			AlgoID:     i,
			Generation: gen,
			BestScore:  results[i].CellsData[0].Score,
			Timestamp:  now,
		}
		l.StatsHistory = append(l.StatsHistory, stats)
		if l.OnGenerationComplete != nil {
			l.OnGenerationComplete(i, stats)
		}
	}

	return candidateBest, nil
}
