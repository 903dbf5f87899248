package darwin

import (
	"encoding/json"
	"math/rand"

	"github.com/aldermoss/genlab/cell"
	"github.com/aldermoss/genlab/errcode"
)

// lifecycle tracks the three states a Darwin instance moves through:
// Fresh before InitPopulation has ever run, AfterInit once a population has
// been seeded, and PostGen(k) after the k-th call to ProcessResults.
type lifecycle int

const (
	lifecycleFresh lifecycle = iota
	lifecycleAfterInit
	lifecyclePostGen
)

// Method is Darwin's variation operator: it mutates and crosses genomes
// near the current elites, and reserves a share of the population for
// normal-distributed and uniform exploration whose upper bound shrinks the
// longer the best genome stays unchanged (see explorationRatio).
type Method struct {
	rng *rand.Rand
	cfg Config

	state  lifecycle
	genIdx int

	epochLastNewBest int
	lastBestCell     cell.Genome
	bestCellAvg      averageCompute
	haveBestCell     bool
}

// New builds a Darwin method instance scoped to rng.
func New(rng *rand.Rand) *Method {
	return &Method{rng: rng, cfg: DefaultConfig()}
}

func (d *Method) LoadConfig(options json.RawMessage) error {
	cfg, err := parseConfig(options)
	if err != nil {
		return err
	}
	d.cfg = cfg
	return nil
}

func (d *Method) ValidateConfig() error {
	return d.cfg.Validate()
}

func (d *Method) Reset() {
	d.state = lifecycleFresh
	d.genIdx = 0
	d.epochLastNewBest = 0
	d.lastBestCell = nil
	d.bestCellAvg = averageCompute{}
	d.haveBestCell = false
}

// InitPopulation seeds popSize genomes of genomeLength genes each. An
// empty bestGenome means no prior generation exists yet: every genome is
// random. A bestGenome of length genomeLength seeds the population: the
// first output is bestGenome itself, the next nelite-1 are copies of it
// mutated at a fixed 0.75 rate (spec §4.2 "InitPopulation"), and the rest
// are random. A bestGenome that is neither empty nor genomeLength long is
// a CodeError.
func (d *Method) InitPopulation(bestGenome cell.Genome, genomeLength, popSize, nelite int) ([]cell.Genome, error) {
	const reinitMutationRate = 0.75

	d.state = lifecycleAfterInit

	if len(bestGenome) != 0 && len(bestGenome) != genomeLength {
		return nil, &errcode.CodeError{Label: "darwin: bestGenome length does not match genomeLength"}
	}

	out := make([]cell.Genome, 0, popSize)
	if len(bestGenome) == 0 {
		for len(out) < popSize {
			out = append(out, cell.RandomGenome(d.rng, genomeLength))
		}
		return out, nil
	}

	out = append(out, bestGenome.Clone())
	for len(out) < nelite && len(out) < popSize {
		out = append(out, mutateGenomeDirect(bestGenome, reinitMutationRate, d.cfg.GeneRerollProba, d.rng))
	}
	for len(out) < popSize {
		out = append(out, cell.RandomGenome(d.rng, genomeLength))
	}

	return out, nil
}

// ProcessResults implements Darwin's generational step (spec §4.3).
//
// elites is best-first and non-empty; fullSortedPop is the complete,
// best-first sorted population that produced elites. The emitted slice has
// exactly len(fullSortedPop) genomes, composed as:
//
//	[0]                    the unchanged top elite ("last_best_cell")
//	[1]                    the running weighted average of past best cells
//	[2 .. nelites]         cross-children of elite pairs (ScoreBasedChoose),
//	                       mutated at rate (1-r)^2               ("elite_mutated" slot is
//	                       folded into the exploitation pool below)
//	next opti_pop-derived  elite_mutated + random_elite_child blocks
//	next explo_pop-derived random_childs + random_cells_norm + random_cells
//
// Total length is held exactly to len(fullSortedPop) by construction:
// pop_rest = pop - (nelites + 1), so nelites-1 cross-children plus
// pop_rest exploitation/exploration genomes plus the 2 fixed leading slots
// sum to pop (spec §8 "Length conservation").
func (d *Method) ProcessResults(elites, fullSortedPop []cell.CellData) ([]cell.Genome, error) {
	pop := len(fullSortedPop)
	nelites := len(elites)
	if pop == 0 {
		return nil, &errcode.CodeError{Label: "darwin: empty population"}
	}
	if nelites == 0 {
		return nil, &errcode.CodeError{Label: "darwin: empty elite set"}
	}
	if nelites+1 > pop {
		return nil, &errcode.SizeError{Field: "elites", Expected: pop, Got: nelites}
	}

	bestCell := elites[0]
	d.advanceEpoch(bestCell.Genome)

	r := d.explorationRatio()

	// Spec open question (a): log_base(bestScore) is ill-defined at
	// bestScore ∈ {0,1}; surface it as a CodeError rather than guessing.
	mean, stddev, err := eliteMeanAndStddev(elites, bestCell.Score)
	if err != nil {
		return nil, err
	}

	out := make([]cell.Genome, 0, pop)

	// Slot 0: the unmutated current best.
	out = append(out, d.lastBestCell.Clone())

	// Slot 1: the running average of past best cells.
	out = append(out, d.bestCellAvg.addEl(d.lastBestCell, 1.0))

	// nelites-1 cross-children of elite pairs, mutated at (1-r)^2.
	childRate := (1 - r) * (1 - r)
	for i := 1; i < nelites; i++ {
		p1 := elites[(i-1)%nelites]
		p2 := elites[i%nelites]
		child := giveBirth(p1, p2, ScoreBasedChoose, d.rng)
		out = append(out, mutateGenome(child, childRate, d.cfg.GeneRerollProba, d.rng))
	}

	popRest := pop - (nelites + 1)
	if popRest < 0 {
		popRest = 0
	}

	optiPop := int(float64(popRest) * (1 - r))
	exploPop := popRest - optiPop

	eliteMutated := int(float64(optiPop) * 0.6)
	randomEliteChild := optiPop - eliteMutated

	randomChilds := int(float64(exploPop) * 0.4)
	randomCellsNorm := int(float64(exploPop) * 0.4)
	randomCells := exploPop - randomChilds - randomCellsNorm

	nonElites := fullSortedPop[nelites:]

	mutationRate := 1 - r
	for i := 0; i < eliteMutated; i++ {
		parent := elites[i%nelites]
		out = append(out, mutateGenomeDirect(parent.Genome, mutationRate, d.cfg.GeneRerollProba, d.rng))
	}

	for i := 0; i < randomEliteChild; i++ {
		p1 := elites[i%nelites]
		p2 := elites[(i+1)%nelites]
		child := giveBirth(p1, p2, ScoreBasedAverage, d.rng)
		out = append(out, mutateGenome(child, childRate, d.cfg.GeneRerollProba, d.rng))
	}

	for i := 0; i < randomChilds; i++ {
		p1 := pickNonElite(nonElites, elites, d.rng)
		p2 := pickNonElite(nonElites, elites, d.rng)
		child := giveBirth(p1, p2, ScoreBasedChoose, d.rng)
		out = append(out, mutateGenome(child, mutationRate, d.cfg.GeneRerollProba, d.rng))
	}

	for i := 0; i < randomCellsNorm; i++ {
		out = append(out, sampleTruncatedNormal(mean, stddev, d.rng))
	}

	for i := 0; i < randomCells; i++ {
		out = append(out, cell.RandomGenome(d.rng, len(bestCell.Genome)))
	}

	d.state = lifecyclePostGen
	d.genIdx++

	if len(out) != pop {
		return nil, &errcode.SizeError{Field: "darwin output", Expected: pop, Got: len(out)}
	}
	return out, nil
}

// advanceEpoch updates last_best_cell and epoch_last_new_best, comparing
// genomes rather than scores alone so two equal-fitness-but-distinct
// genomes still count as a change (spec §9 open question). The first call
// unconditionally seeds last_best_cell (spec §4.7 Darwin lifecycle).
func (d *Method) advanceEpoch(bestGenome cell.Genome) {
	if !d.haveBestCell {
		d.lastBestCell = bestGenome.Clone()
		d.epochLastNewBest = 0
		d.haveBestCell = true
		return
	}
	if genomeEqual(d.lastBestCell, bestGenome) {
		d.epochLastNewBest++
		return
	}
	d.lastBestCell = bestGenome.Clone()
	d.epochLastNewBest = 0
}

// explorationRatio implements spec §4.3 exactly:
//
//	max_ratio = exploration_scope_epoch_max / (exploration_scope_epoch_max + epoch_last_new_best)
//	r = min_explo + max_ratio * uniform() * (max_explo - min_explo)
func (d *Method) explorationRatio() float64 {
	epochMax := float64(d.cfg.ExplorationScopeEpochMax)
	maxRatio := epochMax / (epochMax + float64(d.epochLastNewBest))
	return minExplo + maxRatio*d.rng.Float64()*(maxExplo-minExplo)
}

func genomeEqual(a, b cell.Genome) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// pickNonElite picks a uniformly random individual from nonElites, falling
// back to an elite when the non-elite pool is empty (population entirely
// elite, e.g. a very small pop size).
func pickNonElite(nonElites []cell.CellData, elites []cell.CellData, rng *rand.Rand) cell.CellData {
	if len(nonElites) == 0 {
		return elites[rng.Intn(len(elites))]
	}
	return nonElites[rng.Intn(len(nonElites))]
}
