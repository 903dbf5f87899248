// Package labmap builds validated algo.AlgoConfiguration lists implementing
// the Wheel topology: a random source and a final aggregator hub, K
// isolated per-objective nodes, and (when K>2) K pairwise mix nodes
// forming a ring around the hub.
package labmap

import (
	"sort"

	"github.com/aldermoss/genlab/algo"
	"github.com/aldermoss/genlab/errcode"
)

// IsolatedSpec describes one isolated-objective node before it is wired
// into the wheel: its own AlgoConfiguration (method, impr_genes already
// set) plus a relative priority weight.
type IsolatedSpec struct {
	Cfg      algo.AlgoConfiguration
	Priority float64
}

// Priorities is the [random, map, final] weight 3-tuple from spec §4.6.
type Priorities struct {
	Random float64
	Map    float64
	Final  float64
}

// WheelParams configures one Wheel build.
type WheelParams struct {
	Isolated       []IsolatedSpec
	MixMethod      string
	RandomSourceID string // method name for the random-source node, typically "RandomOpti"
	FinalTail      []algo.AlgoConfiguration
	Priorities     Priorities
}

// Build produces the validated flat AlgoConfiguration list for p. Index 0
// is the Random source, the next len(FinalTail) (or 1, if FinalTail is
// empty) entries are the Final aggregator/tail, followed by K Isolated
// nodes and (if K>2) K Mix nodes.
func Build(p WheelParams) ([]algo.AlgoConfiguration, error) {
	k := len(p.Isolated)
	if k == 0 {
		return nil, &errcode.ValidationError{Label: "labmap: at least one isolated node required"}
	}

	tail := p.FinalTail
	if len(tail) == 0 {
		tail = []algo.AlgoConfiguration{algo.DefaultAlgoConfiguration("final")}
	}

	startInd := 1 + len(tail)
	isolatedIdx := make([]int, k)
	for i := range isolatedIdx {
		isolatedIdx[i] = startInd + i
	}

	out := make([]algo.AlgoConfiguration, 0, startInd+k+k)

	random := algo.DefaultAlgoConfiguration("random")
	random.Method = p.RandomSourceID
	random.Population = algo.WeightOfTotal(p.Priorities.Random)
	random.Give = append([]int{}, isolatedIdx...)
	out = append(out, random)

	for i, cfg := range tail {
		c := cfg
		if i == 0 {
			c.Population = algo.WeightOfTotal(p.Priorities.Final)
			c.Give = append([]int{}, isolatedIdx...)
		}
		out = append(out, c)
	}
	finalIdx := 1

	for i, spec := range p.Isolated {
		c := spec.Cfg
		c.Population = algo.WeightOfTotal(p.Priorities.Map * spec.Priority)
		if k <= 2 {
			c.Give = []int{finalIdx}
		} else if i == k-1 {
			// Wired to the final mix below, added once the mix block exists.
			c.Give = nil
		} else {
			c.Give = []int{finalIdx}
		}
		out = append(out, c)
	}

	if k <= 2 {
		return out, validateGiveIndices(out)
	}

	mixIdx := make([]int, k)
	for i := range mixIdx {
		mixIdx[i] = startInd + k + i
	}

	mixes := make([]algo.AlgoConfiguration, k)
	for i := 0; i < k; i++ {
		j := (i + 1) % k
		left := p.Isolated[i]
		right := p.Isolated[j]

		mix := algo.DefaultAlgoConfiguration(mixName(i))
		mix.Method = p.MixMethod
		mix.ImprGenes = unionSorted(left.Cfg.ImprGenes, right.Cfg.ImprGenes)
		mix.Population = algo.WeightOfTotal(p.Priorities.Map * left.Priority * right.Priority)

		give := []int{finalIdx}
		if i > 0 {
			give = append(give, mixIdx[i-1])
		}
		mix.Give = give
		mixes[i] = mix
	}

	// The last isolated node feeds into the final mix (spec §4.6).
	out[startInd+k-1].Give = []int{mixIdx[k-1]}

	out = append(out, mixes...)

	return out, validateGiveIndices(out)
}

func mixName(i int) string {
	const letters = "0123456789"
	if i < len(letters) {
		return "mix-" + string(letters[i])
	}
	return "mix-n"
}

// unionSorted returns the sorted, deduplicated union of a and b.
func unionSorted(a, b []int) []int {
	set := make(map[int]struct{}, len(a)+len(b))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		set[v] = struct{}{}
	}
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// validateGiveIndices checks only that every Give entry in list refers to
// an in-range index. The Wheel's give-graph is intentionally cyclic —
// spec §4.6 has the random source and the final tail give to every
// isolated node, and each isolated node gives back to the final tail (or
// its ring-neighbor mix) — so Build cannot run the stronger acyclicity
// check below against its own output. The original labmaps::wheel's own
// validate() never enforced acyclicity either.
func validateGiveIndices(list []algo.AlgoConfiguration) error {
	n := len(list)
	for i := range list {
		for _, j := range list[i].Give {
			if j < 0 || j >= n {
				return &errcode.IdDoesntExistError{ID: j}
			}
		}
	}
	return nil
}

// validateDAG checks that the give-edge graph over list is acyclic and
// every referenced index is in range. Not used by Build (the Wheel
// topology is intentionally cyclic, see validateGiveIndices); kept as a
// general-purpose primitive for LabMap builders whose topology is a true
// DAG.
func validateDAG(list []algo.AlgoConfiguration) error {
	n := len(list)
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, n)

	var visit func(i int) error
	visit = func(i int) error {
		color[i] = gray
		for _, j := range list[i].Give {
			if j < 0 || j >= n {
				return &errcode.IdDoesntExistError{ID: j}
			}
			switch color[j] {
			case white:
				if err := visit(j); err != nil {
					return err
				}
			case gray:
				return &errcode.ValidationError{Label: "labmap: cycle in give graph"}
			}
		}
		color[i] = black
		return nil
	}

	for i := 0; i < n; i++ {
		if color[i] == white {
			if err := visit(i); err != nil {
				return err
			}
		}
	}
	return nil
}
