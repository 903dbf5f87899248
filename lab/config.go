package lab

import "github.com/aldermoss/genlab/errcode"

// minPopulationTotal is the hard floor below which Start refuses to run
// (spec §4.5 Validation).
const minPopulationTotal = 100

// LabConfig is the Lab's own top-level configuration (spec §3).
type LabConfig struct {
	PopulationTotal int     `json:"population_total"`
	EliteRatio      float64 `json:"elite_ratio"`
	MaximizeScore   bool    `json:"maximize_score"`
}

// Validate checks the parts of LabConfig that don't depend on the algo
// list (the population floor). The algo-list-dependent checks (empty
// algos, missing out_algo, unknown method names) live in Lab.Start,
// which has access to that state.
func (c LabConfig) Validate() error {
	if c.PopulationTotal < minPopulationTotal {
		return &errcode.InsuffisantPopulationError{Got: c.PopulationTotal, Min: minPopulationTotal}
	}
	return nil
}
