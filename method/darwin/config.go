// Package darwin implements the Darwin variation method: a hybrid
// exploitation/exploration operator that mutates and crosses genomes near
// the current elites while reserving a share of the population for
// normal-distributed and uniform exploration. The upper bound of that share
// shrinks toward its minimum the longer the best genome stays unchanged.
package darwin

import (
	"encoding/json"

	"github.com/aldermoss/genlab/errcode"
)

// Config is Darwin's own configuration payload (spec §4.3).
type Config struct {
	GeneRerollProba        float64 `json:"gene_reroll_proba"`
	ExplorationScopeEpochMax int   `json:"exploration_scope_epoch_max"`
}

// DefaultConfig returns Darwin's documented defaults.
func DefaultConfig() Config {
	return Config{GeneRerollProba: 0.5, ExplorationScopeEpochMax: 3}
}

// Validate fails when exploration_scope_epoch_max == 0 or
// gene_reroll_proba is outside [0,1] (spec §4.3 validate_config).
func (c Config) Validate() error {
	if c.ExplorationScopeEpochMax == 0 {
		return &errcode.ValidationError{Label: "darwin.exploration_scope_epoch_max"}
	}
	if c.GeneRerollProba < 0 || c.GeneRerollProba > 1 {
		return &errcode.ValidationError{Label: "darwin.gene_reroll_proba"}
	}
	return nil
}

func parseConfig(options json.RawMessage) (Config, error) {
	cfg := DefaultConfig()
	if len(options) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(options, &cfg); err != nil {
		return Config{}, &errcode.JsonSerializationError{Inner: err}
	}
	return cfg, nil
}

const (
	minExplo = 0.15
	maxExplo = 0.85
)
