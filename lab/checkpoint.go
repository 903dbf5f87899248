package lab

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aldermoss/genlab/algo"
	"github.com/aldermoss/genlab/cell"
)

// CheckpointVersion is the current checkpoint format version (spec §6
// "Persisted state": version field is reserved).
const CheckpointVersion = "1.0"

// RunCheckpoint is the serializable snapshot of a Lab run: LabConfig, every
// algo's AlgoConfiguration, its best-genome buffer, and the CellData of its
// first current cell, grounded on the teacher's CheckpointData. No
// AlgoResult is kept: after Start that first cell belongs to the rebuilt,
// unscored population (score 0), not to a sorted ranking.
type RunCheckpoint struct {
	Config     LabConfig             `json:"config"`
	Generation int                   `json:"generation"`
	Algos      []AlgoCheckpoint      `json:"algos"`
	Timestamp  time.Time             `json:"timestamp"`
	RNGSeed    int64                 `json:"rng_seed"`
	Version    string                `json:"version"`
}

// AlgoCheckpoint captures one registered algo's durable state.
type AlgoCheckpoint struct {
	Cfg        algo.AlgoConfiguration `json:"cfg"`
	BestGenome cell.Genome            `json:"best_genome"`
	BestCell   cell.CellData          `json:"best_cell,omitempty"`
}

// Checkpoint builds a RunCheckpoint from the Lab's current state.
func (l *Lab[C]) Checkpoint() RunCheckpoint {
	algos := make([]AlgoCheckpoint, len(l.algos))
	for i, ra := range l.algos {
		ac := AlgoCheckpoint{Cfg: ra.cfg, BestGenome: ra.bestGenome.Clone()}
		if len(ra.cells) > 0 {
			ac.BestCell = ra.cells[0].Data()
		}
		algos[i] = ac
	}
	return RunCheckpoint{
		Config:     l.Config,
		Generation: l.generation,
		Algos:      algos,
		Timestamp:  time.Now(),
		RNGSeed:    l.seed,
		Version:    CheckpointVersion,
	}
}

// SaveCheckpoint writes the current Lab state to path, via a temp file plus
// atomic rename so a crash mid-write never leaves a truncated checkpoint.
func (l *Lab[C]) SaveCheckpoint(path string) error {
	checkpoint := l.Checkpoint()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create checkpoint directory: %w", err)
	}

	data, err := json.MarshalIndent(checkpoint, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to finalize checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint reads a RunCheckpoint from path.
func LoadCheckpoint(path string) (*RunCheckpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}
	var checkpoint RunCheckpoint
	if err := json.Unmarshal(data, &checkpoint); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkpoint: %w", err)
	}
	return &checkpoint, nil
}

// RestoreFromCheckpoint reinstalls AlgoConfigurations and best genomes from
// a checkpoint onto an already-registered set of algos (registration order
// and count must match what produced the checkpoint).
func (l *Lab[C]) RestoreFromCheckpoint(checkpoint *RunCheckpoint) error {
	if checkpoint == nil {
		return fmt.Errorf("nil checkpoint")
	}
	if len(checkpoint.Algos) != len(l.algos) {
		return fmt.Errorf("checkpoint algo count %d does not match registered count %d", len(checkpoint.Algos), len(l.algos))
	}
	l.Config = checkpoint.Config
	l.generation = checkpoint.Generation
	for i, ac := range checkpoint.Algos {
		l.algos[i].cfg = ac.Cfg
		l.algos[i].bestGenome = ac.BestGenome.Clone()
	}
	l.outAlgoSet = false
	return nil
}
