// Package facade is the user-facing handle to create, configure, run, and
// extract the best cell from a Lab, grounded on original_source's
// genalgo.rs Genalgo<T> (create_algo/load_json_config/start_algo/
// register_dataset/receive_data) generalized beyond its single-cell-type
// specialization using Go generics, and on cmd/evolve/main.go's CLI
// wiring style.
package facade

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aldermoss/genlab/algo"
	"github.com/aldermoss/genlab/cell"
	"github.com/aldermoss/genlab/dataset"
	"github.com/aldermoss/genlab/errcode"
	"github.com/aldermoss/genlab/lab"
)

// Facade is the host-facing entry point: create-lab, register-algo,
// configure-algo, apply-map, push/get-special-data, register-dataset,
// set-output-algorithm, start (spec §6).
type Facade[C cell.Cell] struct {
	Lab *lab.Lab[C]
}

// New creates a Lab behind a Facade.
func New[C cell.Cell](cfg lab.LabConfig, seed int64) *Facade[C] {
	return &Facade[C]{Lab: lab.NewLab[C](cfg, seed)}
}

// RegisterAlgo adds an algo implementation, returning its AlgoID.
func (f *Facade[C]) RegisterAlgo(impl algo.Algo[C]) algo.AlgoID {
	return f.Lab.RegisterNewAlgo(impl)
}

// ConfigureAlgo decodes a JSON AlgoConfiguration and applies it to one
// already-registered algo.
func (f *Facade[C]) ConfigureAlgo(id algo.AlgoID, cfgJSON json.RawMessage) error {
	var cfg algo.AlgoConfiguration
	if err := json.Unmarshal(cfgJSON, &cfg); err != nil {
		return &errcode.JsonSerializationError{Inner: err}
	}
	return f.Lab.ConfigureAlgo(id, cfg)
}

// ApplyMap decodes a JSON list of AlgoConfiguration (typically produced by
// labmap.Build) and applies it across every registered algo at once.
func (f *Facade[C]) ApplyMap(listJSON json.RawMessage) error {
	var list []algo.AlgoConfiguration
	if err := json.Unmarshal(listJSON, &list); err != nil {
		return &errcode.ValidationError{Label: errcode.CodeMapValidation}
	}
	return f.Lab.ApplyMap(list)
}

// PushSpecialData sends a host command to one algo's side-channel.
func (f *Facade[C]) PushSpecialData(id algo.AlgoID, valueJSON json.RawMessage) error {
	return f.Lab.RecvSpecialData(id, valueJSON)
}

// GetSpecialData queries one algo's side-channel, returning its JSON
// response.
func (f *Facade[C]) GetSpecialData(id algo.AlgoID, queryJSON json.RawMessage) (json.RawMessage, error) {
	return f.Lab.SendSpecialData(id, queryJSON)
}

// RegisterDataset attaches a dataset handler under id.
func (f *Facade[C]) RegisterDataset(id string, handler dataset.Handler) {
	f.Lab.RegisterDataset(id, handler)
}

// RemoveDataset detaches a previously registered dataset.
func (f *Facade[C]) RemoveDataset(id string) error {
	return f.Lab.RemoveDataset(id)
}

// SetOutputAlgorithm designates which algo's best cell Start returns.
func (f *Facade[C]) SetOutputAlgorithm(id algo.AlgoID) error {
	return f.Lab.SetOutputAlgorithm(id)
}

// Start runs n generations and returns the out_algo's best genome and
// score.
func (f *Facade[C]) Start(n int) (cell.Genome, cell.Score, error) {
	best, err := f.Lab.Start(n)
	if err != nil {
		return nil, 0, err
	}
	return best.Genome, best.Score, nil
}

// ErrorResponse is the structured JSON error envelope of spec §6:
// { error, errcode, add_data }.
type ErrorResponse struct {
	Error   string `json:"error"`
	Errcode string `json:"errcode,omitempty"`
	AddData any    `json:"add_data,omitempty"`
}

// ToErrorResponse maps an engine error to its stable JSON envelope. Errors
// without a dedicated stable code (CodeError, SizeError, NotSetError, ...)
// carry an empty Errcode; only the host-surface codes named in spec §6
// (LMV1, BSD1, BSD2, BSDExO1) are populated, matching the ValidationError
// Label values the engine already assigns for those specific failures.
func ToErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}

	var ve *errcode.ValidationError
	if errors.As(err, &ve) {
		switch ve.Label {
		case errcode.CodeMapValidation, errcode.CodeUnknownMethodField,
			errcode.CodeUnknownMethodName, errcode.CodeMissingScopeField:
			resp.Errcode = ve.Label
		}
	}
	return resp
}

// MarshalError is a convenience for hosts that want the envelope as bytes
// directly, mirroring genalgo.rs's pattern of returning serialized error
// payloads across the FFI boundary.
func MarshalError(err error) ([]byte, error) {
	data, marshalErr := json.Marshal(ToErrorResponse(err))
	if marshalErr != nil {
		return nil, fmt.Errorf("facade: marshaling error response: %w", marshalErr)
	}
	return data, nil
}
