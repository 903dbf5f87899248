package facade

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aldermoss/genlab/algo"
	"github.com/aldermoss/genlab/benchmarks"
	"github.com/aldermoss/genlab/dataset"
	"github.com/aldermoss/genlab/errcode"
	"github.com/aldermoss/genlab/lab"
)

func newTestFacade(t *testing.T) (*Facade[*benchmarks.Cell], algo.AlgoID) {
	t.Helper()
	f := New[*benchmarks.Cell](lab.LabConfig{PopulationTotal: 100, EliteRatio: 0.1, MaximizeScore: false}, 3)
	fnAlgo, err := benchmarks.NewFunctionAlgo("spherical", 3, -5, 5)
	require.NoError(t, err)
	id := f.RegisterAlgo(fnAlgo)
	return f, id
}

func TestFacadeConfigureAlgoAndStart(t *testing.T) {
	f, id := newTestFacade(t)
	cfgJSON, _ := json.Marshal(algo.AlgoConfiguration{ID: "algo-0", Method: "Darwin", Population: algo.WeightOfTotal(1.0)})
	require.NoError(t, f.ConfigureAlgo(id, cfgJSON))
	require.NoError(t, f.SetOutputAlgorithm(id))
	f.RegisterDataset("ticks", dataset.NewEmpty(1))

	genome, _, err := f.Start(3)
	require.NoError(t, err)
	assert.Len(t, genome, 3)
}

func TestFacadeApplyMapInvalidJSONReportsMapValidationCode(t *testing.T) {
	f, _ := newTestFacade(t)
	err := f.ApplyMap(json.RawMessage(`not json`))
	resp := ToErrorResponse(err)
	assert.Equal(t, errcode.CodeMapValidation, resp.Errcode)
}

func TestFacadeConfigureAlgoInvalidJSONWrapsJsonSerializationError(t *testing.T) {
	f, id := newTestFacade(t)
	err := f.ConfigureAlgo(id, json.RawMessage(`{`))
	require.Error(t, err)
	assert.IsType(t, &errcode.JsonSerializationError{}, err)
}

func TestFacadeRegisterAndRemoveDataset(t *testing.T) {
	f, _ := newTestFacade(t)
	f.RegisterDataset("ticks", dataset.NewEmpty(1))
	assert.NoError(t, f.RemoveDataset("ticks"))
	assert.Error(t, f.RemoveDataset("ticks"))
}

func TestToErrorResponseLeavesUnmappedErrorsCodeless(t *testing.T) {
	resp := ToErrorResponse(&errcode.CodeError{Label: "lab: internal invariant"})
	assert.Empty(t, resp.Errcode)
	assert.NotEmpty(t, resp.Error)
}

func TestMarshalErrorProducesValidJSONEnvelope(t *testing.T) {
	data, err := MarshalError(&errcode.ValidationError{Label: errcode.CodeUnknownMethodName})
	require.NoError(t, err)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, errcode.CodeUnknownMethodName, resp.Errcode)
}

func TestFacadeSendAndPushSpecialData(t *testing.T) {
	f, id := newTestFacade(t)
	query, _ := json.Marshal(map[string]any{"method": "expected_optimum", "scope": []float64{-5, 5}})
	out, err := f.GetSpecialData(id, query)
	require.NoError(t, err)

	var resp struct {
		Result []float64 `json:"result"`
	}
	require.NoError(t, json.Unmarshal(out, &resp))
	assert.Len(t, resp.Result, 3)

	cmd, _ := json.Marshal(map[string]any{"mathfct": "schwefel"})
	assert.NoError(t, f.PushSpecialData(id, cmd))
}
