package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobPostingInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   JobPostingInput
		wantErr string
	}{
		{"text only", JobPostingInput{Text: "Backendutvecklare"}, ""},
		{"url only", JobPostingInput{URL: "https://example.com/jobb"}, ""},
		{"neither", JobPostingInput{}, MsgJobPostingMissingSource},
		{"both", JobPostingInput{Text: "a", URL: "https://example.com"}, MsgJobPostingBothSources},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestKeywordRequestTopN(t *testing.T) {
	var req KeywordRequest
	require.NoError(t, json.Unmarshal([]byte(`{"job_text":"a"}`), &req))
	assert.Equal(t, 30, req.TopNOrDefault())

	require.NoError(t, json.Unmarshal([]byte(`{"top_n":5}`), &req))
	assert.Equal(t, 5, req.TopNOrDefault())

	require.NoError(t, json.Unmarshal([]byte(`{"top_n":0}`), &req))
	assert.Equal(t, 0, req.TopNOrDefault())
}

func TestErrorResponseShape(t *testing.T) {
	data, err := json.Marshal(ErrorResponse{Detail: "Inget master CV hittades", Error: "NOT_FOUND"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"detail":"Inget master CV hittades","error":"NOT_FOUND"}`, string(data))
}
