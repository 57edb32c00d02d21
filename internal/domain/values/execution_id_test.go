package values

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExecutionID(t *testing.T) {
	id1 := NewExecutionID()
	id2 := NewExecutionID()

	assert.False(t, id1.IsZero())
	assert.False(t, id1.Equals(id2), "every batch run gets its own ID")
	assert.True(t, id1.Equals(FromUUID(id1.UUID())))
	assert.True(t, ExecutionID{}.IsZero())
}

func TestParseExecutionID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"123e4567-e89b-12d3-a456-426614174000", false},
		{"", true},
		{"batch-1", true},
		{"123e4567", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, err := ParseExecutionID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid execution ID")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, id.String())
		})
	}
}

func TestExecutionID_TextRoundTrip(t *testing.T) {
	type report struct {
		ExecutionID ExecutionID `json:"execution_id"`
	}
	original := report{ExecutionID: FromUUID(uuid.MustParse("123e4567-e89b-12d3-a456-426614174000"))}

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.JSONEq(t, `{"execution_id":"123e4567-e89b-12d3-a456-426614174000"}`, string(data))

	var decoded report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.ExecutionID.Equals(decoded.ExecutionID))

	assert.Error(t, json.Unmarshal([]byte(`{"execution_id":"nope"}`), &decoded))
}
