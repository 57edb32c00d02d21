package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "no details",
			err:  NewValidationError("filters", "bad expression"),
			want: "validation failed: filters: bad expression",
		},
		{
			name: "one detail",
			err:  NewValidationError("grammar", "compilation failed", "unknown feature"),
			want: "validation failed: grammar: compilation failed: unknown feature",
		},
		{
			name: "several details",
			err:  NewValidationError("grammar", "schema", "a", "b"),
			want: "validation failed: grammar: schema (2 issues)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrappingErrors_Unwrap(t *testing.T) {
	cause := errors.New("boom")

	inputErr := NewInputError("xyz", cause)
	assert.ErrorIs(t, inputErr, cause)
	assert.Equal(t, `invalid input "xyz": boom`, inputErr.Error())

	execErr := NewExecutionError("toy", "timed out", cause)
	assert.ErrorIs(t, execErr, cause)
	assert.Equal(t, "derivation failed for grammar toy: timed out: boom", execErr.Error())
	assert.Equal(t, "derivation failed for grammar toy: timed out", NewExecutionError("toy", "timed out", nil).Error())

	cfgErr := NewConfigurationError("output", "cannot create file", cause)
	assert.ErrorIs(t, cfgErr, cause)
	assert.Equal(t, "configuration error (output): cannot create file: boom", cfgErr.Error())
}
