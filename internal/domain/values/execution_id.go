package values

import (
	"fmt"

	"github.com/google/uuid"
)

// ExecutionID uniquely identifies one batch derivation run so that
// formatted reports from the same run can be correlated.
type ExecutionID struct {
	value uuid.UUID
}

// NewExecutionID creates a new random execution ID
func NewExecutionID() ExecutionID {
	return ExecutionID{value: uuid.New()}
}

// ParseExecutionID parses a string into an ExecutionID
func ParseExecutionID(s string) (ExecutionID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ExecutionID{}, fmt.Errorf("invalid execution ID: %w", err)
	}
	return ExecutionID{value: id}, nil
}

// FromUUID creates an ExecutionID from a uuid.UUID
func FromUUID(id uuid.UUID) ExecutionID {
	return ExecutionID{value: id}
}

// String returns the string representation
func (e ExecutionID) String() string {
	return e.value.String()
}

// UUID returns the underlying uuid.UUID
func (e ExecutionID) UUID() uuid.UUID {
	return e.value
}

// IsZero returns true if this is the zero value
func (e ExecutionID) IsZero() bool {
	return e.value == uuid.Nil
}

// Equals checks if two ExecutionIDs are equal
func (e ExecutionID) Equals(other ExecutionID) bool {
	return e.value == other.value
}

// MarshalText implements encoding.TextMarshaler (used by JSON and YAML output)
func (e ExecutionID) MarshalText() ([]byte, error) {
	return []byte(e.value.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (e *ExecutionID) UnmarshalText(data []byte) error {
	id, err := ParseExecutionID(string(data))
	if err != nil {
		return err
	}
	*e = id
	return nil
}
