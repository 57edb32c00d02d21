package values

import "fmt"

// Status represents the outcome of deriving one input word.
type Status string

const (
	// StatusDerived indicates the word was derived and no expected form was given
	StatusDerived Status = "derived"
	// StatusPass indicates the surface form equals the expected form
	StatusPass Status = "pass"
	// StatusFail indicates the surface form differs from the expected form
	StatusFail Status = "fail"
	// StatusError indicates the input was rejected before derivation
	StatusError Status = "error"
)

// Precedence returns the numeric precedence of this status.
// Higher values indicate higher priority when a batch is summarised.
//
// Precedence: Fail (3) > Error (2) > Derived (1) > Pass (0)
func (s Status) Precedence() int {
	switch s {
	case StatusFail:
		return 3
	case StatusError:
		return 2
	case StatusDerived:
		return 1
	case StatusPass:
		return 0
	default:
		return -1
	}
}

// IsFailure returns true if this status represents a failure or error
func (s Status) IsFailure() bool {
	return s == StatusFail || s == StatusError
}

// IsSuccess returns true if the word derived without a mismatch
func (s Status) IsSuccess() bool {
	return s == StatusPass || s == StatusDerived
}

// Validate returns an error if the status value is invalid
func (s Status) Validate() error {
	switch s {
	case StatusDerived, StatusPass, StatusFail, StatusError:
		return nil
	default:
		return fmt.Errorf("invalid status: %s", s)
	}
}
