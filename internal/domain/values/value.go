// Package values contains domain value objects that encapsulate
// primitive types with validation and such.
package values

import "fmt"

// Value is the ternary value of a single feature.
// The zero value is Unconstrained so that an unset position never
// constrains a match.
type Value uint8

const (
	// Unconstrained means the feature is not checked. Only meaningful in
	// patterns; in a segment it marks a value the grammar left undefined.
	Unconstrained Value = iota
	// True is a positively specified feature (+feat)
	True
	// False is a negatively specified feature (-feat)
	False
)

// ParseSign maps a feature sign to its value.
func ParseSign(sign byte) (Value, error) {
	switch sign {
	case '+':
		return True, nil
	case '-':
		return False, nil
	default:
		return Unconstrained, fmt.Errorf("invalid feature sign %q (expected '+' or '-')", sign)
	}
}

// IsBound returns true for True and False.
func (v Value) IsBound() bool {
	return v == True || v == False
}

// String returns +, - or 0.
func (v Value) String() string {
	switch v {
	case True:
		return "+"
	case False:
		return "-"
	default:
		return "0"
	}
}

// MarshalText implements encoding.TextMarshaler so vectors render compactly
// in JSON and YAML output.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
