package values

import "strings"

// FeatureVector holds one Value per declared feature, indexed by the
// feature's position in the grammar's feature list.
type FeatureVector []Value

// NewFeatureVector returns a vector of the given width with every
// feature Unconstrained.
func NewFeatureVector(width int) FeatureVector {
	return make(FeatureVector, width)
}

// Matches reports whether v satisfies pattern: every bound value in the
// pattern must equal the value in v. Unconstrained pattern entries impose
// no constraint. Vectors of different width never match.
func (v FeatureVector) Matches(pattern FeatureVector) bool {
	if len(v) != len(pattern) {
		return false
	}
	for i, want := range pattern {
		if want == Unconstrained {
			continue
		}
		if v[i] != want {
			return false
		}
	}
	return true
}

// Apply overwrites every position where delta is bound and leaves the
// remaining positions untouched.
func (v FeatureVector) Apply(delta FeatureVector) {
	for i, d := range delta {
		if i >= len(v) {
			return
		}
		if d.IsBound() {
			v[i] = d
		}
	}
}

// Distance counts the positions at which v and other differ.
// Positions beyond the shorter vector count as differences.
func (v FeatureVector) Distance(other FeatureVector) int {
	n, longest := len(v), len(other)
	if longest < n {
		n, longest = longest, n
	}
	d := longest - n
	for i := 0; i < n; i++ {
		if v[i] != other[i] {
			d++
		}
	}
	return d
}

// Clone returns an independent copy.
func (v FeatureVector) Clone() FeatureVector {
	if v == nil {
		return nil
	}
	out := make(FeatureVector, len(v))
	copy(out, v)
	return out
}

// Equal reports element-wise equality.
func (v FeatureVector) Equal(other FeatureVector) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}

// IsUnconstrained returns true if no position is bound.
func (v FeatureVector) IsUnconstrained() bool {
	for _, val := range v {
		if val.IsBound() {
			return false
		}
	}
	return true
}

// BoundCount returns the number of bound positions.
func (v FeatureVector) BoundCount() int {
	n := 0
	for _, val := range v {
		if val.IsBound() {
			n++
		}
	}
	return n
}

// Format renders the bound positions as "+name -name" using the given
// feature names.
func (v FeatureVector) Format(names []string) string {
	parts := make([]string, 0, len(v))
	for i, val := range v {
		if !val.IsBound() || i >= len(names) {
			continue
		}
		parts = append(parts, val.String()+names[i])
	}
	return "[" + strings.Join(parts, " ") + "]"
}
