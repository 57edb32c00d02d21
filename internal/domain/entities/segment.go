package entities

import "github.com/sandhi-dev/sandhi/internal/domain/values"

// Padding is the number of boundary segments on each side of a Word.
// It bounds how far an environment may look past the word edge.
const Padding = 2

// BoundarySymbol is the rule and template notation for a word edge.
const BoundarySymbol = "#"

// Segment is one sound unit of a Word.
type Segment struct {
	Label    string
	Features values.FeatureVector
	Syllable int // -1 when unassigned
	Mora     bool
	Boundary bool
}

// NewSegment returns an unsyllabified segment owning a copy of features.
func NewSegment(label string, features values.FeatureVector) Segment {
	return Segment{
		Label:    label,
		Features: features.Clone(),
		Syllable: -1,
	}
}

// NewBoundarySegment returns a word-edge segment of the given width.
func NewBoundarySegment(width int) Segment {
	return Segment{
		Label:    BoundarySymbol,
		Features: values.NewFeatureVector(width),
		Syllable: -1,
		Boundary: true,
	}
}

// Clone returns a deep copy.
func (s Segment) Clone() Segment {
	s.Features = s.Features.Clone()
	return s
}

// Word is the segment sequence of one input, padded with Padding
// boundary segments on each side.
type Word struct {
	Segments []Segment
}

// NewWord pads content with boundary segments. Content segments are copied.
func NewWord(content []Segment, width int) *Word {
	segs := make([]Segment, 0, len(content)+2*Padding)
	for i := 0; i < Padding; i++ {
		segs = append(segs, NewBoundarySegment(width))
	}
	for _, s := range content {
		segs = append(segs, s.Clone())
	}
	for i := 0; i < Padding; i++ {
		segs = append(segs, NewBoundarySegment(width))
	}
	return &Word{Segments: segs}
}

// Clone returns a deep copy of the word.
func (w *Word) Clone() *Word {
	segs := make([]Segment, len(w.Segments))
	for i, s := range w.Segments {
		segs[i] = s.Clone()
	}
	return &Word{Segments: segs}
}

// Len returns the number of non-boundary segments.
func (w *Word) Len() int {
	n := 0
	for _, s := range w.Segments {
		if !s.Boundary {
			n++
		}
	}
	return n
}

// Content returns the non-boundary segments in order. The returned
// segments share storage with the word.
func (w *Word) Content() []Segment {
	out := make([]Segment, 0, len(w.Segments))
	for _, s := range w.Segments {
		if !s.Boundary {
			out = append(out, s)
		}
	}
	return out
}

// SyllableIndices returns a snapshot of every segment's syllable index.
func (w *Word) SyllableIndices() []int {
	out := make([]int, len(w.Segments))
	for i, s := range w.Segments {
		out[i] = s.Syllable
	}
	return out
}

// Moras returns a snapshot of every segment's mora flag.
func (w *Word) Moras() []bool {
	out := make([]bool, len(w.Segments))
	for i, s := range w.Segments {
		out[i] = s.Mora
	}
	return out
}

// Equal reports whether both words have identical segments, including
// syllable and mora annotations.
func (w *Word) Equal(other *Word) bool {
	if len(w.Segments) != len(other.Segments) {
		return false
	}
	for i := range w.Segments {
		a, b := w.Segments[i], other.Segments[i]
		if a.Label != b.Label || a.Syllable != b.Syllable || a.Mora != b.Mora ||
			a.Boundary != b.Boundary || !a.Features.Equal(b.Features) {
			return false
		}
	}
	return true
}
