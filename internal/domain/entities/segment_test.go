package entities

import (
	"testing"

	"github.com/sandhi-dev/sandhi/internal/domain/values"
	"github.com/stretchr/testify/assert"
)

func TestNewSegment_CopiesFeatures(t *testing.T) {
	fv := values.FeatureVector{T, F}
	s := NewSegment("a", fv)
	fv[0] = F

	assert.Equal(t, T, s.Features[0])
	assert.Equal(t, -1, s.Syllable)
	assert.False(t, s.Boundary)
}

func TestWord_Clone(t *testing.T) {
	w := NewWord([]Segment{NewSegment("a", values.FeatureVector{T, F})}, 2)
	c := w.Clone()
	c.Segments[Padding].Features[1] = T
	c.Segments[Padding].Syllable = 0

	assert.Equal(t, F, w.Segments[Padding].Features[1])
	assert.Equal(t, -1, w.Segments[Padding].Syllable)
	assert.False(t, w.Equal(c))
	assert.True(t, w.Equal(w.Clone()))
}

func TestWord_Content(t *testing.T) {
	w := NewWord([]Segment{
		NewSegment("a", values.FeatureVector{T}),
		NewSegment("t", values.FeatureVector{F}),
	}, 1)

	content := w.Content()
	assert.Len(t, content, 2)
	assert.Equal(t, "a", content[0].Label)
	assert.Equal(t, 2, w.Len())
	assert.Equal(t, []int{-1, -1, -1, -1, -1, -1}, w.SyllableIndices())
	assert.Len(t, w.Moras(), 6)
}

func TestPattern_Matches(t *testing.T) {
	p := Pattern{{T, values.Unconstrained}, {F, T}}

	assert.True(t, p.Matches(values.FeatureVector{T, F}))
	assert.True(t, p.Matches(values.FeatureVector{F, T}))
	assert.False(t, p.Matches(values.FeatureVector{F, F}))
	assert.False(t, Pattern{}.Matches(values.FeatureVector{T, T}))
}

func TestRule_HasEnvironment(t *testing.T) {
	r := Rule{}
	assert.False(t, r.HasEnvironment())

	r.Post = Environment{Elements: []Element{{Boundary: true}}}
	assert.True(t, r.HasEnvironment())
	assert.True(t, r.Pre.IsAbsent())
	assert.False(t, r.IsInsertion())
	assert.Equal(t, "delete", ChangeDelete.String())
}
