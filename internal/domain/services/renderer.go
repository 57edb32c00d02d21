package services

import (
	"strings"

	"github.com/sandhi-dev/sandhi/internal/domain/entities"
)

// SyllableSeparator is placed between syllables by RenderSyllables.
const SyllableSeparator = "."

// Renderer turns segments back into display symbols.
type Renderer struct {
	phonemes []entities.Phoneme
}

// NewRenderer creates a renderer over the inventory's phoneme table.
func NewRenderer(inv *entities.Inventory) *Renderer {
	return &Renderer{phonemes: inv.Phonemes()}
}

// Segment returns the symbol of the phoneme nearest to seg by Hamming
// distance. Ties go to the phoneme declared first. Boundaries render as
// the empty string.
func (r *Renderer) Segment(seg entities.Segment) string {
	if seg.Boundary || len(r.phonemes) == 0 {
		return ""
	}
	best, bestDist := 0, -1
	for i, p := range r.phonemes {
		d := seg.Features.Distance(p.Features)
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
		if d == 0 {
			break
		}
	}
	return r.phonemes[best].Symbol
}

// Render returns the surface string of word.
func (r *Renderer) Render(word *entities.Word) string {
	var b strings.Builder
	for _, seg := range word.Segments {
		b.WriteString(r.Segment(seg))
	}
	return b.String()
}

// RenderSyllables renders word with a separator between adjacent
// segments that belong to different syllables.
func (r *Renderer) RenderSyllables(word *entities.Word) string {
	var b strings.Builder
	prev := -1
	for _, seg := range word.Content() {
		if prev >= 0 && seg.Syllable >= 0 && seg.Syllable != prev {
			b.WriteString(SyllableSeparator)
		}
		b.WriteString(r.Segment(seg))
		if seg.Syllable >= 0 {
			prev = seg.Syllable
		}
	}
	return b.String()
}
