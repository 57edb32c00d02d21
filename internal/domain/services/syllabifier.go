package services

import (
	"github.com/sandhi-dev/sandhi/internal/domain/entities"
	"github.com/sandhi-dev/sandhi/internal/domain/values"
)

// Syllabifier assigns syllable indices and mora flags using the
// grammar's nucleus feature and onset/coda templates.
type Syllabifier struct {
	syllabic int
	onsets   [][]entities.Element
	codas    [][]entities.Element
}

// NewSyllabifier creates a syllabifier for the grammar.
func NewSyllabifier(g *entities.Grammar) *Syllabifier {
	t := g.Syllables()
	return &Syllabifier{
		syllabic: g.SyllabicIndex(),
		onsets:   t.Onsets,
		codas:    t.Codas,
	}
}

// Syllabified returns an annotated copy of word.
func (s *Syllabifier) Syllabified(word *entities.Word) *entities.Word {
	out := word.Clone()
	s.Syllabify(out)
	return out
}

// Syllabify recomputes syllable membership of word in place.
//
// Every segment bearing the syllabic feature becomes the nucleus of the
// next syllable. Each nucleus then claims the longest onset template
// matching immediately before it, and afterwards the longest coda
// template matching immediately after it; coda segments are moraic.
// A segment already claimed is unavailable to later searches.
// Unclaimed consonants stay at -1.
func (s *Syllabifier) Syllabify(word *entities.Word) {
	segs := word.Segments
	sylls := make([]int, len(segs))
	moras := make([]bool, len(segs))

	var nuclei []int
	for i, seg := range segs {
		sylls[i] = -1
		if !seg.Boundary && seg.Features[s.syllabic] == values.True {
			sylls[i] = len(nuclei)
			moras[i] = true
			nuclei = append(nuclei, i)
		}
	}

	for _, n := range nuclei {
		if t := s.longest(s.onsets, word, n, true, sylls); t != nil {
			for k, el := range t {
				if !el.Boundary {
					sylls[n-len(t)+k] = sylls[n]
				}
			}
		}
	}

	for _, n := range nuclei {
		if t := s.longest(s.codas, word, n, false, sylls); t != nil {
			for k, el := range t {
				if !el.Boundary {
					sylls[n+1+k] = sylls[n]
					moras[n+1+k] = true
				}
			}
		}
	}

	for i := range segs {
		segs[i].Syllable = sylls[i]
		segs[i].Mora = moras[i]
	}
}

// longest returns the matching template with the most non-boundary
// elements; ties go to the first declared. Nil if none match.
func (s *Syllabifier) longest(templates [][]entities.Element, word *entities.Word, nucleus int, prefix bool, sylls []int) []entities.Element {
	var best []entities.Element
	bestLen := 0
	opts := MatchOptions{Prefix: prefix, SyllableAware: true, Syllables: sylls}
	for _, t := range templates {
		n := contentLen(t)
		if n <= bestLen {
			continue
		}
		if SegmentsMatch(t, word, nucleus, opts) {
			best, bestLen = t, n
		}
	}
	return best
}

func contentLen(elements []entities.Element) int {
	n := 0
	for _, el := range elements {
		if !el.Boundary {
			n++
		}
	}
	return n
}
