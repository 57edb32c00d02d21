package services

import "github.com/sandhi-dev/sandhi/internal/domain/entities"

// MatchOptions controls how SegmentsMatch reads the candidate window.
type MatchOptions struct {
	// Prefix selects the segments immediately before the pivot;
	// otherwise the segments immediately after it are used.
	Prefix bool
	// SyllableAware adds a syllable constraint to every ordinary element.
	SyllableAware bool
	// Anchored makes a syllable-aware match compare each candidate's
	// syllable against the pivot's syllable plus the element Offset.
	// Without it a syllable-aware candidate must be unassigned.
	Anchored bool
	// Syllables is the syllable snapshot to consult. Nil reads the
	// word's own segments.
	Syllables []int
}

// SegmentsMatch reports whether the window beside pivot satisfies
// elements position by position. Every position needs some alternative
// to match; boundary elements match only word-edge segments and ordinary
// elements never do. A window extending past the word never matches.
func SegmentsMatch(elements []entities.Element, word *entities.Word, pivot int, opts MatchOptions) bool {
	segs := word.Segments
	start := pivot + 1
	if opts.Prefix {
		start = pivot - len(elements)
	}
	if start < 0 || start+len(elements) > len(segs) {
		return false
	}

	syllable := func(i int) int {
		if opts.Syllables != nil {
			return opts.Syllables[i]
		}
		return segs[i].Syllable
	}

	anchor := -1
	if opts.SyllableAware && opts.Anchored {
		if pivot < 0 || pivot >= len(segs) {
			return false
		}
		// An unsyllabified pivot anchors at -1, so Offset 1 reaches syllable 0.
		anchor = syllable(pivot)
	}

	for k, el := range elements {
		pos := start + k
		seg := segs[pos]
		if el.Boundary {
			if !seg.Boundary {
				return false
			}
			continue
		}
		if seg.Boundary || !el.Alternatives.Matches(seg.Features) {
			return false
		}
		if !opts.SyllableAware {
			continue
		}
		if opts.Anchored {
			if syllable(pos) != anchor+el.Offset {
				return false
			}
		} else if syllable(pos) >= 0 {
			return false
		}
	}
	return true
}
