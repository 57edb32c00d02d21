package services

import "github.com/sandhi-dev/sandhi/internal/domain/entities"

// RewriteAction is what one rule invocation does at one index.
type RewriteAction int

const (
	ActionNone        RewriteAction = iota
	ActionModify                    // features overwritten in place
	ActionDelete                    // segment removed after the scan
	ActionInsertAfter               // new segment placed after this index
)

// ApplyRule applies rule to word in place and reports whether any index
// was acted on.
//
// Every index is scanned left to right, boundaries included. Feature
// changes land immediately, so later indices see them. Deletions and
// insertions are recorded per index and applied after the scan:
// deleted segments are dropped and each insertion point receives a
// fresh copy of the inserted phoneme.
func ApplyRule(rule *entities.Rule, word *entities.Word) bool {
	actions := ScanRule(rule, word)

	changed := false
	structural := false
	for _, a := range actions {
		switch a {
		case ActionNone:
		case ActionModify:
			changed = true
		default:
			changed = true
			structural = true
		}
	}
	if structural {
		rewrite(rule, word, actions)
	}
	return changed
}

// ScanRule computes the action at every index. Modifications are applied
// to word as they are found; deletions and insertions are only reported.
func ScanRule(rule *entities.Rule, word *entities.Word) []RewriteAction {
	actions := make([]RewriteAction, len(word.Segments))
	for i := range word.Segments {
		if !matchesTarget(rule, word, i) || !matchesEnvironment(rule, word, i) {
			continue
		}
		switch {
		case rule.Change.Kind == entities.ChangeDelete:
			actions[i] = ActionDelete
		case rule.IsInsertion():
			actions[i] = ActionInsertAfter
		default:
			word.Segments[i].Features.Apply(rule.Change.Delta)
			actions[i] = ActionModify
		}
	}
	return actions
}

// matchesTarget reports whether index i is a candidate for the rule.
// Insertion points are the gaps from just after the left padding to just
// before the right padding.
func matchesTarget(rule *entities.Rule, word *entities.Word, i int) bool {
	if rule.IsInsertion() {
		return i >= entities.Padding-1 && i <= len(word.Segments)-entities.Padding-1
	}
	seg := word.Segments[i]
	return !seg.Boundary && rule.Target.Matches(seg.Features)
}

// matchesEnvironment checks each declared side. The left side of an
// insertion is anchored one index later because there is no target
// segment to stand on.
func matchesEnvironment(rule *entities.Rule, word *entities.Word, i int) bool {
	if !rule.HasEnvironment() {
		return true
	}
	if !rule.Pre.IsAbsent() {
		pivot := i
		if rule.IsInsertion() {
			pivot = i + 1
		}
		opts := MatchOptions{Prefix: true, SyllableAware: rule.Pre.SyllableAware, Anchored: true}
		if !SegmentsMatch(rule.Pre.Elements, word, pivot, opts) {
			return false
		}
	}
	if !rule.Post.IsAbsent() {
		opts := MatchOptions{SyllableAware: rule.Post.SyllableAware, Anchored: true}
		if !SegmentsMatch(rule.Post.Elements, word, i, opts) {
			return false
		}
	}
	return true
}

func rewrite(rule *entities.Rule, word *entities.Word, actions []RewriteAction) {
	out := make([]entities.Segment, 0, len(word.Segments)+1)
	for i, seg := range word.Segments {
		switch actions[i] {
		case ActionDelete:
			continue
		case ActionInsertAfter:
			out = append(out, seg, entities.NewSegment(rule.Change.Insert.Symbol, rule.Change.Insert.Features))
		default:
			out = append(out, seg)
		}
	}
	word.Segments = out
}
