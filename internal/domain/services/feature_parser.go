package services

import (
	"fmt"
	"strings"

	"github.com/sandhi-dev/sandhi/internal/domain/entities"
	"github.com/sandhi-dev/sandhi/internal/domain/values"
)

// ParseFeatureSpec resolves a "+f -g" specification against the
// inventory's features. Explicitly signed features take that value;
// features not mentioned stay Unconstrained. Surrounding brackets are
// stripped. The returned error carries no grammar context; callers wrap it.
func ParseFeatureSpec(inv *entities.Inventory, spec string) (values.FeatureVector, error) {
	spec = strings.TrimSpace(spec)
	spec = strings.TrimPrefix(spec, "[")
	spec = strings.TrimSuffix(spec, "]")

	fv := values.NewFeatureVector(inv.Width())
	seen := make(map[int]bool)
	for _, tok := range strings.FieldsFunc(spec, isFeatureSeparator) {
		sign, err := values.ParseSign(tok[0])
		if err != nil {
			return nil, fmt.Errorf("feature %q must start with '+' or '-'", tok)
		}
		name := tok[1:]
		idx, ok := inv.FeatureIndex(name)
		if !ok {
			return nil, fmt.Errorf("unknown feature %q", name)
		}
		if seen[idx] && fv[idx] != sign {
			return nil, fmt.Errorf("feature %q specified with both signs", name)
		}
		seen[idx] = true
		fv[idx] = sign
	}
	return fv, nil
}

func isFeatureSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == ','
}
