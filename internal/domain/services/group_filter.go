package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/sandhi-dev/sandhi/internal/domain/entities"
)

// GroupEnv defines the variables available during filter expression evaluation.
type GroupEnv struct {
	Name  string `expr:"name"`
	Index int    `expr:"index"`
	Rules int    `expr:"rules"`
}

// GroupFilter selects which rule groups run during a derivation.
// Filtering never reorders groups.
type GroupFilter struct {
	// Exclusive mode: only include specified groups
	exclusiveGroups map[string]bool

	// Exclusion filters
	excludeGroups map[string]bool

	// Advanced filtering
	filterProgram *vm.Program
}

// NewGroupFilter initializes a new empty filter.
func NewGroupFilter() *GroupFilter {
	return &GroupFilter{
		exclusiveGroups: make(map[string]bool),
		excludeGroups:   make(map[string]bool),
	}
}

// CompileGroupFilter compiles a boolean expression over GroupEnv.
func CompileGroupFilter(expression string) (*vm.Program, error) {
	program, err := expr.Compile(expression, expr.Env(GroupEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return program, nil
}

// WithExclusiveGroups restricts execution to ONLY the named groups.
func (f *GroupFilter) WithExclusiveGroups(names []string) *GroupFilter {
	f.exclusiveGroups = toSet(names)
	return f
}

// WithExcludedGroups excludes the named groups.
func (f *GroupFilter) WithExcludedGroups(names []string) *GroupFilter {
	f.excludeGroups = toSet(names)
	return f
}

// WithFilterExpression applies a compiled Expr program for advanced filtering.
func (f *GroupFilter) WithFilterExpression(program *vm.Program) *GroupFilter {
	f.filterProgram = program
	return f
}

// IsEmpty returns true if the filter lets every group run.
func (f *GroupFilter) IsEmpty() bool {
	return f == nil || (len(f.exclusiveGroups) == 0 && len(f.excludeGroups) == 0 && f.filterProgram == nil)
}

// ShouldRun evaluates whether the group at index matches the filter criteria.
// It returns true if the group should run, along with a reason if skipped.
func (f *GroupFilter) ShouldRun(group entities.RuleGroup, index int) (bool, string) {
	if f.IsEmpty() {
		return true, ""
	}

	var specs []GroupSpecification
	if len(f.exclusiveGroups) > 0 {
		specs = append(specs, NewExclusiveGroupsSpecification(f.exclusiveGroups))
	}
	if len(f.excludeGroups) > 0 {
		specs = append(specs, NewExcludedGroupsSpecification(f.excludeGroups))
	}
	if f.filterProgram != nil {
		specs = append(specs, NewExpressionSpecification(f.filterProgram))
	}

	// Combine all criteria with AND
	return NewAndSpecification(specs...).IsSatisfiedBy(group, index)
}

// toSet converts a slice to a map (set)
func toSet(slice []string) map[string]bool {
	s := make(map[string]bool, len(slice))
	for _, item := range slice {
		s[item] = true
	}
	return s
}
