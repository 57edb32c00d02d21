package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/sandhi-dev/sandhi/internal/domain/entities"
)

// GroupSpecification defines a condition that a rule group must meet.
type GroupSpecification interface {
	// IsSatisfiedBy checks if the group meets the specification.
	// Returns true if satisfied, along with a reason if not (or empty if satisfied).
	IsSatisfiedBy(group entities.RuleGroup, index int) (bool, string)
}

// AndSpecification combines multiple specifications with logical AND.
type AndSpecification struct {
	specs []GroupSpecification
}

// NewAndSpecification creates a new AndSpecification.
func NewAndSpecification(specs ...GroupSpecification) *AndSpecification {
	return &AndSpecification{specs: specs}
}

// IsSatisfiedBy checks if all specifications are satisfied.
func (s *AndSpecification) IsSatisfiedBy(group entities.RuleGroup, index int) (bool, string) {
	for _, spec := range s.specs {
		if satisfied, reason := spec.IsSatisfiedBy(group, index); !satisfied {
			return false, reason
		}
	}
	return true, ""
}

// ExclusiveGroupsSpecification includes only the named groups.
type ExclusiveGroupsSpecification struct {
	names map[string]bool
}

// NewExclusiveGroupsSpecification creates a new ExclusiveGroupsSpecification.
func NewExclusiveGroupsSpecification(names map[string]bool) *ExclusiveGroupsSpecification {
	return &ExclusiveGroupsSpecification{names: names}
}

// IsSatisfiedBy checks if the group name is in the exclusive list.
func (s *ExclusiveGroupsSpecification) IsSatisfiedBy(group entities.RuleGroup, _ int) (bool, string) {
	if len(s.names) == 0 || s.names[group.Name] {
		return true, ""
	}
	return false, "excluded by --group filter"
}

// ExcludedGroupsSpecification excludes the named groups.
type ExcludedGroupsSpecification struct {
	names map[string]bool
}

// NewExcludedGroupsSpecification creates a new ExcludedGroupsSpecification.
func NewExcludedGroupsSpecification(names map[string]bool) *ExcludedGroupsSpecification {
	return &ExcludedGroupsSpecification{names: names}
}

// IsSatisfiedBy checks if the group name is NOT in the excluded list.
func (s *ExcludedGroupsSpecification) IsSatisfiedBy(group entities.RuleGroup, _ int) (bool, string) {
	if s.names[group.Name] {
		return false, "excluded by --exclude-group"
	}
	return true, ""
}

// ExpressionSpecification filters groups using an expr program.
type ExpressionSpecification struct {
	program *vm.Program
}

// NewExpressionSpecification creates a new ExpressionSpecification.
func NewExpressionSpecification(program *vm.Program) *ExpressionSpecification {
	return &ExpressionSpecification{program: program}
}

// IsSatisfiedBy evaluates the expr program against the group.
func (s *ExpressionSpecification) IsSatisfiedBy(group entities.RuleGroup, index int) (bool, string) {
	if s.program == nil {
		return true, ""
	}

	env := GroupEnv{
		Name:  group.Name,
		Index: index,
		Rules: len(group.Rules),
	}

	output, err := expr.Run(s.program, env)
	if err != nil {
		return false, fmt.Sprintf("filter expression error: %v", err)
	}

	result, ok := output.(bool)
	if !ok {
		return false, fmt.Sprintf("filter expression did not return boolean: %v", output)
	}

	if !result {
		return false, "excluded by --filter expression"
	}

	return true, ""
}
