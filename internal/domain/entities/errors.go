package entities

import (
	"errors"
	"fmt"
)

// ErrInvariantViolation is matched by every InvariantViolationError via errors.Is.
var ErrInvariantViolation = errors.New("wheel directory invariant violated")

// InvariantRule names the precondition a new wheel failed.
type InvariantRule string

const (
	// RuleMembership means the new wheel was not among its own package candidates.
	RuleMembership InvariantRule = "membership"
	// RuleCardinality means the package had more than two candidate wheels.
	RuleCardinality InvariantRule = "cardinality"
)

// InvariantViolationError reports a directory state wheelsync refuses to resolve.
type InvariantViolationError struct {
	Rule       InvariantRule
	Package    string
	NewWheel   string
	Candidates []string
}

func (e *InvariantViolationError) Error() string {
	switch e.Rule {
	case RuleMembership:
		return fmt.Sprintf(
			"%s: new wheel %s not found among %s candidates %v",
			ErrInvariantViolation, e.NewWheel, e.Package, e.Candidates,
		)
	case RuleCardinality:
		return fmt.Sprintf(
			"%s: expected 1 or 2 wheels for package %s, found %d %v",
			ErrInvariantViolation, e.Package, len(e.Candidates), e.Candidates,
		)
	default:
		return fmt.Sprintf("%s: %s (package %s)", ErrInvariantViolation, e.Rule, e.Package)
	}
}

func (e *InvariantViolationError) Is(target error) bool {
	return target == ErrInvariantViolation
}
