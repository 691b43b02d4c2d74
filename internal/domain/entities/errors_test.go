//go:build unit

package entities_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/wheelsync/internal/domain/entities"
)

func TestInvariantViolationError(t *testing.T) {
	t.Parallel()

	t.Run("should match the sentinel through wrapping", func(t *testing.T) {
		t.Parallel()

		// given
		violation := &entities.InvariantViolationError{
			Rule:       entities.RuleCardinality,
			Package:    "baz",
			NewWheel:   "baz-2.0.whl",
			Candidates: []string{"baz-1.0.whl", "baz-2.0.whl", "baz-3.0.whl"},
		}
		err := fmt.Errorf("reconciliation failed: %w", violation)

		// when
		var target *entities.InvariantViolationError
		found := errors.As(err, &target)

		// then
		require.True(t, found)
		assert.ErrorIs(t, err, entities.ErrInvariantViolation)
		assert.Equal(t, entities.RuleCardinality, target.Rule)
		assert.Contains(t, err.Error(), "expected 1 or 2 wheels for package baz, found 3")
	})

	t.Run("should describe a membership violation", func(t *testing.T) {
		t.Parallel()

		// given
		violation := &entities.InvariantViolationError{
			Rule:     entities.RuleMembership,
			Package:  "qux",
			NewWheel: "qux-1.0.whl",
		}

		// when
		message := violation.Error()

		// then
		assert.Contains(t, message, "new wheel qux-1.0.whl not found among qux candidates")
	})
}
