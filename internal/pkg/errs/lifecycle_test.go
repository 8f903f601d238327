package errs_test

import (
	"errors"
	"testing"

	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidTransitionError(t *testing.T) {
	t.Run("names both endpoints", func(t *testing.T) {
		err := errs.NewInvalidTransitionError("delivered", "delivered")

		assert.Equal(t, "delivered", err.From)
		assert.Equal(t, "delivered", err.To)
		assert.Equal(t, "invalid status transition: delivered -> delivered", err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestAuthorizationError(t *testing.T) {
	t.Run("reason codes", func(t *testing.T) {
		assert.Equal(t, "ownership", errs.ReasonOwnership.String())
		assert.Equal(t, "role", errs.ReasonRoleAction.String())
		assert.Equal(t, "state", errs.ReasonState.String())
		assert.Equal(t, "unknown", errs.AuthorizationReason(0).String())
	})

	t.Run("formats reason and detail", func(t *testing.T) {
		err := errs.NewAuthorizationError(errs.ReasonOwnership, "parcel belongs to another sender")

		assert.Equal(t, errs.ReasonOwnership, err.Reason)
		assert.Equal(t, "not authorized (ownership): parcel belongs to another sender", err.Error())
		require.ErrorIs(t, err, errs.ErrNotAuthorized)
	})
}

func TestGateBlockedError(t *testing.T) {
	t.Run("names active gates", func(t *testing.T) {
		err := errs.NewGateBlockedError("flagged", "held")

		assert.Equal(t, []string{"flagged", "held"}, err.Gates)
		assert.Contains(t, err.Error(), "flagged, held")
		require.ErrorIs(t, err, errs.ErrGateBlocked)
	})
}

func TestConflictError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewConflictError("parcel", "tracking code generation exhausted retries")

		assert.Equal(t, "conflict: parcel: tracking code generation exhausted retries", err.Error())
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("duplicate key value violates unique constraint")
		err := errs.NewConflictErrorWithCause("parcel", "tracking code collision", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Contains(t, err.Error(), "(cause: duplicate key value violates unique constraint)")
		require.ErrorIs(t, err, errs.ErrConflict)
	})
}
