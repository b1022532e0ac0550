package errs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roodi/internal/pkg/errs"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("should format without a cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("offerId", "a1b2")

		assert.Equal(t, "offerId", err.ParamName)
		assert.Equal(t, "a1b2", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: a1b2", err.Error())
	})

	t.Run("should format with a cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("walletId", "w-9", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: walletId, ID is: w-9 (cause: connection reset)",
			err.Error())
	})

	t.Run("should classify via errors.Is and errors.As", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "o-1")

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		var typed *errs.ObjectNotFoundError
		require.ErrorAs(t, error(err), &typed)
	})
}

func TestValueErrors(t *testing.T) {
	t.Run("should format invalid value", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("urgency")

		assert.Equal(t, "value is invalid: urgency", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should format invalid value with cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("money amount", errors.New("-3.50 is negative"))

		assert.Equal(t, "value is invalid: money amount (cause: -3.50 is negative)", err.Error())
	})

	t.Run("should format required value", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("recipient name")

		assert.Equal(t, "value is required: recipient name", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should format out of range value with its bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("peak window hour", 25, 0, 23)

		assert.Equal(t, 25, err.Value)
		assert.Equal(t, "value is invalid: 25 is peak window hour, min value is 0, max value is 23", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should flatten multiline values to one line", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("notes", "first\nsecond", 0, 10)

		assert.Contains(t, err.Error(), "first second")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestVersionIsInvalidError(t *testing.T) {
	t.Run("should format with its cause", func(t *testing.T) {
		err := errs.NewVersionIsInvalidError("pricing version", errors.New("empty code"))

		assert.Equal(t, "version is invalid: pricing version (cause: empty code)", err.Error())
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})
}

func TestConflictError(t *testing.T) {
	t.Run("should format without a cause", func(t *testing.T) {
		err := errs.NewConflictError("offer is no longer pending")

		assert.Equal(t, "conflict: offer is no longer pending", err.Error())
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("should format with a cause", func(t *testing.T) {
		cause := errors.New("row already updated")
		err := errs.NewConflictErrorWithCause("another rider accepted first", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "conflict: another rider accepted first (cause: row already updated)", err.Error())
	})
}

func TestServiceUnavailableError(t *testing.T) {
	t.Run("should format and classify", func(t *testing.T) {
		err := errs.NewServiceUnavailableError("no active pricing rule configured")

		assert.Equal(t, "service unavailable: no active pricing rule configured", err.Error())
		require.ErrorIs(t, err, errs.ErrServiceUnavailable)
	})
}

func TestSentinelMessages(t *testing.T) {
	t.Run("should keep stable sentinel texts", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "version is invalid", errs.ErrVersionIsInvalid.Error())
		assert.Equal(t, "conflict", errs.ErrConflict.Error())
		assert.Equal(t, "service unavailable", errs.ErrServiceUnavailable.Error())
	})
}
