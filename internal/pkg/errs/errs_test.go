package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"starmap/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("key", "orders/1001-")

		assert.Equal(t, "key", err.ParamName)
		assert.Equal(t, "orders/1001-", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: orders/1001-", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("location", "Atlantis", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: location, ID is: Atlantis (cause: database connection failed)",
			err.Error())
	})

	t.Run("Error with non string id", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestObjectAlreadyExistsError(t *testing.T) {
	t.Run("NewObjectAlreadyExistsError", func(t *testing.T) {
		err := errs.NewObjectAlreadyExistsError("key", "locks/1001.lock")

		assert.Equal(t, "object already exists: locks/1001.lock", err.Error())
		assert.Equal(t, errs.ErrObjectAlreadyExists, err.Unwrap())
	})

	t.Run("NewObjectAlreadyExistsErrorWithCause", func(t *testing.T) {
		cause := errors.New("unique violation")
		err := errs.NewObjectAlreadyExistsErrorWithCause("key", "locks/1001.lock", cause)

		assert.Equal(t,
			"object already exists: param is: key, ID is: locks/1001.lock (cause: unique violation)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("date")

		assert.Equal(t, "date", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: date", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("date", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: date (cause: invalid format)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("latitude", 91.5, -90, 90)

		assert.Equal(t, "latitude", err.ParamName)
		assert.Equal(t, 91.5, err.Value)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 91.5 is latitude, min value is -90, max value is 90", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("utcOffset", 15, -12, 14, cause)

		assert.Equal(t,
			"value is invalid: 15 is utcOffset, min value is -12, max value is 14 (cause: validation failed)",
			err.Error())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("location")
	assert.Equal(t, "value is required: location", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("location", errors.New("property missing"))
	assert.Equal(t, "value is required: location (cause: property missing)", withCause.Error())
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	wrapped := fmt.Errorf("claim order: %w", errs.NewObjectAlreadyExistsError("key", "locks/1.lock"))
	require.ErrorIs(t, wrapped, errs.ErrObjectAlreadyExists)

	require.ErrorIs(t, errs.NewObjectNotFoundError("key", "x"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("x"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("x", 1, 0, 0), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("x"), errs.ErrValueIsRequired)

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, fmt.Errorf("wrap: %w", errs.NewObjectNotFoundError("location", "Atlantis")), &notFound)
	assert.Equal(t, "location", notFound.ParamName)
}
