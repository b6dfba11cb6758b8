package helper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError(t *testing.T) {
	t.Run("Wrap error with operation", func(t *testing.T) {
		base := errors.New("connection refused")
		err := NewError("ping database", base)

		assert.EqualError(t, err, "ping database: connection refused")
		assert.ErrorIs(t, err, base, "Expected wrapped error to unwrap")

		var helperErr *Error
		assert.ErrorAs(t, err, &helperErr)
		assert.Equal(t, "ping database", helperErr.Operation)
	})

	t.Run("Nested operations", func(t *testing.T) {
		base := errors.New("boom")
		err := NewError("build catalog", NewError("weight A / B", base))

		assert.EqualError(t, err, "build catalog: weight A / B: boom")
		assert.ErrorIs(t, err, base)
	})

	t.Run("Nil error stays nil", func(t *testing.T) {
		assert.NoError(t, NewError("noop", nil))
	})
}
