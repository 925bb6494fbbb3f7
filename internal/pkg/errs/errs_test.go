//go:build unit

package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"printmarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestMark(t *testing.T) {
	sentinel := errors.New("sentinel")

	t.Run("marked errors match the sentinel", func(t *testing.T) {
		err := errs.Mark(errs.New("row not found"), sentinel)
		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("the original chain stays matchable", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.Mark(errs.Wrap(cause, "query failed"), sentinel)
		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("message comes from the cause alone", func(t *testing.T) {
		err := errs.Mark(errs.New("row not found"), sentinel)
		assert.Equal(t, "row not found", err.Error())
	})

	t.Run("marks survive further wrapping", func(t *testing.T) {
		err := errs.Wrap(errs.Mark(errs.New("boom"), sentinel), "outer")
		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("marking nil yields the sentinel itself", func(t *testing.T) {
		assert.ErrorIs(t, errs.Mark(nil, sentinel), sentinel)
	})

	t.Run("verbose formatting renders the cause", func(t *testing.T) {
		err := errs.Mark(errs.New("boom"), sentinel)
		assert.Contains(t, fmt.Sprintf("%+v", err), "boom")
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, errs.Wrap(nil, "ignored"))
	})

	t.Run("wrapped errors keep the cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := errs.Wrap(cause, "context")
		assert.ErrorIs(t, err, cause)
	})
}
