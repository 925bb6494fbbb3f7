//go:build unit

package request_test

import (
	"testing"

	"printmarket/internal/domain/request"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	legal := []struct {
		current request.Status
		action  request.Action
		next    request.Status
	}{
		{request.StatusRequested, request.ActionSubmitQuote, request.StatusQuoted},
		{request.StatusRequested, request.ActionReject, request.StatusRejected},
		{request.StatusQuoted, request.ActionAcceptQuote, request.StatusAccepted},
		{request.StatusQuoted, request.ActionReject, request.StatusRejected},
		{request.StatusAccepted, request.ActionStartPrint, request.StatusPrinting},
		{request.StatusPrinting, request.ActionComplete, request.StatusCompleted},
	}

	for _, tc := range legal {
		t.Run(tc.current.String()+"/"+tc.action.String(), func(t *testing.T) {
			next, ok := request.NextStatus(tc.current, tc.action)
			assert.True(t, ok)
			assert.Equal(t, tc.next, next)
		})
	}

	t.Run("every other pair is illegal", func(t *testing.T) {
		statuses := []request.Status{
			request.StatusRequested, request.StatusQuoted, request.StatusAccepted,
			request.StatusPrinting, request.StatusCompleted, request.StatusRejected,
		}
		actions := []request.Action{
			request.ActionSubmitQuote, request.ActionAcceptQuote, request.ActionReject,
			request.ActionStartPrint, request.ActionComplete,
		}

		isLegal := func(s request.Status, a request.Action) bool {
			for _, tc := range legal {
				if tc.current == s && tc.action == a {
					return true
				}
			}
			return false
		}

		for _, s := range statuses {
			for _, a := range actions {
				if isLegal(s, a) {
					continue
				}
				_, ok := request.NextStatus(s, a)
				assert.False(t, ok, "expected %s/%s to be illegal", s, a)
			}
		}
	})
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, request.StatusCompleted.IsTerminal())
	assert.True(t, request.StatusRejected.IsTerminal())

	for _, s := range []request.Status{
		request.StatusRequested, request.StatusQuoted, request.StatusAccepted, request.StatusPrinting,
	} {
		assert.False(t, s.IsTerminal(), "%s must not be terminal", s)
	}
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, request.StatusRequested.IsValid())
	assert.False(t, request.Status("cancelled").IsValid())
	assert.False(t, request.Status("").IsValid())
}

func TestActionIsValid(t *testing.T) {
	assert.True(t, request.ActionSubmitQuote.IsValid())
	assert.False(t, request.Action("cancel").IsValid())
	assert.False(t, request.Action("").IsValid())
}
