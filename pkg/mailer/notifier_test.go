package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendDisabledIsNoOp(t *testing.T) {
	n := NewQueueNotifier(nil, false)
	err := n.Send(context.Background(), TemplatePasswordReset, "e@e.com", nil)
	assert.NoError(t, err)
}

// Sending switched on without a broker connection must fail, never silently
// drop: callers roll back reset tokens on this error.
func TestSendEnabledWithoutBrokerFails(t *testing.T) {
	n := NewQueueNotifier(nil, true)
	err := n.Send(context.Background(), TemplatePasswordReset, "e@e.com", nil)
	assert.ErrorIs(t, err, ErrBrokerUnavailable)
}
