package mailer

import (
	"context"
	"errors"

	"github.com/kgnit/employee-tasks/pkg/helpers"
)

// ErrBrokerUnavailable is returned when sending is enabled but no RabbitMQ
// connection was established.
var ErrBrokerUnavailable = errors.New("mailer: broker unavailable")

// QueueNotifier enqueues email jobs on RabbitMQ instead of sending inline.
// The HTTP process only confirms that the job reached the broker; delivery
// happens in the email worker. A failed publish is surfaced to the caller so
// password-reset tokens can be rolled back.
type QueueNotifier struct {
	Pub     *helpers.RabbitPublisher
	Enabled bool
}

func NewQueueNotifier(pub *helpers.RabbitPublisher, enabled bool) *QueueNotifier {
	return &QueueNotifier{Pub: pub, Enabled: enabled}
}

// Send publishes a templated email job for the given recipient. With sending
// disabled it is a silent no-op; with sending enabled and no broker
// connection it fails, so callers treat the mail as undelivered.
func (n *QueueNotifier) Send(ctx context.Context, template, to string, data map[string]any) error {
	if !n.Enabled {
		return nil
	}
	if n.Pub == nil {
		return ErrBrokerUnavailable
	}
	return n.Pub.PublishJSON(ctx, EmailJob{To: to, Template: template, Data: data})
}
