package application

import "context"

// Notifier delivers transactional email. The production implementation
// enqueues jobs on RabbitMQ (pkg/mailer.QueueNotifier); tests substitute
// fakes. A non-nil error means the message did not reach the delivery
// pipeline, which callers may need to compensate for.
type Notifier interface {
	Send(ctx context.Context, template, to string, data map[string]any) error
}
