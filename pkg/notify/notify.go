// Package notify delivers processed artifacts back to whoever sent the
// statement in.
package notify

import (
	"context"

	"github.com/fmadrigalcr/reclasor/internal/domain/render"
)

// Message is one outgoing reply with the run's artifacts attached.
type Message struct {
	To          []string
	Subject     string
	Body        string
	Attachments []render.Artifact
}

// Sender delivers messages. Implementations must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Noop is the sender used when no email provider is configured; runs still
// succeed, artifacts just stay local.
type Noop struct{}

func (Noop) Send(context.Context, Message) error { return nil }
