// Package delivery sends one-time email codes to their owners.
package delivery

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/emailauth/pkg/slogx"
)

// Message is a code ready to be sent out of band.
type Message struct {
	To        string
	Code      string
	ExpiresAt time.Time
}

// Deliverer sends a code to an address. Implementations must return an error
// when the message could not be handed off, so the caller can retract the
// code.
type Deliverer interface {
	DeliverCode(ctx context.Context, msg Message) error
}

// DelivererFunc adapts a function to a Deliverer.
type DelivererFunc func(ctx context.Context, msg Message) error

func (f DelivererFunc) DeliverCode(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// LogDeliverer writes codes to the log instead of sending them. Development
// only: anyone reading the log can log in as anyone.
type LogDeliverer struct {
	Logger *slog.Logger
}

func (d LogDeliverer) DeliverCode(ctx context.Context, msg Message) error {
	l := d.Logger
	if l == nil {
		l = slogx.FromContext(ctx)
	}
	l.InfoContext(ctx, "email code issued",
		slogx.Tags("delivery"),
		slog.String("to", msg.To),
		slog.String("code", msg.Code),
		slog.Time("expires_at", msg.ExpiresAt),
	)
	return nil
}
