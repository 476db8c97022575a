// Package nats delivers escalation events over NATS. It implements
// hooks.Hooks by publishing JSON event payloads to well-known subjects
// so notification workers can fan them out to users.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/khidma/guard/hooks"
)

// Subjects escalation events are published on.
const (
	SubjectStrikeWarning = "safety.strike.warning"
	SubjectSuspension    = "safety.chat.suspended"
)

// Config holds NATS connection settings.
type Config struct {
	URL           string        // nats://localhost:4222
	Name          string        // client name for identification
	ReconnectWait time.Duration // time between reconnect attempts
	MaxReconnects int           // max reconnect attempts (-1 for infinite)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		URL:           nats.DefaultURL,
		Name:          "guard-notifier",
		ReconnectWait: 2 * time.Second,
		MaxReconnects: -1,
	}
}

// Notifier publishes escalation events to NATS.
type Notifier struct {
	conn *nats.Conn
}

// NewNotifier connects to NATS and returns a ready notifier.
func NewNotifier(cfg Config) (*Notifier, error) {
	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Printf("[nats] disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("[nats] reconnected to %s", nc.ConnectedUrl())
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Notifier{conn: nc}, nil
}

// NewNotifierWithConn wraps an existing NATS connection.
func NewNotifierWithConn(conn *nats.Conn) *Notifier {
	return &Notifier{conn: conn}
}

// OnStrikeWarning publishes the warning event.
func (n *Notifier) OnStrikeWarning(ctx context.Context, e hooks.StrikeWarningEvent) error {
	return n.publish(SubjectStrikeWarning, e)
}

// OnSuspension publishes the suspension event.
func (n *Notifier) OnSuspension(ctx context.Context, e hooks.SuspensionEvent) error {
	return n.publish(SubjectSuspension, e)
}

func (n *Notifier) publish(subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("nats: marshal %s event: %w", subject, err)
	}
	if err := n.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("nats publish %s: %w", subject, err)
	}
	return nil
}

// Close drains the NATS connection.
func (n *Notifier) Close() {
	if err := n.conn.Drain(); err != nil {
		log.Printf("[nats] connection drain: %v", err)
	}
}

var _ hooks.Hooks = (*Notifier)(nil)
