// Package messaging runs an embedded NATS server as the in-process event
// bus between player sessions and realms. Sessions publish realm events to
// per-floor subjects; each realm subscribes to its own floor's subject.
// Neither side ever calls the other directly.
package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// Bus wraps an embedded NATS server plus an internal client connection.
type Bus struct {
	ns *server.Server

	startupTimeout time.Duration
	host           string
	port           int

	// conn is established by the Start worker while other workers may
	// already be publishing or subscribing.
	mu   sync.Mutex
	conn *nats.Conn
}

// BusOpt configures a Bus.
type BusOpt func(*Bus)

// WithStartTimeout sets how long Start waits for the server to come up.
func WithStartTimeout(d time.Duration) BusOpt {
	return func(b *Bus) {
		b.startupTimeout = d
	}
}

// WithHost sets the bind host for the embedded server.
func WithHost(host string) BusOpt {
	return func(b *Bus) {
		b.host = host
	}
}

// WithPort sets the bind port for the embedded server. Port 0 picks a free
// port.
func WithPort(port int) BusOpt {
	return func(b *Bus) {
		b.port = port
	}
}

// NewBus builds the embedded server but does not start it.
func NewBus(opts ...BusOpt) (*Bus, error) {
	b := &Bus{
		startupTimeout: 10 * time.Second,
		host:           "127.0.0.1",
	}
	for _, opt := range opts {
		opt(b)
	}

	ns, err := server.NewServer(&server.Options{
		Host:   b.host,
		Port:   b.port,
		NoSigs: true, // the application owns signal handling
	})
	if err != nil {
		return nil, err
	}
	b.ns = ns

	return b, nil
}

// Start runs the bus until the context is canceled.
func (b *Bus) Start(ctx context.Context) error {
	b.ns.Start()

	if !b.ns.ReadyForConnections(b.startupTimeout) {
		return fmt.Errorf("nats server not ready for connections")
	}

	conn, err := nats.Connect(b.ns.ClientURL())
	if err != nil {
		return fmt.Errorf("creating nats client connection: %w", err)
	}
	b.mu.Lock()
	b.conn = conn
	b.mu.Unlock()

	slog.InfoContext(ctx, "event bus listening", "addr", b.ns.Addr())

	<-ctx.Done()
	conn.Close()
	b.ns.Shutdown()
	b.ns.WaitForShutdown()

	return nil
}

// client returns the started connection.
func (b *Bus) client() (*nats.Conn, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn == nil {
		return nil, fmt.Errorf("event bus not started")
	}
	return b.conn, nil
}

// Subscribe registers a handler for a subject and returns an unsubscribe
// function.
func (b *Bus) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	conn, err := b.client()
	if err != nil {
		return nil, err
	}
	sub, err := conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, err
	}
	return func() {
		if err := sub.Unsubscribe(); err != nil {
			slog.Warn("failed to unsubscribe", "subject", subject, "error", err)
		}
	}, nil
}

// Publish sends data to a subject.
func (b *Bus) Publish(subject string, data []byte) error {
	conn, err := b.client()
	if err != nil {
		return err
	}
	return conn.Publish(subject, data)
}
