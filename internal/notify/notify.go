// Package notify publishes bulk-sweep completion summaries onto a NATS
// subject, adapted from the teacher's
// pkg/nats client down to the producer-only surface this engine needs:
// there are no inbound subscriptions, only outbound notifications.
package notify

import (
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/nwpfetch/nwpfetch/pkg/log"
)

var (
	clientOnce     sync.Once
	clientInstance *Client
)

// Client wraps a NATS connection for publish-only use.
type Client struct {
	conn *nats.Conn
}

// Config is the subset of connection parameters an operator configures
// (§6.5 configuration surface).
type Config struct {
	Address       string `json:"address"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	CredsFilePath string `json:"creds_file_path"`
}

// Connect initializes the singleton notify client. A blank Address
// disables notifications entirely; callers call Publish unconditionally
// and it becomes a silent no-op.
func Connect(cfg Config) {
	clientOnce.Do(func() {
		if cfg.Address == "" {
			log.Info("notify: no address configured, notifications disabled")
			return
		}
		client, err := NewClient(cfg)
		if err != nil {
			log.Warnf("notify: connection failed: %v", err)
			return
		}
		clientInstance = client
	})
}

// GetClient returns the singleton client, or nil if never connected.
func GetClient() *Client {
	return clientInstance
}

// NewClient dials a NATS server per cfg.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("notify: address is required")
	}

	var opts []nats.Option
	if cfg.Username != "" && cfg.Password != "" {
		opts = append(opts, nats.UserInfo(cfg.Username, cfg.Password))
	}
	if cfg.CredsFilePath != "" {
		opts = append(opts, nats.UserCredentials(cfg.CredsFilePath))
	}
	opts = append(opts, nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
		if err != nil {
			log.Warnf("notify: disconnected: %v", err)
		}
	}))
	opts = append(opts, nats.ReconnectHandler(func(nc *nats.Conn) {
		log.Infof("notify: reconnected to %s", nc.ConnectedUrl())
	}))

	nc, err := nats.Connect(cfg.Address, opts...)
	if err != nil {
		return nil, fmt.Errorf("notify: connect failed: %w", err)
	}
	log.Infof("notify: connected to %s", cfg.Address)
	return &Client{conn: nc}, nil
}

// Publish sends data on subject. A nil receiver (never connected, or
// Connect was never called) is a silent no-op so callers never need a
// feature flag around every notify call site.
func (c *Client) Publish(subject string, data []byte) error {
	if c == nil || c.conn == nil {
		return nil
	}
	if err := c.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("notify: publish to %q failed: %w", subject, err)
	}
	return nil
}

// Close flushes and closes the connection.
func (c *Client) Close() {
	if c == nil || c.conn == nil {
		return
	}
	_ = c.conn.Flush()
	c.conn.Close()
}
