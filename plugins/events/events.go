// Package events provides the bundled NATS event publisher plugin. When
// selected it announces host lifecycle transitions on a NATS subject so
// external processes can follow the host's state.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/apphost/internal/logfields"
	"git.home.luguber.info/inful/apphost/internal/options"
	"git.home.luguber.info/inful/apphost/internal/plugin"
)

// Event is the wire shape published on the configured subject.
type Event struct {
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	Detail    string    `json:"detail,omitempty"`
}

// Plugin publishes host lifecycle events to NATS.
type Plugin struct {
	url     string
	subject string
	conn    *nats.Conn
}

// New creates the events plugin.
func New() *Plugin {
	return &Plugin{}
}

// Name implements plugin.Plugin.
func (p *Plugin) Name() string {
	return "events"
}

// DeclareOptions implements plugin.Plugin.
func (p *Plugin) DeclareOptions(cli, cfg *options.Set) {
	cfg.String("events-url", "", nats.DefaultURL, "NATS server URL for event publishing")
	cfg.String("events-subject", "", "apphost.events", "Subject lifecycle events are published on")
}

// Init implements plugin.Plugin.
func (p *Plugin) Init(reg *plugin.Registry, vals *options.Values) error {
	p.url = vals.String("events-url")
	p.subject = vals.String("events-subject")
	return nil
}

// Start implements plugin.Plugin. Connecting here rather than in Init means
// an unreachable broker only fails runs that actually selected this plugin.
func (p *Plugin) Start() error {
	conn, err := nats.Connect(p.url, nats.Name("apphost-events"))
	if err != nil {
		return fmt.Errorf("connect to NATS at %s: %w", p.url, err)
	}
	p.conn = conn

	if err := p.Publish("host.started", ""); err != nil {
		slog.Warn("Failed to publish start event", logfields.Error(err))
	}
	return nil
}

// Stop implements plugin.Plugin. A stopping event is published best-effort
// before the connection drains.
func (p *Plugin) Stop() error {
	if p.conn == nil {
		return nil
	}
	if err := p.Publish("host.stopping", ""); err != nil {
		slog.Warn("Failed to publish stop event", logfields.Error(err))
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return err
	}
	return nil
}

// Publish emits one event on the configured subject.
func (p *Plugin) Publish(kind, detail string) error {
	payload, err := json.Marshal(Event{Kind: kind, Timestamp: time.Now().UTC(), Detail: detail})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return p.conn.Publish(p.subject, payload)
}
