// Package httpserver provides the bundled HTTP server plugin. It serves a
// health endpoint and the metrics plugin's Prometheus exposition, pulling the
// metrics plugin in as a dependency during its own initialization.
package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"git.home.luguber.info/inful/apphost/internal/logfields"
	"git.home.luguber.info/inful/apphost/internal/options"
	"git.home.luguber.info/inful/apphost/internal/plugin"
	"git.home.luguber.info/inful/apphost/plugins/metrics"
)

const shutdownTimeout = 10 * time.Second

// Plugin runs an HTTP server for the host's operational endpoints.
type Plugin struct {
	listen  string
	metrics *metrics.Plugin
	server  *http.Server
}

// New creates the httpserver plugin.
func New() *Plugin {
	return &Plugin{}
}

// Name implements plugin.Plugin.
func (p *Plugin) Name() string {
	return "httpserver"
}

// DeclareOptions implements plugin.Plugin.
func (p *Plugin) DeclareOptions(cli, cfg *options.Set) {
	cfg.String("http-listen", "", "127.0.0.1:8080", "Address the HTTP server listens on")
}

// Init implements plugin.Plugin. The metrics plugin is declared as a
// dependency here: it is resolved through the registry and initialized
// before this plugin's own initialization proceeds.
func (p *Plugin) Init(reg *plugin.Registry, vals *options.Values) error {
	res := reg.Get("metrics")
	if res.IsErr() {
		return res.UnwrapErr()
	}
	dep := res.Unwrap()
	if err := dep.Initialize(reg, vals); err != nil {
		return err
	}
	p.metrics = dep.Impl().(*metrics.Plugin)

	p.listen = vals.String("http-listen")

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.Handle("/metrics", p.metrics.Handler())

	p.server = &http.Server{
		Addr:              p.listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return nil
}

// Start implements plugin.Plugin. The listener is opened synchronously so a
// bind failure surfaces as a startup error instead of a background log line.
func (p *Plugin) Start() error {
	ln, err := net.Listen("tcp", p.listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", p.listen, err)
	}

	slog.Info("HTTP server listening", slog.String("addr", ln.Addr().String()))
	go func() {
		if err := p.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server terminated", logfields.Error(err))
		}
	}()
	return nil
}

// Stop implements plugin.Plugin.
func (p *Plugin) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return p.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (p *Plugin) Addr() string {
	return p.listen
}
