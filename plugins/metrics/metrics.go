// Package metrics provides the bundled metrics plugin: a process-local
// Prometheus registry carrying host runtime metrics. It serves no traffic
// itself; the httpserver plugin pulls it in and mounts its handler.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/apphost/internal/options"
	"git.home.luguber.info/inful/apphost/internal/plugin"
)

// Plugin exposes a Prometheus registry to its peers.
type Plugin struct {
	registry *prometheus.Registry
	started  time.Time
}

// New creates the metrics plugin.
func New() *Plugin {
	return &Plugin{}
}

// Name implements plugin.Plugin.
func (p *Plugin) Name() string {
	return "metrics"
}

// DeclareOptions implements plugin.Plugin.
func (p *Plugin) DeclareOptions(cli, cfg *options.Set) {
	cfg.String("metrics-namespace", "", "apphost", "Namespace prefix for exported metrics")
}

// Init implements plugin.Plugin. It assembles the registry so that peers
// initializing after this plugin can register their own collectors.
func (p *Plugin) Init(reg *plugin.Registry, vals *options.Values) error {
	namespace := vals.String("metrics-namespace")

	p.registry = prometheus.NewRegistry()
	p.registry.MustRegister(collectors.NewGoCollector())
	p.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "uptime_seconds",
		Help:      "Seconds since the host's plugins were started.",
	}, func() float64 {
		if p.started.IsZero() {
			return 0
		}
		return time.Since(p.started).Seconds()
	}))

	return nil
}

// Start implements plugin.Plugin.
func (p *Plugin) Start() error {
	p.started = time.Now()
	return nil
}

// Stop implements plugin.Plugin.
func (p *Plugin) Stop() error {
	return nil
}

// Registry returns the underlying Prometheus registry for peers that want to
// register collectors.
func (p *Plugin) Registry() *prometheus.Registry {
	return p.registry
}

// Handler returns an HTTP handler serving the registry in the Prometheus
// exposition format.
func (p *Plugin) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
