// Package app hosts composable service plugins: it owns the plugin registry,
// drives the bootstrap sequence (option aggregation, parsing, ordered
// initialization and startup), runs the event loop, and performs the
// reverse-ordered shutdown when the loop stops.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/apphost/internal/logfields"
	"git.home.luguber.info/inful/apphost/internal/options"
	"git.home.luguber.info/inful/apphost/internal/plugin"
)

// Application is the explicit handle tying registry, event loop, and
// bootstrap state together. The entry point creates exactly one and passes
// it by reference; there is no implicit global instance.
type Application struct {
	registry *plugin.Registry
	loop     *Loop
	version  string
	runID    string

	dataDir    string
	configPath string
	vals       *options.Values

	// stdout receives help and version output; overridable for tests.
	stdout io.Writer
}

// New creates an application with an empty registry and an idle event loop.
// version is what --version prints.
func New(version string) *Application {
	return &Application{
		registry: plugin.NewRegistry(),
		loop:     NewLoop(),
		version:  version,
		runID:    uuid.NewString(),
		stdout:   os.Stdout,
	}
}

// Register adds a plugin to the registry. Plugins must be registered before
// Initialize runs so their options join the merged schema.
func (a *Application) Register(p plugin.Plugin) error {
	_, err := a.registry.Register(p)
	return err
}

// Registry returns the application's plugin registry.
func (a *Application) Registry() *plugin.Registry {
	return a.registry
}

// Loop returns the application's event loop, for posting work onto it.
func (a *Application) Loop() *Loop {
	return a.loop
}

// DataDir returns the resolved data directory. Only valid after Initialize.
func (a *Application) DataDir() string {
	return a.dataDir
}

// ConfigPath returns the resolved config file path. Only valid after
// Initialize.
func (a *Application) ConfigPath() string {
	return a.configPath
}

// Values returns the parsed configuration values. Only valid after
// Initialize.
func (a *Application) Values() *options.Values {
	return a.vals
}

// programOptions aggregates every registered plugin's option contributions,
// in registration order, then appends the fixed application options last.
// The first returned set is the combined command-line schema, the second the
// config-file schema.
func (a *Application) programOptions() (*options.Set, *options.Set) {
	combined := options.NewSet()
	cfg := options.NewSet()

	for _, m := range a.registry.All() {
		pluginCLI := options.NewSet()
		pluginCfg := options.NewSet()
		m.Impl().DeclareOptions(pluginCLI, pluginCfg)
		combined.Merge(pluginCfg)
		cfg.Merge(pluginCfg)
		combined.Merge(pluginCLI)
	}

	appCfg := options.NewSet()
	appCfg.Repeatable("plugin", "Plugin(s) to enable, may be specified multiple times")
	combined.Merge(appCfg)
	cfg.Merge(appCfg)

	combined.Switch("help", "h", "Print this help message and exit.")
	combined.Switch("version", "v", "Print version information.")
	combined.String("data-dir", "d", "data-dir", "Directory containing configuration file config.ini")
	combined.String("config", "c", "config.ini", "Configuration file name relative to data-dir")

	return combined, cfg
}

// Initialize runs the bootstrap sequence: build the merged schema, parse the
// command line, resolve data-dir and the config file (generating a default
// config when none exists), parse the config file, and initialize every
// selected plugin followed by the autostart set. The returned bool is the
// continuation contract: false means do not run the event loop, which with a
// nil error is the help/version path, not a failure. No plugin has started
// when Initialize returns an error.
func (a *Application) Initialize(args []string, autostart ...plugin.Plugin) (bool, error) {
	// Environment variables from .env files augment the process environment
	// and can be referenced from config-file values.
	_ = godotenv.Load()

	combined, cfgSchema := a.programOptions()

	vals, err := options.ParseArgs(combined, args)
	if err != nil {
		return false, err
	}

	if vals.Bool("help") {
		fmt.Fprint(a.stdout, options.Usage(combined))
		return false, nil
	}
	if vals.Bool("version") {
		fmt.Fprintln(a.stdout, a.version)
		return false, nil
	}

	dataDir := vals.String("data-dir")
	if !filepath.IsAbs(dataDir) {
		cwd, err := os.Getwd()
		if err != nil {
			return false, fmt.Errorf("resolve working directory: %w", err)
		}
		dataDir = filepath.Join(cwd, dataDir)
	}
	a.dataDir = dataDir
	vals.Override("data-dir", dataDir)

	configPath := vals.String("config")
	if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(dataDir, configPath)
	}
	a.configPath = configPath

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		slog.Info("Config file not found, generating defaults", logfields.Path(configPath))
		if err := options.WriteDefault(configPath, cfgSchema); err != nil {
			return false, err
		}
	}

	if err := options.ParseFile(configPath, cfgSchema, vals); err != nil {
		return false, err
	}
	a.vals = vals

	for _, occurrence := range vals.Strings("plugin") {
		for _, name := range splitPluginNames(occurrence) {
			res := a.registry.Get(name)
			if res.IsErr() {
				return false, res.UnwrapErr()
			}
			if err := res.Unwrap().Initialize(a.registry, vals); err != nil {
				return false, err
			}
		}
	}

	for _, p := range autostart {
		if p == nil {
			continue
		}
		m := a.registry.Find(p.Name())
		if m == nil {
			return false, &plugin.NotFoundError{Name: p.Name()}
		}
		if m.State() == plugin.StateRegistered {
			if err := m.Initialize(a.registry, vals); err != nil {
				return false, err
			}
		}
	}

	return true, nil
}

// Startup starts every initialized plugin, in the exact order their
// initialization completed, before the event loop begins running.
func (a *Application) Startup() error {
	slog.Info("Starting application",
		logfields.RunID(a.runID),
		logfields.DataDir(a.dataDir),
		slog.Int("plugins", len(a.registry.Initialized())))

	for _, m := range a.registry.Initialized() {
		if err := m.Startup(a.registry); err != nil {
			return err
		}
	}
	return nil
}

// Run arms the signal bridge, blocks in the event loop until quit is
// requested, then performs the full shutdown path synchronously on the
// calling goroutine.
func (a *Application) Run() {
	bridge := newSignalBridge(a.loop)
	defer bridge.disarm()

	a.loop.Run()
	a.Shutdown()
}

// Quit asks the event loop to stop. Idempotent and safe from any goroutine.
func (a *Application) Quit() {
	a.loop.Quit()
}

// Shutdown stops every running plugin in exact reverse startup order and
// then releases the registry. The reversed walk runs twice: first every
// plugin's Stop executes while its peers are still resolvable through the
// registry, and only then are the instances removed from the lookup map.
func (a *Application) Shutdown() {
	started := a.registry.Started()
	for i := len(started) - 1; i >= 0; i-- {
		started[i].Shutdown()
	}
	for i := len(started) - 1; i >= 0; i-- {
		a.registry.Remove(started[i].Name())
	}
	a.registry.Clear()

	slog.Info("Application shutdown complete", logfields.RunID(a.runID))
}

// splitPluginNames splits one --plugin occurrence into individual names.
// Occurrences may carry several names separated by spaces, tabs, or commas.
func splitPluginNames(occurrence string) []string {
	return strings.FieldsFunc(occurrence, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
}
