package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"git.home.luguber.info/inful/apphost/internal/app"
	"git.home.luguber.info/inful/apphost/internal/logfields"
	"git.home.luguber.info/inful/apphost/internal/plugin"
	"git.home.luguber.info/inful/apphost/plugins/events"
	"git.home.luguber.info/inful/apphost/plugins/httpserver"
	"git.home.luguber.info/inful/apphost/plugins/metrics"
	"git.home.luguber.info/inful/apphost/plugins/sched"
	"git.home.luguber.info/inful/apphost/plugins/store"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("APPHOST_LOG_LEVEL"), "debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))

	a := app.New(version)

	bundled := []plugin.Plugin{
		metrics.New(),
		httpserver.New(),
		store.New(),
		sched.New(),
		events.New(),
	}
	for _, p := range bundled {
		if err := a.Register(p); err != nil {
			slog.Error("Failed to register plugin", logfields.Plugin(p.Name()), logfields.Error(err))
			os.Exit(1)
		}
	}

	// No autostart set: every bundled plugin is opt-in via --plugin.
	proceed, err := a.Initialize(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if !proceed {
		return
	}

	if err := a.Startup(); err != nil {
		slog.Error("Startup failed", logfields.Error(err))
		a.Shutdown()
		os.Exit(1)
	}

	a.Run()
}
