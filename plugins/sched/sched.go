// Package sched provides the bundled scheduler plugin. It runs interval jobs
// declared in a YAML job file and lets peer plugins schedule their own
// periodic work.
package sched

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/apphost/internal/options"
	"git.home.luguber.info/inful/apphost/internal/plugin"
)

// jobFile is the on-disk shape of the scheduler's job declarations.
type jobFile struct {
	Jobs []jobSpec `yaml:"jobs"`
}

type jobSpec struct {
	Name  string `yaml:"name"`
	Every string `yaml:"every"`
}

// Plugin wraps a gocron scheduler.
type Plugin struct {
	scheduler gocron.Scheduler
	specs     []jobSpec
}

// New creates the sched plugin.
func New() *Plugin {
	return &Plugin{}
}

// Name implements plugin.Plugin.
func (p *Plugin) Name() string {
	return "sched"
}

// DeclareOptions implements plugin.Plugin.
func (p *Plugin) DeclareOptions(cli, cfg *options.Set) {
	cfg.StringNoDefault("sched-jobs", "YAML file declaring interval jobs, relative to data-dir")
}

// Init implements plugin.Plugin. The job file is optional; without it the
// scheduler starts empty and only carries jobs peers add at runtime.
func (p *Plugin) Init(reg *plugin.Registry, vals *options.Values) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	p.scheduler = s

	path := vals.String("sched-jobs")
	if path == "" {
		return nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(vals.String("data-dir"), path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read job file: %w", err)
	}
	var file jobFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse job file %s: %w", path, err)
	}
	p.specs = file.Jobs
	return nil
}

// Start implements plugin.Plugin. Declared jobs are registered and the
// scheduler begins firing.
func (p *Plugin) Start() error {
	for _, spec := range p.specs {
		interval, err := time.ParseDuration(spec.Every)
		if err != nil {
			return fmt.Errorf("job %q: invalid interval %q: %w", spec.Name, spec.Every, err)
		}
		name := spec.Name
		if _, err := p.ScheduleEvery(name, interval, func() {
			slog.Info("Scheduled job fired", slog.String("job", name))
		}); err != nil {
			return err
		}
	}

	p.scheduler.Start()
	return nil
}

// Stop implements plugin.Plugin.
func (p *Plugin) Stop() error {
	return p.scheduler.Shutdown()
}

// ScheduleEvery registers a periodic task and returns its job ID. Peers may
// call this from their own Init or Start once this plugin is initialized.
func (p *Plugin) ScheduleEvery(name string, interval time.Duration, task func()) (string, error) {
	if interval <= 0 {
		return "", fmt.Errorf("job %q: interval must be positive", name)
	}
	job, err := p.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
	)
	if err != nil {
		return "", fmt.Errorf("schedule job %q: %w", name, err)
	}
	slog.Debug("Job scheduled", slog.String("job", name), slog.String("every", interval.String()))
	return job.ID().String(), nil
}
