package sched

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apphost/internal/options"
	"git.home.luguber.info/inful/apphost/internal/plugin"
)

func initSched(t *testing.T, dataDir string, args ...string) *Plugin {
	t.Helper()
	p := New()
	schema := options.NewSet()
	p.DeclareOptions(schema, schema)
	schema.String("data-dir", "", dataDir, "")

	vals, err := options.ParseArgs(schema, args)
	require.NoError(t, err)
	require.NoError(t, p.Init(plugin.NewRegistry(), vals))
	return p
}

func TestSched(t *testing.T) {
	t.Run("starts empty without a job file", func(t *testing.T) {
		p := initSched(t, t.TempDir())
		require.NoError(t, p.Start())
		require.NoError(t, p.Stop())
	})

	t.Run("loads jobs from the YAML file", func(t *testing.T) {
		dataDir := t.TempDir()
		jobs := "jobs:\n  - name: heartbeat\n    every: 1h\n  - name: sweep\n    every: 30m\n"
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, "jobs.yaml"), []byte(jobs), 0o644))

		p := initSched(t, dataDir, "--sched-jobs", "jobs.yaml")
		require.Len(t, p.specs, 2)
		require.NoError(t, p.Start())
		require.NoError(t, p.Stop())
	})

	t.Run("invalid interval fails at start", func(t *testing.T) {
		dataDir := t.TempDir()
		jobs := "jobs:\n  - name: broken\n    every: not-a-duration\n"
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, "jobs.yaml"), []byte(jobs), 0o644))

		p := initSched(t, dataDir, "--sched-jobs", "jobs.yaml")
		err := p.Start()
		require.Error(t, err)
		require.NoError(t, p.Stop())
	})

	t.Run("missing job file fails at init", func(t *testing.T) {
		p := New()
		schema := options.NewSet()
		p.DeclareOptions(schema, schema)
		schema.String("data-dir", "", t.TempDir(), "")

		vals, err := options.ParseArgs(schema, []string{"--sched-jobs", "absent.yaml"})
		require.NoError(t, err)
		require.Error(t, p.Init(plugin.NewRegistry(), vals))
	})

	t.Run("schedule every validates interval", func(t *testing.T) {
		p := initSched(t, t.TempDir())
		t.Cleanup(func() { _ = p.Stop() })

		_, err := p.ScheduleEvery("bad", 0, func() {})
		require.Error(t, err)

		id, err := p.ScheduleEvery("good", time.Hour, func() {})
		require.NoError(t, err)
		require.NotEmpty(t, id)
	})
}
