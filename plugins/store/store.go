// Package store provides the bundled key/value store plugin, backed by a
// SQLite database under the host's data directory.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/apphost/internal/logfields"
	"git.home.luguber.info/inful/apphost/internal/options"
	"git.home.luguber.info/inful/apphost/internal/plugin"
)

// ErrKeyNotFound is returned by Get for keys that were never put.
var ErrKeyNotFound = fmt.Errorf("store: key not found")

// Plugin persists key/value pairs across runs.
type Plugin struct {
	path string
	db   *sql.DB
}

// New creates the store plugin.
func New() *Plugin {
	return &Plugin{}
}

// Name implements plugin.Plugin.
func (p *Plugin) Name() string {
	return "store"
}

// DeclareOptions implements plugin.Plugin.
func (p *Plugin) DeclareOptions(cli, cfg *options.Set) {
	cfg.String("store-db", "", "store.db", "Store database file, relative to data-dir")
}

// Init implements plugin.Plugin. Relative database paths resolve against the
// host's data directory.
func (p *Plugin) Init(reg *plugin.Registry, vals *options.Values) error {
	path := vals.String("store-db")
	if !filepath.IsAbs(path) {
		path = filepath.Join(vals.String("data-dir"), path)
	}
	p.path = path
	return nil
}

// Start implements plugin.Plugin. It opens the database and ensures the
// schema exists.
func (p *Plugin) Start() error {
	db, err := sql.Open("sqlite", p.path)
	if err != nil {
		return fmt.Errorf("open store database: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return fmt.Errorf("initialize store schema: %w", err)
	}

	p.db = db
	slog.Info("Store opened", logfields.Path(p.path))
	return nil
}

// Stop implements plugin.Plugin.
func (p *Plugin) Stop() error {
	if p.db == nil {
		return nil
	}
	return p.db.Close()
}

// Put inserts or replaces a value.
func (p *Plugin) Put(key, value string) error {
	_, err := p.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (p *Plugin) Get(key string) (string, error) {
	var value string
	err := p.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Path returns the resolved database file path.
func (p *Plugin) Path() string {
	return p.path
}
