package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPlugin  = "plugin"
	KeyState   = "state"
	KeyOption  = "option"
	KeyPath    = "path"
	KeyDataDir = "data_dir"
	KeyRunID   = "run_id"
	KeySignal  = "signal"
	KeyError   = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Plugin(name string) slog.Attr { return slog.String(KeyPlugin, name) }
func State(s string) slog.Attr     { return slog.String(KeyState, s) }
func Option(name string) slog.Attr { return slog.String(KeyOption, name) }
func Path(p string) slog.Attr      { return slog.String(KeyPath, p) }
func DataDir(d string) slog.Attr   { return slog.String(KeyDataDir, d) }
func RunID(id string) slog.Attr    { return slog.String(KeyRunID, id) }
func Signal(s string) slog.Attr    { return slog.String(KeySignal, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
