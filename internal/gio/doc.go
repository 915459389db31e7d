// Package gio is the module's tiny ambient logging helper: it wraps
// log/slog so every package logs through an injected *slog.Logger rather
// than a global, mirroring the logger-injection pattern used throughout
// the rest of the corpus (inject, don't reach for a package-level
// singleton).
package gio
