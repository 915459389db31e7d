package gio

import (
	"io"
	"log/slog"
	"os"
)

// Discard is a logger that writes nothing, for callers that do not supply
// one (colgen.Run, branch.Run default to it rather than a
// package-level global).
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Default returns a text-handler logger writing to stderr at the given
// level, for callers that want ordinary diagnostic output without
// building their own slog.Handler.
func Default(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
