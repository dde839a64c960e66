package utils

import (
	"io"
	"log/slog"
)

// maxDrain bounds how much of an unread response body is discarded so the
// connection can be reused.
const maxDrain = 64 << 10

// Close closes c and ignores any error.
func Close(c io.Closer) {
	_ = c.Close()
}

// DrainClose discards what is left of rc, up to maxDrain bytes, then closes it.
// Use it on HTTP response bodies.
func DrainClose(rc io.ReadCloser) {
	_, _ = io.CopyN(io.Discard, rc, maxDrain)
	_ = rc.Close()
}

// MustClose closes c and logs a close error with the file name when c has one.
func MustClose(c io.Closer) {
	if err := c.Close(); err != nil {
		args := []any{"error", err}
		if n, ok := c.(interface{ Name() string }); ok {
			args = append(args, "name", n.Name())
		}
		slog.Warn("failed to close", args...)
	}
}
