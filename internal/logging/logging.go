// logging.go sets up the process-wide zerolog logger used by non-protocol
// diagnostics: startup messages, setoption errors, TT sanity warnings.
// UCI `info` lines never go through this logger - those are written
// directly to the protocol stream by internal/uci so they can never be
// interleaved with a log line mid-write.
//
// Grounded on domino14/macondo's logging setup (a single package-level
// zerolog.Logger configured once at startup from a level string) adapted
// to write to stderr, since stdout is reserved for the UCI protocol
// stream.

package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a zerolog.Logger writing to stderr at level, falling back to
// zerolog.InfoLevel if level does not parse.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return newWithWriter(os.Stderr, lvl)
}

func newWithWriter(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
