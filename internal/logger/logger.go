package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Setup initializes the zerolog logger writing to the given file path.
// The terminal is owned by the UI, so stdout/stderr are never used; an empty
// path discards all output. The returned closer releases the log file.
func Setup(level, path string) (zerolog.Logger, func(), error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var writer io.Writer = io.Discard
	closer := func() {}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("open log file: %w", err)
		}
		writer = f
		closer = func() { _ = f.Close() }
	}

	log := zerolog.New(writer).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return log, closer, nil
}
