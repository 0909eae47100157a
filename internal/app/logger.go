package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"journal/internal/config"
)

// NewLogger builds the process logger writing to w and, when LOG_DIR is set,
// to a rotated log file. The returned function closes the file.
func NewLogger(cfg *config.Config, w io.Writer) (*slog.Logger, func()) {
	closeFn := func() {}

	if cfg.LogDir != "" {
		f, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
		} else {
			w = io.MultiWriter(w, f)
			closeFn = func() { f.Close() }
		}
	}

	return config.NewLogger(cfg.Environment, w), closeFn
}
