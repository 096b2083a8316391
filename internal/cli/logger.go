package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/hsiuhsiu/valist-go/pkg/valist/logging"
)

func newLogger(level, format string, w io.Writer) (logging.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	switch format {
	case "json":
	case "console":
		w = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}
	zl := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return logging.NewZerolog(zl), nil
}
