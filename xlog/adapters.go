package xlog

import (
	"log/slog"

	slogzerolog "github.com/samber/slog-zerolog/v2"
)

// Creates a new slog.Logger that writes to the logger.
func ToSlog(logger *Logger) *slog.Logger {
	return slog.New(slogzerolog.Option{
		Logger: logger,
	}.NewZerologHandler())
}
