package logger

import (
	"log/slog"

	"github.com/gaze-network/tokensale/pkg/logger/slogx"
)

// Keys for log attributes.
const (
	MessageKey         = slog.MessageKey
	LevelKey           = slog.LevelKey
	SourceKey          = slog.SourceKey
	ErrorKey           = slogx.ErrorKey
	ErrorVerboseKey    = "error_verbose"
	ErrorStackTraceKey = "error_stacktrace"
)
