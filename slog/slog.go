// Package slog provides log/slog decorators for the newscrawl interfaces.
// Successful calls are logged at debug level, failures at warn level.
package slog

import (
	"context"
	"log/slog"
)

func levelFor(err error) slog.Level {
	if err != nil {
		return slog.LevelWarn
	}
	return slog.LevelDebug
}

// log emits a single record for an operation.
func log(ctx context.Context, logger *slog.Logger, msg string, err error, args ...any) {
	logger.Log(ctx, levelFor(err), msg, append(args, "err", err)...)
}
