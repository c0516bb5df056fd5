package logger

import (
	"log/slog"
	"os"
)

var log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// normalize tolerates call sites that pass a bare error (or any odd trailing
// value) instead of key-value pairs.
func normalize(args []any) []any {
	if len(args)%2 == 0 {
		return args
	}
	last := args[len(args)-1]
	out := make([]any, 0, len(args)+1)
	out = append(out, args[:len(args)-1]...)
	if err, ok := last.(error); ok {
		return append(out, "error", err)
	}
	return append(out, "detail", last)
}

func Info(msg string, args ...any) {
	log.Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	log.Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	log.Error(msg, normalize(args)...)
}
