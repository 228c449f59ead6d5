package database

import (
	"context"
	"log/slog"
)

type warnRecorder func(attempt uint)

func (f warnRecorder) Warn(_ context.Context, _ string, attrs ...slog.Attr) {
	for _, a := range attrs {
		if a.Key == "attempt" {
			f(uint(a.Value.Uint64()))
		}
	}
}
