package logger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/asi-network/presale-engine/pkg/logger/slogx"
	"github.com/asi-network/presale-engine/pkg/logger/stacktrace"
	"github.com/cockroachdb/errors/errbase"
)

func errorAttrReplacer(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 {
		switch attr.Key {
		case slogx.ErrorKey, "err":
			if err, ok := attr.Value.Any().(error); ok {
				if err != nil {
					return slog.Attr{Key: slogx.ErrorKey, Value: slog.StringValue(err.Error())}
				}
				return slog.Attr{Key: slogx.ErrorKey, Value: slog.StringValue("null")}
			}
		}
	}
	return attr
}

func middlewareErrorStackTrace() middleware {
	return func(next handleFunc) handleFunc {
		return func(ctx context.Context, rec slog.Record) error {
			rec.Attrs(func(attr slog.Attr) bool {
				if attr.Key == slogx.ErrorKey || attr.Key == "err" {
					err := attr.Value.Any()
					if err, ok := err.(error); ok && err != nil {
						rec.AddAttrs(slog.String("error_verbose", fmt.Sprintf("%+v", err)))
						if x, ok := err.(errbase.StackTraceProvider); ok {
							trace := stacktrace.StackTrace(x.StackTrace())
							rec.AddAttrs(slog.Any(ErrorStackTraceKey, trace.TraceFramesStrings()))
						}
					}
				}
				return false
			})

			return next(ctx, rec)
		}
	}
}
