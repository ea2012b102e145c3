package middleware

import (
	"context"

	"github.com/keshon/gearcmd/pkg/cmd"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// WithTracing wraps every handler call in a span named after the command.
func WithTracing(tracer trace.Tracer) cmd.Middleware {
	return func(next cmd.HandlerFunc) cmd.HandlerFunc {
		return func(ctx context.Context, inv *cmd.Invocation) error {
			ctx, span := tracer.Start(ctx, "command "+inv.Command.Name,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("command.name", inv.Command.Name),
					attribute.String("command.dispatch_id", inv.Exec.ID()),
					attribute.String("chat.guild_id", inv.Exec.GuildID()),
					attribute.String("chat.channel_id", inv.Exec.ChannelID()),
					attribute.String("chat.author_id", inv.Exec.AuthorID()),
				),
			)
			defer span.End()

			err := next(ctx, inv)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return err
		}
	}
}
