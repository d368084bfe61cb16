package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/rewind/pkg/domain"
)

// LogHooks returns hooks that write every event to logger at Info level
// (rejections at Warn).
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.InfoContext(ctx, "transition",
				"kind", e.Kind,
				"from", e.From,
				"to", e.To,
				"event", e.Event,
				"cursor", e.Cursor,
			)
		},
		OnRejected: func(ctx context.Context, e *domain.RejectionEvent) {
			logger.WarnContext(ctx, "rejected",
				"kind", e.Kind,
				"state", e.State,
				"target", e.Target,
				"err", e.Err,
			)
		},
	}
}

// Combine fans each event out to every non-nil hook, in order.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			for _, h := range hooks {
				if h.OnTransition != nil {
					h.OnTransition(ctx, e)
				}
			}
		},
		OnRejected: func(ctx context.Context, e *domain.RejectionEvent) {
			for _, h := range hooks {
				if h.OnRejected != nil {
					h.OnRejected(ctx, e)
				}
			}
		},
	}
}
