package fsm

import (
	"context"

	"github.com/aretw0/rewind/pkg/domain"
)

func (m *Machine) emit(kind domain.TransitionKind, from, event string) {
	m.logger.Debug("state changed",
		"kind", kind,
		"from", from,
		"to", m.current,
		"event", event,
		"cursor", m.cursor,
	)

	if m.hooks.OnTransition == nil {
		return
	}
	m.hooks.OnTransition(context.Background(), &domain.TransitionEvent{
		Timestamp:  m.now(),
		Kind:       kind,
		From:       from,
		To:         m.current,
		Event:      event,
		Cursor:     m.cursor,
		HistoryLen: len(m.history),
	})
}

func (m *Machine) reject(kind domain.TransitionKind, target string, err error) {
	m.logger.Debug("operation rejected",
		"kind", kind,
		"state", m.current,
		"target", target,
		"err", err,
	)

	if m.hooks.OnRejected == nil {
		return
	}
	m.hooks.OnRejected(context.Background(), &domain.RejectionEvent{
		Timestamp: m.now(),
		Kind:      kind,
		State:     m.current,
		Target:    target,
		Err:       err,
	})
}
