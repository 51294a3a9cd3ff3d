package audit

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Sink receives one event per state-changing operation. Implementations
// must be best-effort: a failing sink never fails the operation that
// emitted the event.
type Sink interface {
	Log(ctx context.Context, actorID, action string, fields map[string]any)
}

type LogrusSink struct{ log *logrus.Logger }

func NewLogrusSink(l *logrus.Logger) *LogrusSink { return &LogrusSink{log: l} }

func (s *LogrusSink) Log(_ context.Context, actorID, action string, fields map[string]any) {
	entry := s.log.WithField("actor_id", actorID)
	if len(fields) > 0 {
		entry = entry.WithFields(logrus.Fields(fields))
	}
	entry.Info(action)
}

// Nop discards events; used in tests.
type Nop struct{}

func (Nop) Log(context.Context, string, string, map[string]any) {}
