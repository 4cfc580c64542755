package store

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kk-code-lab/fluxdir/internal/state"
)

// LoggingMiddleware logs every dispatch with its outcome and duration.
// Failed dispatches are logged at warn level.
func LoggingMiddleware(logger logrus.FieldLogger) Middleware {
	return func(next DispatchFunc) DispatchFunc {
		return func(s *state.AppState, action state.Action) (state.Outcome, error) {
			start := time.Now()
			outcome, err := next(s, action)

			entry := logger.WithFields(logrus.Fields{
				"action":   state.ActionName(action),
				"outcome":  outcome.String(),
				"duration": time.Since(start),
				"dir":      s.CurrentDir(),
			})
			if err != nil {
				entry.WithError(err).Warn("dispatch failed")
			} else {
				entry.Debug("dispatch")
			}
			return outcome, err
		}
	}
}
