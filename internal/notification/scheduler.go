package notification

import (
	"context"
	"time"

	"plan-fulfillment/internal/client"

	"github.com/rs/zerolog"
)

// Scheduler fires a text message once, after a delay, off the request
// path. Scheduled sends cannot be cancelled and are never retried:
// failures go to the onFailure callback and the log, nothing else.
type Scheduler interface {
	Schedule(phone, text, orderID string, delay time.Duration, onSuccess func(), onFailure func(error))
}

type schedulerImpl struct {
	messenger client.Messenger
	logger    zerolog.Logger
	timerFn   func(d time.Duration, f func())
}

func NewScheduler(messenger client.Messenger, logger zerolog.Logger) Scheduler {
	return &schedulerImpl{
		messenger: messenger,
		logger:    logger.With().Str("component", "scheduler").Logger(),
		timerFn: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

func (s *schedulerImpl) Schedule(phone, text, orderID string, delay time.Duration, onSuccess func(), onFailure func(error)) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		// rejected before any network call
		s.logger.Warn().Err(err).Str("order_id", orderID).Msg("delayed message dropped")
		onFailure(err)
		return
	}

	s.logger.Debug().
		Str("order_id", orderID).
		Dur("delay", delay).
		Msg("delayed message scheduled")

	s.timerFn(delay, func() {
		if err := s.messenger.SendText(context.Background(), normalized, text); err != nil {
			s.logger.Error().Err(err).Str("order_id", orderID).Msg("delayed message send failed")
			onFailure(err)
			return
		}
		s.logger.Info().Str("order_id", orderID).Msg("delayed message sent")
		onSuccess()
	})
}
