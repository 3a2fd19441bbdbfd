package notification

import (
	"context"
	"errors"
	"fmt"
	"plan-fulfillment/internal/client"
	"plan-fulfillment/internal/model"
	"plan-fulfillment/internal/packaging"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// ErrEmailDelivery means every send attempt failed. Email is the sole
// delivery channel for the purchased plan, so the caller must fail the
// order rather than mark it paid.
var ErrEmailDelivery = errors.New("email delivery failed")

// emailMaxAttempts bounds the synchronous retry loop: 3 attempts with
// exponential backoff starting at emailInitialInterval.
const (
	emailMaxAttempts     = 3
	emailInitialInterval = 500 * time.Millisecond
)

type EmailSender interface {
	SendWithRetry(ctx context.Context, order *model.Order, pkg *packaging.DeliveryPackage) error
}

type emailSenderImpl struct {
	mail            client.MailSender
	logger          zerolog.Logger
	initialInterval time.Duration
}

func NewEmailSender(mail client.MailSender, logger zerolog.Logger) EmailSender {
	return &emailSenderImpl{
		mail:            mail,
		logger:          logger.With().Str("component", "email").Logger(),
		initialInterval: emailInitialInterval,
	}
}

func (s *emailSenderImpl) SendWithRetry(ctx context.Context, order *model.Order, pkg *packaging.DeliveryPackage) error {
	subject := fmt.Sprintf("Your %s plan is ready", order.Plan)
	body := fmt.Sprintf(
		"Hi %s,\n\nThank you for your purchase! Your %s plan is attached.\n\n"+
			"The archive is protected with this password:\n\n    %s\n\n"+
			"Keep it safe; it will not be sent again.\n",
		order.CustomerName, order.Plan, pkg.Password,
	)

	attempt := 0
	operation := func() error {
		attempt++
		err := s.mail.Send(order.CustomerEmail, subject, body, pkg.ArchivePath)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("order_id", order.OrderID).
				Int("attempt", attempt).
				Msg("email send attempt failed")
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.initialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(b, emailMaxAttempts-1), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("%w: %s after %d attempts: %v",
			ErrEmailDelivery, order.CustomerEmail, attempt, err)
	}

	s.logger.Info().
		Str("order_id", order.OrderID).
		Str("to", order.CustomerEmail).
		Msg("plan delivered by email")
	return nil
}
