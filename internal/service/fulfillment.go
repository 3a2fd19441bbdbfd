package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"plan-fulfillment/internal/dto"
	"plan-fulfillment/internal/model"
	"plan-fulfillment/internal/notification"
	"plan-fulfillment/internal/packaging"
	"plan-fulfillment/internal/repository"
	"plan-fulfillment/internal/sideeffect"

	"github.com/rs/zerolog"
)

// Outcome of one webhook delivery. Everything except a lookup failure
// maps to a 200 response; the gateway must stop retrying once the
// order-level fulfillment has succeeded or terminally failed.
type Outcome string

const (
	OutcomeFulfilled      Outcome = "fulfilled"
	OutcomeDuplicate      Outcome = "duplicate"       // transaction nsu already processed
	OutcomeAlreadyHandled Outcome = "already_handled" // order owned by another attempt or terminal
	OutcomeFailed         Outcome = "failed"          // packaging/delivery exhausted, order FAILED
)

// packagingAttempts bounds the packaging retry loop. No backoff between
// attempts: packaging is a local filesystem operation.
const packagingAttempts = 3

type FulfillmentService interface {
	HandlePaymentConfirmed(ctx context.Context, n *dto.PaymentNotification) (Outcome, error)
}

type fulfillmentServiceImpl struct {
	orders       repository.OrderRepository
	transactions repository.TransactionRepository
	packager     packaging.Packager
	email        notification.EmailSender
	scheduler    notification.Scheduler
	sideEffects  []sideeffect.SideEffect
	messageDelay time.Duration
	logger       zerolog.Logger
}

func NewFulfillmentService(
	orders repository.OrderRepository,
	transactions repository.TransactionRepository,
	packager packaging.Packager,
	email notification.EmailSender,
	scheduler notification.Scheduler,
	sideEffects []sideeffect.SideEffect,
	messageDelay time.Duration,
	logger zerolog.Logger,
) FulfillmentService {
	return &fulfillmentServiceImpl{
		orders:       orders,
		transactions: transactions,
		packager:     packager,
		email:        email,
		scheduler:    scheduler,
		sideEffects:  sideEffects,
		messageDelay: messageDelay,
		logger:       logger.With().Str("component", "fulfillment").Logger(),
	}
}

// HandlePaymentConfirmed drives one payment notification through the
// order state machine. The order reservation is the single concurrency
// control point: past it, exactly one worker owns the order.
func (s *fulfillmentServiceImpl) HandlePaymentConfirmed(ctx context.Context, n *dto.PaymentNotification) (Outcome, error) {
	log := s.logger.With().
		Str("transaction_nsu", n.TransactionNSU).
		Str("order_id", n.OrderNSU).
		Logger()

	// Fast dedup check. Not race-safe alone; the reservation below is.
	seen, err := s.transactions.Exists(ctx, n.TransactionNSU)
	if err != nil {
		return "", fmt.Errorf("check processed transaction: %w", err)
	}
	if seen {
		log.Info().Msg("transaction already processed, skipping")
		return OutcomeDuplicate, nil
	}

	order, err := s.orders.FindByOrderID(ctx, n.OrderNSU)
	if err != nil {
		return "", fmt.Errorf("find order: %w", err)
	}

	// A retried webhook can carry a fresh transaction nsu for an order
	// another attempt already picked up; the order status catches that.
	if order.Status != model.OrderStatusPending {
		log.Info().Str("status", order.Status).Msg("order not pending, skipping")
		return OutcomeAlreadyHandled, nil
	}

	if !n.PaidAmount.Equal(order.Amount) {
		log.Warn().
			Str("paid", n.PaidAmount.String()).
			Str("expected", order.Amount.String()).
			Msg("paid amount differs from order amount")
	}

	if err := s.orders.Reserve(ctx, order.OrderID); err != nil {
		if errors.Is(err, repository.ErrReservationConflict) {
			log.Info().Msg("lost order reservation to a concurrent attempt")
			return OutcomeAlreadyHandled, nil
		}
		return "", fmt.Errorf("reserve order: %w", err)
	}

	// The reservation is held from here on: any failure must land the
	// order in a terminal state, never leave it silently stuck.

	pkg, err := s.packagePlan(ctx, order.Plan)
	if err != nil {
		log.Error().Err(err).Msg("packaging exhausted, failing order")
		s.failOrder(ctx, order.OrderID)
		return OutcomeFailed, nil
	}

	if err := s.email.SendWithRetry(ctx, order, pkg); err != nil {
		log.Error().Err(err).Msg("email delivery exhausted, failing order")
		s.failOrder(ctx, order.OrderID)
		return OutcomeFailed, nil
	}

	paid, err := s.orders.MarkPaid(ctx, order.OrderID)
	if err != nil {
		return "", fmt.Errorf("mark order paid: %w", err)
	}

	if err := s.transactions.MarkProcessed(ctx, n.TransactionNSU); err != nil {
		// The order is already PAID and was exclusively held, so losing
		// the transaction-record race here is harmless.
		if errors.Is(err, repository.ErrDuplicateTransaction) {
			log.Warn().Msg("transaction record lost a race, order already paid")
		} else {
			log.Error().Err(err).Msg("record processed transaction")
		}
	}

	for _, eff := range s.sideEffects {
		if err := eff.Apply(ctx, paid); err != nil {
			log.Error().Err(err).Str("side_effect", eff.Name()).Msg("side effect failed")
		}
	}

	s.scheduleFollowUp(paid.CustomerPhone, paid.CustomerName, paid.Plan, paid.OrderID)

	log.Info().Msg("order fulfilled")
	return OutcomeFulfilled, nil
}

func (s *fulfillmentServiceImpl) packagePlan(ctx context.Context, plan string) (*packaging.DeliveryPackage, error) {
	var (
		pkg *packaging.DeliveryPackage
		err error
	)
	for attempt := 1; attempt <= packagingAttempts; attempt++ {
		pkg, err = s.packager.Package(ctx, plan)
		if err == nil {
			return pkg, nil
		}
		s.logger.Warn().Err(err).Int("attempt", attempt).Str("plan", plan).Msg("packaging attempt failed")
	}
	return nil, fmt.Errorf("package plan %s: %w", plan, err)
}

func (s *fulfillmentServiceImpl) failOrder(ctx context.Context, orderID string) {
	if err := s.orders.MarkFailed(ctx, orderID); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("mark order failed")
	}
}

func (s *fulfillmentServiceImpl) scheduleFollowUp(phone, name, plan, orderID string) {
	text := fmt.Sprintf("Hi %s! Your %s plan was delivered to your inbox. How is it going so far? Reply here if you need anything.", name, plan)
	s.scheduler.Schedule(phone, text, orderID, s.messageDelay,
		func() {},
		func(err error) {
			s.logger.Warn().Err(err).Str("order_id", orderID).Msg("follow-up message not delivered")
		},
	)
}
