package sideeffect

import (
	"context"
	"time"

	"plan-fulfillment/internal/model"
	"plan-fulfillment/internal/repository"
)

const FunnelStagePaymentConfirmed = "payment_confirmed"

type saleRecorder struct {
	analytics repository.AnalyticsRepository
}

func NewSaleRecorder(analytics repository.AnalyticsRepository) SideEffect {
	return &saleRecorder{analytics: analytics}
}

func (r *saleRecorder) Name() string { return "sale_analytics" }

func (r *saleRecorder) Apply(ctx context.Context, order *model.Order) error {
	paidAt := time.Now()
	if order.ProcessedAt != nil {
		paidAt = *order.ProcessedAt
	}
	return r.analytics.RecordSale(ctx, &model.Sale{
		OrderID:       order.OrderID,
		Plan:          order.Plan,
		Amount:        order.Amount,
		AffiliateCode: order.AffiliateCode,
		PaidAt:        paidAt,
	})
}

type funnelRecorder struct {
	analytics repository.AnalyticsRepository
}

func NewFunnelRecorder(analytics repository.AnalyticsRepository) SideEffect {
	return &funnelRecorder{analytics: analytics}
}

func (r *funnelRecorder) Name() string { return "funnel_events" }

func (r *funnelRecorder) Apply(ctx context.Context, order *model.Order) error {
	return r.analytics.RecordFunnelEvent(ctx, order.OrderID, FunnelStagePaymentConfirmed)
}
