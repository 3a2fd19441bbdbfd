package sideeffect

import (
	"context"
	"testing"
	"time"

	"plan-fulfillment/internal/model"
	"plan-fulfillment/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleRecorder_AtLeastOnceSafe(t *testing.T) {
	db := newTestDB(t)
	eff := NewSaleRecorder(repository.NewAnalyticsRepository(db))
	ctx := context.Background()

	now := time.Now()
	order := paidOrder("coach")
	order.ProcessedAt = &now

	require.NoError(t, eff.Apply(ctx, order))
	require.NoError(t, eff.Apply(ctx, order))

	var count int64
	require.NoError(t, db.Model(&model.Sale{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "a redelivered webhook must not double-count the sale")

	var sale model.Sale
	require.NoError(t, db.First(&sale).Error)
	assert.Equal(t, "premium", sale.Plan)
	assert.Equal(t, "coach", sale.AffiliateCode)
}

func TestFunnelRecorder(t *testing.T) {
	db := newTestDB(t)
	eff := NewFunnelRecorder(repository.NewAnalyticsRepository(db))

	require.NoError(t, eff.Apply(context.Background(), paidOrder("")))

	var event model.FunnelEvent
	require.NoError(t, db.First(&event).Error)
	assert.Equal(t, "ord-1", event.OrderID)
	assert.Equal(t, FunnelStagePaymentConfirmed, event.Stage)
}

func TestAccountProvisioner_UpsertsByEmail(t *testing.T) {
	db := newTestDB(t)
	customers := repository.NewCustomerRepository(db)
	eff := NewAccountProvisioner(customers)
	ctx := context.Background()

	require.NoError(t, eff.Apply(ctx, paidOrder("")))
	require.NoError(t, eff.Apply(ctx, paidOrder("")))

	var count int64
	require.NoError(t, db.Model(&model.Customer{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	got, err := customers.FindByEmail(ctx, "buyer@example.com")
	require.NoError(t, err)
	assert.Equal(t, "premium", got.Plan)
}
