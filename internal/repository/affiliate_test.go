package repository

import (
	"context"
	"plan-fulfillment/internal/model"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredit_AppliesOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewAffiliateRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Affiliate{
		Code:           "aff-1",
		Email:          "aff@example.com",
		CommissionRate: decimal.RequireFromString("0.30"),
		Balance:        decimal.Zero,
	}))

	amount := decimal.RequireFromString("15.00")
	require.NoError(t, repo.Credit(ctx, "aff-1", "ord-1", model.CommissionKindSale, amount))
	// redelivered webhook credits again; the ledger's unique index absorbs it
	require.NoError(t, repo.Credit(ctx, "aff-1", "ord-1", model.CommissionKindSale, amount))

	aff, err := repo.FindByCode(ctx, "aff-1")
	require.NoError(t, err)
	assert.True(t, aff.Balance.Equal(amount), "balance is %s, want %s", aff.Balance, amount)

	var entries int64
	require.NoError(t, db.Model(&model.Commission{}).Count(&entries).Error)
	assert.EqualValues(t, 1, entries)
}

func TestCredit_DistinctKindsAccumulate(t *testing.T) {
	db := newTestDB(t)
	repo := NewAffiliateRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Affiliate{
		Code:           "aff-1",
		Email:          "aff@example.com",
		CommissionRate: decimal.RequireFromString("0.30"),
		Balance:        decimal.Zero,
	}))

	require.NoError(t, repo.Credit(ctx, "aff-1", "ord-1", model.CommissionKindSale, decimal.RequireFromString("15.00")))
	require.NoError(t, repo.Credit(ctx, "aff-1", "ord-1", model.CommissionKindReferral, decimal.RequireFromString("2.50")))

	aff, err := repo.FindByCode(ctx, "aff-1")
	require.NoError(t, err)
	assert.True(t, aff.Balance.Equal(decimal.RequireFromString("17.50")), "balance is %s", aff.Balance)
}
