package sideeffect

import (
	"context"
	"path/filepath"
	"testing"

	"plan-fulfillment/internal/model"
	"plan-fulfillment/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Customer{},
		&model.Affiliate{},
		&model.Commission{},
		&model.Sale{},
		&model.FunnelEvent{},
	))
	return db
}

func seedAffiliates(t *testing.T, affiliates repository.AffiliateRepository) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, affiliates.Create(ctx, &model.Affiliate{
		Code:           "mentor",
		Email:          "mentor@example.com",
		CommissionRate: decimal.RequireFromString("0.40"),
		Balance:        decimal.Zero,
	}))
	require.NoError(t, affiliates.Create(ctx, &model.Affiliate{
		Code:           "coach",
		Email:          "coach@example.com",
		CommissionRate: decimal.RequireFromString("0.30"),
		Balance:        decimal.Zero,
		ReferredBy:     "mentor",
	}))
}

func paidOrder(affiliateCode string) *model.Order {
	return &model.Order{
		OrderID:       "ord-1",
		Plan:          "premium",
		CustomerEmail: "buyer@example.com",
		CustomerName:  "Buyer",
		AffiliateCode: affiliateCode,
		Amount:        decimal.RequireFromString("100.00"),
		Status:        model.OrderStatusPaid,
	}
}

func TestCommissionCredit(t *testing.T) {
	affiliates := repository.NewAffiliateRepository(newTestDB(t))
	seedAffiliates(t, affiliates)
	eff := NewCommissionCredit(affiliates)
	ctx := context.Background()

	require.NoError(t, eff.Apply(ctx, paidOrder("coach")))

	coach, err := affiliates.FindByCode(ctx, "coach")
	require.NoError(t, err)
	assert.True(t, coach.Balance.Equal(decimal.RequireFromString("30.00")), "balance is %s", coach.Balance)

	// at-least-once invocation must not double-credit
	require.NoError(t, eff.Apply(ctx, paidOrder("coach")))
	coach, err = affiliates.FindByCode(ctx, "coach")
	require.NoError(t, err)
	assert.True(t, coach.Balance.Equal(decimal.RequireFromString("30.00")))
}

func TestCommissionCredit_NoAffiliate(t *testing.T) {
	affiliates := repository.NewAffiliateRepository(newTestDB(t))
	eff := NewCommissionCredit(affiliates)

	assert.NoError(t, eff.Apply(context.Background(), paidOrder("")))
}

func TestCommissionCredit_UnknownAffiliate(t *testing.T) {
	affiliates := repository.NewAffiliateRepository(newTestDB(t))
	eff := NewCommissionCredit(affiliates)

	assert.Error(t, eff.Apply(context.Background(), paidOrder("ghost")))
}

func TestReferralBonus(t *testing.T) {
	affiliates := repository.NewAffiliateRepository(newTestDB(t))
	seedAffiliates(t, affiliates)
	eff := NewReferralBonus(affiliates, decimal.RequireFromString("0.05"))
	ctx := context.Background()

	require.NoError(t, eff.Apply(ctx, paidOrder("coach")))

	mentor, err := affiliates.FindByCode(ctx, "mentor")
	require.NoError(t, err)
	assert.True(t, mentor.Balance.Equal(decimal.RequireFromString("5.00")), "balance is %s", mentor.Balance)
}

func TestReferralBonus_NoReferrer(t *testing.T) {
	affiliates := repository.NewAffiliateRepository(newTestDB(t))
	seedAffiliates(t, affiliates)
	eff := NewReferralBonus(affiliates, decimal.RequireFromString("0.05"))
	ctx := context.Background()

	// mentor was not recruited by anyone
	require.NoError(t, eff.Apply(ctx, paidOrder("mentor")))

	mentor, err := affiliates.FindByCode(ctx, "mentor")
	require.NoError(t, err)
	assert.True(t, mentor.Balance.IsZero())
}
