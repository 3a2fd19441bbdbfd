package sideeffect

import (
	"context"
	"errors"
	"fmt"

	"plan-fulfillment/internal/model"
	"plan-fulfillment/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type commissionCredit struct {
	affiliates repository.AffiliateRepository
}

// NewCommissionCredit credits the selling affiliate its cut of the order
// amount. Orders without an affiliate code are skipped.
func NewCommissionCredit(affiliates repository.AffiliateRepository) SideEffect {
	return &commissionCredit{affiliates: affiliates}
}

func (c *commissionCredit) Name() string { return "affiliate_commission" }

func (c *commissionCredit) Apply(ctx context.Context, order *model.Order) error {
	if order.AffiliateCode == "" {
		return nil
	}

	affiliate, err := c.affiliates.FindByCode(ctx, order.AffiliateCode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("unknown affiliate code %q on order %s", order.AffiliateCode, order.OrderID)
	}
	if err != nil {
		return err
	}

	amount := order.Amount.Mul(affiliate.CommissionRate).Round(2)
	if err := c.affiliates.Credit(ctx, affiliate.Code, order.OrderID, model.CommissionKindSale, amount); err != nil {
		return fmt.Errorf("credit commission to %s: %w", affiliate.Code, err)
	}
	return nil
}

type referralBonus struct {
	affiliates repository.AffiliateRepository
	rate       decimal.Decimal
}

// NewReferralBonus grants the affiliate who recruited the selling
// affiliate a fixed-rate bonus on the order amount.
func NewReferralBonus(affiliates repository.AffiliateRepository, rate decimal.Decimal) SideEffect {
	return &referralBonus{affiliates: affiliates, rate: rate}
}

func (b *referralBonus) Name() string { return "referral_bonus" }

func (b *referralBonus) Apply(ctx context.Context, order *model.Order) error {
	if order.AffiliateCode == "" {
		return nil
	}

	affiliate, err := b.affiliates.FindByCode(ctx, order.AffiliateCode)
	if err != nil {
		return err
	}
	if affiliate.ReferredBy == "" {
		return nil
	}

	bonus := order.Amount.Mul(b.rate).Round(2)
	if err := b.affiliates.Credit(ctx, affiliate.ReferredBy, order.OrderID, model.CommissionKindReferral, bonus); err != nil {
		return fmt.Errorf("credit referral bonus to %s: %w", affiliate.ReferredBy, err)
	}
	return nil
}
