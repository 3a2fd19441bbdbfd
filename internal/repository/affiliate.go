package repository

import (
	"context"
	"errors"
	"plan-fulfillment/internal/model"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AffiliateRepository interface {
	Create(ctx context.Context, affiliate *model.Affiliate) error
	FindByCode(ctx context.Context, code string) (*model.Affiliate, error)
	// Credit appends a ledger entry and bumps the affiliate balance in one
	// transaction. A repeat credit for the same (code, order, kind) hits
	// the ledger's unique index and is a no-op, so callers may safely
	// invoke it at-least-once.
	Credit(ctx context.Context, code, orderID, kind string, amount decimal.Decimal) error
}

type affiliateRepoImpl struct {
	db *gorm.DB
}

func NewAffiliateRepository(db *gorm.DB) AffiliateRepository {
	return &affiliateRepoImpl{
		db: db,
	}
}

func (r *affiliateRepoImpl) Create(ctx context.Context, affiliate *model.Affiliate) error {
	return r.db.WithContext(ctx).Create(affiliate).Error
}

func (r *affiliateRepoImpl) FindByCode(ctx context.Context, code string) (*model.Affiliate, error) {
	var affiliate model.Affiliate
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&affiliate).Error

	if err != nil {
		return nil, err
	}

	return &affiliate, nil
}

func (r *affiliateRepoImpl) Credit(ctx context.Context, code, orderID, kind string, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&model.Commission{
			AffiliateCode: code,
			OrderID:       orderID,
			Kind:          kind,
			Amount:        amount,
		}).Error

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// already credited by an earlier delivery
			return nil
		}
		if err != nil {
			return err
		}

		return tx.Model(&model.Affiliate{}).
			Where("code = ?", code).
			Updates(map[string]interface{}{
				"balance":    gorm.Expr("balance + ?", amount),
				"updated_at": time.Now(),
			}).Error
	})
}
