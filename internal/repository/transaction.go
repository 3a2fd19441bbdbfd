package repository

import (
	"context"
	"errors"
	"plan-fulfillment/internal/model"

	"gorm.io/gorm"
)

type TransactionRepository interface {
	// Exists is a fast early-exit check. It is not race-safe on its own:
	// two concurrent requests can both see false before either inserts.
	Exists(ctx context.Context, transactionNSU string) (bool, error)
	// MarkProcessed is the authoritative dedup point: an atomic unique
	// insert that fails with ErrDuplicateTransaction for the loser.
	MarkProcessed(ctx context.Context, transactionNSU string) error
}

type transactionRepoImpl struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepoImpl{db: db}
}

func (r *transactionRepoImpl) Exists(ctx context.Context, transactionNSU string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ProcessedTransaction{}).
		Where("transaction_nsu = ?", transactionNSU).
		Count(&count).Error

	return count > 0, err
}

func (r *transactionRepoImpl) MarkProcessed(ctx context.Context, transactionNSU string) error {
	err := r.db.WithContext(ctx).Create(&model.ProcessedTransaction{
		TransactionNSU: transactionNSU,
	}).Error

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateTransaction
	}
	return err
}
