package repository

import (
	"context"
	"plan-fulfillment/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnalyticsRepository interface {
	RecordSale(ctx context.Context, sale *model.Sale) error
	RecordFunnelEvent(ctx context.Context, orderID, stage string) error
}

type analyticsRepoImpl struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepoImpl{
		db: db,
	}
}

func (r *analyticsRepoImpl) RecordSale(ctx context.Context, sale *model.Sale) error {
	// keyed by order id; a redelivered webhook must not double-count
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		DoNothing: true,
	}).Create(sale).Error
}

func (r *analyticsRepoImpl) RecordFunnelEvent(ctx context.Context, orderID, stage string) error {
	return r.db.WithContext(ctx).Create(&model.FunnelEvent{
		OrderID: orderID,
		Stage:   stage,
	}).Error
}
