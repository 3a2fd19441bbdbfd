package repository

import (
	"context"
	"errors"
	"fmt"
	"plan-fulfillment/internal/model"
	"time"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByOrderID(ctx context.Context, orderID string) (*model.Order, error)
	Reserve(ctx context.Context, orderID string) error
	MarkPaid(ctx context.Context, orderID string) (*model.Order, error)
	MarkFailed(ctx context.Context, orderID string) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, order *model.Order) error {
	order.Status = model.OrderStatusPending
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&order).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// Reserve claims the order for the calling worker. The transition is a
// single conditional UPDATE so two concurrent webhooks can never both
// observe PENDING and both proceed; the loser sees zero affected rows.
func (r *orderRepoImpl) Reserve(ctx context.Context, orderID string) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ? AND status = ?", orderID, model.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":     model.OrderStatusProcessing,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReservationConflict
	}
	return nil
}

func (r *orderRepoImpl) MarkPaid(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		result := tx.Model(&model.Order{}).
			Where("order_id = ? AND status = ?", orderID, model.OrderStatusProcessing).
			Updates(map[string]interface{}{
				"status":       model.OrderStatusPaid,
				"processed_at": now,
				"updated_at":   now,
			})

		if result.Error != nil {
			return result.Error
		}

		if err := tx.Where("order_id = ?", orderID).First(&order).Error; err != nil {
			return err
		}

		if result.RowsAffected == 0 {
			// Already PAID is a harmless repeat; anything else means the
			// caller skipped the reservation step.
			if order.Status == model.OrderStatusPaid {
				return nil
			}
			return fmt.Errorf("mark paid: order %s in status %s", orderID, order.Status)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepoImpl) MarkFailed(ctx context.Context, orderID string) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ? AND status = ?", orderID, model.OrderStatusProcessing).
		Updates(map[string]interface{}{
			"status":     model.OrderStatusFailed,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("mark failed: order %s not in PROCESSING", orderID)
	}
	return nil
}
