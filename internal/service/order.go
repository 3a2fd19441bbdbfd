package service

import (
	"context"
	"fmt"

	"plan-fulfillment/internal/dto"
	"plan-fulfillment/internal/model"
	"plan-fulfillment/internal/repository"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, req *dto.PlaceOrderRequest) (*model.Order, error)
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
}

type orderServiceImpl struct {
	orders repository.OrderRepository
}

func NewOrderService(orders repository.OrderRepository) OrderService {
	return &orderServiceImpl{
		orders: orders,
	}
}

// PlaceOrder records the purchase intent. The order sits in PENDING
// until the gateway's webhook confirms payment.
func (s *orderServiceImpl) PlaceOrder(ctx context.Context, req *dto.PlaceOrderRequest) (*model.Order, error) {
	if req.OrderID == "" || req.Plan == "" || req.CustomerEmail == "" {
		return nil, fmt.Errorf("order_id, plan and customer_email are required")
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, fmt.Errorf("amount must be positive")
	}

	order := &model.Order{
		OrderID:       req.OrderID,
		Plan:          req.Plan,
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		AffiliateCode: req.AffiliateCode,
		Amount:        req.Amount,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}
	return order, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return s.orders.FindByOrderID(ctx, orderID)
}
