package handler

import (
	"errors"
	"net/http"
	"time"

	"plan-fulfillment/internal/dto"
	"plan-fulfillment/internal/model"
	"plan-fulfillment/internal/repository"
	"plan-fulfillment/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.orderService.PlaceOrder(ctx, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, toOrderResponse(order))
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderService.GetOrder(ctx, c.Param("order_id"))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, toOrderResponse(order))
}

func toOrderResponse(order *model.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		OrderID: order.OrderID,
		Plan:    order.Plan,
		Status:  order.Status,
		Amount:  order.Amount,
	}
	if order.ProcessedAt != nil {
		ts := order.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &ts
	}
	return resp
}
