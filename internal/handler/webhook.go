package handler

import (
	"errors"
	"net/http"

	"plan-fulfillment/internal/dto"
	"plan-fulfillment/internal/repository"
	"plan-fulfillment/internal/service"

	"github.com/labstack/echo/v4"
)

type WebhookHandler struct {
	fulfillmentService service.FulfillmentService
}

func NewWebhookHandler(fulfillmentService service.FulfillmentService) *WebhookHandler {
	return &WebhookHandler{
		fulfillmentService: fulfillmentService,
	}
}

// PaymentWebhook accepts the gateway's payment confirmation. Repeated
// and already-handled deliveries still answer 200 so the gateway stops
// retrying; only bad input and unknown orders surface as errors.
func (h *WebhookHandler) PaymentWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	var payload dto.PaymentNotification
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid webhook payload")
	}
	if payload.TransactionNSU == "" || payload.OrderNSU == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "transaction_nsu and order_nsu are required")
	}

	outcome, err := h.fulfillmentService.HandlePaymentConfirmed(ctx, &payload)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return err
	}

	c.Response().Header().Set("X-Fulfillment-Outcome", string(outcome))
	return c.JSON(http.StatusOK, dto.WebhookResponse{Status: "ok"})
}
