package dto

import "github.com/shopspring/decimal"

// PaymentNotification is the gateway's webhook payload.
type PaymentNotification struct {
	TransactionNSU string          `json:"transaction_nsu"`
	OrderNSU       string          `json:"order_nsu"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
}

type WebhookResponse struct {
	Status string `json:"status"`
}

type PlaceOrderRequest struct {
	OrderID       string          `json:"order_id"`
	Plan          string          `json:"plan"`
	CustomerEmail string          `json:"customer_email"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	AffiliateCode string          `json:"affiliate_code"`
	Amount        decimal.Decimal `json:"amount"`
}

type OrderResponse struct {
	OrderID     string          `json:"order_id"`
	Plan        string          `json:"plan"`
	Status      string          `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	ProcessedAt *string         `json:"processed_at,omitempty"`
}
