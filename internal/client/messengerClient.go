package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"plan-fulfillment/internal/config"
	"time"
)

// Messenger delivers a text message to a phone number through the
// messaging gateway's HTTP API.
type Messenger interface {
	SendText(ctx context.Context, phone, text string) error
}

type messengerClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	token      string
}

func NewMessengerClient(cfg *config.Messaging) Messenger {
	return &messengerClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: cfg.BaseAPIURL,
		token:      cfg.Token,
	}
}

func (c *messengerClientImpl) SendText(ctx context.Context, phone, text string) error {
	payload := map[string]string{
		"phone":   phone,
		"message": text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal message payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseApiURL+"/v1/messages",
		bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("messaging gateway returned status %d", resp.StatusCode)
	}
	return nil
}
