package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"farehub/internal/models"
	"farehub/internal/money"
)

// PaymentsClient delivers charge requests to the external payments system.
// The core does not inspect settlement results; a charge either reaches the
// payments API or the failure is logged for the next cycle's reconciliation.
type PaymentsClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

type chargeRequest struct {
	CustomerID int64            `json:"customer_id"`
	CardID     string           `json:"card_id"`
	Journeys   []models.Journey `json:"journeys"`
	Amount     money.Amount     `json:"amount"`
}

// NewPaymentsClient returns HTTP client wrapper. An empty baseURL disables
// delivery, which keeps local development free of a payments dependency.
func NewPaymentsClient(baseURL string, logger *zap.Logger) *PaymentsClient {
	return &PaymentsClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Charge posts one customer's cycle total to the payments API.
func (c *PaymentsClient) Charge(ctx context.Context, customer models.Customer, journeys []models.Journey, amount money.Amount) error {
	if c.baseURL == "" {
		c.logger.Debug("payments client disabled, skip charge",
			zap.Int64("customer_id", customer.ID),
			zap.String("amount", amount.String()),
		)
		return nil
	}

	if journeys == nil {
		journeys = []models.Journey{}
	}
	return c.post(ctx, "/v1/charges", chargeRequest{
		CustomerID: customer.ID,
		CardID:     customer.CardID.String(),
		Journeys:   journeys,
		Amount:     amount,
	})
}

func (c *PaymentsClient) post(ctx context.Context, path string, body interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", c.baseURL, path), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("payments request failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		c.logger.Warn("payments returned non-success", zap.Int("status", resp.StatusCode))
	}
	return nil
}
