package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	sandboxURL    = "https://connect.squareupsandbox.com"
	productionURL = "https://connect.squareup.com"

	squareVersion  = "2024-06-04"
	requestTimeout = 15 * time.Second
)

// Payment is the gateway's record of a completed (or failed) charge.
// It is stored verbatim inside a Sale document.
type Payment struct {
	ID          string `json:"id" bson:"id"`
	Status      string `json:"status" bson:"status"`
	SourceType  string `json:"source_type,omitempty" bson:"source_type,omitempty"`
	AmountMoney Money  `json:"amount_money" bson:"amount_money"`
	ReceiptURL  string `json:"receipt_url,omitempty" bson:"receipt_url,omitempty"`
	CreatedAt   string `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

// CreatePaymentRequest is the body of POST /v2/payments. The
// idempotency key must be fresh per user action so a gateway retry can
// never double-charge.
type CreatePaymentRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	SourceID       string `json:"source_id"`
	AmountMoney    Money  `json:"amount_money"`
	Note           string `json:"note,omitempty"`
}

// APIError is a failure reported by the gateway itself, as opposed to
// a transport failure.
type APIError struct {
	StatusCode int
	Category   string `json:"category"`
	Code       string `json:"code"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("square: %s (%s, http %d)", e.Code, e.Category, e.StatusCode)
}

// Client is a minimal Square Payments API client.
type Client struct {
	accessToken string
	baseURL     string
	http        *http.Client
}

// NewClient builds a client against the sandbox unless environment is
// "production".
func NewClient(accessToken, environment string) *Client {
	base := sandboxURL
	if environment == "production" {
		base = productionURL
	}
	return &Client{
		accessToken: accessToken,
		baseURL:     base,
		http:        &http.Client{Timeout: requestTimeout},
	}
}

type createPaymentResponse struct {
	Payment *Payment   `json:"payment"`
	Errors  []APIError `json:"errors"`
}

// CreatePayment submits a charge and returns the gateway's payment
// record. Gateway rejections come back as *APIError; the caller always
// sees an explicit failure.
func (c *Client) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding payment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/payments", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Square-Version", squareVersion)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling payment gateway: %w", err)
	}
	defer resp.Body.Close()

	var decoded createPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding gateway response: %w", err)
	}

	if len(decoded.Errors) > 0 {
		apiErr := decoded.Errors[0]
		apiErr.StatusCode = resp.StatusCode
		return nil, &apiErr
	}
	if resp.StatusCode != http.StatusOK || decoded.Payment == nil {
		return nil, fmt.Errorf("gateway returned status %d without a payment", resp.StatusCode)
	}

	return decoded.Payment, nil
}
