package tax

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

const (
	defaultBaseURL = "https://api.api-ninjas.com/v1/salestax"

	requestTimeout = 10 * time.Second
)

// Client looks up combined sales-tax rates by postal code through the
// API Ninjas salestax endpoint.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// rateRecord is one element of the API's response array. The API
// emits total_rate as a quoted decimal string; decimal.Decimal
// accepts either form.
type rateRecord struct {
	ZipCode   string          `json:"zip_code"`
	TotalRate decimal.Decimal `json:"total_rate"`
}

// RateForZip returns the combined rate for a postal code, taking the
// first record when the API reports several jurisdictions.
func (c *Client) RateForZip(ctx context.Context, zip string) (decimal.Decimal, error) {
	reqURL := c.baseURL + "?zip_code=" + url.QueryEscape(zip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("calling tax service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("tax service returned status %d", resp.StatusCode)
	}

	var records []rateRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return decimal.Zero, fmt.Errorf("decoding tax response: %w", err)
	}
	if len(records) == 0 {
		return decimal.Zero, fmt.Errorf("no tax rate found for zip %s", zip)
	}

	return records[0].TotalRate, nil
}
