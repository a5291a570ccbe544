// Package mlclient talks to the external ML forecasting service over
// HTTP. The service owns the quantile-regression models; this client
// only carries the request/response contract.
package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"marketpulse/models"
)

// DefaultTimeout bounds a single forecast request. There are no retries:
// the caller has a cheap rule-based fallback, so one failed attempt
// falls straight through.
const DefaultTimeout = 20 * time.Second

// Client is an HTTP client for the forecasting service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client for the service at baseURL. A non-positive timeout
// falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type salesPoint struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
}

type predictRequest struct {
	ProductID    string       `json:"product_id"`
	SalesData    []salesPoint `json:"sales_data"`
	ForecastDays int          `json:"forecast_days"`
}

// prediction mirrors the service response. Every field beyond date is
// optional; the service may omit any subset.
type prediction struct {
	Date              string   `json:"date"`
	PredictedQuantity *float64 `json:"predicted_quantity"`
	MLP50             *float64 `json:"ml_p50"`
	Confidence        *string  `json:"confidence"`
	LowerBound        *float64 `json:"lower_bound"`
	UpperBound        *float64 `json:"upper_bound"`
}

type predictResponse struct {
	Success     bool         `json:"success"`
	Predictions []prediction `json:"predictions"`
}

// Predict requests a forecast for the next horizonDays. It implements
// intelligence.Forecaster. Network failures, non-2xx statuses, and
// malformed or empty responses all return an error; the caller decides
// how to degrade.
func (c *Client) Predict(ctx context.Context, productID string, history []models.Observation, horizonDays int) ([]models.ForecastPoint, error) {
	reqBody := predictRequest{
		ProductID:    productID,
		ForecastDays: horizonDays,
		SalesData:    make([]salesPoint, 0, len(history)),
	}
	for _, obs := range history {
		reqBody.SalesData = append(reqBody.SalesData, salesPoint{
			Date:     obs.Date.Format("2006-01-02"),
			Quantity: obs.Quantity,
		})
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal forecast request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ml/predict-universal", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build forecast request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("forecast service returned status %d", resp.StatusCode)
	}

	var parsed predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}
	if !parsed.Success || len(parsed.Predictions) == 0 {
		return nil, fmt.Errorf("forecast service returned no predictions")
	}

	points := make([]models.ForecastPoint, 0, len(parsed.Predictions))
	for _, p := range parsed.Predictions {
		point := models.ForecastPoint{
			Date:       p.Date,
			Confidence: "MEDIUM",
			LowerBound: p.LowerBound,
			UpperBound: p.UpperBound,
		}
		switch {
		case p.PredictedQuantity != nil:
			point.PredictedQuantity = *p.PredictedQuantity
		case p.MLP50 != nil:
			point.PredictedQuantity = *p.MLP50
		}
		if p.Confidence != nil && *p.Confidence != "" {
			point.Confidence = *p.Confidence
		}
		points = append(points, point)
	}
	return points, nil
}
