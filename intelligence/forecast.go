package intelligence

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"marketpulse/config"
	"marketpulse/models"
)

// Forecaster is the contract with the external quantile forecasting
// service. Implementations perform a single attempt; the aggregator
// treats any error as a signal to fall back, never as a failure.
type Forecaster interface {
	Predict(ctx context.Context, productID string, history []models.Observation, horizonDays int) ([]models.ForecastPoint, error)
}

// Aggregator produces the forecast bundle for a product, delegating to
// the remote ML service when enough history exists and degrading to the
// rule-based projection otherwise.
type Aggregator struct {
	cfg     config.IntelligenceConfig
	remote  Forecaster
	timeout time.Duration
}

// NewAggregator builds an aggregator. remote may be nil, in which case
// every forecast uses the rule-based path.
func NewAggregator(cfg config.IntelligenceConfig, remote Forecaster, timeout time.Duration) *Aggregator {
	return &Aggregator{cfg: cfg, remote: remote, timeout: timeout}
}

// Forecast returns predictions for the configured horizon. It never
// returns an error: remote failures, timeouts and malformed responses
// all degrade to the rule-based path, recorded in Method and Summary.
func (a *Aggregator) Forecast(ctx context.Context, productID string, history []models.Observation, f *Features, momentum models.Momentum) models.ForecastData {
	horizon := a.cfg.Forecast.HorizonDays

	// No history means no projection anchor. The rule-based path needs
	// the last observed date, so return an empty bundle instead.
	if len(history) == 0 {
		data := models.ForecastData{
			Predictions: []models.ForecastPoint{},
			Trend:       models.TrendStable,
			Method:      models.MethodRuleBasedFallback,
		}
		data.Summary = a.buildSummary(data, 0)
		return data
	}

	var predictions []models.ForecastPoint
	method := models.MethodRuleBasedFallback

	if a.remote != nil && len(history) >= a.cfg.Forecast.MinHistoryForML {
		remoteCtx, cancel := context.WithTimeout(ctx, a.timeout)
		preds, err := a.remote.Predict(remoteCtx, productID, history, horizon)
		cancel()
		switch {
		case err != nil:
			log.Printf("[FORECAST] ML service unavailable for %s, using rule-based fallback: %v", productID, err)
		case len(preds) != horizon:
			log.Printf("[FORECAST] ML service returned %d predictions for %s, expected %d; using rule-based fallback", len(preds), productID, horizon)
		default:
			predictions = preds
			method = models.MethodMLQuantile
		}
	}

	if predictions == nil {
		predictions = a.ruleBasedForecast(history, f, momentum)
	}

	data := models.ForecastData{
		Predictions: predictions,
		Method:      method,
	}
	for _, p := range predictions {
		data.TotalForecast += p.PredictedQuantity
	}
	data.Trend = classifyTrend(predictions, a.cfg.Forecast.TrendTolerance)
	data.Summary = a.buildSummary(data, len(history))
	return data
}

// ruleBasedForecast projects each future date as baseline(date) scaled by
// the combined momentum ratio. This is the system's only approximation
// of trend continuation absent a learned model.
func (a *Aggregator) ruleBasedForecast(history []models.Observation, f *Features, momentum models.Momentum) []models.ForecastPoint {
	horizon := a.cfg.Forecast.HorizonDays
	lastDate := history[len(history)-1].Date

	points := make([]models.ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		date := lastDate.AddDate(0, 0, i)
		predicted := f.Baseline(date) * momentum.Combined
		if predicted < 0 {
			predicted = 0
		}
		points = append(points, models.ForecastPoint{
			Date:              date.Format("2006-01-02"),
			PredictedQuantity: math.Round(predicted*100) / 100,
			Confidence:        "LOW",
		})
	}
	return points
}

// classifyTrend compares the first and last predicted quantities with a
// relative tolerance.
func classifyTrend(predictions []models.ForecastPoint, tolerance float64) string {
	if len(predictions) < 2 {
		return models.TrendStable
	}
	first := predictions[0].PredictedQuantity
	last := predictions[len(predictions)-1].PredictedQuantity
	if first <= 0 {
		if last > 0 {
			return models.TrendIncreasing
		}
		return models.TrendStable
	}
	switch {
	case last > first*(1+tolerance):
		return models.TrendIncreasing
	case last < first*(1-tolerance):
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

func (a *Aggregator) buildSummary(data models.ForecastData, historyLen int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Expected to sell about %.0f units over the next %d days; trend %s.",
		data.TotalForecast, len(data.Predictions), strings.ToLower(data.Trend))
	if data.Method == models.MethodRuleBasedFallback {
		b.WriteString(" Generated by the rule-based model.")
	}
	if historyLen < a.cfg.Forecast.MinHistoryForML {
		fmt.Fprintf(&b, " Based on only %d days of sales history; forecast quality is limited.", historyLen)
	}
	return b.String()
}
