package intelligence

import (
	"context"
	"math"
	"time"

	"marketpulse/config"
	"marketpulse/models"
)

// Model agreement levels recorded per forecast method. The ML path has
// been validated against holdout data by the forecasting service; the
// rule-based projection is a heuristic.
const (
	agreementML       = 0.9
	agreementFallback = 0.5
)

// Engine runs the full analysis pipeline for one product. It holds no
// per-call state: every Analyze call recomputes features from the full
// supplied history, so concurrent analyses of different products need no
// coordination.
type Engine struct {
	cfg        config.IntelligenceConfig
	aggregator *Aggregator
	now        func() time.Time
}

// NewEngine builds an engine. remote may be nil to disable the ML path.
func NewEngine(cfg config.IntelligenceConfig, remote Forecaster, remoteTimeout time.Duration) *Engine {
	return &Engine{
		cfg:        cfg,
		aggregator: NewAggregator(cfg, remote, remoteTimeout),
		now:        time.Now,
	}
}

// WithClock overrides the timestamp source. Tests use this to pin
// LastUpdated.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Analyze turns a product's sales history into the full intelligence
// bundle. The history must be sorted ascending by date; it may contain
// gaps. An empty history fails with ErrInsufficientData; every other
// input produces a complete result, with degraded forecast quality
// reported through the confidence and summary fields rather than errors.
func (e *Engine) Analyze(ctx context.Context, productID, productName string, history []models.Observation) (*models.ProductIntelligence, error) {
	features, err := ComputeFeatures(history, e.cfg)
	if err != nil {
		return nil, err
	}

	momentum := ClassifyMomentum(features.EMA7, features.EMA14, features.EMA30, e.cfg.Momentum)
	burst := DetectBurst(history, e.cfg)
	forecast := e.aggregator.Forecast(ctx, productID, history, features, momentum)
	recommendations := SortRecommendations(GenerateRecommendations(momentum, burst, forecast))

	return &models.ProductIntelligence{
		ProductID:   productID,
		ProductName: productName,
		Realtime: models.RealtimeState{
			Momentum:    momentum,
			Burst:       burst,
			LastUpdated: e.now().UTC(),
		},
		Forecast:        forecast,
		Recommendations: recommendations,
		Confidence:      e.confidence(len(history), forecast.Method),
	}, nil
}

// confidence derives the trust report: data quality saturates at the ML
// history threshold, model agreement reflects the forecast path taken,
// and overall blends the two with data quality weighted more heavily.
func (e *Engine) confidence(historyLen int, method string) models.ConfidenceReport {
	dataQuality := float64(historyLen) / float64(e.cfg.Forecast.MinHistoryForML)
	if dataQuality > 1 {
		dataQuality = 1
	}

	agreement := agreementFallback
	if method == models.MethodMLQuantile {
		agreement = agreementML
	}

	overall := 0.6*dataQuality + 0.4*agreement
	return models.ConfidenceReport{
		Overall:        round2(overall),
		DataQuality:    round2(dataQuality),
		ModelAgreement: agreement,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
