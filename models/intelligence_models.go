package models

import "time"

// Observation is a single day of sales history for one product.
// Gaps in the series mean "no data for that date", never a sale of zero.
type Observation struct {
	Date     time.Time `json:"date"`
	Quantity float64   `json:"quantity"`
}

// Momentum status labels. These strings are part of the frontend contract.
const (
	MomentumTrendingUp = "TRENDING_UP"
	MomentumGrowing    = "GROWING"
	MomentumStable     = "STABLE"
	MomentumDeclining  = "DECLINING"
	MomentumFalling    = "FALLING"
)

// Burst severity labels, in ascending order of concern.
const (
	BurstNormal   = "NORMAL"
	BurstElevated = "ELEVATED"
	BurstHigh     = "HIGH"
	BurstCritical = "CRITICAL"
)

// Burst classification labels.
const (
	BurstViralSpike    = "VIRAL_SPIKE"
	BurstIsolatedSpike = "ISOLATED_SPIKE"
)

// Forecast trend labels.
const (
	TrendIncreasing = "INCREASING"
	TrendDecreasing = "DECREASING"
	TrendStable     = "STABLE"
)

// Forecast method labels.
const (
	MethodMLQuantile        = "ml_quantile"
	MethodRuleBasedFallback = "rule_based_fallback"
)

// Recommendation priority labels.
const (
	PriorityUrgent = "URGENT"
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// Momentum holds the windowed trend ratios for a product and the status
// label derived from the combined ratio.
type Momentum struct {
	Momentum7  float64 `json:"momentum7"`
	Momentum14 float64 `json:"momentum14"`
	Momentum30 float64 `json:"momentum30"`
	Combined   float64 `json:"combined"`
	Status     string  `json:"status"`
}

// Burst describes how far the latest observation sits above its expected
// baseline. Classification is empty when the series is unremarkable.
type Burst struct {
	Score          float64 `json:"score"`
	Severity       string  `json:"severity"`
	Classification string  `json:"classification,omitempty"`
}

// ForecastPoint is the prediction for a single future date.
type ForecastPoint struct {
	Date              string   `json:"date"`
	PredictedQuantity float64  `json:"predicted_quantity"`
	Confidence        string   `json:"confidence"`
	LowerBound        *float64 `json:"lower_bound,omitempty"`
	UpperBound        *float64 `json:"upper_bound,omitempty"`
}

// ForecastData is the full forecast bundle for the requested horizon.
type ForecastData struct {
	Predictions   []ForecastPoint `json:"predictions"`
	Trend         string          `json:"trend"`
	Method        string          `json:"method"`
	TotalForecast float64         `json:"total_forecast"`
	Summary       string          `json:"summary"`
}

// Recommendation is a single actionable suggestion for the merchant.
type Recommendation struct {
	Type       string                 `json:"type"`
	Priority   string                 `json:"priority"`
	Message    string                 `json:"message"`
	Actionable bool                   `json:"actionable"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// RealtimeState bundles the signals computed from the latest history.
type RealtimeState struct {
	Momentum    Momentum  `json:"momentum"`
	Burst       Burst     `json:"burst"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// ConfidenceReport qualifies how much trust to place in the analysis.
type ConfidenceReport struct {
	Overall        float64 `json:"overall"`
	DataQuality    float64 `json:"dataQuality"`
	ModelAgreement float64 `json:"modelAgreement"`
}

// ProductIntelligence is the aggregate analysis result for one product.
// It is fully reconstructible from (productId, productName, salesHistory).
type ProductIntelligence struct {
	ProductID       string           `json:"productId"`
	ProductName     string           `json:"productName"`
	Realtime        RealtimeState    `json:"realtime"`
	Forecast        ForecastData     `json:"forecast"`
	Recommendations []Recommendation `json:"recommendations"`
	Confidence      ConfidenceReport `json:"confidence"`
}
