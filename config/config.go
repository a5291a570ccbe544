package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config struct holds application configuration
// This is a simple way to make config accessible globally.
// A more advanced approach might use dependency injection.
type Config struct {
	JWTSecret    string
	MLServiceURL string
	MLTimeout    time.Duration
	GeminiAPIKey string
	Intelligence IntelligenceConfig
}

// AppConfig holds the application-wide configuration
var AppConfig Config

// MomentumConfig holds the tunables for the momentum classifier.
type MomentumConfig struct {
	// Epsilon guards ratio denominators against near-zero baselines.
	Epsilon float64 `yaml:"epsilon"`
	// RatioCap clamps window ratios so pathological values cannot
	// dominate downstream scoring.
	RatioCap float64 `yaml:"ratio_cap"`
	// Blend weights for the 7/14/30 day ratios. Must sum to 1.
	WeightShort  float64 `yaml:"weight_short"`
	WeightMedium float64 `yaml:"weight_medium"`
	WeightLong   float64 `yaml:"weight_long"`
	// Status thresholds on the combined ratio. Lower bounds are
	// inclusive; a value equal to a threshold lands in the higher bucket.
	TrendingUpThreshold float64 `yaml:"trending_up_threshold"`
	GrowingThreshold    float64 `yaml:"growing_threshold"`
	StableThreshold     float64 `yaml:"stable_threshold"`
	DecliningThreshold  float64 `yaml:"declining_threshold"`
}

// BurstConfig holds the tunables for the burst detector.
type BurstConfig struct {
	Epsilon           float64 `yaml:"epsilon"`
	ElevatedThreshold float64 `yaml:"elevated_threshold"`
	HighThreshold     float64 `yaml:"high_threshold"`
	CriticalThreshold float64 `yaml:"critical_threshold"`
}

// PaydayConfig describes the fixed late-month window where demand is
// boosted by salary payouts. The window wraps around month end: a day is
// inside it when day >= StartDay or day <= EndDay.
type PaydayConfig struct {
	StartDay int     `yaml:"start_day"`
	EndDay   int     `yaml:"end_day"`
	Factor   float64 `yaml:"factor"`
}

// ForecastConfig holds the tunables for the forecast aggregator.
type ForecastConfig struct {
	HorizonDays     int     `yaml:"horizon_days"`
	MinHistoryForML int     `yaml:"min_history_for_ml"`
	TrendTolerance  float64 `yaml:"trend_tolerance"`
}

// IntelligenceConfig groups every threshold used by the intelligence
// pipeline so they can be tuned and tested independently of the scoring
// logic. Overrides load from an optional YAML file.
type IntelligenceConfig struct {
	Momentum MomentumConfig `yaml:"momentum"`
	Burst    BurstConfig    `yaml:"burst"`
	Payday   PaydayConfig   `yaml:"payday"`
	Forecast ForecastConfig `yaml:"forecast"`
}

// DefaultIntelligence returns the documented default thresholds.
func DefaultIntelligence() IntelligenceConfig {
	return IntelligenceConfig{
		Momentum: MomentumConfig{
			Epsilon:             0.001,
			RatioCap:            5.0,
			WeightShort:         0.5,
			WeightMedium:        0.3,
			WeightLong:          0.2,
			TrendingUpThreshold: 1.3,
			GrowingThreshold:    1.1,
			StableThreshold:     0.9,
			DecliningThreshold:  0.7,
		},
		Burst: BurstConfig{
			Epsilon:           0.001,
			ElevatedThreshold: 1.5,
			HighThreshold:     2.5,
			CriticalThreshold: 4.0,
		},
		Payday: PaydayConfig{
			StartDay: 25,
			EndDay:   5,
			Factor:   1.25,
		},
		Forecast: ForecastConfig{
			HorizonDays:     7,
			MinHistoryForML: 30,
			TrendTolerance:  0.05,
		},
	}
}

// LoadIntelligence returns the defaults, optionally overridden by the
// YAML file at path. An empty path means defaults only. Malformed or
// inconsistent values are a startup failure, never a per-call condition.
func LoadIntelligence(path string) (IntelligenceConfig, error) {
	cfg := DefaultIntelligence()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read intelligence config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse intelligence config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks threshold ordering and guard values.
func (c IntelligenceConfig) Validate() error {
	m := c.Momentum
	if m.Epsilon <= 0 {
		return fmt.Errorf("momentum epsilon must be positive, got %v", m.Epsilon)
	}
	if m.RatioCap <= 1 {
		return fmt.Errorf("momentum ratio_cap must exceed 1, got %v", m.RatioCap)
	}
	weightSum := m.WeightShort + m.WeightMedium + m.WeightLong
	if weightSum < 0.999 || weightSum > 1.001 {
		return fmt.Errorf("momentum weights must sum to 1, got %v", weightSum)
	}
	if !(m.DecliningThreshold < m.StableThreshold &&
		m.StableThreshold < m.GrowingThreshold &&
		m.GrowingThreshold < m.TrendingUpThreshold) {
		return fmt.Errorf("momentum thresholds must be strictly ascending")
	}
	b := c.Burst
	if b.Epsilon <= 0 {
		return fmt.Errorf("burst epsilon must be positive, got %v", b.Epsilon)
	}
	if !(b.ElevatedThreshold < b.HighThreshold && b.HighThreshold < b.CriticalThreshold) {
		return fmt.Errorf("burst thresholds must be strictly ascending")
	}
	p := c.Payday
	if p.StartDay < 1 || p.StartDay > 31 || p.EndDay < 1 || p.EndDay > 31 {
		return fmt.Errorf("payday window days must be within 1..31")
	}
	if p.Factor < 1.0 || p.Factor > 2.5 {
		return fmt.Errorf("payday factor must be within 1.0..2.5, got %v", p.Factor)
	}
	f := c.Forecast
	if f.HorizonDays < 1 {
		return fmt.Errorf("forecast horizon_days must be at least 1, got %d", f.HorizonDays)
	}
	if f.MinHistoryForML < 1 {
		return fmt.Errorf("forecast min_history_for_ml must be at least 1, got %d", f.MinHistoryForML)
	}
	if f.TrendTolerance < 0 {
		return fmt.Errorf("forecast trend_tolerance must not be negative, got %v", f.TrendTolerance)
	}
	return nil
}
