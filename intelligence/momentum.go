package intelligence

import (
	"marketpulse/config"
	"marketpulse/models"
)

// ClassifyMomentum turns the EMA triple into windowed trend ratios and a
// status label. Each ratio divides a shorter EMA by the 30-day EMA with
// an epsilon guard, clamped to [0, RatioCap]. The combined ratio is a
// weighted blend favoring the short window.
func ClassifyMomentum(ema7, ema14, ema30 float64, cfg config.MomentumConfig) models.Momentum {
	m := models.Momentum{
		Momentum7:  windowRatio(ema7, ema30, cfg),
		Momentum14: windowRatio(ema14, ema30, cfg),
		Momentum30: windowRatio(ema30, ema30, cfg),
	}
	m.Combined = cfg.WeightShort*m.Momentum7 +
		cfg.WeightMedium*m.Momentum14 +
		cfg.WeightLong*m.Momentum30
	m.Status = momentumStatus(m.Combined, cfg)
	return m
}

func windowRatio(short, long float64, cfg config.MomentumConfig) float64 {
	denom := long
	if denom < cfg.Epsilon {
		denom = cfg.Epsilon
	}
	ratio := short / denom
	if ratio < 0 {
		return 0
	}
	if ratio > cfg.RatioCap {
		return cfg.RatioCap
	}
	return ratio
}

// momentumStatus maps the combined ratio onto a status label. Lower
// bounds are inclusive, so a ratio equal to a threshold lands in the
// higher bucket.
func momentumStatus(combined float64, cfg config.MomentumConfig) string {
	switch {
	case combined >= cfg.TrendingUpThreshold:
		return models.MomentumTrendingUp
	case combined >= cfg.GrowingThreshold:
		return models.MomentumGrowing
	case combined >= cfg.StableThreshold:
		return models.MomentumStable
	case combined >= cfg.DecliningThreshold:
		return models.MomentumDeclining
	default:
		return models.MomentumFalling
	}
}
