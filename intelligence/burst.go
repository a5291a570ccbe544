package intelligence

import (
	"marketpulse/config"
	"marketpulse/models"
)

// DetectBurst compares the latest observation against the baseline built
// from everything before it, so a spike cannot inflate its own expected
// value. Score is latest quantity / baseline(latest date) with an
// epsilon guard; severity follows the ascending thresholds in cfg with
// inclusive lower bounds.
//
// Classification separates sustained demand from one-off noise: when the
// previous observation also scores at or above the elevated threshold
// the burst is a VIRAL_SPIKE; otherwise it is an ISOLATED_SPIKE. A
// NORMAL-severity result carries no classification.
func DetectBurst(history []models.Observation, cfg config.IntelligenceConfig) models.Burst {
	if len(history) == 0 {
		return models.Burst{Score: 0, Severity: models.BurstNormal}
	}

	// Baseline window excludes the latest observation when possible.
	window := history
	if len(history) >= 2 {
		window = history[:len(history)-1]
	}
	f, err := ComputeFeatures(window, cfg)
	if err != nil {
		return models.Burst{Score: 0, Severity: models.BurstNormal}
	}

	latest := history[len(history)-1]
	b := models.Burst{
		Score: burstScore(latest, f, cfg.Burst),
	}
	b.Severity = burstSeverity(b.Score, cfg.Burst)

	if b.Severity != models.BurstNormal {
		b.Classification = models.BurstIsolatedSpike
		if len(history) >= 2 {
			prev := history[len(history)-2]
			if burstScore(prev, f, cfg.Burst) >= cfg.Burst.ElevatedThreshold {
				b.Classification = models.BurstViralSpike
			}
		}
	}

	return b
}

func burstScore(obs models.Observation, f *Features, cfg config.BurstConfig) float64 {
	baseline := f.Baseline(obs.Date)
	if baseline < cfg.Epsilon {
		baseline = cfg.Epsilon
	}
	score := obs.Quantity / baseline
	if score < 0 {
		return 0
	}
	return score
}

func burstSeverity(score float64, cfg config.BurstConfig) string {
	switch {
	case score >= cfg.CriticalThreshold:
		return models.BurstCritical
	case score >= cfg.HighThreshold:
		return models.BurstHigh
	case score >= cfg.ElevatedThreshold:
		return models.BurstElevated
	default:
		return models.BurstNormal
	}
}
