package intelligence

import (
	"testing"
	"time"

	"marketpulse/config"
	"marketpulse/models"

	"github.com/stretchr/testify/assert"
)

// burstStart places the 30-day histories used below so the evaluated
// date falls outside the payday window.
var burstStart = time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

func TestDetectBurstSpikeOnFlatSeries(t *testing.T) {
	cfg := config.DefaultIntelligence()
	quantities := flat(10, 30)
	quantities[29] = 50

	b := DetectBurst(dailyHistory(burstStart, quantities...), cfg)

	// Baseline excludes the spike itself: 29 flat days give baseline 10,
	// so the spike scores 50/10.
	assert.InDelta(t, 5.0, b.Score, 1e-9)
	assert.Equal(t, models.BurstCritical, b.Severity)
	assert.Equal(t, models.BurstIsolatedSpike, b.Classification)
}

func TestDetectBurstSeverityBuckets(t *testing.T) {
	cfg := config.DefaultIntelligence()
	cases := []struct {
		latest       float64
		wantSeverity string
	}{
		{10, models.BurstNormal},
		{14, models.BurstNormal},
		{15, models.BurstElevated}, // threshold is an inclusive lower bound
		{24, models.BurstElevated},
		{25, models.BurstHigh},
		{39, models.BurstHigh},
		{40, models.BurstCritical},
	}
	for _, tc := range cases {
		quantities := flat(10, 30)
		quantities[29] = tc.latest
		b := DetectBurst(dailyHistory(burstStart, quantities...), cfg)
		assert.Equal(t, tc.wantSeverity, b.Severity, "latest=%v score=%v", tc.latest, b.Score)
	}
}

func TestDetectBurstSeverityMonotonic(t *testing.T) {
	cfg := config.DefaultIntelligence()
	rank := map[string]int{
		models.BurstNormal:   0,
		models.BurstElevated: 1,
		models.BurstHigh:     2,
		models.BurstCritical: 3,
	}
	// Raising the latest quantity against a fixed baseline never lowers
	// the severity.
	prev := -1
	for latest := 5.0; latest <= 60; latest += 2.5 {
		quantities := flat(10, 30)
		quantities[29] = latest
		b := DetectBurst(dailyHistory(burstStart, quantities...), cfg)
		assert.GreaterOrEqual(t, rank[b.Severity], prev, "latest=%v", latest)
		prev = rank[b.Severity]
	}
}

func TestDetectBurstNormalHasNoClassification(t *testing.T) {
	cfg := config.DefaultIntelligence()
	b := DetectBurst(dailyHistory(burstStart, flat(10, 30)...), cfg)
	assert.Equal(t, models.BurstNormal, b.Severity)
	assert.Empty(t, b.Classification)
}

func TestDetectBurstViralSpike(t *testing.T) {
	cfg := config.DefaultIntelligence()
	// Two consecutive elevated days: sustained demand, not a one-off.
	quantities := flat(10, 30)
	quantities[28] = 30
	quantities[29] = 35

	b := DetectBurst(dailyHistory(burstStart, quantities...), cfg)
	assert.NotEqual(t, models.BurstNormal, b.Severity)
	assert.Equal(t, models.BurstViralSpike, b.Classification)
}

func TestDetectBurstEmptyHistory(t *testing.T) {
	b := DetectBurst(nil, config.DefaultIntelligence())
	assert.Equal(t, 0.0, b.Score)
	assert.Equal(t, models.BurstNormal, b.Severity)
}

func TestDetectBurstSingleObservation(t *testing.T) {
	// With one observation the baseline is the observation itself, so the
	// score is 1 and nothing can look like a burst.
	b := DetectBurst(dailyHistory(burstStart, 40), config.DefaultIntelligence())
	assert.InDelta(t, 1.0, b.Score, 1e-9)
	assert.Equal(t, models.BurstNormal, b.Severity)
}
