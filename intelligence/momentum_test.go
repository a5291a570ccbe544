package intelligence

import (
	"testing"
	"time"

	"marketpulse/config"
	"marketpulse/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyMomentumFlat(t *testing.T) {
	cfg := config.DefaultIntelligence().Momentum
	m := ClassifyMomentum(10, 10, 10, cfg)

	assert.InDelta(t, 1.0, m.Momentum7, 1e-9)
	assert.InDelta(t, 1.0, m.Momentum14, 1e-9)
	assert.InDelta(t, 1.0, m.Momentum30, 1e-9)
	assert.InDelta(t, 1.0, m.Combined, 1e-9)
	assert.Equal(t, models.MomentumStable, m.Status)
}

func TestClassifyMomentumRatioCap(t *testing.T) {
	cfg := config.DefaultIntelligence().Momentum
	m := ClassifyMomentum(1000, 10, 10, cfg)
	assert.Equal(t, cfg.RatioCap, m.Momentum7)
}

func TestClassifyMomentumEpsilonGuard(t *testing.T) {
	cfg := config.DefaultIntelligence().Momentum
	// Zero long-window EMA must not divide by zero; the guarded ratio
	// explodes and is clamped to the cap.
	m := ClassifyMomentum(5, 5, 0, cfg)
	assert.Equal(t, cfg.RatioCap, m.Momentum7)
	assert.Equal(t, cfg.RatioCap, m.Momentum14)
}

func TestMomentumStatusBoundaries(t *testing.T) {
	cfg := config.DefaultIntelligence().Momentum
	cases := []struct {
		combined float64
		want     string
	}{
		{1.31, models.MomentumTrendingUp},
		{1.3, models.MomentumTrendingUp}, // ties land in the higher bucket
		{1.29, models.MomentumGrowing},
		{1.1, models.MomentumGrowing},
		{1.09, models.MomentumStable},
		{0.9, models.MomentumStable},
		{0.89, models.MomentumDeclining},
		{0.7, models.MomentumDeclining},
		{0.69, models.MomentumFalling},
		{0, models.MomentumFalling},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, momentumStatus(tc.combined, cfg), "combined=%v", tc.combined)
	}
}

func TestMomentumIncreasingHistoryNeverDeclines(t *testing.T) {
	cfg := config.DefaultIntelligence()
	// Strictly increasing sales keep the short EMA at or above the long
	// EMA, so the combined ratio stays at or above 1.
	quantities := make([]float64, 30)
	for i := range quantities {
		quantities[i] = 5 + 2*float64(i)
	}
	start := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	f, err := ComputeFeatures(dailyHistory(start, quantities...), cfg)
	require.NoError(t, err)

	m := ClassifyMomentum(f.EMA7, f.EMA14, f.EMA30, cfg.Momentum)
	assert.GreaterOrEqual(t, m.Combined, 1.0)
	assert.NotEqual(t, models.MomentumFalling, m.Status)
	assert.NotEqual(t, models.MomentumDeclining, m.Status)
}

func TestClassifyMomentumMonotonic(t *testing.T) {
	cfg := config.DefaultIntelligence().Momentum
	// Raising the short-window EMA with everything else fixed never
	// lowers the combined ratio.
	prev := -1.0
	for ema7 := 0.0; ema7 <= 30; ema7 += 1.5 {
		m := ClassifyMomentum(ema7, 10, 10, cfg)
		assert.GreaterOrEqual(t, m.Combined, prev)
		prev = m.Combined
	}
}
