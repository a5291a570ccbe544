package intelligence

import (
	"testing"

	"marketpulse/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recTypes(recs []models.Recommendation) []string {
	types := make([]string, 0, len(recs))
	for _, r := range recs {
		types = append(types, r.Type)
	}
	return types
}

func findRec(t *testing.T, recs []models.Recommendation, recType string) models.Recommendation {
	t.Helper()
	for _, r := range recs {
		if r.Type == recType {
			return r
		}
	}
	t.Fatalf("no %s recommendation in %v", recType, recTypes(recs))
	return models.Recommendation{}
}

func TestRecommendationsCriticalBurst(t *testing.T) {
	recs := GenerateRecommendations(
		models.Momentum{Status: models.MomentumStable},
		models.Burst{Score: 5.0, Severity: models.BurstCritical, Classification: models.BurstIsolatedSpike},
		models.ForecastData{Trend: models.TrendStable},
	)

	rec := findRec(t, recs, "STOCK_PREPARATION")
	assert.Equal(t, models.PriorityUrgent, rec.Priority)
	assert.True(t, rec.Actionable)
	assert.Contains(t, rec.Message, "5.0x")
}

func TestRecommendationsHighBurst(t *testing.T) {
	recs := GenerateRecommendations(
		models.Momentum{Status: models.MomentumStable},
		models.Burst{Score: 2.8, Severity: models.BurstHigh, Classification: models.BurstIsolatedSpike},
		models.ForecastData{Trend: models.TrendStable},
	)

	rec := findRec(t, recs, "STOCK_REVIEW")
	assert.Equal(t, models.PriorityHigh, rec.Priority)
}

func TestRecommendationsViralSpike(t *testing.T) {
	recs := GenerateRecommendations(
		models.Momentum{Status: models.MomentumStable},
		models.Burst{Score: 2.0, Severity: models.BurstElevated, Classification: models.BurstViralSpike},
		models.ForecastData{Trend: models.TrendStable},
	)

	rec := findRec(t, recs, "TREND_WATCH")
	assert.Equal(t, models.PriorityHigh, rec.Priority)
}

func TestRecommendationsFallingMomentum(t *testing.T) {
	recs := GenerateRecommendations(
		models.Momentum{Status: models.MomentumFalling, Combined: 0.5},
		models.Burst{Severity: models.BurstNormal},
		models.ForecastData{Trend: models.TrendDecreasing},
	)

	rec := findRec(t, recs, "INVESTIGATE_DECLINE")
	assert.Equal(t, models.PriorityHigh, rec.Priority)
	assert.Contains(t, rec.Message, "forecast projects further decline")
}

func TestRecommendationsDecliningMomentum(t *testing.T) {
	recs := GenerateRecommendations(
		models.Momentum{Status: models.MomentumDeclining, Combined: 0.8},
		models.Burst{Severity: models.BurstNormal},
		models.ForecastData{Trend: models.TrendStable},
	)

	rec := findRec(t, recs, "MONITOR_DECLINE")
	assert.Equal(t, models.PriorityMedium, rec.Priority)
}

func TestRecommendationsTrendingUp(t *testing.T) {
	recs := GenerateRecommendations(
		models.Momentum{Status: models.MomentumTrendingUp, Combined: 1.5},
		models.Burst{Severity: models.BurstNormal},
		models.ForecastData{Trend: models.TrendIncreasing},
	)

	rec := findRec(t, recs, "GROWTH_OPPORTUNITY")
	assert.Equal(t, models.PriorityMedium, rec.Priority)
}

func TestRecommendationsSteadyStateFallback(t *testing.T) {
	recs := GenerateRecommendations(
		models.Momentum{Status: models.MomentumStable},
		models.Burst{Severity: models.BurstNormal},
		models.ForecastData{Trend: models.TrendStable},
	)

	require.Len(t, recs, 1)
	assert.Equal(t, "STEADY_STATE", recs[0].Type)
	assert.Equal(t, models.PriorityLow, recs[0].Priority)
	assert.False(t, recs[0].Actionable)
}

func TestSortRecommendationsOrdersByPriority(t *testing.T) {
	recs := []models.Recommendation{
		{Type: "A", Priority: models.PriorityLow},
		{Type: "B", Priority: models.PriorityUrgent},
		{Type: "C", Priority: models.PriorityMedium},
		{Type: "D", Priority: models.PriorityHigh},
	}

	sorted := SortRecommendations(recs)

	assert.Equal(t, []string{"B", "D", "C", "A"}, recTypes(sorted))
	// The input slice is left untouched.
	assert.Equal(t, []string{"A", "B", "C", "D"}, recTypes(recs))
}

func TestSortRecommendationsStable(t *testing.T) {
	recs := []models.Recommendation{
		{Type: "first", Priority: models.PriorityHigh},
		{Type: "second", Priority: models.PriorityHigh},
		{Type: "third", Priority: models.PriorityHigh},
	}

	sorted := SortRecommendations(recs)
	assert.Equal(t, []string{"first", "second", "third"}, recTypes(sorted))
}
