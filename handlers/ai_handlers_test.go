package handlers

import (
	"testing"

	"marketpulse/models"

	"github.com/stretchr/testify/assert"
)

func sampleReport() *models.ProductIntelligence {
	return &models.ProductIntelligence{
		ProductID:   "p1",
		ProductName: "Widget",
		Realtime: models.RealtimeState{
			Momentum: models.Momentum{Status: models.MomentumTrendingUp, Combined: 1.4},
			Burst:    models.Burst{Score: 1.2, Severity: models.BurstNormal},
		},
		Forecast: models.ForecastData{
			Predictions:   make([]models.ForecastPoint, 7),
			Trend:         models.TrendIncreasing,
			Method:        models.MethodRuleBasedFallback,
			TotalForecast: 98,
			Summary:       "Expected to sell about 98 units over the next 7 days; trend increasing.",
		},
		Recommendations: []models.Recommendation{
			{Type: "GROWTH_OPPORTUNITY", Priority: models.PriorityMedium, Message: "Strong upward momentum. Ensure stock can cover the projected demand."},
		},
	}
}

func TestBuildInsightPrompt(t *testing.T) {
	prompt := buildInsightPrompt(sampleReport())

	assert.Contains(t, prompt, "Product: Widget")
	assert.Contains(t, prompt, "Momentum status: TRENDING_UP")
	assert.Contains(t, prompt, "98 units over the next 7 days")
	assert.Contains(t, prompt, "GROWTH_OPPORTUNITY")
}

func TestPlainInsight(t *testing.T) {
	text := plainInsight(sampleReport())

	assert.Contains(t, text, "Widget")
	assert.Contains(t, text, "trending up")
	assert.Contains(t, text, "Expected to sell about 98 units")
	assert.Contains(t, text, "Ensure stock can cover")
}
