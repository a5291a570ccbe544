package intelligence

import (
	"fmt"
	"sort"

	"marketpulse/models"
)

// priorityRank orders recommendation priorities for sorting. Lower rank
// sorts first.
var priorityRank = map[string]int{
	models.PriorityUrgent: 0,
	models.PriorityHigh:   1,
	models.PriorityMedium: 2,
	models.PriorityLow:    3,
}

// GenerateRecommendations runs the rule set over the three signal
// bundles. Every rule whose condition holds contributes one
// recommendation; the result keeps generation order (callers sort with
// SortRecommendations).
func GenerateRecommendations(momentum models.Momentum, burst models.Burst, forecast models.ForecastData) []models.Recommendation {
	recs := []models.Recommendation{}

	if burst.Severity == models.BurstCritical {
		recs = append(recs, models.Recommendation{
			Type:       "STOCK_PREPARATION",
			Priority:   models.PriorityUrgent,
			Message:    fmt.Sprintf("Demand is running at %.1fx the expected baseline. Prepare additional stock immediately.", burst.Score),
			Actionable: true,
			Details:    map[string]interface{}{"burst_score": burst.Score},
		})
	} else if burst.Severity == models.BurstHigh {
		recs = append(recs, models.Recommendation{
			Type:       "STOCK_REVIEW",
			Priority:   models.PriorityHigh,
			Message:    fmt.Sprintf("Sales are %.1fx above baseline. Review stock levels before the spike outpaces supply.", burst.Score),
			Actionable: true,
			Details:    map[string]interface{}{"burst_score": burst.Score},
		})
	}

	if burst.Classification == models.BurstViralSpike {
		recs = append(recs, models.Recommendation{
			Type:       "TREND_WATCH",
			Priority:   models.PriorityHigh,
			Message:    "Elevated demand has persisted across consecutive days. This looks like a sustained trend, not a one-off.",
			Actionable: true,
		})
	}

	switch momentum.Status {
	case models.MomentumFalling:
		priority := models.PriorityHigh
		message := "Sales momentum is falling sharply. Investigate pricing, availability, and competition."
		if forecast.Trend == models.TrendDecreasing {
			message = "Sales momentum is falling and the forecast projects further decline. Investigate now."
		}
		recs = append(recs, models.Recommendation{
			Type:       "INVESTIGATE_DECLINE",
			Priority:   priority,
			Message:    message,
			Actionable: true,
			Details:    map[string]interface{}{"combined_momentum": momentum.Combined},
		})
	case models.MomentumDeclining:
		recs = append(recs, models.Recommendation{
			Type:       "MONITOR_DECLINE",
			Priority:   models.PriorityMedium,
			Message:    "Sales are trending down. Monitor closely and consider a promotion.",
			Actionable: true,
			Details:    map[string]interface{}{"combined_momentum": momentum.Combined},
		})
	case models.MomentumTrendingUp:
		recs = append(recs, models.Recommendation{
			Type:       "GROWTH_OPPORTUNITY",
			Priority:   models.PriorityMedium,
			Message:    "Strong upward momentum. Ensure stock can cover the projected demand.",
			Actionable: true,
			Details:    map[string]interface{}{"combined_momentum": momentum.Combined},
		})
	}

	if len(recs) == 0 {
		recs = append(recs, models.Recommendation{
			Type:       "STEADY_STATE",
			Priority:   models.PriorityLow,
			Message:    "Sales are stable with no unusual activity. No action needed.",
			Actionable: false,
		})
	}

	return recs
}

// SortRecommendations orders recommendations by ascending priority rank
// (URGENT first). The sort is stable: equal-priority recommendations
// retain their generation order.
func SortRecommendations(recs []models.Recommendation) []models.Recommendation {
	sorted := make([]models.Recommendation, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rankOf(sorted[i].Priority) < rankOf(sorted[j].Priority)
	})
	return sorted
}

func rankOf(priority string) int {
	rank, ok := priorityRank[priority]
	if !ok {
		return len(priorityRank)
	}
	return rank
}
