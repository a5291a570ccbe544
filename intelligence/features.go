package intelligence

import (
	"time"

	"marketpulse/config"
	"marketpulse/models"
)

// EMA window lengths in days.
const (
	emaShortWindow  = 7
	emaMediumWindow = 14
	emaLongWindow   = 30
)

// Features holds the smoothed and derived signals computed from one
// product's sales history. It is a value object: recomputed on demand
// from the observation window supplied, never persisted on its own.
type Features struct {
	EMA7       float64
	EMA14      float64
	EMA30      float64
	DOWFactor  [7]float64 // indexed by time.Weekday
	OverallAvg float64

	payday config.PaydayConfig
}

// ComputeFeatures scans the history once, left to right, and derives the
// EMA triple, day-of-week factors and overall average. The history must
// be sorted ascending by date and may contain gaps; it must contain at
// least one observation.
func ComputeFeatures(history []models.Observation, cfg config.IntelligenceConfig) (*Features, error) {
	if len(history) == 0 {
		return nil, ErrInsufficientData
	}

	f := &Features{payday: cfg.Payday}

	// Seed each EMA with the first observation, then run the standard
	// recurrence ema = ema + alpha*(value - ema) with alpha = 2/(w+1).
	alpha7 := 2.0 / float64(emaShortWindow+1)
	alpha14 := 2.0 / float64(emaMediumWindow+1)
	alpha30 := 2.0 / float64(emaLongWindow+1)

	f.EMA7 = history[0].Quantity
	f.EMA14 = history[0].Quantity
	f.EMA30 = history[0].Quantity

	var total float64
	var dowTotal [7]float64
	var dowCount [7]int

	for i, obs := range history {
		if i > 0 {
			f.EMA7 += alpha7 * (obs.Quantity - f.EMA7)
			f.EMA14 += alpha14 * (obs.Quantity - f.EMA14)
			f.EMA30 += alpha30 * (obs.Quantity - f.EMA30)
		}
		total += obs.Quantity
		dow := int(obs.Date.Weekday())
		dowTotal[dow] += obs.Quantity
		dowCount[dow]++
	}

	f.OverallAvg = total / float64(len(history))

	// Day-of-week factor = weekday average / overall average. Weekdays
	// with no observations, or a zero overall average, default to 1.
	for d := 0; d < 7; d++ {
		f.DOWFactor[d] = 1.0
		if dowCount[d] > 0 && f.OverallAvg > 0 {
			f.DOWFactor[d] = (dowTotal[d] / float64(dowCount[d])) / f.OverallAvg
		}
	}

	return f, nil
}

// inPaydayWindow reports whether the day of month falls in the boosted
// late-month window. The window wraps month end: day >= start or day <= end.
func (f *Features) inPaydayWindow(date time.Time) bool {
	day := date.Day()
	return day >= f.payday.StartDay || day <= f.payday.EndDay
}

// Baseline returns the expected quantity for a date: the overall average
// scaled by the day-of-week factor and, inside the payday window, the
// payday factor.
func (f *Features) Baseline(date time.Time) float64 {
	baseline := f.OverallAvg * f.DOWFactor[int(date.Weekday())]
	if f.inPaydayWindow(date) {
		baseline *= f.payday.Factor
	}
	return baseline
}
