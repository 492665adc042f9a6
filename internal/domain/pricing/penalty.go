package pricing

// penaltyTier applies when the cancellation happens at least minDays before check-in.
type penaltyTier struct {
	minDays int
	percent float64
}

// Tiers are ordered by descending lead time. Anything below the last tier forfeits the full price.
var cancellationSchedule = []penaltyTier{
	{minDays: 7, percent: 0},
	{minDays: 3, percent: 25},
	{minDays: 1, percent: 50},
}

const fullPenaltyPercent = 100

// PenaltyPercent is the single cancellation schedule used across the system.
func PenaltyPercent(daysBeforeCheckIn int) float64 {
	for _, tier := range cancellationSchedule {
		if daysBeforeCheckIn >= tier.minDays {
			return tier.percent
		}
	}
	return fullPenaltyPercent
}
