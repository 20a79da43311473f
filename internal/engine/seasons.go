// Seasonal effects on the land's food output.
package engine

// Season constants.
const (
	SeasonSpring = 0
	SeasonSummer = 1
	SeasonAutumn = 2
	SeasonWinter = 3
)

// Season returns the season index (0=Spring … 3=Winter) for a tick.
func Season(tick uint64) uint8 {
	return uint8((tick % TicksPerSimYear) / TicksPerSimSeason)
}

// SeasonName returns a human-readable season name.
func SeasonName(season uint8) string {
	switch season {
	case SeasonSpring:
		return "Spring"
	case SeasonSummer:
		return "Summer"
	case SeasonAutumn:
		return "Autumn"
	case SeasonWinter:
		return "Winter"
	default:
		return "Unknown"
	}
}

// SeasonalYield returns the multiplier on a settlement's daily food output.
func SeasonalYield(season uint8) float64 {
	switch season {
	case SeasonSpring:
		return 1.0
	case SeasonSummer:
		return 1.3
	case SeasonAutumn:
		return 1.1 // Harvest
	case SeasonWinter:
		return 0.5 // Fields fallow, stores drawn down
	default:
		return 1.0
	}
}
