package views

// MortalityPoint is one historical global mortality estimate.
type MortalityPoint struct {
	Year        int     `json:"year"`
	RatePercent float64 `json:"mortality_rate_percent"`
}

// Mortality series bounds.
const (
	MortalityFirstYear = 1800
	MortalityLastYear  = 2020
	MortalityStep      = 10
)

// mortalityRates holds the estimates for 1800..2020 in 10-year steps.
var mortalityRates = [...]float64{
	25, 22, 20, 18, 15, 13, 12, 11, 10, 9, 8, 7,
	6, 5, 5, 4, 3, 3, 2.5, 2.3, 2.1, 1.9, 1.8,
}

// MortalitySeries returns the fixed historical mortality table.
// Each call returns a fresh slice.
func MortalitySeries() []MortalityPoint {
	out := make([]MortalityPoint, len(mortalityRates))
	for i, rate := range mortalityRates {
		out[i] = MortalityPoint{
			Year:        MortalityFirstYear + i*MortalityStep,
			RatePercent: rate,
		}
	}
	return out
}
