// Package league implements the seasonal division ladder: rating thresholds,
// the promotion/relegation state machine and season table bookkeeping.
package league

import (
	"github.com/futebadosparcas/matchday/internal/domain"
)

// DivisionForRating maps a rating onto the ladder.
func DivisionForRating(rating float64) domain.Division {
	switch {
	case rating >= ThresholdDiamante:
		return domain.DivisionDiamante
	case rating >= ThresholdOuro:
		return domain.DivisionOuro
	case rating >= ThresholdPrata:
		return domain.DivisionPrata
	default:
		return domain.DivisionBronze
	}
}

// NextThreshold is the rating that qualifies a player of division d for promotion.
func NextThreshold(d domain.Division) float64 {
	switch d {
	case domain.DivisionBronze:
		return ThresholdPrata
	case domain.DivisionPrata:
		return ThresholdOuro
	case domain.DivisionOuro:
		return ThresholdDiamante
	default:
		return CeilingRating
	}
}

// PreviousThreshold is the rating below which a player of division d is in the
// relegation zone.
func PreviousThreshold(d domain.Division) float64 {
	switch d {
	case domain.DivisionPrata:
		return ThresholdPrata
	case domain.DivisionOuro:
		return ThresholdOuro
	case domain.DivisionDiamante:
		return ThresholdDiamante
	default:
		return FloorRating
	}
}

// NextDivision returns the division above d, or d itself at the top.
func NextDivision(d domain.Division) domain.Division {
	i := d.Rank()
	if i < 0 || i == len(domain.Divisions)-1 {
		return d
	}
	return domain.Divisions[i+1]
}

// PreviousDivision returns the division below d, or d itself at the bottom.
func PreviousDivision(d domain.Division) domain.Division {
	i := d.Rank()
	if i <= 0 {
		return d
	}
	return domain.Divisions[i-1]
}

// IsTop reports whether d is the highest division.
func IsTop(d domain.Division) bool {
	return d == domain.DivisionDiamante
}

// IsBottom reports whether d is the lowest division.
func IsBottom(d domain.Division) bool {
	return d == domain.DivisionBronze
}

// InitialDivision places a new participant. Returning players start in the
// division their previous season rating maps to, newcomers start in BRONZE.
func InitialDivision(previousRating *float64) domain.Division {
	if previousRating == nil {
		return domain.DivisionBronze
	}
	return DivisionForRating(*previousRating)
}
