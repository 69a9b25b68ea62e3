// Package scorers turns normalized metrics into 0-100 sub-scores and
// combines them into the fundamental strength score.
package scorers

import (
	"math"

	"github.com/aristath/fundamentals/internal/modules/scoring"
)

// ScoreLowerIsBetter scores a metric where smaller values are healthier.
// 100 at or below target, 0 at or above looseHigh, linear in between.
func ScoreLowerIsBetter(value, target, looseHigh float64) float64 {
	if value <= target {
		return scoring.MaxScore
	}
	if value >= looseHigh {
		return scoring.MinScore
	}
	return clamp(100 * (1 - (value-target)/(looseHigh-target)))
}

// ScoreHigherIsBetter scores a metric where larger values are healthier.
// 100 at or above target, 0 at or below looseLow, linear in between.
func ScoreHigherIsBetter(value, target, looseLow float64) float64 {
	if value >= target {
		return scoring.MaxScore
	}
	if value <= looseLow {
		return scoring.MinScore
	}
	return clamp(100 * (value - looseLow) / (target - looseLow))
}

// Band describes a "best inside" range with hard bounds where the score reaches 0
type Band struct {
	Low      float64
	High     float64
	HardLow  float64
	HardHigh float64
}

// NewBand builds a band whose hard bounds sit one band-width outside it
func NewBand(low, high float64) Band {
	width := high - low
	return Band{
		Low:      low,
		High:     high,
		HardLow:  low - width,
		HardHigh: high + width,
	}
}

// WithHardBounds returns a copy of the band with explicit hard bounds
func (b Band) WithHardBounds(hardLow, hardHigh float64) Band {
	b.HardLow = hardLow
	b.HardHigh = hardHigh
	return b
}

// ScoreWithinBandBest is 100 inside [Low, High] and decays linearly to 0 at
// HardLow below the band and HardHigh above it.
func ScoreWithinBandBest(value float64, band Band) float64 {
	switch {
	case value >= band.Low && value <= band.High:
		return scoring.MaxScore
	case value < band.Low:
		if value <= band.HardLow {
			return scoring.MinScore
		}
		return clamp(100 * (value - band.HardLow) / (band.Low - band.HardLow))
	default:
		if value >= band.HardHigh {
			return scoring.MinScore
		}
		return clamp(100 * (band.HardHigh - value) / (band.HardHigh - band.High))
	}
}

// ScoreDividendYield maps a yield in percent linearly onto 0-100,
// reaching 100 at 3% and staying there for every higher yield.
func ScoreDividendYield(yieldPct float64) float64 {
	return clamp(100 * yieldPct / scoring.DividendYieldFullScore)
}

// ScoreRevenueGrowth maps YoY revenue growth in percent onto 0-100:
//
//	g >= 20        -> 100
//	10 <= g < 20   -> 70 + 3(g-10)
//	0 <= g < 10    -> 40 + 3g
//	-20 < g < 0    -> 40 + 2g
//	g <= -20       -> 0
func ScoreRevenueGrowth(growthPct float64) float64 {
	g := growthPct
	switch {
	case g >= scoring.GrowthExcellent:
		return scoring.MaxScore
	case g >= scoring.GrowthGood:
		return clamp(70 + 3*(g-scoring.GrowthGood))
	case g >= scoring.GrowthFlat:
		return clamp(40 + 3*g)
	case g > scoring.GrowthFloor:
		return clamp(40 + 2*g)
	default:
		return scoring.MinScore
	}
}

func clamp(score float64) float64 {
	return math.Max(scoring.MinScore, math.Min(scoring.MaxScore, score))
}
