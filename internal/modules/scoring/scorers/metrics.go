package scorers

import (
	"math"

	"github.com/aristath/fundamentals/internal/modules/scoring"
	"github.com/aristath/fundamentals/internal/modules/scoring/domain"
)

// Per-metric scorers. Each takes a normalized value and returns nil when
// the value is unavailable.

// PELooseHigh is the P/E at which the valuation score reaches 0
func PELooseHigh(target float64) float64 {
	return math.Max(target*scoring.PELooseHighMultiplier, scoring.PELooseHighFloor)
}

// PBLooseHigh is the P/B at which the valuation score reaches 0
func PBLooseHigh(target float64) float64 {
	return math.Max(target*scoring.PBLooseHighMultiplier, scoring.PBLooseHighFloor)
}

// ScorePE scores trailing P/E against the sector target
func ScorePE(pe *float64, benchmark domain.Benchmark) *float64 {
	return apply(pe, func(v float64) float64 {
		return ScoreLowerIsBetter(v, benchmark.TargetPE, PELooseHigh(benchmark.TargetPE))
	})
}

// ScorePB scores price-to-book against the sector target
func ScorePB(pb *float64, benchmark domain.Benchmark) *float64 {
	return apply(pb, func(v float64) float64 {
		return ScoreLowerIsBetter(v, benchmark.TargetPB, PBLooseHigh(benchmark.TargetPB))
	})
}

// ScoreROE scores return on equity (percent) against the sector target
func ScoreROE(roePct *float64, benchmark domain.Benchmark) *float64 {
	return apply(roePct, func(v float64) float64 {
		return ScoreHigherIsBetter(v, benchmark.TargetROE, scoring.ROELooseLow)
	})
}

// EffectiveMargin is the profit margin, or the operating margin when the
// profit margin is unavailable
func EffectiveMargin(metrics domain.NormalizedMetrics) *float64 {
	if metrics.ProfitMargin != nil {
		return metrics.ProfitMargin
	}
	return metrics.OperatingMargin
}

// ScoreMargin scores a margin (percent) against the sector profit margin target
func ScoreMargin(marginPct *float64, benchmark domain.Benchmark) *float64 {
	return apply(marginPct, func(v float64) float64 {
		return ScoreHigherIsBetter(v, benchmark.TargetProfitMargin, scoring.MarginLooseLow)
	})
}

// ScoreGrowth scores YoY revenue growth (percent)
func ScoreGrowth(growthPct *float64) *float64 {
	return apply(growthPct, ScoreRevenueGrowth)
}

// ScoreDebtToEquity scores leverage as a plain ratio
func ScoreDebtToEquity(de *float64) *float64 {
	return apply(de, func(v float64) float64 {
		return ScoreLowerIsBetter(v, scoring.DebtToEquityTarget, scoring.DebtToEquityLooseHigh)
	})
}

var (
	currentRatioBand = Band{
		Low:      scoring.CurrentRatioLow,
		High:     scoring.CurrentRatioHigh,
		HardLow:  scoring.CurrentRatioHardLow,
		HardHigh: scoring.CurrentRatioHardHigh,
	}
	betaBand = Band{
		Low:      scoring.BetaLow,
		High:     scoring.BetaHigh,
		HardLow:  scoring.BetaHardLow,
		HardHigh: scoring.BetaHardHigh,
	}
)

// ScoreCurrentRatio scores liquidity, best inside [1.5, 3.0]
func ScoreCurrentRatio(ratio *float64) *float64 {
	return apply(ratio, func(v float64) float64 {
		return ScoreWithinBandBest(v, currentRatioBand)
	})
}

// ScoreBeta scores market sensitivity, best inside [0.8, 1.2]
func ScoreBeta(beta *float64) *float64 {
	return apply(beta, func(v float64) float64 {
		return ScoreWithinBandBest(v, betaBand)
	})
}

// ScoreYield scores dividend yield (percent)
func ScoreYield(yieldPct *float64) *float64 {
	return apply(yieldPct, ScoreDividendYield)
}

func apply(v *float64, score func(float64) float64) *float64 {
	if v == nil {
		return nil
	}
	s := score(*v)
	return &s
}
