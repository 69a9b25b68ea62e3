package scorers

import (
	"github.com/aristath/fundamentals/internal/modules/scoring"
	"github.com/aristath/fundamentals/internal/modules/scoring/domain"
)

// Compare places the benchmarked metrics next to the sector targets.
// The margin row uses the same operating margin fallback as the score.
func Compare(metrics domain.NormalizedMetrics, benchmark domain.Benchmark) []domain.Comparison {
	return []domain.Comparison{
		compareOne(scoring.MetricPE, metrics.PERatio, benchmark.TargetPE, false),
		compareOne(scoring.MetricPB, metrics.PriceToBook, benchmark.TargetPB, false),
		compareOne(scoring.MetricROE, metrics.ROE, benchmark.TargetROE, true),
		compareOne(scoring.MetricProfitMargin, EffectiveMargin(metrics), benchmark.TargetProfitMargin, true),
	}
}

func compareOne(metric string, value *float64, target float64, higherIsBetter bool) domain.Comparison {
	c := domain.Comparison{Metric: metric, Target: target}
	if value == nil {
		return c
	}

	v := *value
	delta := round1(v - target)
	better := v <= target
	if higherIsBetter {
		better = v >= target
	}

	c.Value = &v
	c.Delta = &delta
	c.Better = &better
	return c
}
