package scorers

import (
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"

	"github.com/aristath/fundamentals/internal/modules/scoring"
	"github.com/aristath/fundamentals/internal/modules/scoring/domain"
)

// InsufficientDataReason explains a result where no metric could be scored
const InsufficientDataReason = "insufficient data: no scorable metrics available"

// FundamentalsScorer calculates the fundamental strength score
type FundamentalsScorer struct{}

// NewFundamentalsScorer creates a new fundamentals scorer
func NewFundamentalsScorer() *FundamentalsScorer {
	return &FundamentalsScorer{}
}

// Evaluate normalizes raw provider metrics and scores them.
// It never fails: missing inputs only shrink the weight pool.
func Evaluate(raw domain.RawMetrics) domain.AggregateResult {
	return NewFundamentalsScorer().Evaluate(raw)
}

// Evaluate normalizes raw provider metrics and scores them
func (fs *FundamentalsScorer) Evaluate(raw domain.RawMetrics) domain.AggregateResult {
	return fs.EvaluateNormalized(scoring.Normalize(raw))
}

// EvaluateNormalized scores metrics that are already in canonical units
func (fs *FundamentalsScorer) EvaluateNormalized(metrics domain.NormalizedMetrics) domain.AggregateResult {
	return Aggregate(fs.SubScores(metrics))
}

// SubScores scores every metric against the sector benchmark, in evaluation order
func (fs *FundamentalsScorer) SubScores(metrics domain.NormalizedMetrics) []domain.SubScore {
	benchmark := scoring.BenchmarkFor(metrics.Sector)

	scores := map[string]*float64{
		scoring.MetricPE:            ScorePE(metrics.PERatio, benchmark),
		scoring.MetricPB:            ScorePB(metrics.PriceToBook, benchmark),
		scoring.MetricROE:           ScoreROE(metrics.ROE, benchmark),
		scoring.MetricProfitMargin:  ScoreMargin(EffectiveMargin(metrics), benchmark),
		scoring.MetricRevenueGrowth: ScoreGrowth(metrics.RevenueGrowth),
		scoring.MetricDebtToEquity:  ScoreDebtToEquity(metrics.DebtToEquity),
		scoring.MetricCurrentRatio:  ScoreCurrentRatio(metrics.CurrentRatio),
		scoring.MetricBeta:          ScoreBeta(metrics.Beta),
		scoring.MetricDividendYield: ScoreYield(metrics.DividendYield),
	}

	subScores := make([]domain.SubScore, 0, len(scoring.MetricOrder))
	for _, metric := range scoring.MetricOrder {
		subScores = append(subScores, domain.SubScore{
			Metric: metric,
			Score:  scores[metric],
			Weight: scoring.Weights[metric],
		})
	}
	return subScores
}

// Aggregate combines sub-scores into the overall score.
// Unavailable sub-scores are dropped and the remaining weights renormalized.
func Aggregate(subScores []domain.SubScore) domain.AggregateResult {
	result := domain.AggregateResult{
		Scores:    make(map[string]domain.SubScore, len(subScores)),
		Breakdown: make([]domain.SubScore, 0, len(subScores)),
		Strengths: []string{},
		Watchouts: []string{},
	}

	var values, weights []float64
	for _, sub := range subScores {
		if sub.Available() {
			values = append(values, *sub.Score)
			weights = append(weights, sub.Weight)
			rounded := round1(*sub.Score)
			sub.Score = &rounded
		}
		result.Scores[sub.Metric] = sub
		result.Breakdown = append(result.Breakdown, sub)
	}

	available := floats.Sum(weights)
	result.AvailableWeight = roundWeight(available)

	if available <= 0 {
		result.OverallScore = scoring.MinScore
		result.Label = domain.LabelSell
		result.InsufficientData = true
		result.Reason = InsufficientDataReason
		return result
	}

	overall := floats.Dot(values, weights) / available
	result.OverallScore = round1(clamp(overall))
	result.Label = LabelFor(result.OverallScore)

	for _, sub := range result.Breakdown {
		if !sub.Available() {
			continue
		}
		switch {
		case *sub.Score >= scoring.StrengthThreshold:
			result.Strengths = append(result.Strengths, sub.Metric)
		case *sub.Score <= scoring.WatchoutThreshold:
			result.Watchouts = append(result.Watchouts, sub.Metric)
		}
	}

	return result
}

// RenormalizedWeights returns the weight each available metric carries
// after renormalization. The values sum to 1 when any metric is available.
func RenormalizedWeights(subScores []domain.SubScore) map[string]float64 {
	total := 0.0
	for _, sub := range subScores {
		if sub.Available() {
			total += sub.Weight
		}
	}

	out := make(map[string]float64)
	if total <= 0 {
		return out
	}
	for _, sub := range subScores {
		if sub.Available() {
			out[sub.Metric] = sub.Weight / total
		}
	}
	return out
}

// LabelFor maps an overall score to its verdict.
// Each band includes its lower boundary.
func LabelFor(score float64) domain.Label {
	switch {
	case score >= scoring.BuyThreshold:
		return domain.LabelBuy
	case score >= scoring.HoldThreshold:
		return domain.LabelHold
	default:
		return domain.LabelSell
	}
}

// round1 rounds to one decimal place, half away from zero
func round1(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}

func roundWeight(v float64) float64 {
	return decimal.NewFromFloat(v).Round(9).InexactFloat64()
}
