package scoring

// RevenueGrowth derives year-over-year revenue growth in percent from annual
// revenues ordered most recent first: (recent - previous) / previous * 100.
// It is unavailable with fewer than two periods or a zero prior-year revenue.
func RevenueGrowth(annualRevenues []float64) *float64 {
	if len(annualRevenues) < 2 {
		return nil
	}

	recent, previous := annualRevenues[0], annualRevenues[1]
	if previous == 0 {
		return nil
	}

	return finite((recent - previous) / previous * 100)
}
