package scoring

import "github.com/aristath/fundamentals/internal/modules/scoring/domain"

// DefaultSector is the benchmark key used for unknown or missing sectors
const DefaultSector = "Unknown"

// Sector names as reported by the market-data provider
const (
	SectorTechnology        = "Technology"
	SectorHealthcare        = "Healthcare"
	SectorFinancialServices = "Financial Services"
	SectorConsumerDefensive = "Consumer Defensive"
	SectorIndustrials       = "Industrials"
	SectorEnergy            = "Energy"
)

// sectorOrder is the stable listing order for Sectors
var sectorOrder = []string{
	SectorTechnology,
	SectorHealthcare,
	SectorFinancialServices,
	SectorConsumerDefensive,
	SectorIndustrials,
	SectorEnergy,
	DefaultSector,
}

// benchmarks maps sector -> {PE, PB, ROE %, profit margin %}.
// Values are fixed author-chosen targets.
var benchmarks = map[string]domain.Benchmark{
	SectorTechnology:        {Sector: SectorTechnology, TargetPE: 25, TargetPB: 6, TargetROE: 18, TargetProfitMargin: 15},
	SectorHealthcare:        {Sector: SectorHealthcare, TargetPE: 20, TargetPB: 4, TargetROE: 14, TargetProfitMargin: 12},
	SectorFinancialServices: {Sector: SectorFinancialServices, TargetPE: 14, TargetPB: 1.5, TargetROE: 10, TargetProfitMargin: 20},
	SectorConsumerDefensive: {Sector: SectorConsumerDefensive, TargetPE: 22, TargetPB: 3.5, TargetROE: 15, TargetProfitMargin: 10},
	SectorIndustrials:       {Sector: SectorIndustrials, TargetPE: 18, TargetPB: 2.5, TargetROE: 12, TargetProfitMargin: 8},
	SectorEnergy:            {Sector: SectorEnergy, TargetPE: 12, TargetPB: 1.8, TargetROE: 16, TargetProfitMargin: 10},
	DefaultSector:           {Sector: DefaultSector, TargetPE: 20, TargetPB: 3, TargetROE: 12, TargetProfitMargin: 10},
}

// BenchmarkFor returns the sector's benchmark. Matching is exact;
// anything unmatched, including "", gets the Unknown entry.
func BenchmarkFor(sector string) domain.Benchmark {
	if b, ok := benchmarks[sector]; ok {
		return b
	}
	return benchmarks[DefaultSector]
}

// Sectors returns every benchmark in listing order, default last
func Sectors() []domain.Benchmark {
	out := make([]domain.Benchmark, 0, len(sectorOrder))
	for _, name := range sectorOrder {
		out = append(out, benchmarks[name])
	}
	return out
}
