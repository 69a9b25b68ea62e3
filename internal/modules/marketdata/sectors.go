package marketdata

import (
	"strings"

	"github.com/aristath/fundamentals/internal/modules/scoring"
)

// sectorAliases maps other vocabularies, mostly Alpha Vantage's upper-case
// sectors, onto the benchmark sector names
var sectorAliases = map[string]string{
	"TECHNOLOGY":              scoring.SectorTechnology,
	"INFORMATION TECHNOLOGY":  scoring.SectorTechnology,
	"LIFE SCIENCES":           scoring.SectorHealthcare,
	"HEALTHCARE":              scoring.SectorHealthcare,
	"HEALTH CARE":             scoring.SectorHealthcare,
	"FINANCE":                 scoring.SectorFinancialServices,
	"FINANCIAL SERVICES":      scoring.SectorFinancialServices,
	"FINANCIALS":              scoring.SectorFinancialServices,
	"CONSUMER DEFENSIVE":      scoring.SectorConsumerDefensive,
	"CONSUMER STAPLES":        scoring.SectorConsumerDefensive,
	"MANUFACTURING":           scoring.SectorIndustrials,
	"INDUSTRIALS":             scoring.SectorIndustrials,
	"ENERGY":                  scoring.SectorEnergy,
	"ENERGY & TRANSPORTATION": scoring.SectorEnergy,
}

// CanonicalSector returns the benchmark name for a provider sector label.
// Labels it does not recognize come back trimmed but otherwise unchanged,
// so the benchmark lookup falls back to its default entry.
func CanonicalSector(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}
	if mapped, ok := sectorAliases[strings.ToUpper(label)]; ok {
		return mapped
	}
	return label
}
