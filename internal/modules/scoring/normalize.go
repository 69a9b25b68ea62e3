// Package scoring holds the fundamental strength model: metric normalization,
// sector benchmarks and the constants the scorers share.
package scoring

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/aristath/fundamentals/internal/modules/scoring/domain"
)

// ParseRaw converts a provider value of unknown type into a finite number.
// It returns nil for missing values, placeholders such as "None", "N/A" or "-",
// non-finite numbers, and anything else that is not numeric.
func ParseRaw(v interface{}) *float64 {
	switch val := v.(type) {
	case nil:
		return nil
	case float64:
		return finite(val)
	case float32:
		return finite(float64(val))
	case int:
		return finite(float64(val))
	case int32:
		return finite(float64(val))
	case int64:
		return finite(float64(val))
	case uint:
		return finite(float64(val))
	case uint32:
		return finite(float64(val))
	case uint64:
		return finite(float64(val))
	case *float64:
		if val == nil {
			return nil
		}
		return finite(*val)
	case json.Number:
		return parseString(string(val))
	case string:
		return parseString(val)
	case *string:
		if val == nil {
			return nil
		}
		return parseString(*val)
	default:
		return nil
	}
}

func parseString(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return finite(f)
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Normalize converts provider units into canonical units.
// ROE, profit margin, operating margin and dividend yield arrive as fractions
// and become percentages. Debt-to-equity arrives scaled by 100 and is always
// divided by 100. Unavailable inputs stay unavailable.
func Normalize(raw domain.RawMetrics) domain.NormalizedMetrics {
	return domain.NormalizedMetrics{
		Sector:          raw.Sector,
		PERatio:         copyOf(raw.PERatio),
		PriceToBook:     copyOf(raw.PriceToBook),
		ROE:             scale(raw.ROE, 100),
		DebtToEquity:    divide(raw.DebtToEquity, 100),
		ProfitMargin:    scale(raw.ProfitMargin, 100),
		OperatingMargin: scale(raw.OperatingMargin, 100),
		DividendYield:   scale(raw.DividendYield, 100),
		Beta:            copyOf(raw.Beta),
		CurrentRatio:    copyOf(raw.CurrentRatio),
		RevenueGrowth:   copyOf(raw.RevenueGrowth),
		MarketCap:       copyOf(raw.MarketCap),
		CurrentPrice:    copyOf(raw.CurrentPrice),
		ForwardPE:       copyOf(raw.ForwardPE),
		PEGRatio:        copyOf(raw.PEGRatio),
	}
}

func scale(v *float64, factor float64) *float64 {
	if v == nil {
		return nil
	}
	return finite(*v * factor)
}

func divide(v *float64, divisor float64) *float64 {
	if v == nil {
		return nil
	}
	return finite(*v / divisor)
}

// copyOf keeps the normalized record from aliasing the caller's input
func copyOf(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return finite(*v)
}
