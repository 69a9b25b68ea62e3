package analysis

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/aristath/fundamentals/internal/modules/scoring/domain"
)

// NotAvailable is shown in place of a missing value
const NotAvailable = "N/A"

// Verdict sentences per label
const (
	VerdictBuy          = "Strong fundamentals: potential high-quality stock."
	VerdictHold         = "Mixed fundamentals: further analysis recommended."
	VerdictSell         = "Weak fundamentals: proceed with caution."
	VerdictInsufficient = "Insufficient data: no scorable metrics available."
)

// Verdict returns the sentence describing a result
func Verdict(result domain.AggregateResult) string {
	if result.InsufficientData {
		return VerdictInsufficient
	}
	switch result.Label {
	case domain.LabelBuy:
		return VerdictBuy
	case domain.LabelHold:
		return VerdictHold
	default:
		return VerdictSell
	}
}

func buildOverview(m domain.NormalizedMetrics) Overview {
	return Overview{
		MarketCap:    formatDollars(m.MarketCap),
		TrailingPE:   formatNumber(m.PERatio),
		ForwardPE:    formatNumber(m.ForwardPE),
		PEGRatio:     formatNumber(m.PEGRatio),
		CurrentPrice: formatPrice(m.CurrentPrice),
	}
}

// buildKeyRatios lists ratios in canonical units; percentages are already x100
func buildKeyRatios(m domain.NormalizedMetrics) []KeyRatio {
	return []KeyRatio{
		{Label: "Return on Equity (ROE)", Value: formatPercent(m.ROE)},
		{Label: "Profit Margin", Value: formatPercent(m.ProfitMargin)},
		{Label: "Operating Margin", Value: formatPercent(m.OperatingMargin)},
		{Label: "Dividend Yield", Value: formatPercent(m.DividendYield)},
		{Label: "Debt-to-Equity Ratio", Value: formatNumber(m.DebtToEquity)},
		{Label: "Current Ratio", Value: formatNumber(m.CurrentRatio)},
		{Label: "Beta", Value: formatNumber(m.Beta)},
		{Label: "Revenue Growth (YoY)", Value: formatPercent(m.RevenueGrowth)},
		{Label: "PEG Ratio", Value: formatNumber(m.PEGRatio)},
	}
}

func formatNumber(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f", *v)
}

func formatPercent(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f%%", *v)
}

// formatDollars renders whole dollars with thousands separators: $3,000,000,000
func formatDollars(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return "$" + humanize.Commaf(math.Round(*v))
}

func formatPrice(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return "$" + humanize.CommafWithDigits(*v, 2)
}

func formatScore(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f", *v)
}

func formatDelta(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%+.1f", *v)
}

func formatBetter(b *bool) string {
	switch {
	case b == nil:
		return NotAvailable
	case *b:
		return "yes"
	default:
		return "no"
	}
}

// Markdown renders the report as GitHub-flavored Markdown
func Markdown(r *Report) string {
	var sb strings.Builder

	title := r.Symbol
	if r.Name != "" {
		title = fmt.Sprintf("%s: %s", r.Symbol, r.Name)
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "**Overall score: %.1f/100 (%s)**\n\n", r.Result.OverallScore, r.Result.Label)
	fmt.Fprintf(&sb, "%s\n\n", r.Verdict)

	sector := r.Sector
	if sector == "" {
		sector = NotAvailable
	}
	fmt.Fprintf(&sb, "Sector: %s, benchmarked against %s. Data: %s", sector, r.BenchmarkSector, r.Provider)
	if r.RevenueProvider != "" && r.RevenueProvider != r.Provider {
		fmt.Fprintf(&sb, ", revenue history: %s", r.RevenueProvider)
	}
	sb.WriteString(".\n\n")

	sb.WriteString("## Company Overview\n\n")
	sb.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Market Cap | %s |\n", r.Overview.MarketCap)
	fmt.Fprintf(&sb, "| Trailing P/E | %s |\n", r.Overview.TrailingPE)
	fmt.Fprintf(&sb, "| Forward P/E | %s |\n", r.Overview.ForwardPE)
	fmt.Fprintf(&sb, "| PEG Ratio | %s |\n", r.Overview.PEGRatio)
	fmt.Fprintf(&sb, "| Current Price | %s |\n\n", r.Overview.CurrentPrice)

	sb.WriteString("## Key Ratios and Profitability\n\n")
	sb.WriteString("| Ratio | Value |\n|---|---|\n")
	for _, kr := range r.KeyRatios {
		fmt.Fprintf(&sb, "| %s | %s |\n", kr.Label, kr.Value)
	}
	sb.WriteString("\n")

	sb.WriteString("## Fundamental Strength Score\n\n")
	if r.Result.InsufficientData {
		fmt.Fprintf(&sb, "_%s_\n\n", r.Result.Reason)
	}
	sb.WriteString("| Metric | Score | Weight |\n|---|---|---|\n")
	for _, sub := range r.Result.Breakdown {
		fmt.Fprintf(&sb, "| %s | %s | %.0f%% |\n", sub.Metric, formatScore(sub.Score), sub.Weight*100)
	}
	sb.WriteString("\n")

	writeList(&sb, "Strengths", r.Result.Strengths)
	writeList(&sb, "Watch-outs", r.Result.Watchouts)

	fmt.Fprintf(&sb, "## Sector Comparison (%s)\n\n", r.BenchmarkSector)
	sb.WriteString("| Metric | Value | Target | Delta | Better |\n|---|---|---|---|---|\n")
	for _, c := range r.Comparison {
		fmt.Fprintf(&sb, "| %s | %s | %.2f | %s | %s |\n",
			c.Metric, formatNumber(c.Value), c.Target, formatDelta(c.Delta), formatBetter(c.Better))
	}

	if len(r.Warnings) > 0 {
		sb.WriteString("\n## Data Warnings\n\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
	}

	return sb.String()
}

func writeList(sb *strings.Builder, heading string, items []string) {
	fmt.Fprintf(sb, "### %s\n\n", heading)
	if len(items) == 0 {
		sb.WriteString("None.\n\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
	sb.WriteString("\n")
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML renders the report as a standalone HTML page
func HTML(r *Report) ([]byte, error) {
	var content bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(r)), &content); err != nil {
		return nil, fmt.Errorf("markdown convert: %w", err)
	}
	return page(r.Symbol+" fundamentals", r.Symbol, content.String()), nil
}

// ErrorHTML renders a page carrying only the lookup form and a message
func ErrorHTML(symbol, message string) []byte {
	body := "<p class='error'>" + html.EscapeString(message) + "</p>"
	return page("Fundamental Stock Analysis", symbol, body)
}

func page(title, symbol, body string) []byte {
	var b bytes.Buffer
	b.WriteString("<!doctype html><html><head><meta charset='utf-8'>")
	b.WriteString("<title>" + html.EscapeString(title) + "</title>")
	b.WriteString("<style>" +
		"body{font-family:system-ui,sans-serif;max-width:960px;margin:0 auto;padding:1rem;color:#1c1917;} " +
		"table{border-collapse:collapse;width:100%;margin-bottom:1rem;} " +
		"th,td{border:1px solid #d6d3d1;padding:0.35rem 0.5rem;text-align:left;} " +
		"thead th{background:#f5f5f4;} " +
		".error{color:#b91c1c;font-weight:600;} " +
		"form{margin-bottom:1.5rem;}" +
		"</style></head><body>")
	b.WriteString("<form method='get' action='/report'>" +
		"<label for='symbol'>Ticker symbol</label> " +
		"<input id='symbol' name='symbol' placeholder='AAPL, MSFT, TSLA' value='" + html.EscapeString(symbol) + "'> " +
		"<button type='submit'>Analyze</button></form>")
	b.WriteString(body)
	b.WriteString("</body></html>")
	return b.Bytes()
}
