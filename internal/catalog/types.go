package catalog

import (
	"github.com/newthinker/quanthub/internal/route"
	"github.com/shopspring/decimal"
)

// StrategySummary is one card on the listing page.
type StrategySummary struct {
	ID          route.Identifier
	Name        string
	Return      decimal.Decimal // percent
	Icon        string
	Tags        []string
	Description string // markdown
}

// ReturnLabel formats the return as a signed percentage ("+125.4%").
func (s StrategySummary) ReturnLabel() string {
	return FormatPercent(s.Return, true)
}

// ForkEntry is one row of the community fork list.
type ForkEntry struct {
	Contributor string
	Strategy    string
	Return      decimal.Decimal // percent
}

func (f ForkEntry) ReturnLabel() string {
	return FormatPercent(f.Return, true)
}

// Unit says how a metric value is displayed.
type Unit string

const (
	UnitPercent Unit = "percent"
	UnitRatio   Unit = "ratio"
)

func (u Unit) valid() bool {
	return u == UnitPercent || u == UnitRatio
}

// Tone selects the color of a metric tile.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
)

func (t Tone) valid() bool {
	return t == TonePositive || t == ToneNegative || t == ToneNeutral
}

// MetricTile is one headline number on the result page.
type MetricTile struct {
	Label  string
	Value  decimal.Decimal
	Unit   Unit
	Signed bool
	Tone   Tone
}

// Display formats the value for its unit ("+45.2%", "1.85", "68%").
func (m MetricTile) Display() string {
	if m.Unit == UnitPercent {
		return FormatPercent(m.Value, m.Signed)
	}
	if m.Signed && m.Value.IsPositive() {
		return "+" + m.Value.String()
	}
	return m.Value.String()
}

// Style selects how a chart series is drawn.
type Style string

const (
	StylePrimary   Style = "primary"
	StyleBenchmark Style = "benchmark"
)

func (s Style) valid() bool {
	return s == StylePrimary || s == StyleBenchmark
}

// Series is one line of the result chart.
type Series struct {
	Name  string
	Style Style
	Data  []float64
}

// ChartSeries pairs category labels with equally long series.
type ChartSeries struct {
	Categories []string
	Series     []Series
}

// FormatPercent renders d as a percentage, with a leading '+' for positive
// values when signed is set.
func FormatPercent(d decimal.Decimal, signed bool) string {
	if signed && d.IsPositive() {
		return "+" + d.String() + "%"
	}
	return d.String() + "%"
}
