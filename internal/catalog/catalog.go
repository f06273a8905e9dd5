// Package catalog provides the read-only sample data behind every page:
// strategy summaries, community forks, result metrics, the result chart
// series and the code templates shown in the detail and editor views.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/newthinker/quanthub/internal/core"
	"github.com/newthinker/quanthub/internal/route"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultDocument []byte

// Provider supplies page data. Implementations must be safe for concurrent reads.
type Provider interface {
	Strategies() []StrategySummary
	Strategy(id route.Identifier) (StrategySummary, bool)
	Forks() []ForkEntry
	Metrics() []MetricTile
	Chart() ChartSeries
	DetailSource(id route.Identifier) (string, error)
	EditorBuffer(id route.Identifier) (string, error)
}

// Catalog is an immutable Provider built from a YAML document.
type Catalog struct {
	strategies []StrategySummary
	byID       map[route.Identifier]int
	forks      []ForkEntry
	metrics    []MetricTile
	chart      ChartSeries

	detailSource *template.Template
	editorBuffer *template.Template
}

var _ Provider = (*Catalog)(nil)

// document is the on-disk layout.
type document struct {
	Strategies []struct {
		ID          string   `yaml:"id"`
		Name        string   `yaml:"name"`
		Return      string   `yaml:"return"`
		Icon        string   `yaml:"icon"`
		Tags        []string `yaml:"tags"`
		Description string   `yaml:"description"`
	} `yaml:"strategies"`
	Forks []struct {
		Contributor string `yaml:"contributor"`
		Strategy    string `yaml:"strategy"`
		Return      string `yaml:"return"`
	} `yaml:"forks"`
	Metrics []struct {
		Label  string `yaml:"label"`
		Value  string `yaml:"value"`
		Unit   Unit   `yaml:"unit"`
		Signed bool   `yaml:"signed"`
		Tone   Tone   `yaml:"tone"`
	} `yaml:"metrics"`
	Chart struct {
		Categories []string `yaml:"categories"`
		Series     []struct {
			Name  string    `yaml:"name"`
			Style Style     `yaml:"style"`
			Data  []float64 `yaml:"data"`
		} `yaml:"series"`
	} `yaml:"chart"`
	Templates struct {
		DetailSource string `yaml:"detail_source"`
		EditorBuffer string `yaml:"editor_buffer"`
	} `yaml:"templates"`
}

// Default returns the built-in sample catalog.
func Default() *Catalog {
	c, err := Parse(defaultDocument)
	if err != nil {
		// The embedded document is covered by tests.
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	return c
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse builds a catalog from a YAML document and validates it.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, core.WrapError(core.ErrCatalogInvalid, err)
	}

	c := &Catalog{byID: make(map[route.Identifier]int, len(doc.Strategies))}

	for i, s := range doc.Strategies {
		id, err := route.Parse(s.ID)
		if err != nil {
			return nil, invalid("strategies[%d]: %v", i, err)
		}
		if _, dup := c.byID[id]; dup {
			return nil, invalid("strategies[%d]: duplicate id %q", i, id)
		}
		if strings.TrimSpace(s.Name) == "" {
			return nil, invalid("strategies[%d]: name required", i)
		}
		ret, err := decimal.NewFromString(s.Return)
		if err != nil {
			return nil, invalid("strategies[%d]: return %q: %v", i, s.Return, err)
		}
		c.byID[id] = len(c.strategies)
		c.strategies = append(c.strategies, StrategySummary{
			ID:          id,
			Name:        s.Name,
			Return:      ret,
			Icon:        s.Icon,
			Tags:        s.Tags,
			Description: s.Description,
		})
	}

	for i, f := range doc.Forks {
		ret, err := decimal.NewFromString(f.Return)
		if err != nil {
			return nil, invalid("forks[%d]: return %q: %v", i, f.Return, err)
		}
		c.forks = append(c.forks, ForkEntry{
			Contributor: f.Contributor,
			Strategy:    f.Strategy,
			Return:      ret,
		})
	}

	for i, m := range doc.Metrics {
		if m.Label == "" {
			return nil, invalid("metrics[%d]: label required", i)
		}
		val, err := decimal.NewFromString(m.Value)
		if err != nil {
			return nil, invalid("metrics[%d]: value %q: %v", i, m.Value, err)
		}
		if !m.Unit.valid() {
			return nil, invalid("metrics[%d]: unknown unit %q", i, m.Unit)
		}
		if !m.Tone.valid() {
			return nil, invalid("metrics[%d]: unknown tone %q", i, m.Tone)
		}
		c.metrics = append(c.metrics, MetricTile{
			Label:  m.Label,
			Value:  val,
			Unit:   m.Unit,
			Signed: m.Signed,
			Tone:   m.Tone,
		})
	}

	c.chart.Categories = doc.Chart.Categories
	for i, s := range doc.Chart.Series {
		if len(s.Data) != len(doc.Chart.Categories) {
			return nil, invalid("chart.series[%d] %q: %d points for %d categories",
				i, s.Name, len(s.Data), len(doc.Chart.Categories))
		}
		if !s.Style.valid() {
			return nil, invalid("chart.series[%d]: unknown style %q", i, s.Style)
		}
		c.chart.Series = append(c.chart.Series, Series{Name: s.Name, Style: s.Style, Data: s.Data})
	}

	var err error
	if c.detailSource, err = template.New("detail_source").Parse(doc.Templates.DetailSource); err != nil {
		return nil, invalid("templates.detail_source: %v", err)
	}
	if c.editorBuffer, err = template.New("editor_buffer").Parse(doc.Templates.EditorBuffer); err != nil {
		return nil, invalid("templates.editor_buffer: %v", err)
	}

	return c, nil
}

func invalid(format string, args ...any) error {
	return core.WrapError(core.ErrCatalogInvalid, fmt.Errorf(format, args...))
}

// Strategies returns the listing in document order.
func (c *Catalog) Strategies() []StrategySummary {
	out := make([]StrategySummary, len(c.strategies))
	copy(out, c.strategies)
	return out
}

// Strategy looks up a listed strategy by identifier.
func (c *Catalog) Strategy(id route.Identifier) (StrategySummary, bool) {
	i, ok := c.byID[id]
	if !ok {
		return StrategySummary{}, false
	}
	return c.strategies[i], true
}

func (c *Catalog) Forks() []ForkEntry {
	out := make([]ForkEntry, len(c.forks))
	copy(out, c.forks)
	return out
}

func (c *Catalog) Metrics() []MetricTile {
	out := make([]MetricTile, len(c.metrics))
	copy(out, c.metrics)
	return out
}

func (c *Catalog) Chart() ChartSeries {
	out := ChartSeries{
		Categories: append([]string(nil), c.chart.Categories...),
		Series:     make([]Series, len(c.chart.Series)),
	}
	for i, s := range c.chart.Series {
		out.Series[i] = Series{Name: s.Name, Style: s.Style, Data: append([]float64(nil), s.Data...)}
	}
	return out
}

// DetailSource renders the read-only source sample for id.
func (c *Catalog) DetailSource(id route.Identifier) (string, error) {
	return execute(c.detailSource, id)
}

// EditorBuffer renders the initial editor contents for id.
func (c *Catalog) EditorBuffer(id route.Identifier) (string, error) {
	return execute(c.editorBuffer, id)
}

func execute(tmpl *template.Template, id route.Identifier) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, struct{ ID route.Identifier }{id}); err != nil {
		return "", core.WrapError(core.ErrRenderFailed, err)
	}
	return sb.String(), nil
}
