// Package chart builds the option document handed to the browser-side chart
// widget on the result page.
package chart

import (
	"encoding/json"
	"fmt"

	"github.com/newthinker/quanthub/internal/catalog"
)

const (
	primaryColor   = "#10b981"
	benchmarkColor = "#ef4444"
	axisColor      = "#555"
	splitColor     = "#333"
)

// Option is the subset of the ECharts option schema the result page uses.
type Option struct {
	BackgroundColor string   `json:"backgroundColor"`
	Tooltip         Tooltip  `json:"tooltip"`
	Legend          Legend   `json:"legend"`
	Grid            Grid     `json:"grid"`
	XAxis           Axis     `json:"xAxis"`
	YAxis           Axis     `json:"yAxis"`
	Series          []Series `json:"series"`
}

type Tooltip struct {
	Trigger string `json:"trigger"`
}

type Legend struct {
	Data      []string  `json:"data"`
	TextStyle TextStyle `json:"textStyle"`
}

type TextStyle struct {
	Color string `json:"color"`
}

type Grid struct {
	Left         string `json:"left"`
	Right        string `json:"right"`
	Bottom       string `json:"bottom"`
	ContainLabel bool   `json:"containLabel"`
}

type Axis struct {
	Type      string     `json:"type"`
	Data      []string   `json:"data,omitempty"`
	AxisLine  *LineGroup `json:"axisLine,omitempty"`
	SplitLine *LineGroup `json:"splitLine,omitempty"`
}

type LineGroup struct {
	LineStyle LineStyle `json:"lineStyle"`
}

type LineStyle struct {
	Color string `json:"color,omitempty"`
	Type  string `json:"type,omitempty"`
}

type Series struct {
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Smooth    bool       `json:"smooth"`
	Data      []float64  `json:"data"`
	ItemStyle ItemStyle  `json:"itemStyle"`
	LineStyle *LineStyle `json:"lineStyle,omitempty"`
	AreaStyle *AreaStyle `json:"areaStyle,omitempty"`
}

type ItemStyle struct {
	Color string `json:"color"`
}

type AreaStyle struct {
	Color Gradient `json:"color"`
}

// Gradient is a vertical linear gradient.
type Gradient struct {
	Type       string      `json:"type"`
	X          int         `json:"x"`
	Y          int         `json:"y"`
	X2         int         `json:"x2"`
	Y2         int         `json:"y2"`
	ColorStops []ColorStop `json:"colorStops"`
}

type ColorStop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// Build converts catalog series into a line chart option. Every series must
// have one point per category.
func Build(cs catalog.ChartSeries) (Option, error) {
	opt := Option{
		BackgroundColor: "transparent",
		Tooltip:         Tooltip{Trigger: "axis"},
		Legend:          Legend{TextStyle: TextStyle{Color: "#9ca3af"}},
		Grid:            Grid{Left: "3%", Right: "4%", Bottom: "3%", ContainLabel: true},
		XAxis: Axis{
			Type:     "category",
			Data:     cs.Categories,
			AxisLine: &LineGroup{LineStyle: LineStyle{Color: axisColor}},
		},
		YAxis: Axis{
			Type:      "value",
			SplitLine: &LineGroup{LineStyle: LineStyle{Color: splitColor}},
			AxisLine:  &LineGroup{LineStyle: LineStyle{Color: axisColor}},
		},
		Series: make([]Series, 0, len(cs.Series)),
	}

	for _, s := range cs.Series {
		if len(s.Data) != len(cs.Categories) {
			return Option{}, fmt.Errorf("series %q has %d points for %d categories",
				s.Name, len(s.Data), len(cs.Categories))
		}
		opt.Legend.Data = append(opt.Legend.Data, s.Name)
		opt.Series = append(opt.Series, styled(s))
	}

	return opt, nil
}

func styled(s catalog.Series) Series {
	out := Series{
		Name:   s.Name,
		Type:   "line",
		Smooth: true,
		Data:   s.Data,
	}
	switch s.Style {
	case catalog.StyleBenchmark:
		out.ItemStyle = ItemStyle{Color: benchmarkColor}
		out.LineStyle = &LineStyle{Type: "dashed"}
	default:
		out.ItemStyle = ItemStyle{Color: primaryColor}
		out.AreaStyle = &AreaStyle{Color: Gradient{
			Type: "linear",
			X2:   0,
			Y2:   1,
			ColorStops: []ColorStop{
				{Offset: 0, Color: "rgba(16, 185, 129, 0.3)"},
				{Offset: 1, Color: "rgba(16, 185, 129, 0)"},
			},
		}}
	}
	return out
}

// JSON encodes the option for embedding in a page.
func (o Option) JSON() (string, error) {
	b, err := json.Marshal(o)
	if err != nil {
		return "", fmt.Errorf("encoding chart option: %w", err)
	}
	return string(b), nil
}
