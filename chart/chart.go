// Package chart renders a breakdown as an echarts chart. Each renderer
// returns a handle whose Render method writes a self-contained HTML page.
package chart

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/spoo-me/spoo-go/model"
)

// Kind selects the chart type.
type Kind string

const (
	KindBar       Kind = "bar"
	KindPie       Kind = "pie"
	KindLine      Kind = "line"
	KindScatter   Kind = "scatter"
	KindHistogram Kind = "histogram"
	KindBox       Kind = "box"
	KindArea      Kind = "area"
)

// Chart is a rendered chart handle. Every go-echarts chart satisfies it.
type Chart interface {
	Render(w io.Writer) error
}

// UnsupportedKindError reports an unrecognized chart kind.
type UnsupportedKindError struct {
	Kind Kind
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported chart kind %q: valid kinds are bar, pie, line, scatter, histogram, box, area", e.Kind)
}

// Option adjusts chart rendering.
type Option func(*options)

type options struct {
	title        string
	seriesName   string
	rotateLabels bool
	bins         int
}

// WithTitle sets the chart title.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithSeriesName sets the series label. Default "clicks".
func WithSeriesName(name string) Option {
	return func(o *options) { o.seriesName = name }
}

// WithRotatedLabels rotates x-axis labels 90 degrees, which keeps long
// date-series keys readable.
func WithRotatedLabels() Option {
	return func(o *options) { o.rotateLabels = true }
}

// WithBins sets the histogram bin count. Default 10.
func WithBins(bins int) Option {
	return func(o *options) { o.bins = bins }
}

// Render builds a chart of the given kind from a breakdown, keeping the
// breakdown's service order on the axis. Unknown kinds yield an
// *UnsupportedKindError.
func Render(series *model.Breakdown, kind Kind, option ...Option) (Chart, error) {
	o := options{seriesName: "clicks", bins: 10}
	for _, opt := range option {
		opt(&o)
	}

	switch kind {
	case KindBar:
		return renderBar(series, o), nil
	case KindPie:
		return renderPie(series, o), nil
	case KindLine:
		return renderLine(series, o, false), nil
	case KindArea:
		return renderLine(series, o, true), nil
	case KindScatter:
		return renderScatter(series, o), nil
	case KindHistogram:
		return renderHistogram(series, o), nil
	case KindBox:
		return renderBox(series, o), nil
	default:
		return nil, &UnsupportedKindError{Kind: kind}
	}
}

func globalOptions(o options) []charts.GlobalOpts {
	global := []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: o.title}),
	}
	if o.rotateLabels {
		global = append(global, charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: 90},
		}))
	}
	return global
}

func renderBar(series *model.Breakdown, o options) Chart {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(o)...)

	data := make([]opts.BarData, 0, series.Len())
	for _, e := range series.Entries() {
		data = append(data, opts.BarData{Value: e.Count})
	}
	bar.SetXAxis(series.Keys()).AddSeries(o.seriesName, data)
	return bar
}

func renderPie(series *model.Breakdown, o options) Chart {
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: o.title}))

	data := make([]opts.PieData, 0, series.Len())
	for _, e := range series.Entries() {
		data = append(data, opts.PieData{Name: e.Key, Value: e.Count})
	}
	pie.AddSeries(o.seriesName, data)
	return pie
}

func renderLine(series *model.Breakdown, o options, area bool) Chart {
	line := charts.NewLine()
	line.SetGlobalOptions(globalOptions(o)...)

	data := make([]opts.LineData, 0, series.Len())
	for _, e := range series.Entries() {
		data = append(data, opts.LineData{Value: e.Count})
	}
	line.SetXAxis(series.Keys()).AddSeries(o.seriesName, data)
	if area {
		line.SetSeriesOptions(charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.5}))
	}
	return line
}

func renderScatter(series *model.Breakdown, o options) Chart {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(globalOptions(o)...)

	data := make([]opts.ScatterData, 0, series.Len())
	for _, e := range series.Entries() {
		data = append(data, opts.ScatterData{Value: e.Count})
	}
	scatter.SetXAxis(series.Keys()).AddSeries(o.seriesName, data)
	return scatter
}

// renderHistogram bins the count values and draws the bin frequencies as a
// bar chart; echarts has no native histogram.
func renderHistogram(series *model.Breakdown, o options) Chart {
	counts := series.Counts()
	labels, freq := binCounts(counts, o.bins)

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: o.title}))

	data := make([]opts.BarData, 0, len(freq))
	for _, f := range freq {
		data = append(data, opts.BarData{Value: f})
	}
	bar.SetXAxis(labels).AddSeries(o.seriesName, data)
	return bar
}

func renderBox(series *model.Breakdown, o options) Chart {
	box := charts.NewBoxPlot()
	box.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: o.title}))

	summary := fiveNumberSummary(series.Counts())
	box.SetXAxis([]string{o.seriesName}).
		AddSeries(o.seriesName, []opts.BoxPlotData{{Value: summary}})
	return box
}

func binCounts(values []int, bins int) ([]string, []int) {
	if bins < 1 {
		bins = 1
	}
	if len(values) == 0 {
		return []string{}, []int{}
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	width := (max - min + bins) / bins
	if width == 0 {
		width = 1
	}

	labels := make([]string, bins)
	freq := make([]int, bins)
	for i := range labels {
		lo := min + i*width
		labels[i] = fmt.Sprintf("%d-%d", lo, lo+width-1)
	}
	for _, v := range values {
		i := (v - min) / width
		if i >= bins {
			i = bins - 1
		}
		freq[i]++
	}
	return labels, freq
}

// fiveNumberSummary returns [min, q1, median, q3, max] for a boxplot series.
func fiveNumberSummary(values []int) []int {
	if len(values) == 0 {
		return []int{0, 0, 0, 0, 0}
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)

	median := func(v []int) int {
		n := len(v)
		if n%2 == 1 {
			return v[n/2]
		}
		return (v[n/2-1] + v[n/2]) / 2
	}

	n := len(sorted)
	lower := sorted[:n/2]
	upper := sorted[(n+1)/2:]
	if n == 1 {
		lower, upper = sorted, sorted
	}

	return []int{sorted[0], median(lower), median(sorted), median(upper), sorted[n-1]}
}
