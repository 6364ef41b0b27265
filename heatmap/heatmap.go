// Package heatmap renders a country breakdown onto a world map. Series keys
// must be country display names as echarts' world geometry spells them;
// names the geometry does not know are silently left uncolored rather than
// reported, since the service's country naming is outside this client's
// control.
package heatmap

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/spoo-me/spoo-go/model"
)

// Chart is a rendered map handle.
type Chart interface {
	Render(w io.Writer) error
}

// Option adjusts heatmap rendering.
type Option func(*options)

type options struct {
	title      string
	seriesName string
	colors     []string
}

// WithTitle sets the map title.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithSeriesName sets the series label. Default "clicks".
func WithSeriesName(name string) Option {
	return func(o *options) { o.seriesName = name }
}

// WithColorScale sets the low-to-high color ramp.
func WithColorScale(colors ...string) Option {
	return func(o *options) { o.colors = colors }
}

// warmRamp approximates the YlOrRd scale: pale yellow through orange to
// dark red.
var warmRamp = []string{"#ffffcc", "#fed976", "#fd8d3c", "#e31a1c", "#800026"}

// Render draws the country breakdown as a choropleth world map.
func Render(countries *model.Breakdown, option ...Option) (Chart, error) {
	o := options{title: "Countries Heatmap", seriesName: "clicks", colors: warmRamp}
	for _, opt := range option {
		opt(&o)
	}

	max := 0
	data := make([]opts.MapData, 0, countries.Len())
	for _, e := range countries.Entries() {
		if e.Count > max {
			max = e.Count
		}
		data = append(data, opts.MapData{Name: e.Key, Value: e.Count})
	}

	m := charts.NewMap()
	m.RegisterMapType("world")
	m.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: o.title}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Min: 0,
			Max: float32(max),
			InRange: &opts.VisualMapInRange{
				Color: o.colors,
			},
		}),
	)
	m.AddSeries(o.seriesName, data)
	return m, nil
}
