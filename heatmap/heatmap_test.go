package heatmap

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spoo-me/spoo-go/model"
)

func TestRender(t *testing.T) {
	countries := model.NewBreakdown(
		model.BreakdownEntry{Key: "United States of America", Count: 500},
		model.BreakdownEntry{Key: "Germany", Count: 300},
	)

	c, err := Render(countries, WithTitle("Countries Heatmap"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	out := buf.String()
	assert.Contains(t, out, "Germany")
	assert.Contains(t, out, "Countries Heatmap")
}

func TestRender_UnknownCountryNamesTolerated(t *testing.T) {
	// Names the world geometry does not know simply render uncolored; the
	// service's country spelling is not something this client can police.
	countries := model.NewBreakdown(
		model.BreakdownEntry{Key: "Atlantis", Count: 40},
		model.BreakdownEntry{Key: "Germany", Count: 300},
	)

	c, err := Render(countries)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
}

func TestRender_CustomColorScale(t *testing.T) {
	countries := model.NewBreakdown(model.BreakdownEntry{Key: "India", Count: 10})

	c, err := Render(countries, WithColorScale("#440154", "#21918c", "#fde725"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	assert.Contains(t, buf.String(), "#21918c")
}
