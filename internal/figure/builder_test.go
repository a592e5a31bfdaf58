package figure

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	geom "github.com/twpayne/go-geom"

	"github.com/jtquiroga/DAA-por-region/internal/geometry"
	"github.com/jtquiroga/DAA-por-region/internal/ingest"
	"github.com/jtquiroga/DAA-por-region/internal/rates"
	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
)

func testBoundaries(t *testing.T) *geometry.Collection {
	t.Helper()
	square := func(x0 float64) *geom.Polygon {
		return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
			{x0, 0}, {x0 + 2, 0}, {x0 + 2, 2}, {x0, 2}, {x0, 0},
		}})
	}
	return &geometry.Collection{Features: []geometry.Feature{
		{Region: "V", Geometry: square(0)},
		{Region: "XIII", Geometry: square(4)},
	}}
}

func testPanel() *rates.Panel {
	return rates.Build(&ingest.Sources{
		Transactions: []ingest.Transaction{
			{Region: "V", Year: 2010, Type: "COMPRAVENTA"},
			{Region: "V", Year: 2010, Type: "COMPRAVENTA"},
			{Region: "XIII", Year: 2010, Type: "CESION"},
			{Region: "V", Year: 2011, Type: "PERMUTA"},
		},
		Population: []ingest.PopulationRow{
			{Region: "V", Year: 2010, Population: 1000000},
			{Region: "XIII", Year: 2010, Population: 5000000},
			{Region: "V", Year: 2011, Population: 1000000},
		},
	})
}

func TestNewBuilderEmptyCollection(t *testing.T) {
	_, err := NewBuilder(&geometry.Collection{})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestAnimatedFigureShape(t *testing.T) {
	b, err := NewBuilder(testBoundaries(t))
	require.NoError(t, err)
	panel := testPanel()

	fig, err := b.Animated(panel)
	require.NoError(t, err)

	// Base trace carries the geometry and the first year's per-100k values.
	require.Len(t, fig.Data, 1)
	assert.NotNil(t, fig.Data[0].GeoJSON)
	assert.Equal(t, []string{"V", "XIII"}, fig.Data[0].Locations)
	require.Len(t, fig.Data[0].Z, 2)
	assert.InDelta(t, 0.2, fig.Data[0].Z[0], 1e-9)
	assert.InDelta(t, 0.02, fig.Data[0].Z[1], 1e-9)
	assert.Equal(t, [][]float64{{2, 1000000}, {1, 5000000}}, fig.Data[0].CustomData)

	// One frame per year, geometry not repeated.
	require.Len(t, fig.Frames, 2)
	assert.Equal(t, "2010", fig.Frames[0].Name)
	assert.Equal(t, "2011", fig.Frames[1].Name)
	assert.Nil(t, fig.Frames[0].Data[0].GeoJSON)
	assert.InDelta(t, 0.1, fig.Frames[1].Data[0].Z[0], 1e-9)

	require.Len(t, fig.Layout.Sliders, 1)
	steps := fig.Layout.Sliders[0].Steps
	require.Len(t, steps, 2)
	assert.Equal(t, "2010", steps[0].Label)
	assert.Equal(t, "animate", steps[0].Method)
	assert.Equal(t, "year=", fig.Layout.Sliders[0].CurrentValue.Prefix)

	require.Len(t, fig.Layout.UpdateMenus, 1)
	assert.Len(t, fig.Layout.UpdateMenus[0].Buttons, 2)

	require.NotNil(t, fig.Layout.ColorAxis)
	assert.Zero(t, fig.Layout.ColorAxis.CMin)
	assert.InDelta(t, 0.2, fig.Layout.ColorAxis.CMax, 1e-9)

	assert.Equal(t, staticWidth, fig.Layout.Width)
	assert.Equal(t, &Margin{B: 100}, fig.Layout.Margin)
}

func TestAnimatedFrameAnnotations(t *testing.T) {
	b, err := NewBuilder(testBoundaries(t))
	require.NoError(t, err)
	panel := testPanel()

	fig, err := b.Animated(panel)
	require.NoError(t, err)

	// Every frame restates summary and footnote so both survive frame
	// switches; the base layout matches the first frame.
	for _, frame := range fig.Frames {
		require.NotNil(t, frame.Layout)
		require.Len(t, frame.Layout.Annotations, 2)
		assert.Contains(t, frame.Layout.Annotations[1].Text, "Nota: para Chile")
	}
	want, err := panel.StaticSummary(2010)
	require.NoError(t, err)
	assert.Equal(t, want, fig.Frames[0].Layout.Annotations[0].Text)
	assert.Equal(t, fig.Frames[0].Layout.Annotations, fig.Layout.Annotations)
}

func TestAnimatedEmptyPanel(t *testing.T) {
	b, err := NewBuilder(testBoundaries(t))
	require.NoError(t, err)

	_, err = b.Animated(rates.Build(&ingest.Sources{}))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestAnimatedMarshalsPlotlyDocument(t *testing.T) {
	b, err := NewBuilder(testBoundaries(t))
	require.NoError(t, err)

	fig, err := b.Animated(testPanel())
	require.NoError(t, err)

	raw, err := json.Marshal(fig)
	require.NoError(t, err)
	doc := string(raw)

	assert.Contains(t, doc, `"featureidkey":"properties.region_id"`)
	assert.Contains(t, doc, `"visible":false`, "base map must be explicitly hidden")
	assert.Contains(t, doc, `"prefix":"year="`)
	assert.Contains(t, doc, `"FeatureCollection"`)
	assert.Contains(t, doc, `"colorscale":"Viridis"`)

	// Only the base trace embeds the geometry.
	assert.Equal(t, 1, strings.Count(doc, `"geojson"`))
}

func TestYearFigure(t *testing.T) {
	b, err := NewBuilder(testBoundaries(t))
	require.NoError(t, err)
	panel := testPanel()

	fig, err := b.Year(panel, 2010)
	require.NoError(t, err)

	require.Len(t, fig.Data, 1)
	assert.NotNil(t, fig.Data[0].GeoJSON)
	assert.InDelta(t, 2e-6, fig.Data[0].Z[0], 1e-12)
	assert.Contains(t, fig.Data[0].HoverTemplate, "%{z:.4f}")

	assert.Equal(t, "locations", fig.Layout.Geo.FitBounds)
	assert.False(t, fig.Layout.Geo.Visible)
	assert.Equal(t, &Margin{}, fig.Layout.Margin)
	assert.InDelta(t, 2e-6, fig.Layout.ColorAxis.CMax, 1e-12)

	assert.Empty(t, fig.Frames)
	assert.Empty(t, fig.Layout.Sliders)
	assert.Empty(t, fig.Layout.Annotations)
}

func TestYearFigureUnknownYear(t *testing.T) {
	b, err := NewBuilder(testBoundaries(t))
	require.NoError(t, err)

	_, err = b.Year(testPanel(), 1999)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
