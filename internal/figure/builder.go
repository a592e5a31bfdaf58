package figure

import (
	"strconv"

	"github.com/jtquiroga/DAA-por-region/internal/geometry"
	"github.com/jtquiroga/DAA-por-region/internal/rates"
	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
)

const (
	staticWidth  = 1300
	staticHeight = 500

	dashboardHeight = 500

	colorScale   = "Viridis"
	featureIDKey = "properties.region_id"
	colorLabel   = "ventas per cápita"

	// staticHover shows the per-100k value under the historical per-capita
	// label; the dashboard hover shows the true per-capita rate.
	staticHover    = "<b>%{location}</b><br>ventas per cápita=%{z:.1f}<br>n_ventas=%{customdata[0]}<br>population=%{customdata[1]}<extra></extra>"
	dashboardHover = "<b>%{location}</b><br>ventas per cápita=%{z:.4f}<br>n_ventas=%{customdata[0]}<br>population=%{customdata[1]}<extra></extra>"

	playFrameMS = 500
)

// Builder renders rate panels against one prepared boundary collection. The
// collection is expected to be cleaned and rotated before the builder is
// constructed; the projection frame is computed once from it.
type Builder struct {
	boundaries *geometry.Collection
	frame      geometry.Frame
}

// NewBuilder computes the display frame for the collection and returns a
// builder bound to it.
func NewBuilder(boundaries *geometry.Collection) (*Builder, error) {
	frame, err := boundaries.Frame()
	if err != nil {
		return nil, err
	}
	return &Builder{boundaries: boundaries, frame: frame}, nil
}

// Animated builds the multi-year choropleth for the static export: one frame
// per year, a year slider, play and pause buttons, and the summary and
// footnote annotations restated on every frame so they survive frame
// switches. Regions are colored by transactions per 100 000 inhabitants on a
// scale fixed across all years.
func (b *Builder) Animated(panel *rates.Panel) (*Figure, error) {
	if panel.Empty() {
		return nil, dErrors.New(dErrors.CodeValidation, "no transaction data to plot")
	}

	frames := make([]AnimationFrame, 0, len(panel.Years))
	steps := make([]SliderStep, 0, len(panel.Years))
	for _, year := range panel.Years {
		name := strconv.Itoa(year)
		summary, err := panel.StaticSummary(year)
		if err != nil {
			return nil, err
		}
		frames = append(frames, AnimationFrame{
			Name:   name,
			Data:   []Trace{yearTrace(panel.YearSeries(year), nil, per100k, staticHover)},
			Layout: &FrameLayout{Annotations: staticAnnotations(summary)},
		})
		steps = append(steps, SliderStep{
			Label:  name,
			Method: "animate",
			Args:   []any{[]string{name}, stepOpts()},
		})
	}

	first := panel.Years[0]
	firstSummary, err := panel.StaticSummary(first)
	if err != nil {
		return nil, err
	}

	return &Figure{
		Data: []Trace{yearTrace(panel.YearSeries(first), b.boundaries, per100k, staticHover)},
		Layout: Layout{
			Width:  staticWidth,
			Height: staticHeight,
			Margin: &Margin{L: 0, R: 0, T: 0, B: 100},
			Geo: &Geo{
				Visible:    false,
				Projection: &Projection{Type: "mercator", Scale: geometry.ProjectionScale},
				LatAxis:    &AxisRange{Range: b.frame.LatRange()},
				Center:     &Center{Lon: b.frame.CenterLon, Lat: b.frame.CenterLat},
			},
			ColorAxis:   sharedColorAxis(panel.MaxPer100k),
			Sliders:     []Slider{yearSlider(steps)},
			UpdateMenus: []UpdateMenu{playPauseMenu()},
			Annotations: staticAnnotations(firstSummary),
		},
		Frames: frames,
	}, nil
}

// Year builds the single-year choropleth the dashboard redraws on each
// slider move. Regions are colored by the per-capita rate; the bounds fit
// the unrotated locations, and summary text is left to the page.
func (b *Builder) Year(panel *rates.Panel, year int) (*Figure, error) {
	if !panel.HasYear(year) {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "no data for year %d", year)
	}
	return &Figure{
		Data: []Trace{yearTrace(panel.YearSeries(year), b.boundaries, perCapita, dashboardHover)},
		Layout: Layout{
			Height:    dashboardHeight,
			Margin:    &Margin{},
			Geo:       &Geo{Visible: false, FitBounds: "locations"},
			ColorAxis: sharedColorAxis(panel.MaxPerCapita),
		},
	}, nil
}

func per100k(ry rates.RegionYear) float64   { return ry.Per100k }
func perCapita(ry rates.RegionYear) float64 { return ry.PerCapita }

// yearTrace builds one choropleth trace. geoJSON is set on the base trace
// only; frame traces omit it because plotly keeps the geometry loaded and
// merges the remaining attributes.
func yearTrace(series []rates.RegionYear, geoJSON any, value func(rates.RegionYear) float64, hover string) Trace {
	locations := make([]string, 0, len(series))
	z := make([]float64, 0, len(series))
	custom := make([][]float64, 0, len(series))
	for _, ry := range series {
		locations = append(locations, string(ry.Region))
		z = append(z, value(ry))
		custom = append(custom, []float64{float64(ry.Sales), ry.Population})
	}
	return Trace{
		Type:          "choropleth",
		GeoJSON:       geoJSON,
		Locations:     locations,
		Z:             z,
		FeatureIDKey:  featureIDKey,
		ColorAxis:     "coloraxis",
		CustomData:    custom,
		HoverTemplate: hover,
	}
}

// sharedColorAxis fixes the color range from zero to the panel-wide maximum
// so colors stay comparable across years.
func sharedColorAxis(max float64) *ColorAxis {
	return &ColorAxis{
		CMin:       0,
		CMax:       max,
		ColorScale: colorScale,
		ColorBar:   &ColorBar{Title: &Title{Text: colorLabel}},
	}
}

// staticAnnotations places the year summary and, below it, the transaction
// type footnote in the bottom margin of the static map.
func staticAnnotations(summary string) []Annotation {
	return []Annotation{
		{
			X: 0, Y: -0.04, XRef: "paper", YRef: "paper",
			Text: summary, ShowArrow: false, Align: "left",
			Font: &Font{Size: 14},
		},
		{
			X: 0, Y: -0.08, XRef: "paper", YRef: "paper",
			Text: "<i>" + rates.StaticFootnote() + "</i>", ShowArrow: false, Align: "left",
			Font: &Font{Size: 10},
		},
	}
}

func yearSlider(steps []SliderStep) Slider {
	return Slider{
		Active:       0,
		CurrentValue: &CurrentValue{Prefix: "year=", Visible: true},
		Len:          0.9,
		Pad:          &Pad{B: 10, T: 60},
		Steps:        steps,
		X:            0.1,
		XAnchor:      "left",
		Y:            0,
		YAnchor:      "top",
	}
}

func playPauseMenu() UpdateMenu {
	return UpdateMenu{
		Type:       "buttons",
		Direction:  "left",
		ShowActive: false,
		Pad:        &Pad{R: 10, T: 70},
		X:          0.1,
		XAnchor:    "right",
		Y:          0,
		YAnchor:    "top",
		Buttons: []Button{
			{
				Label:  "&#9654;",
				Method: "animate",
				Args:   []any{nil, playOpts()},
			},
			{
				Label:  "&#9724;",
				Method: "animate",
				Args:   []any{[]any{nil}, pauseOpts()},
			},
		},
	}
}

// stepOpts jumps straight to the selected frame.
func stepOpts() animateOpts {
	return animateOpts{
		Frame: frameOpts{Duration: 0, Redraw: true},
		Mode:  "immediate",
	}
}

// playOpts advances through the remaining frames at the play cadence.
func playOpts() animateOpts {
	return animateOpts{
		Frame:       frameOpts{Duration: playFrameMS, Redraw: true},
		Mode:        "immediate",
		FromCurrent: true,
		Transition:  transitionOpts{Duration: playFrameMS, Easing: "linear"},
	}
}

// pauseOpts halts the animation on the current frame.
func pauseOpts() animateOpts {
	return animateOpts{
		Frame: frameOpts{Duration: 0, Redraw: true},
		Mode:  "immediate",
	}
}
