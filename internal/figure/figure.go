// Package figure assembles the Plotly figure documents both delivery modes
// render: the animated multi-year figure embedded in the static export and
// the single-year figure the dashboard redraws on each slider move. The
// types below mirror the subset of the Plotly JSON schema the maps use, so
// marshaling a Figure yields a document plotly.js renders as-is.
package figure

// Figure is a complete Plotly document: traces, layout and, for the
// animated map, one frame per year.
type Figure struct {
	Data   []Trace          `json:"data"`
	Layout Layout           `json:"layout"`
	Frames []AnimationFrame `json:"frames,omitempty"`
}

// Trace is a choropleth trace. GeoJSON carries the boundary collection on
// the base trace only; frame traces update locations and values against the
// geometry already loaded in the plot.
type Trace struct {
	Type          string      `json:"type"`
	GeoJSON       any         `json:"geojson,omitempty"`
	Locations     []string    `json:"locations"`
	Z             []float64   `json:"z"`
	FeatureIDKey  string      `json:"featureidkey"`
	ColorAxis     string      `json:"coloraxis,omitempty"`
	CustomData    [][]float64 `json:"customdata,omitempty"`
	HoverTemplate string      `json:"hovertemplate,omitempty"`
}

// AnimationFrame is one year of the animated figure. Its layout replaces the
// base annotations while the frame is shown, so every frame restates the
// footnote alongside its own summary line.
type AnimationFrame struct {
	Name   string       `json:"name"`
	Data   []Trace      `json:"data"`
	Layout *FrameLayout `json:"layout,omitempty"`
}

// FrameLayout holds the per-frame layout overrides.
type FrameLayout struct {
	Annotations []Annotation `json:"annotations"`
}

// Layout is the figure layout subset the maps configure.
type Layout struct {
	Width       int          `json:"width,omitempty"`
	Height      int          `json:"height,omitempty"`
	Margin      *Margin      `json:"margin,omitempty"`
	Geo         *Geo         `json:"geo,omitempty"`
	ColorAxis   *ColorAxis   `json:"coloraxis,omitempty"`
	Sliders     []Slider     `json:"sliders,omitempty"`
	UpdateMenus []UpdateMenu `json:"updatemenus,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Margin is the plot margin in pixels.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Geo configures the map subplot. Visible has no omitempty: hiding the base
// map axes requires emitting the explicit false.
type Geo struct {
	Visible    bool        `json:"visible"`
	FitBounds  string      `json:"fitbounds,omitempty"`
	Projection *Projection `json:"projection,omitempty"`
	LatAxis    *AxisRange  `json:"lataxis,omitempty"`
	Center     *Center     `json:"center,omitempty"`
}

// Projection selects the map projection and zoom.
type Projection struct {
	Type  string  `json:"type,omitempty"`
	Scale float64 `json:"scale,omitempty"`
}

// AxisRange pins a geo axis to a fixed range.
type AxisRange struct {
	Range [2]float64 `json:"range"`
}

// Center is the projection center in degrees.
type Center struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// ColorAxis is the shared color scale. CMin/CMax have no omitempty because
// the lower bound is a meaningful zero.
type ColorAxis struct {
	CMin       float64   `json:"cmin"`
	CMax       float64   `json:"cmax"`
	ColorScale string    `json:"colorscale,omitempty"`
	ColorBar   *ColorBar `json:"colorbar,omitempty"`
}

// ColorBar labels the color scale.
type ColorBar struct {
	Title *Title `json:"title,omitempty"`
}

// Title wraps a text label.
type Title struct {
	Text string `json:"text,omitempty"`
}

// Slider is the year slider attached to the animated figure.
type Slider struct {
	Active       int           `json:"active"`
	CurrentValue *CurrentValue `json:"currentvalue,omitempty"`
	Len          float64       `json:"len,omitempty"`
	Pad          *Pad          `json:"pad,omitempty"`
	Steps        []SliderStep  `json:"steps"`
	X            float64       `json:"x,omitempty"`
	XAnchor      string        `json:"xanchor,omitempty"`
	Y            float64       `json:"y"`
	YAnchor      string        `json:"yanchor,omitempty"`
}

// CurrentValue renders the "year=YYYY" readout above the slider.
type CurrentValue struct {
	Prefix  string `json:"prefix,omitempty"`
	Visible bool   `json:"visible"`
}

// SliderStep animates to one named frame.
type SliderStep struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

// UpdateMenu hosts the play/pause buttons.
type UpdateMenu struct {
	Type       string   `json:"type"`
	Direction  string   `json:"direction,omitempty"`
	ShowActive bool     `json:"showactive"`
	Pad        *Pad     `json:"pad,omitempty"`
	X          float64  `json:"x,omitempty"`
	XAnchor    string   `json:"xanchor,omitempty"`
	Y          float64  `json:"y"`
	YAnchor    string   `json:"yanchor,omitempty"`
	Buttons    []Button `json:"buttons"`
}

// Button triggers an animate call.
type Button struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

// Pad is the slider/menu padding in pixels.
type Pad struct {
	R int `json:"r,omitempty"`
	T int `json:"t,omitempty"`
	B int `json:"b,omitempty"`
}

// Annotation is a fixed text block in paper coordinates.
type Annotation struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XRef      string  `json:"xref"`
	YRef      string  `json:"yref"`
	Text      string  `json:"text"`
	ShowArrow bool    `json:"showarrow"`
	Font      *Font   `json:"font,omitempty"`
	Align     string  `json:"align,omitempty"`
}

// Font sets the annotation text size.
type Font struct {
	Size int `json:"size,omitempty"`
}

// animateOpts is the options object passed to Plotly.animate by slider
// steps and buttons.
type animateOpts struct {
	Frame       frameOpts      `json:"frame"`
	Mode        string         `json:"mode"`
	FromCurrent bool           `json:"fromcurrent,omitempty"`
	Transition  transitionOpts `json:"transition"`
}

type frameOpts struct {
	Duration int  `json:"duration"`
	Redraw   bool `json:"redraw"`
}

type transitionOpts struct {
	Duration int    `json:"duration"`
	Easing   string `json:"easing,omitempty"`
}
