package geometry

import (
	geom "github.com/twpayne/go-geom"

	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
)

// ProjectionScale is the Mercator zoom that fills the fixed-size static map
// with the rotated country.
const ProjectionScale = 8

// Frame is the projection viewport for the rotated collection: total bounds,
// vertical padding and the projection center.
type Frame struct {
	MinLon, MaxLon float64
	MinLat, MaxLat float64
	// LatPad widens the latitude range by 5% of its span on each side.
	LatPad float64
	// Center is where the Mercator projection looks. CenterLat divides the
	// latitude sum by 2.9 rather than 2; the offset is calibrated to seat the
	// rotated strip above the footnote block.
	CenterLon, CenterLat float64
}

// Frame computes the display viewport from the current (normally rotated)
// geometry.
func (c *Collection) Frame() (Frame, error) {
	if len(c.Features) == 0 {
		return Frame{}, dErrors.New(dErrors.CodeValidation, "empty boundary collection")
	}
	bounds := geom.NewBounds(geom.XY)
	for _, f := range c.Features {
		bounds.Extend(f.Geometry)
	}

	minLon, minLat := bounds.Min(0), bounds.Min(1)
	maxLon, maxLat := bounds.Max(0), bounds.Max(1)
	return Frame{
		MinLon:    minLon,
		MaxLon:    maxLon,
		MinLat:    minLat,
		MaxLat:    maxLat,
		LatPad:    (maxLat - minLat) * 0.05,
		CenterLon: (minLon + maxLon) / 2,
		CenterLat: (minLat + maxLat) / 2.9,
	}, nil
}

// LatRange returns the padded latitude axis range for the geo layout.
func (f Frame) LatRange() [2]float64 {
	return [2]float64{f.MinLat - f.LatPad, f.MaxLat + f.LatPad}
}
