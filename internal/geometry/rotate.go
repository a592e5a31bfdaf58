package geometry

import (
	"math"

	geom "github.com/twpayne/go-geom"

	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
)

// DisplayRotationDeg is the counter-clockwise rotation that turns the
// north-south country into the landscape strip the map renders.
const DisplayRotationDeg = 90

// Rotate turns every boundary counter-clockwise by deg degrees around the
// centroid of the union of all regions, in place.
func (c *Collection) Rotate(deg float64) error {
	origin, err := c.Centroid()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "rotation origin")
	}

	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	rotate := func(coord geom.Coord) geom.Coord {
		dx := coord[0] - origin[0]
		dy := coord[1] - origin[1]
		return geom.Coord{
			origin[0] + dx*cos - dy*sin,
			origin[1] + dx*sin + dy*cos,
		}
	}

	for i := range c.Features {
		f := &c.Features[i]
		switch g := f.Geometry.(type) {
		case *geom.Polygon:
			f.Geometry = transformPolygon(g, rotate)
		case *geom.MultiPolygon:
			mp := geom.NewMultiPolygon(geom.XY)
			for j := 0; j < g.NumPolygons(); j++ {
				if err := mp.Push(transformPolygon(g.Polygon(j), rotate)); err != nil {
					return dErrors.Wrap(err, dErrors.CodeInternal, "rebuild rotated multipolygon")
				}
			}
			f.Geometry = mp
		}
	}
	return nil
}

func transformPolygon(p *geom.Polygon, fn func(geom.Coord) geom.Coord) *geom.Polygon {
	rings := p.Coords()
	out := make([][]geom.Coord, len(rings))
	for r, ring := range rings {
		out[r] = make([]geom.Coord, len(ring))
		for i, coord := range ring {
			out[r][i] = fn(coord)
		}
	}
	return geom.NewPolygon(geom.XY).MustSetCoords(out)
}
