package geometry

import (
	geom "github.com/twpayne/go-geom"

	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
)

// minRingCoords is the smallest closed ring: three distinct points plus the
// closing repeat.
const minRingCoords = 4

// Clean repairs the boundary geometries in place: rings are closed,
// consecutive duplicate vertices removed, degenerate rings dropped, and
// winding normalized to exterior counter-clockwise with clockwise holes.
// Registry boundary exports routinely fail all four. Clean is idempotent.
func (c *Collection) Clean() error {
	for i := range c.Features {
		f := &c.Features[i]
		switch g := f.Geometry.(type) {
		case *geom.Polygon:
			cleaned, ok := cleanPolygon(g)
			if !ok {
				return dErrors.Newf(dErrors.CodeInvariantViolation, "region %s: polygon degenerate after cleaning", f.Region)
			}
			f.Geometry = cleaned
		case *geom.MultiPolygon:
			mp := geom.NewMultiPolygon(geom.XY)
			for j := 0; j < g.NumPolygons(); j++ {
				cleaned, ok := cleanPolygon(g.Polygon(j))
				if !ok {
					continue
				}
				if err := mp.Push(cleaned); err != nil {
					return dErrors.Wrap(err, dErrors.CodeInternal, "rebuild multipolygon")
				}
			}
			if mp.NumPolygons() == 0 {
				return dErrors.Newf(dErrors.CodeInvariantViolation, "region %s: all polygons degenerate after cleaning", f.Region)
			}
			f.Geometry = mp
		}
	}
	return nil
}

// cleanPolygon normalizes every ring of p. Returns false when no valid
// exterior ring survives.
func cleanPolygon(p *geom.Polygon) (*geom.Polygon, bool) {
	var rings [][]geom.Coord
	for r := 0; r < p.NumLinearRings(); r++ {
		ring, ok := cleanRing(p.LinearRing(r).Coords())
		if !ok {
			// A degenerate exterior ring voids the polygon; degenerate
			// holes are simply dropped.
			if r == 0 {
				return nil, false
			}
			continue
		}
		// Exterior counter-clockwise, holes clockwise.
		if r == 0 && signedArea(ring) < 0 {
			reverse(ring)
		}
		if r > 0 && signedArea(ring) > 0 {
			reverse(ring)
		}
		rings = append(rings, ring)
	}
	if len(rings) == 0 {
		return nil, false
	}
	return geom.NewPolygon(geom.XY).MustSetCoords(rings), true
}

// cleanRing closes the ring, drops consecutive duplicate vertices and
// rejects rings that are too small or flat to enclose area.
func cleanRing(coords []geom.Coord) ([]geom.Coord, bool) {
	if len(coords) == 0 {
		return nil, false
	}

	deduped := make([]geom.Coord, 0, len(coords)+1)
	for _, coord := range coords {
		if len(deduped) > 0 && sameCoord(deduped[len(deduped)-1], coord) {
			continue
		}
		deduped = append(deduped, geom.Coord{coord[0], coord[1]})
	}
	// Dedupe may leave the ring open (original closing point equal to a
	// trailing duplicate) or the source may never have closed it.
	if len(deduped) > 0 && !sameCoord(deduped[0], deduped[len(deduped)-1]) {
		deduped = append(deduped, geom.Coord{deduped[0][0], deduped[0][1]})
	}

	if len(deduped) < minRingCoords {
		return nil, false
	}
	if area := signedArea(deduped); area > -areaEpsilon && area < areaEpsilon {
		return nil, false
	}
	return deduped, true
}

// areaEpsilon treats rings below ~1 m² in degree space as flat.
const areaEpsilon = 1e-12

func sameCoord(a, b geom.Coord) bool {
	return a[0] == b[0] && a[1] == b[1]
}

func reverse(coords []geom.Coord) {
	for i, j := 0, len(coords)-1; i < j; i, j = i+1, j-1 {
		coords[i], coords[j] = coords[j], coords[i]
	}
}
