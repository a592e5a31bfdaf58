// Package geometry loads the regional boundary file and prepares it for
// display: repairing invalid rings, rotating the map into its landscape
// orientation and computing the projection frame. All coordinate math runs on
// go-geom types; GeoJSON encoding goes through go-geom's geojson codec.
package geometry

import (
	"encoding/json"
	"fmt"
	"io"

	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/jtquiroga/DAA-por-region/internal/region"
	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
)

// Feature is one region boundary. Geometry is a *geom.Polygon or
// *geom.MultiPolygon in lon/lat (EPSG:4326) order.
type Feature struct {
	Region   region.ID
	Geometry geom.T
}

// Collection holds all region boundaries in codregion order as read from the
// source file.
type Collection struct {
	Features []Feature
}

// Decode reads a GeoJSON FeatureCollection whose features carry a numeric
// codregion property and returns the boundary collection keyed by Roman
// region ID.
func Decode(r io.Reader) (*Collection, error) {
	var fc geojson.FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "decode boundary geojson")
	}
	if len(fc.Features) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "boundary file has no features")
	}

	c := &Collection{Features: make([]Feature, 0, len(fc.Features))}
	for i, f := range fc.Features {
		id, err := regionOf(f)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("boundary feature %d", i))
		}
		switch f.Geometry.(type) {
		case *geom.Polygon, *geom.MultiPolygon:
		default:
			return nil, dErrors.Newf(dErrors.CodeValidation, "boundary feature %d: unsupported geometry %T", i, f.Geometry)
		}
		c.Features = append(c.Features, Feature{Region: id, Geometry: f.Geometry})
	}
	return c, nil
}

// regionOf extracts the region from feature properties. Boundary exports are
// inconsistent about the property name and number encoding.
func regionOf(f *geojson.Feature) (region.ID, error) {
	for _, key := range []string{"codregion", "region_id"} {
		raw, ok := f.Properties[key]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case float64:
			return region.IDOf(region.Code(int(v)))
		case string:
			return region.ParseID(v)
		case json.Number:
			n, err := v.Int64()
			if err != nil {
				return "", dErrors.Newf(dErrors.CodeValidation, "property %s: %v", key, err)
			}
			return region.IDOf(region.Code(n))
		}
	}
	return "", dErrors.New(dErrors.CodeValidation, "missing codregion property")
}

// FeatureCollection renders the collection back to GeoJSON with region_id as
// the only property. The result is what the choropleth embeds and what the
// geojson export format writes.
func (c *Collection) FeatureCollection() *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(c.Features))}
	for _, f := range c.Features {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   f.Geometry,
			Properties: map[string]interface{}{"region_id": string(f.Region)},
		})
	}
	return fc
}

// MarshalJSON lets a Collection stand in anywhere a GeoJSON document is
// expected, such as the embedded geojson field of a choropleth trace.
func (c *Collection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.FeatureCollection())
}

// polygons returns every polygon in the collection, flattening multipolygons.
func (c *Collection) polygons() []*geom.Polygon {
	var out []*geom.Polygon
	for _, f := range c.Features {
		switch g := f.Geometry.(type) {
		case *geom.Polygon:
			out = append(out, g)
		case *geom.MultiPolygon:
			for i := 0; i < g.NumPolygons(); i++ {
				out = append(out, g.Polygon(i))
			}
		}
	}
	return out
}

// Centroid returns the area-weighted centroid of the union of all regions.
// Regions are disjoint, so ring-wise accumulation over the whole collection
// gives the union centroid without a union operation.
func (c *Collection) Centroid() (geom.Coord, error) {
	var sumArea, sumX, sumY float64
	for _, p := range c.polygons() {
		for r := 0; r < p.NumLinearRings(); r++ {
			coords := p.LinearRing(r).Coords()
			area := signedArea(coords)
			nx, ny := centroidNumerators(coords)
			sumArea += area
			sumX += nx
			sumY += ny
		}
	}
	if sumArea == 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "collection has zero total area")
	}
	return geom.Coord{sumX / (6 * sumArea), sumY / (6 * sumArea)}, nil
}

// signedArea is the shoelace sum divided by two. Positive for counter-
// clockwise rings.
func signedArea(coords []geom.Coord) float64 {
	var sum float64
	for i := 0; i+1 < len(coords); i++ {
		sum += coords[i][0]*coords[i+1][1] - coords[i+1][0]*coords[i][1]
	}
	return sum / 2
}

// centroidNumerators accumulates the shoelace centroid terms. Divide by
// 6*area to obtain the centroid.
func centroidNumerators(coords []geom.Coord) (nx, ny float64) {
	for i := 0; i+1 < len(coords); i++ {
		cross := coords[i][0]*coords[i+1][1] - coords[i+1][0]*coords[i][1]
		nx += (coords[i][0] + coords[i+1][0]) * cross
		ny += (coords[i][1] + coords[i+1][1]) * cross
	}
	return nx, ny
}
