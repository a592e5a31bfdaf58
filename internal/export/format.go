package export

import (
	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
	pstrings "github.com/jtquiroga/DAA-por-region/pkg/platform/strings"
)

// Format identifies one export output format.
type Format string

const (
	// FormatHTML is the self-contained page with the animated map.
	FormatHTML Format = "html"
	// FormatJSON is the regional rate series as JSON.
	FormatJSON Format = "json"
	// FormatCSV is the regional rate series as CSV.
	FormatCSV Format = "csv"
	// FormatGeoJSON is the prepared (cleaned, rotated) boundary collection.
	FormatGeoJSON Format = "geojson"
)

// DefaultFormats is what a run renders when the request names none.
var DefaultFormats = []Format{FormatHTML}

// ParseFormats normalizes raw format names: case-insensitive, trimmed,
// deduplicated, order preserved. An empty list falls back to DefaultFormats.
func ParseFormats(raw []string) ([]Format, error) {
	cleaned := pstrings.DedupeAndTrimLower(raw)
	if len(cleaned) == 0 {
		return append([]Format(nil), DefaultFormats...), nil
	}
	formats := make([]Format, 0, len(cleaned))
	for _, name := range cleaned {
		f := Format(name)
		switch f {
		case FormatHTML, FormatJSON, FormatCSV, FormatGeoJSON:
			formats = append(formats, f)
		default:
			return nil, dErrors.Newf(dErrors.CodeValidation, "unknown export format %q", name)
		}
	}
	return formats, nil
}

// ContentType returns the MIME type artifacts of this format are stored with.
func (f Format) ContentType() string {
	switch f {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatGeoJSON:
		return "application/geo+json"
	default:
		return "application/octet-stream"
	}
}

// Filename returns the artifact filename for this format. The HTML page
// keeps the name index.html so a run directory is directly servable.
func (f Format) Filename() string {
	switch f {
	case FormatHTML:
		return "index.html"
	case FormatJSON:
		return "tasas_regionales.json"
	case FormatCSV:
		return "tasas_regionales.csv"
	case FormatGeoJSON:
		return "regiones_rotated.json"
	default:
		return string(f)
	}
}
