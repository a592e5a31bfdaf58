package export

import (
	"bytes"
	"embed"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"

	"github.com/jtquiroga/DAA-por-region/internal/figure"
	"github.com/jtquiroga/DAA-por-region/internal/rates"
)

//go:embed templates/static.html
var templateFS embed.FS

var staticPage = template.Must(template.ParseFS(templateFS, "templates/static.html"))

const pageTitle = "Transacciones de derechos de agua per cápita en Chile"

type staticPageData struct {
	Title  string
	Figure template.JS
}

// renderHTML wraps the figure in a standalone page that loads plotly.js from
// the CDN, so the artifact opens in a browser with no server behind it.
func renderHTML(fig *figure.Figure) ([]byte, error) {
	encoded, err := json.Marshal(fig)
	if err != nil {
		return nil, fmt.Errorf("encode figure: %w", err)
	}
	var buf bytes.Buffer
	data := staticPageData{Title: pageTitle, Figure: template.JS(encoded)}
	if err := staticPage.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

func renderJSON(panel *rates.Panel) ([]byte, error) {
	return json.MarshalIndent(panel.Series, "", "  ")
}

var csvHeader = []string{"region_id", "year", "n_ventas", "population", "ventas_per_capita", "ventas_per_100k"}

func renderCSV(panel *rates.Panel) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, ry := range panel.Series {
		record := []string{
			string(ry.Region),
			strconv.Itoa(ry.Year),
			strconv.Itoa(ry.Sales),
			strconv.FormatFloat(ry.Population, 'f', -1, 64),
			strconv.FormatFloat(ry.PerCapita, 'f', -1, 64),
			strconv.FormatFloat(ry.Per100k, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
