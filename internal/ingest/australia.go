package ingest

import (
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
)

// Workbook column headers, matched after trimming the stray whitespace the
// source sheet carries.
const (
	ausHeaderYear       = "year"
	ausHeaderSales      = "Total trades"
	ausHeaderPopulation = "Población Australia"
	ausHeaderPerCapita  = "Transacciones per capita"
)

// ReadAustralia parses the first sheet of the comparison workbook. Rows with
// unparsable numbers are skipped and counted, not fatal; the comparison is
// optional per year anyway.
func ReadAustralia(r io.Reader) ([]AustraliaYear, SourceStats, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, SourceStats{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "australia: open workbook")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, SourceStats{}, dErrors.New(dErrors.CodeValidation, "australia: workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, SourceStats{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "australia: read rows")
	}
	if len(rows) == 0 {
		return nil, SourceStats{}, dErrors.New(dErrors.CodeValidation, "australia: empty sheet")
	}

	cols := make(map[string]int)
	for i, name := range rows[0] {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{ausHeaderYear, ausHeaderSales, ausHeaderPopulation, ausHeaderPerCapita} {
		if _, ok := cols[required]; !ok {
			return nil, SourceStats{}, dErrors.Newf(dErrors.CodeValidation, "australia: missing column %q", required)
		}
	}

	var (
		out   []AustraliaYear
		stats SourceStats
	)
	for _, row := range rows[1:] {
		year, okYear := cellInt(row, cols[ausHeaderYear])
		sales, okSales := cellInt(row, cols[ausHeaderSales])
		population, okPop := cellFloat(row, cols[ausHeaderPopulation])
		perCapita, okRate := cellFloat(row, cols[ausHeaderPerCapita])
		if !okYear || !okSales || !okPop || !okRate {
			stats.Skipped++
			continue
		}
		out = append(out, AustraliaYear{
			Year:       year,
			Sales:      sales,
			Population: population,
			PerCapita:  perCapita,
		})
		stats.Rows++
	}
	return out, stats, nil
}

// cellFloat reads a numeric cell, tolerating rows shorter than the header.
func cellFloat(row []string, col int) (float64, bool) {
	if col >= len(row) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// cellInt reads an integer cell. Spreadsheet numerics surface as floats
// ("8342.0"), so parse wide then truncate.
func cellInt(row []string, col int) (int, bool) {
	v, ok := cellFloat(row, col)
	if !ok {
		return 0, false
	}
	return int(v), true
}
