package ingest

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/jtquiroga/DAA-por-region/internal/region"
	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
)

// ReadPopulation parses the wide population table: a region column followed
// by one aYYYY column per year (a2005, a2006, ...). The table melts into one
// row per (region, year). A later duplicate of the same cell wins.
func ReadPopulation(r io.Reader) ([]PopulationRow, SourceStats, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, SourceStats{}, dErrors.New(dErrors.CodeValidation, "population: empty file")
	}
	if err != nil {
		return nil, SourceStats{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "population: read header")
	}

	regionCol, err := findColumn(header, []string{"region"})
	if err != nil {
		return nil, SourceStats{}, dErrors.Wrap(err, dErrors.CodeValidation, "population")
	}

	// Year columns are whatever aYYYY headers the table carries.
	type yearColumn struct {
		col  int
		year int
	}
	var yearColumns []yearColumn
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == regionCol || !strings.HasPrefix(name, "a") {
			continue
		}
		year, err := strconv.Atoi(name[1:])
		if err != nil {
			continue
		}
		yearColumns = append(yearColumns, yearColumn{col: i, year: year})
	}
	if len(yearColumns) == 0 {
		return nil, SourceStats{}, dErrors.New(dErrors.CodeValidation, "population: no aYYYY year columns")
	}

	type cellKey struct {
		region region.ID
		year   int
	}
	latest := make(map[cellKey]float64)
	order := make([]cellKey, 0)

	var stats SourceStats
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, SourceStats{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "population: read row")
		}

		id, err := region.ParseID(record[regionCol])
		if err != nil {
			stats.Skipped++
			continue
		}
		stats.Rows++

		for _, yc := range yearColumns {
			if yc.col >= len(record) {
				continue
			}
			cell := strings.TrimSpace(record[yc.col])
			if cell == "" {
				continue
			}
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				stats.Skipped++
				continue
			}
			key := cellKey{region: id, year: yc.year}
			if _, seen := latest[key]; !seen {
				order = append(order, key)
			}
			latest[key] = value
		}
	}

	rows := make([]PopulationRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, PopulationRow{Region: key.region, Year: key.year, Population: latest[key]})
	}
	return rows, stats, nil
}
