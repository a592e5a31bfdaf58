// Package rates turns raw source rows into the per-capita panel behind both
// delivery modes: filter sales, count by region and year, join population,
// derive rates and national totals.
package rates

import (
	"sort"

	"github.com/jtquiroga/DAA-por-region/internal/ingest"
	"github.com/jtquiroga/DAA-por-region/internal/region"
)

// RegionYear is one cell of the panel: sales and rates for a region in a
// year.
type RegionYear struct {
	Region     region.ID `json:"region_id"`
	Year       int       `json:"year"`
	Sales      int       `json:"n_ventas"`
	Population float64   `json:"population"`
	PerCapita  float64   `json:"ventas_per_capita"`
	Per100k    float64   `json:"ventas_per_100k"`
}

// YearTotal is the national aggregate for one year, with the Australia
// comparison attached when the workbook has that year.
type YearTotal struct {
	Year       int
	Sales      int
	Population float64
	PerCapita  float64
	Per100k    float64
	Australia  *ingest.AustraliaYear
}

// Panel is the joined dataset: the region-year series, per-year national
// totals, the slider years and the global rate maxima that pin the color
// scale across years.
type Panel struct {
	Series       []RegionYear
	Totals       map[int]YearTotal
	Years        []int
	MaxPerCapita float64
	MaxPer100k   float64
}

type cell struct {
	region region.ID
	year   int
}

// Build aggregates sources into a panel. Only valid sale types count;
// region-years with sales but no population row keep population zero and
// rate zero. A source set with no valid sales yields an empty panel, which
// is the caller's problem to reject or render.
func Build(sources *ingest.Sources) *Panel {
	counts := make(map[cell]int)
	for _, tx := range sources.Transactions {
		if !region.IsValidTransactionType(tx.Type) {
			continue
		}
		counts[cell{region: tx.Region, year: tx.Year}]++
	}

	population := make(map[cell]float64, len(sources.Population))
	for _, row := range sources.Population {
		population[cell{region: row.Region, year: row.Year}] = row.Population
	}

	australia := make(map[int]ingest.AustraliaYear, len(sources.Australia))
	for _, row := range sources.Australia {
		australia[row.Year] = row
	}

	panel := &Panel{Totals: make(map[int]YearTotal)}
	yearSet := make(map[int]struct{})

	for key, sales := range counts {
		pop := population[key]
		panel.Series = append(panel.Series, RegionYear{
			Region:     key.region,
			Year:       key.year,
			Sales:      sales,
			Population: pop,
			PerCapita:  safeRate(sales, pop, 1),
			Per100k:    safeRate(sales, pop, 100000),
		})
		yearSet[key.year] = struct{}{}
	}

	sort.Slice(panel.Series, func(i, j int) bool {
		a, b := panel.Series[i], panel.Series[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		codeA, _ := region.CodeOf(a.Region)
		codeB, _ := region.CodeOf(b.Region)
		return codeA < codeB
	})

	for year := range yearSet {
		panel.Years = append(panel.Years, year)
	}
	sort.Ints(panel.Years)

	for _, row := range panel.Series {
		if row.PerCapita > panel.MaxPerCapita {
			panel.MaxPerCapita = row.PerCapita
		}
		if row.Per100k > panel.MaxPer100k {
			panel.MaxPer100k = row.Per100k
		}

		total := panel.Totals[row.Year]
		total.Year = row.Year
		total.Sales += row.Sales
		total.Population += row.Population
		panel.Totals[row.Year] = total
	}

	for year, total := range panel.Totals {
		total.PerCapita = safeRate(total.Sales, total.Population, 1)
		total.Per100k = safeRate(total.Sales, total.Population, 100000)
		if aus, ok := australia[year]; ok {
			ausCopy := aus
			total.Australia = &ausCopy
		}
		panel.Totals[year] = total
	}

	return panel
}

// safeRate divides sales scaled by factor by population, guarding the
// zero-population cells the left join produces. Scaling before dividing keeps
// the result a single rounded division, so round factors give round rates.
func safeRate(sales int, population, factor float64) float64 {
	if population == 0 {
		return 0
	}
	return float64(sales) * factor / population
}

// YearSeries returns the panel rows for one year, in region order.
func (p *Panel) YearSeries(year int) []RegionYear {
	var out []RegionYear
	for _, row := range p.Series {
		if row.Year == year {
			out = append(out, row)
		}
	}
	return out
}

// HasYear reports whether the panel carries data for the year.
func (p *Panel) HasYear(year int) bool {
	_, ok := p.Totals[year]
	return ok
}

// Empty reports whether no valid sales survived the filter.
func (p *Panel) Empty() bool {
	return len(p.Series) == 0
}
