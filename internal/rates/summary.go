package rates

import (
	"fmt"

	"github.com/jtquiroga/DAA-por-region/internal/region"
	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
)

// StaticSummary renders the per-100k national line shown under the exported
// map. The Australia fragment appears only for years the workbook covers,
// and recomputes the per-100k rate from the published absolute figures.
func (p *Panel) StaticSummary(year int) (string, error) {
	total, ok := p.Totals[year]
	if !ok {
		return "", dErrors.Newf(dErrors.CodeNotFound, "no data for year %d", year)
	}

	text := fmt.Sprintf("Total Chile %d: %d compraventas (%.1f por 100 000 pers.)",
		year, total.Sales, total.Per100k)
	if aus := total.Australia; aus != nil {
		aus100k := safeRate(aus.Sales, aus.Population, 100000)
		text += fmt.Sprintf(" — Australia %d: %d (%.1f por 100 000 pers.)",
			year, aus.Sales, aus100k)
	}
	return text, nil
}

// DashboardSummary renders the per-capita national line the dashboard shows
// for the selected year. The Australia rate here is the workbook's published
// per-capita column.
func (p *Panel) DashboardSummary(year int) (string, error) {
	total, ok := p.Totals[year]
	if !ok {
		return "", dErrors.Newf(dErrors.CodeNotFound, "no data for year %d", year)
	}

	text := fmt.Sprintf("Total Chile %d: %d (%.4f per cápita)",
		year, total.Sales, total.PerCapita)
	if aus := total.Australia; aus != nil {
		text += fmt.Sprintf(" — Australia %d: %d (%.4f per cápita)",
			year, aus.Sales, aus.PerCapita)
	}
	return text, nil
}

// StaticFootnote is the fixed note under the exported map.
func StaticFootnote() string {
	return "Nota: para Chile se consideran sólo transacciones de tipo " +
		region.TransactionTypesNote() + "."
}

// DashboardFootnote is the shorter note the dashboard page shows.
func DashboardFootnote() string {
	return "Nota: solo tipos " + region.TransactionTypesNote()
}
