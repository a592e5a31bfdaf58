package rates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtquiroga/DAA-por-region/internal/ingest"
	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
)

func summaryPanel() *Panel {
	return Build(&ingest.Sources{
		Transactions: []ingest.Transaction{
			{Region: "V", Year: 2010, Type: "COMPRAVENTA"},
			{Region: "V", Year: 2010, Type: "COMPRAVENTA"},
			{Region: "XIII", Year: 2011, Type: "CESION"},
		},
		Population: []ingest.PopulationRow{
			{Region: "V", Year: 2010, Population: 400000},
			{Region: "XIII", Year: 2011, Population: 5000000},
		},
		Australia: []ingest.AustraliaYear{
			{Year: 2010, Sales: 8000, Population: 20000000, PerCapita: 0.0004},
		},
	})
}

func TestStaticSummaryWithAustralia(t *testing.T) {
	panel := summaryPanel()

	text, err := panel.StaticSummary(2010)
	require.NoError(t, err)

	// 2 sales / 400 000 inhabitants = 0.5 per 100k; Australia recomputed
	// from absolutes: 8000/20 000 000*100000 = 40.0.
	assert.Equal(t,
		"Total Chile 2010: 2 compraventas (0.5 por 100 000 pers.) — Australia 2010: 8000 (40.0 por 100 000 pers.)",
		text)
}

func TestStaticSummaryWithoutAustralia(t *testing.T) {
	panel := summaryPanel()

	text, err := panel.StaticSummary(2011)
	require.NoError(t, err)
	assert.Equal(t, "Total Chile 2011: 1 compraventas (0.0 por 100 000 pers.)", text)
	assert.NotContains(t, text, "Australia")
}

func TestDashboardSummaryWithAustralia(t *testing.T) {
	panel := summaryPanel()

	text, err := panel.DashboardSummary(2010)
	require.NoError(t, err)
	assert.Equal(t,
		"Total Chile 2010: 2 (0.0000 per cápita) — Australia 2010: 8000 (0.0004 per cápita)",
		text)
}

func TestSummaryUnknownYear(t *testing.T) {
	panel := summaryPanel()

	_, err := panel.StaticSummary(1999)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = panel.DashboardSummary(1999)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestFootnotes(t *testing.T) {
	assert.Equal(t,
		"Nota: para Chile se consideran sólo transacciones de tipo ARRENDAMIENTO, CESION, COMPRAVENTA, DACION EN PAGO, DONACION, LIQUIDACIÓN, PERMUTA.",
		StaticFootnote())
	assert.Equal(t,
		"Nota: solo tipos ARRENDAMIENTO, CESION, COMPRAVENTA, DACION EN PAGO, DONACION, LIQUIDACIÓN, PERMUTA",
		DashboardFootnote())
}
