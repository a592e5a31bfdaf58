package ingest

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/jtquiroga/DAA-por-region/internal/region"
	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
)

// Transaction CSV header aliases. Registry extracts arrive with the column
// names of whichever export produced them.
var (
	transactionRegionHeaders = []string{"region_id", "numero_region", "region"}
	transactionYearHeaders   = []string{"year", "ano", "anio"}
	transactionTypeHeaders   = []string{"transaction_type", "tipo_transaccion", "tipo"}
)

// ReadTransactions parses the transaction extract. Rows with an unmappable
// region or year are skipped and counted; the type column is kept verbatim
// (normalized) so the aggregation layer decides what counts as a sale.
func ReadTransactions(r io.Reader) ([]Transaction, SourceStats, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, SourceStats{}, dErrors.New(dErrors.CodeValidation, "transactions: empty file")
	}
	if err != nil {
		return nil, SourceStats{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "transactions: read header")
	}

	regionCol, err := findColumn(header, transactionRegionHeaders)
	if err != nil {
		return nil, SourceStats{}, dErrors.Wrap(err, dErrors.CodeValidation, "transactions")
	}
	yearCol, err := findColumn(header, transactionYearHeaders)
	if err != nil {
		return nil, SourceStats{}, dErrors.Wrap(err, dErrors.CodeValidation, "transactions")
	}
	typeCol, err := findColumn(header, transactionTypeHeaders)
	if err != nil {
		return nil, SourceStats{}, dErrors.Wrap(err, dErrors.CodeValidation, "transactions")
	}

	var (
		rows  []Transaction
		stats SourceStats
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, SourceStats{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "transactions: read row")
		}

		id, err := region.ParseID(record[regionCol])
		if err != nil {
			stats.Skipped++
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(record[yearCol]))
		if err != nil {
			stats.Skipped++
			continue
		}

		rows = append(rows, Transaction{
			Region: id,
			Year:   year,
			Type:   region.NormalizeTransactionType(record[typeCol]),
		})
		stats.Rows++
	}
	return rows, stats, nil
}

// findColumn locates the first alias present in the header, matching
// case-insensitively on trimmed names.
func findColumn(header []string, aliases []string) (int, error) {
	for _, alias := range aliases {
		for i, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), alias) {
				return i, nil
			}
		}
	}
	return 0, dErrors.Newf(dErrors.CodeValidation, "missing column %q", aliases[0])
}
