package region

import "strings"

// ValidTransactionTypes lists the transaction kinds that count as sales for
// the per-capita series. Everything else in the registry extract (embargoes,
// corrections, annotations) is excluded before aggregation.
var ValidTransactionTypes = []string{
	"ARRENDAMIENTO",
	"CESION",
	"COMPRAVENTA",
	"DACION EN PAGO",
	"DONACION",
	"LIQUIDACIÓN",
	"PERMUTA",
}

var validTypeSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(ValidTransactionTypes))
	for _, t := range ValidTransactionTypes {
		m[t] = struct{}{}
	}
	return m
}()

// NormalizeTransactionType collapses case and spacing so registry typos like
// "Compraventa " or "DACION  EN  PAGO" still match.
func NormalizeTransactionType(raw string) string {
	return strings.Join(strings.Fields(strings.ToUpper(raw)), " ")
}

// IsValidTransactionType reports whether the (normalized) type counts as a
// sale.
func IsValidTransactionType(raw string) bool {
	_, ok := validTypeSet[NormalizeTransactionType(raw)]
	return ok
}

// TransactionTypesNote renders the footnote fragment listing the counted
// types, shared by the static page and the dashboard.
func TransactionTypesNote() string {
	return strings.Join(ValidTransactionTypes, ", ")
}
