// Package region defines the shared vocabulary for Chilean regions and
// water-right transaction types. Every other package speaks in terms of these
// identifiers, so parsing and validation live here and nowhere else.
package region

import (
	"strconv"
	"strings"

	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
)

// Code is the numeric region code used by boundary files (codregion 1..16).
type Code int

// ID is the Roman-numeral region identifier used as the join key across
// transactions, population rows and map features (I..XVI).
type ID string

// romanByCode follows the administrative numbering of the 16 regions.
var romanByCode = [17]ID{
	1: "I", 2: "II", 3: "III", 4: "IV", 5: "V", 6: "VI", 7: "VII", 8: "VIII",
	9: "IX", 10: "X", 11: "XI", 12: "XII", 13: "XIII", 14: "XIV", 15: "XV", 16: "XVI",
}

var codeByRoman = func() map[ID]Code {
	m := make(map[ID]Code, 16)
	for c := 1; c <= 16; c++ {
		m[romanByCode[c]] = Code(c)
	}
	return m
}()

// IDOf converts a numeric region code to its Roman identifier.
func IDOf(code Code) (ID, error) {
	if code < 1 || code > 16 {
		return "", dErrors.Newf(dErrors.CodeValidation, "region code %d out of range 1..16", code)
	}
	return romanByCode[code], nil
}

// CodeOf converts a Roman identifier back to its numeric code.
func CodeOf(id ID) (Code, error) {
	if code, ok := codeByRoman[id]; ok {
		return code, nil
	}
	return 0, dErrors.Newf(dErrors.CodeValidation, "unknown region %q", string(id))
}

// ParseID normalizes free-form region text into an ID. Source files are
// inconsistent: boundary data carries numeric codes, transaction extracts
// carry Roman numerals in varying case. Both forms are accepted.
func ParseID(raw string) (ID, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "empty region")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return IDOf(Code(n))
	}
	if _, ok := codeByRoman[ID(s)]; ok {
		return ID(s), nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown region %q", raw)
}

// All returns the 16 region IDs in administrative order.
func All() []ID {
	out := make([]ID, 0, 16)
	for c := 1; c <= 16; c++ {
		out = append(out, romanByCode[c])
	}
	return out
}
