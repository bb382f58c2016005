package extract

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// parseDate parses the DDMMYYYY date format SPED uses. An empty or
// unparseable value yields the zero time rather than an error; period dates
// are informational and must not fail a whole extraction.
func parseDate(s string) time.Time {
	if len(s) < 8 {
		return time.Time{}
	}
	t, err := time.Parse("02012006", s[:8])
	if err != nil {
		return time.Time{}
	}
	return t
}

// toDecimal parses a SPED numeric field, which uses a comma as the decimal
// separator. Empty or malformed values yield zero.
func toDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// zfill left-pads s with zeros to width n, matching how fixed-width fiscal
// codes (CNPJ, NCM, CFOP) are normalized.
func zfill(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
}
