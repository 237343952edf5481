package importer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// maxFingerprintLen bounds the fingerprint so it stays usable as an
// index key.
const maxFingerprintLen = 500

// Fingerprint derives the dedupe key for an imported row:
// account|date|amount|description, truncated. Amounts are rendered with
// trailing zeros trimmed so 5.0 and 5.00 collide as intended.
func Fingerprint(accountID string, date time.Time, amount decimal.Decimal, description string) string {
	s := strings.Join([]string{
		accountID,
		date.Format("2006-01-02"),
		amount.String(),
		strings.TrimSpace(description),
	}, "|")
	if len(s) > maxFingerprintLen {
		s = s[:maxFingerprintLen]
	}
	return s
}
