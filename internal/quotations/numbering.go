package quotations

import (
	"fmt"
	"strconv"
	"strings"
)

// numberPrefix is the fixed prefix of every human-readable quotation number.
const numberPrefix = "ITBIZ-QT-"

// firstSeries is allocated to the very first quotation ever created.
const firstSeries = 1001

// FormatNumber renders a series as its quotation number. The series is
// zero-padded to four digits and widens naturally beyond 9999.
func FormatNumber(series int64) string {
	return fmt.Sprintf("%s%04d", numberPrefix, series)
}

// ParseNumber recovers the series from a quotation number.
func ParseNumber(number string) (int64, error) {
	digits, ok := strings.CutPrefix(number, numberPrefix)
	if !ok {
		return 0, fmt.Errorf("quotations: malformed number %q", number)
	}
	series, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("quotations: malformed number %q: %w", number, err)
	}
	return series, nil
}
