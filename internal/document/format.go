package document

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatINR renders an amount with the fixed rupee prefix and Indian digit
// grouping (last three digits, then groups of two). Whole amounts drop the
// decimal part, everything else keeps two places.
func FormatINR(amount float64) string {
	return "Rs." + FormatIndian(amount)
}

// FormatIndian applies the Indian grouping convention without a currency prefix.
func FormatIndian(amount float64) string {
	neg := math.Signbit(amount)
	abs := math.Abs(amount)

	var intPart, fracPart string
	if abs == math.Trunc(abs) {
		intPart = strconv.FormatFloat(abs, 'f', 0, 64)
	} else {
		formatted := strconv.FormatFloat(abs, 'f', 2, 64)
		intPart, fracPart, _ = strings.Cut(formatted, ".")
	}

	grouped := groupIndian(intPart)
	if fracPart != "" {
		grouped += "." + fracPart
	}
	if neg {
		return "-" + grouped
	}
	return grouped
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

// FormatIssueDate renders the quotation date the way the document prints it,
// e.g. "2 SEP 2025".
func FormatIssueDate(t time.Time) string {
	return strings.ToUpper(fmt.Sprintf("%d %s %d", t.Day(), t.Format("Jan"), t.Year()))
}
