package document

var (
	onesWords = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven",
		"Eight", "Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
		"Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tensWords = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty",
		"Seventy", "Eighty", "Ninety"}
)

// AmountInWords spells out a non-negative integer using the Indian numbering
// scale (hundred, thousand, lakh, crore). Zero renders as "Zero".
func AmountInWords(n int64) string {
	if n == 0 {
		return "Zero"
	}
	return amountInWords(n)
}

func amountInWords(n int64) string {
	switch {
	case n < 20:
		return onesWords[n]
	case n < 100:
		out := tensWords[n/10]
		if rem := n % 10; rem != 0 {
			out += " " + onesWords[rem]
		}
		return out
	case n < 1_000:
		return group(n, 100, " Hundred")
	case n < 100_000:
		return group(n, 1_000, " Thousand")
	case n < 10_000_000:
		return group(n, 100_000, " Lakh")
	default:
		return group(n, 10_000_000, " Crore")
	}
}

func group(n, unit int64, label string) string {
	out := amountInWords(n/unit) + label
	if rem := n % unit; rem != 0 {
		out += " " + amountInWords(rem)
	}
	return out
}
