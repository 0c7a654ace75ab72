package web

import (
	"strconv"
	"strings"
)

// FormatPrice renders a stored price for display: thousands grouped with
// spaces, comma as decimal separator, up to two decimals with trailing
// zeros dropped, tenge suffix. 1234.5 -> "1 234,5 ₸".
func FormatPrice(price float64) string {
	s := strconv.FormatFloat(price, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(intPart[i])
	}
	if frac != "" {
		b.WriteByte(',')
		b.WriteString(frac)
	}
	b.WriteString(" ₸")
	return b.String()
}

// FormatPriceInput renders a price for form editing: plain digits, dot
// separator, no grouping or suffix.
func FormatPriceInput(price float64) string {
	s := strconv.FormatFloat(price, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Paragraphs splits a description on line breaks, one paragraph per line,
// dropping blank segments.
func Paragraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
