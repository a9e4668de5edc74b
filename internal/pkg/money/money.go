package money

import (
	"math"
	"strconv"
	"strings"
)

// Format renders a price for display: truncated toward zero to whole
// currency units, with thousands separators. Engine calculations keep the
// exact value; only presentation truncates.
func Format(price float64) string {
	whole := int64(math.Trunc(price))

	s := strconv.FormatInt(whole, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	out := "฿" + b.String()
	if neg {
		out = "-" + out
	}
	return out
}
