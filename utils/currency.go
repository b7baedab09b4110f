package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatCLP formats an amount as Chilean pesos, which have no minor unit.
// Example: 8900 -> "$8.900"
func FormatCLP(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := fmt.Sprintf("%d", n)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	return sign + "$" + strings.Join(groups, ".")
}
