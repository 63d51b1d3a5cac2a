package utils

import "strconv"

// FormatPrice renders a minor-unit-free price the way the storefront
// always has: "$" with dot-separated thousands, e.g. 499990 ->
// "$499.990".
func FormatPrice(price int) string {
	negative := price < 0
	if negative {
		price = -price
	}

	digits := strconv.Itoa(price)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	formatted := "$" + string(out)
	if negative {
		formatted = "-" + formatted
	}
	return formatted
}
