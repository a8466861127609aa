package token

import (
	"math/big"
	"strings"
)

// FormatBalance renders a raw token amount with the decimal point placed
// decimals digits from the right, zero-padding small amounts
// (500 with 3 decimals is "0.500").
func FormatBalance(b *big.Int, decimals uint8) string {
	if b == nil {
		b = new(big.Int)
	}
	digits := new(big.Int).Abs(b).String()
	sign := ""
	if b.Sign() < 0 {
		sign = "-"
	}
	if decimals == 0 {
		return sign + digits
	}

	d := int(decimals)
	if len(digits) < d+1 {
		digits = strings.Repeat("0", d+1-len(digits)) + digits
	}
	cut := len(digits) - d
	return sign + digits[:cut] + "." + digits[cut:]
}

// ParseAmount converts a decimal string such as "1.5" into raw units for a
// token with the given decimals. Excess fractional digits are rejected.
func ParseAmount(s string, decimals uint8) (*big.Int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return nil, false
	}
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > int(decimals) {
		return nil, false
	}
	if whole == "" {
		whole = "0"
	}
	frac += strings.Repeat("0", int(decimals)-len(frac))
	n, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, false
	}
	return n, true
}
