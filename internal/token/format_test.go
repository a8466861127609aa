package token

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBalance(t *testing.T) {
	for _, tc := range []struct {
		raw      string
		decimals uint8
		want     string
	}{
		{"500", 3, "0.500"},
		{"123456", 3, "123.456"},
		{"1000", 3, "1.000"},
		{"5", 3, "0.005"},
		{"0", 3, "0.000"},
		{"0", 0, "0"},
		{"42", 0, "42"},
		{"1000000000000000000", 18, "1.000000000000000000"},
		{"1", 18, "0.000000000000000001"},
		{"-1500", 3, "-1.500"},
	} {
		n, ok := new(big.Int).SetString(tc.raw, 10)
		assert.True(t, ok)
		assert.Equal(t, tc.want, FormatBalance(n, tc.decimals), "%s/%d", tc.raw, tc.decimals)
	}
	assert.Equal(t, "0.00", FormatBalance(nil, 2))
}

func TestParseAmount(t *testing.T) {
	for _, tc := range []struct {
		in       string
		decimals uint8
		want     string
	}{
		{"1", 18, "1000000000000000000"},
		{"1.5", 3, "1500"},
		{"0.001", 3, "1"},
		{".5", 1, "5"},
		{"42", 0, "42"},
	} {
		n, ok := ParseAmount(tc.in, tc.decimals)
		assert.True(t, ok, tc.in)
		assert.Equal(t, tc.want, n.String(), tc.in)
	}

	for _, bad := range []string{"", "-1", "+1", "1.2345", "abc", "1.2.3", "0x10"} {
		_, ok := ParseAmount(bad, 3)
		assert.False(t, ok, bad)
	}
}

func TestFormatParseAmountInverse(t *testing.T) {
	n, _ := new(big.Int).SetString("123456789", 10)
	s := FormatBalance(n, 6)
	back, ok := ParseAmount(s, 6)
	assert.True(t, ok)
	assert.Equal(t, 0, n.Cmp(back))
}
