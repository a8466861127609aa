// Package address validates and normalizes EIP-55 checksum addresses.
package address

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// ErrInvalidAddress is returned for input that is not 20 bytes of hex.
var ErrInvalidAddress = errors.New("invalid address")

// ChecksumMismatchError is returned when an address does not match its
// EIP-55 checksum and unsafe mode was not requested.
type ChecksumMismatchError struct {
	Input    string
	Expected string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("invalid checksum address %s (expected %s)", e.Input, e.Expected)
}

// ToChecksum returns the EIP-55 mixed-case form of a 40-hex-character
// address, with or without 0x prefix. Input is not validated.
func ToChecksum(addr string) string {
	lower := strings.ToLower(strip0x(addr))

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	hash := hex.EncodeToString(h.Sum(nil))

	var result strings.Builder
	result.WriteString("0x")
	for i, c := range lower {
		// Letters whose hash nibble is >= 8 are upper-cased.
		if c >= 'a' && c <= 'f' && hash[i] >= '8' {
			result.WriteByte(byte(c - 32))
		} else {
			result.WriteByte(byte(c))
		}
	}
	return result.String()
}

// ValidateChecksum reports whether addr is well-formed and exactly equal to
// its checksum encoding.
func ValidateChecksum(addr string) bool {
	if !isHexAddress(addr) || !strings.HasPrefix(addr, "0x") {
		return false
	}
	return addr == ToChecksum(addr)
}

// Parse converts s into an address. Unless unsafe is set, s must be in
// checksum form; with unsafe any well-formed hex address is accepted and
// normalized.
func Parse(s string, unsafe bool) (common.Address, error) {
	if !isHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	if !unsafe && !ValidateChecksum(s) {
		return common.Address{}, &ChecksumMismatchError{Input: s, Expected: ToChecksum(s)}
	}
	return common.HexToAddress(s), nil
}

// MustParse is Parse in unsafe mode for compile-time constants; it panics
// on malformed input.
func MustParse(s string) common.Address {
	a, err := Parse(s, true)
	if err != nil {
		panic(err)
	}
	return a
}

func isHexAddress(s string) bool {
	clean := strip0x(s)
	if len(clean) != 2*common.AddressLength {
		return false
	}
	_, err := hex.DecodeString(clean)
	return err == nil
}

func strip0x(s string) string {
	return strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
}
