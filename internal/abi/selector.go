package abi

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Selector is the 4-byte method identifier that prefixes calldata.
type Selector [4]byte

// SelectorFor derives the selector of a canonical signature such as
// "transfer(address,uint256)": the first four bytes of its Keccak-256 hash.
func SelectorFor(signature string) Selector {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature))
	var s Selector
	copy(s[:], h.Sum(nil)[:4])
	return s
}

// Hex returns the selector as 0x followed by 8 hex characters.
func (s Selector) Hex() string { return "0x" + hex.EncodeToString(s[:]) }

// Bytes returns a copy of the selector bytes.
func (s Selector) Bytes() []byte { return append([]byte(nil), s[:]...) }

// Signature builds a canonical signature from a method name and its
// parameter types.
func Signature(name string, types ...Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return name + "(" + strings.Join(parts, ",") + ")"
}

var canonicalSig = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*\(([a-z][a-z0-9]*(\[[0-9]*\])*(,[a-z][a-z0-9]*(\[[0-9]*\])*)*)?\)$`)

// ValidateSignature rejects signatures that carry parameter names,
// whitespace or other non-canonical text.
func ValidateSignature(sig string) error {
	if !canonicalSig.MatchString(sig) {
		return fmt.Errorf("non-canonical method signature %q", sig)
	}
	return nil
}

// EncodeCall returns selector ++ Encode(values).
func EncodeCall(sel Selector, values ...Value) ([]byte, error) {
	args, err := Encode(values...)
	if err != nil {
		return nil, err
	}
	return append(sel.Bytes(), args...), nil
}

// SplitCall separates calldata into its selector and argument block.
func SplitCall(data []byte) (Selector, []byte, error) {
	var s Selector
	if len(data) < len(s) {
		return s, nil, decodeErr(-1, "calldata shorter than a selector (%d bytes)", len(data))
	}
	copy(s[:], data[:4])
	return s, data[4:], nil
}

// DecodeCall checks that data starts with want and decodes the remaining
// arguments as types.
func DecodeCall(want Selector, types []Type, data []byte) ([]Value, error) {
	got, args, err := SplitCall(data)
	if err != nil {
		return nil, err
	}
	if got != want {
		return nil, decodeErr(-1, "selector %s does not match %s", got.Hex(), want.Hex())
	}
	return Decode(types, args)
}
