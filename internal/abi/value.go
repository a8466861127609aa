// Package abi implements the subset of the Ethereum contract ABI needed to
// talk to ERC20-style tokens: 32-byte word encoding of address, uint256,
// string and bytes values, and 4-byte function selectors.
package abi

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Type is an ABI parameter type understood by the codec.
type Type int

const (
	Address Type = iota + 1
	Uint256
	String
	Bytes
)

// String returns the canonical ABI name used in method signatures.
func (t Type) String() string {
	switch t {
	case Address:
		return "address"
	case Uint256:
		return "uint256"
	case String:
		return "string"
	case Bytes:
		return "bytes"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// IsDynamic reports whether values of t are stored in the tail region.
func (t Type) IsDynamic() bool {
	return t == String || t == Bytes
}

// Value is a single typed ABI argument. Only the field matching Type is
// meaningful.
type Value struct {
	Type Type
	Addr common.Address
	Int  *big.Int
	Str  string
	Raw  []byte
}

// AddressValue wraps an address.
func AddressValue(a common.Address) Value { return Value{Type: Address, Addr: a} }

// Uint256Value wraps an unsigned integer. The caller keeps ownership of n.
func Uint256Value(n *big.Int) Value { return Value{Type: Uint256, Int: n} }

// Uint64Value is a convenience for small integers such as decimals.
func Uint64Value(n uint64) Value { return Value{Type: Uint256, Int: new(big.Int).SetUint64(n)} }

// StringValue wraps a UTF-8 string.
func StringValue(s string) Value { return Value{Type: String, Str: s} }

// BytesValue wraps an arbitrary byte string.
func BytesValue(b []byte) Value { return Value{Type: Bytes, Raw: b} }

// Equal reports whether two values have the same type and payload.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case Address:
		return v.Addr == o.Addr
	case Uint256:
		if v.Int == nil || o.Int == nil {
			return v.Int == o.Int
		}
		return v.Int.Cmp(o.Int) == 0
	case String:
		return v.Str == o.Str
	case Bytes:
		return bytes.Equal(v.Raw, o.Raw)
	}
	return false
}

// String renders the value for logs and dry-run output.
func (v Value) String() string {
	switch v.Type {
	case Address:
		return v.Addr.Hex()
	case Uint256:
		if v.Int == nil {
			return "<nil>"
		}
		return v.Int.String()
	case String:
		return fmt.Sprintf("%q", v.Str)
	case Bytes:
		return "0x" + common.Bytes2Hex(v.Raw)
	}
	return "<invalid>"
}

// Types returns the type of each value, in order.
func Types(values []Value) []Type {
	out := make([]Type, len(values))
	for i, v := range values {
		out[i] = v.Type
	}
	return out
}
