package abi

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// WordSize is the width of one ABI slot.
const WordSize = 32

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// MaxUint256 returns a fresh copy of 2^256-1.
func MaxUint256() *big.Int { return new(big.Int).Set(maxUint256) }

// Encode packs values as an argument tuple. Static values occupy one head
// word each; dynamic values place an offset in the head (relative to the
// start of the tuple) and their length-prefixed payload in the tail, in
// declaration order.
func Encode(values ...Value) ([]byte, error) {
	headSize := len(values) * WordSize
	head := make([]byte, 0, headSize)
	var tail []byte

	for i, v := range values {
		switch v.Type {
		case Address:
			head = appendAddress(head, v.Addr)
		case Uint256:
			if err := CheckUint256(v.Int); err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			head = appendBigInt(head, v.Int)
		case String:
			head = appendUint256(head, uint64(headSize+len(tail)))
			tail = appendString(tail, []byte(v.Str))
		case Bytes:
			head = appendUint256(head, uint64(headSize+len(tail)))
			tail = appendString(tail, v.Raw)
		default:
			return nil, fmt.Errorf("argument %d: %w: %s", i, ErrUnsupportedType, v.Type)
		}
	}
	return append(head, tail...), nil
}

// Decode unpacks data as a tuple of the given types. Every offset and
// length is bounds-checked; malformed layouts yield a *DecodeError.
func Decode(types []Type, data []byte) ([]Value, error) {
	if len(data) < len(types)*WordSize {
		return nil, decodeErr(-1, "need %d bytes of head, have %d", len(types)*WordSize, len(data))
	}

	out := make([]Value, len(types))
	for i, t := range types {
		word := data[i*WordSize : (i+1)*WordSize]
		switch t {
		case Address:
			if !isZero(word[:12]) {
				return nil, decodeErr(i, "address word has non-zero high bytes")
			}
			out[i] = AddressValue(common.BytesToAddress(word[12:]))
		case Uint256:
			out[i] = Uint256Value(new(big.Int).SetBytes(word))
		case String:
			payload, err := readDynamic(data, i, word)
			if err != nil {
				return nil, err
			}
			out[i] = StringValue(string(payload))
		case Bytes:
			payload, err := readDynamic(data, i, word)
			if err != nil {
				return nil, err
			}
			out[i] = BytesValue(payload)
		default:
			return nil, decodeErr(i, "%s: %s", ErrUnsupportedType, t)
		}
	}
	return out, nil
}

// DecodeHex is Decode for a 0x-prefixed hex string as returned by eth_call.
func DecodeHex(types []Type, s string) ([]Value, error) {
	data, err := FromHex(s)
	if err != nil {
		return nil, err
	}
	return Decode(types, data)
}

// FromHex decodes an optionally 0x-prefixed, even-length hex string.
func FromHex(s string) ([]byte, error) {
	clean := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(clean)
	if err != nil {
		return nil, decodeErr(-1, "invalid hex: %v", err)
	}
	return b, nil
}

// ToHex renders b as 0x-prefixed lowercase hex.
func ToHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// CheckUint256 reports whether n can be encoded as a uint256.
func CheckUint256(n *big.Int) error {
	switch {
	case n == nil:
		return ErrNilInteger
	case n.Sign() < 0:
		return ErrNegative
	case n.Cmp(maxUint256) > 0:
		return ErrOverflow
	}
	return nil
}

// readDynamic follows the offset in word to a length-prefixed payload.
func readDynamic(data []byte, index int, word []byte) ([]byte, error) {
	offset, ok := wordToInt(word)
	if !ok || offset > len(data)-WordSize {
		return nil, decodeErr(index, "offset %s out of bounds (buffer %d bytes)", new(big.Int).SetBytes(word), len(data))
	}
	lenWord := data[offset : offset+WordSize]
	length, ok := wordToInt(lenWord)
	start := offset + WordSize
	if !ok || length > len(data)-start {
		return nil, decodeErr(index, "length %s at offset %d exceeds buffer (%d bytes)", new(big.Int).SetBytes(lenWord), offset, len(data))
	}
	payload := make([]byte, length)
	copy(payload, data[start:start+length])
	return payload, nil
}

// wordToInt interprets a word as a non-negative int small enough to index
// a buffer.
func wordToInt(word []byte) (int, bool) {
	if !isZero(word[:WordSize-8]) {
		return 0, false
	}
	n := binary.BigEndian.Uint64(word[WordSize-8:])
	if n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// --- word helpers ---

// roundUp32 rounds n up to the next multiple of 32.
func roundUp32(n int) int {
	return (n + WordSize - 1) / WordSize * WordSize
}

// appendUint256 appends v as a big-endian 32-byte word.
func appendUint256(buf []byte, v uint64) []byte {
	var word [WordSize]byte
	binary.BigEndian.PutUint64(word[WordSize-8:], v)
	return append(buf, word[:]...)
}

// appendBigInt appends n (already range-checked) as a 32-byte word.
func appendBigInt(buf []byte, n *big.Int) []byte {
	var word [WordSize]byte
	n.FillBytes(word[:])
	return append(buf, word[:]...)
}

// appendAddress appends a left-zero-padded address word.
func appendAddress(buf []byte, a common.Address) []byte {
	return append(buf, common.LeftPadBytes(a.Bytes(), WordSize)...)
}

// appendString appends a length word followed by data padded to a word
// boundary.
func appendString(buf []byte, data []byte) []byte {
	buf = appendUint256(buf, uint64(len(data)))
	padded := make([]byte, roundUp32(len(data)))
	copy(padded, data)
	return append(buf, padded...)
}
