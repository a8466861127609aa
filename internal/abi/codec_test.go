package abi

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAddr = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

// ---------------------------------------------------------------------------
// word helpers
// ---------------------------------------------------------------------------

func TestRoundUp32(t *testing.T) {
	assert.Equal(t, 0, roundUp32(0))
	assert.Equal(t, 32, roundUp32(1))
	assert.Equal(t, 32, roundUp32(32))
	assert.Equal(t, 64, roundUp32(33))
	assert.Equal(t, 128, roundUp32(100))
}

func TestAppendUint256Small(t *testing.T) {
	buf := appendUint256(nil, 128)
	require.Len(t, buf, 32)
	assert.Equal(t, byte(0x80), buf[31])
	assert.True(t, isZero(buf[:31]))
}

func TestAppendBigIntMaxUint256(t *testing.T) {
	buf := appendBigInt(nil, MaxUint256())
	require.Len(t, buf, 32)
	assert.Equal(t, bytes.Repeat([]byte{0xff}, 32), buf)
}

func TestAppendStringShort(t *testing.T) {
	buf := appendString(nil, []byte("hello"))
	require.Len(t, buf, 64)
	assert.Equal(t, byte(5), buf[31])
	assert.Equal(t, []byte("hello"), buf[32:37])
	assert.Equal(t, make([]byte, 27), buf[37:])
}

func TestAppendStringEmpty(t *testing.T) {
	buf := appendString(nil, nil)
	assert.Equal(t, make([]byte, 32), buf)
}

// ---------------------------------------------------------------------------
// Encode
// ---------------------------------------------------------------------------

func TestEncodeAddressLeftPadded(t *testing.T) {
	out, err := Encode(AddressValue(testAddr))
	require.NoError(t, err)
	require.Len(t, out, 32)
	assert.True(t, isZero(out[:12]))
	assert.Equal(t, testAddr.Bytes(), out[12:])
}

func TestEncodeUint256BigEndian(t *testing.T) {
	out, err := Encode(Uint64Value(0x0102))
	require.NoError(t, err)
	require.Len(t, out, 32)
	assert.Equal(t, byte(0x01), out[30])
	assert.Equal(t, byte(0x02), out[31])
}

func TestEncodeStringLayout(t *testing.T) {
	out, err := Encode(StringValue("hello"))
	require.NoError(t, err)
	require.Len(t, out, 96)
	// head: offset 0x20
	assert.Equal(t, byte(0x20), out[31])
	// tail: length 5 then payload
	assert.Equal(t, byte(5), out[63])
	assert.Equal(t, []byte("hello"), out[64:69])
}

func TestEncodeMixedHeadTailOrder(t *testing.T) {
	out, err := Encode(StringValue("Foo Token"), StringValue("FOO"), Uint64Value(18))
	require.NoError(t, err)
	// 3 head words + 2 × (length + one padded word)
	require.Len(t, out, 3*32+2*64)

	first := new(big.Int).SetBytes(out[0:32]).Int64()
	second := new(big.Int).SetBytes(out[32:64]).Int64()
	assert.Equal(t, int64(96), first)
	assert.Equal(t, int64(160), second)
	assert.Equal(t, int64(18), new(big.Int).SetBytes(out[64:96]).Int64())
	assert.Equal(t, []byte("Foo Token"), out[128:137])
	assert.Equal(t, []byte("FOO"), out[192:195])
}

func TestEncodeRejectsNegative(t *testing.T) {
	_, err := Encode(Uint256Value(big.NewInt(-1)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNegative))
}

func TestEncodeRejectsOverflow(t *testing.T) {
	tooBig := new(big.Int).Add(MaxUint256(), big.NewInt(1))
	_, err := Encode(Uint256Value(tooBig))
	assert.True(t, errors.Is(err, ErrOverflow))
}

func TestEncodeRejectsNilInteger(t *testing.T) {
	_, err := Encode(Uint256Value(nil))
	assert.True(t, errors.Is(err, ErrNilInteger))
}

func TestEncodeRejectsUnknownType(t *testing.T) {
	_, err := Encode(Value{Type: Type(99)})
	assert.True(t, errors.Is(err, ErrUnsupportedType))
}

// TestEncodeMatchesGoEthereum cross-checks the byte layout against the
// reference packer.
func TestEncodeMatchesGoEthereum(t *testing.T) {
	strT, _ := gethabi.NewType("string", "", nil)
	addrT, _ := gethabi.NewType("address", "", nil)
	uintT, _ := gethabi.NewType("uint256", "", nil)
	bytesT, _ := gethabi.NewType("bytes", "", nil)
	args := gethabi.Arguments{{Type: strT}, {Type: addrT}, {Type: uintT}, {Type: bytesT}}

	long := strings.Repeat("x", 70)
	payload := []byte{0xde, 0xad, 0xbe, 0xef}
	amount := new(big.Int).Exp(big.NewInt(10), big.NewInt(24), nil)

	want, err := args.Pack(long, testAddr, amount, payload)
	require.NoError(t, err)

	got, err := Encode(StringValue(long), AddressValue(testAddr), Uint256Value(amount), BytesValue(payload))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// ---------------------------------------------------------------------------
// Decode
// ---------------------------------------------------------------------------

func TestRoundTrip(t *testing.T) {
	cases := [][]Value{
		{AddressValue(testAddr)},
		{Uint64Value(0)},
		{Uint256Value(MaxUint256())},
		{StringValue("")},
		{StringValue("exactly thirty-two bytes long!!!")},
		{BytesValue([]byte{1, 2, 3})},
		{AddressValue(testAddr), Uint64Value(1024)},
		{StringValue("Giftable Token"), StringValue("GFT"), Uint64Value(18), BytesValue(bytes.Repeat([]byte{0xab}, 65))},
	}
	for _, values := range cases {
		enc, err := Encode(values...)
		require.NoError(t, err)
		dec, err := Decode(Types(values), enc)
		require.NoError(t, err)
		require.Len(t, dec, len(values))
		for i := range values {
			assert.True(t, values[i].Equal(dec[i]), "value %d: want %s got %s", i, values[i], dec[i])
		}
	}
}

func TestDecodeTruncatedHead(t *testing.T) {
	_, err := Decode([]Type{Uint256, Uint256}, make([]byte, 40))
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, -1, de.Index)
}

func TestDecodeEmptyResult(t *testing.T) {
	_, err := DecodeHex([]Type{String}, "0x")
	var de *DecodeError
	assert.True(t, errors.As(err, &de))
}

func TestDecodeOffsetOutOfBounds(t *testing.T) {
	data := appendUint256(nil, 4096)
	_, err := Decode([]Type{String}, data)
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 0, de.Index)
	assert.Contains(t, de.Reason, "offset")
}

func TestDecodeHugeOffset(t *testing.T) {
	data := bytes.Repeat([]byte{0xff}, 64)
	_, err := Decode([]Type{Bytes}, data)
	var de *DecodeError
	assert.True(t, errors.As(err, &de))
}

func TestDecodeLengthPastEnd(t *testing.T) {
	data := appendUint256(nil, 32)
	data = appendUint256(data, 100) // claims 100 bytes, none follow
	_, err := Decode([]Type{String}, data)
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Contains(t, de.Reason, "length")
}

func TestDecodeDirtyAddressWord(t *testing.T) {
	word := bytes.Repeat([]byte{0x11}, 32)
	_, err := Decode([]Type{Address}, word)
	var de *DecodeError
	assert.True(t, errors.As(err, &de))
}

func TestDecodeHexInvalid(t *testing.T) {
	_, err := DecodeHex([]Type{Uint256}, "0xzz")
	var de *DecodeError
	assert.True(t, errors.As(err, &de))
}

func TestDecodeHexUint(t *testing.T) {
	vals, err := DecodeHex([]Type{Uint256}, "0x0000000000000000000000000000000000000000000000000000000000000012")
	require.NoError(t, err)
	assert.Equal(t, int64(18), vals[0].Int.Int64())
}

func TestDecodeMatchesGoEthereumPacking(t *testing.T) {
	strT, _ := gethabi.NewType("string", "", nil)
	packed, err := gethabi.Arguments{{Type: strT}}.Pack("Foo Token")
	require.NoError(t, err)

	vals, err := Decode([]Type{String}, packed)
	require.NoError(t, err)
	assert.Equal(t, "Foo Token", vals[0].Str)
}
