package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// splitHexWords
// ---------------------------------------------------------------------------

func TestSplitHexWords(t *testing.T) {
	w := strings.Repeat("a", 64)
	assert.Equal(t, []string{w, w}, splitHexWords(w+w))
	assert.Equal(t, []string{w, "bb"}, splitHexWords(w+"bb"))
	assert.Equal(t, []string{"bb"}, splitHexWords("bb"))
	assert.Empty(t, splitHexWords(""))
}

// ---------------------------------------------------------------------------
// decodeInput
// ---------------------------------------------------------------------------

func TestDecodeInputPrefersArgument(t *testing.T) {
	in, err := decodeInput(strings.NewReader("0xstdin"), []string{" 0xarg "})
	require.NoError(t, err)
	assert.Equal(t, "0xarg", in)
}

func TestDecodeInputReadsStdin(t *testing.T) {
	in, err := decodeInput(strings.NewReader("0xabcd\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "0xabcd", in)
}

func TestDecodeInputEmptyStdin(t *testing.T) {
	_, err := decodeInput(strings.NewReader("  \n"), nil)
	require.Error(t, err)
}

// ---------------------------------------------------------------------------
// decode command
// ---------------------------------------------------------------------------

func TestDecodeCommandCalldata(t *testing.T) {
	calldata := "0xa9059cbb" + word("d8da6bf26964af9d7eed9e03e53415d37aa96045") + word("de0b6b3a7640000")
	out, err := runCLI(t, t.TempDir(), "", "decode", "--calldata", calldata)
	require.NoError(t, err)
	assert.Contains(t, out, "transfer(address,uint256)")
	assert.Contains(t, out, "Arg[0]")
	assert.Contains(t, out, "Arg[1]")
	assert.Contains(t, out, "0x"+word("de0b6b3a7640000"))
}

func TestDecodeCommandCalldataUnknownSelector(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "", "decode", "--calldata", "0xdeadbeef")
	require.NoError(t, err)
	assert.Contains(t, out, "0xdeadbeef")
	assert.NotContains(t, out, "Arg[0]")
}

func TestDecodeCommandRejectsGarbage(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "", "decode", "--no-resolve", "0xzz")
	require.Error(t, err)
}

func TestDecodeCommandRoundTripFromStdin(t *testing.T) {
	srv := newRPCServer(t, map[string]string{
		"eth_getTransactionCount": `"0x2"`,
		"eth_gasPrice":            `"0x3b9aca00"`,
	})
	dir := t.TempDir()
	raw, err := runCLI(t, dir, "", "transfer", "-p", srv.URL, "-i", "evm:local:1337", "-y", writeHexKey(t),
		"--format", "raw", testToken, testTo, "1000")
	require.NoError(t, err)

	out, err := runCLI(t, dir, raw, "decode", "--no-resolve")
	require.NoError(t, err)
	assert.Contains(t, out, "to: "+testTo)
	assert.Contains(t, out, "token: "+testToken)
	assert.Contains(t, out, "value: 1000")
	assert.Contains(t, out, "from: "+testSender)
	assert.Contains(t, out, "nonce: 2")
	assert.Contains(t, out, "chainId: 1337")
	assert.Contains(t, out, "src: "+strings.TrimSpace(raw))
}

func TestDecodeCommandBadChainSpecStillDecodes(t *testing.T) {
	srv := newRPCServer(t, nodeResults(nil))
	dir := t.TempDir()
	raw, err := runCLI(t, dir, "", "transfer", "-p", srv.URL, "-i", "evm:local:1337", "-y", writeHexKey(t),
		"--format", "raw", testToken, testTo, "1000")
	require.NoError(t, err)

	out, err := runCLI(t, dir, raw, "decode", "-i", "not-a-spec")
	require.NoError(t, err)
	assert.Contains(t, out, "to: "+testTo)
	assert.Contains(t, out, "value: 1000")
}
