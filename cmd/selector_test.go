package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// normalizeSignature
// ---------------------------------------------------------------------------

func TestNormalizeSignature_AlreadyCanonical(t *testing.T) {
	assert.Equal(t, "transfer(address,uint256)", normalizeSignature("transfer(address,uint256)"))
}

func TestNormalizeSignature_WithNames(t *testing.T) {
	assert.Equal(t, "transfer(address,uint256)", normalizeSignature("transfer(address to, uint256 amount)"))
}

func TestNormalizeSignature_NoParams(t *testing.T) {
	assert.Equal(t, "name()", normalizeSignature("name()"))
}

func TestNormalizeSignature_ThreeParams(t *testing.T) {
	assert.Equal(t, "transferFrom(address,address,uint256)", normalizeSignature("transferFrom(address from, address to, uint256 amount)"))
}

func TestNormalizeSignature_NoParens(t *testing.T) {
	assert.Equal(t, "noop", normalizeSignature("noop"))
}

func TestNormalizeSignature_ExtraSpaces(t *testing.T) {
	assert.Equal(t, "approve(address,uint256)", normalizeSignature("  approve(  address  spender ,  uint256  amount  ) "))
}

// ---------------------------------------------------------------------------
// computeEventTopic
// ---------------------------------------------------------------------------

func TestComputeEventTopic_Transfer(t *testing.T) {
	topic := computeEventTopic("Transfer(address,address,uint256)")
	assert.Equal(t, "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef", topic)
}

func TestComputeEventTopic_Approval(t *testing.T) {
	topic := computeEventTopic("Approval(address,address,uint256)")
	assert.Equal(t, "0x8c5be1e5ebec7d5bd14f71427d1e84f3dd0314c0f7b2291e5b200ac8c7c3b925", topic)
}

// ---------------------------------------------------------------------------
// selector command
// ---------------------------------------------------------------------------

func TestSelectorCommandCompute(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "", "selector", "--format", "brief", "transfer(address to, uint256 amount)")
	require.NoError(t, err)
	assert.Equal(t, "0xa9059cbb", strings.TrimSpace(out))
}

func TestSelectorCommandRejectsBadSignature(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "", "selector", "transfer(Address,uint256)")
	require.Error(t, err)
}

func TestSelectorCommandLookup(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "", "selector", "0x40c10f19")
	require.NoError(t, err)
	assert.Contains(t, out, "unknown")

	out, err = runCLI(t, t.TempDir(), "", "selector", "0x095ea7b3")
	require.NoError(t, err)
	assert.Contains(t, out, "approve(address,uint256)")
}

func TestSelectorCommandList(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "", "selector", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "0xa9059cbb")
	assert.Contains(t, out, "transferFrom(address,address,uint256)")
	assert.Less(t, strings.Index(out, "addMinter"), strings.Index(out, "transfer(address"))
}

func TestSelectorCommandEvent(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "", "selector", "--event", "Transfer(address indexed from, address indexed to, uint256 value)")
	require.NoError(t, err)
	assert.Contains(t, out, "0xddf252ad")
}
