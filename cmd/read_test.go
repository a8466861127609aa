package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceRaw(t *testing.T) {
	srv := newRPCServer(t, map[string]string{"eth_call": `"0x` + word("3e8") + `"`})
	out, err := runCLI(t, t.TempDir(), "", "balance", "-p", srv.URL, "--raw", testToken, testSender)
	require.NoError(t, err)
	assert.Equal(t, "1000\n", out)
	assert.Equal(t, 1, srv.called("eth_call"))
}

func TestBalanceFormatted(t *testing.T) {
	// balanceOf and decimals share the mock: 0x12 units at 18 decimals.
	srv := newRPCServer(t, map[string]string{"eth_call": `"0x` + word("12") + `"`})
	out, err := runCLI(t, t.TempDir(), "", "balance", "-p", srv.URL, "--format", "brief", testToken, testSender)
	require.NoError(t, err)
	assert.Equal(t, "0.000000000000000018\n", out)
	assert.Equal(t, 2, srv.called("eth_call"))
}

func TestAllowanceUnlimited(t *testing.T) {
	srv := newRPCServer(t, map[string]string{"eth_call": `"0x` + strings.Repeat("f", 64) + `"`})
	out, err := runCLI(t, t.TempDir(), "", "allowance", "-p", srv.URL, testToken, testSender, testTo)
	require.NoError(t, err)
	assert.Contains(t, out, "(unlimited)")
}

func TestReadRejectsBadAddress(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "", "balance", "-p", "http://127.0.0.1:1", "0x1234", testSender)
	require.Error(t, err)
}

func TestCallErrorSurfaces(t *testing.T) {
	srv := newRPCServer(t, nil)
	_, err := runCLI(t, t.TempDir(), "", "balance", "-p", srv.URL, "--raw", testToken, testSender)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "balanceOf")
}

func TestCustomRPCUsedAsProvider(t *testing.T) {
	dir := t.TempDir()
	srv := newRPCServer(t, map[string]string{"eth_call": `"0x` + word("1") + `"`})

	_, err := runCLI(t, dir, "", "config", "rpc", "add", "local", srv.URL)
	require.NoError(t, err)

	out, err := runCLI(t, dir, "", "balance", "-i", "evm:local:1337", "--raw", testToken, testSender)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = runCLI(t, dir, "", "config", "rpc", "list", "local")
	require.NoError(t, err)
	assert.Contains(t, out, srv.URL)

	_, err = runCLI(t, dir, "", "config", "rpc", "remove", "local", srv.URL)
	require.NoError(t, err)
	_, err = runCLI(t, dir, "", "config", "rpc", "remove", "local", srv.URL)
	assert.Error(t, err)
}

func TestConfigSet(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "", "config", "set", "artifact-version", "0.2.0")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	var saved map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, "0.2.0", saved["artifact_version"])

	_, err = runCLI(t, dir, "", "config", "set", "chain-spec", "not-a-spec")
	assert.Error(t, err)
	_, err = runCLI(t, dir, "", "config", "set", "bogus", "x")
	assert.Error(t, err)
}

func TestConfigSaveLeavesOverridesOut(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "", "config", "rpc", "add", "sepolia", "https://rpc.example",
		"-p", "http://one-off:8545", "-i", "evm:scratch:31337", "--seq")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	var saved map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &saved))

	assert.NotContains(t, saved, "provider")
	assert.Equal(t, "evm:ethereum:1", saved["chain_spec"])
	assert.Equal(t, false, saved["seq_ids"])
	assert.Equal(t, "artifacts", saved["artifact_dir"])
	rpcs := saved["custom_rpcs"].(map[string]interface{})
	assert.Equal(t, []interface{}{"https://rpc.example"}, rpcs["sepolia"])

	out, err := runCLI(t, dir, "", "config", "rpc", "list", "sepolia")
	require.NoError(t, err)
	assert.Equal(t, "https://rpc.example\n", out)
}

func TestNetworkList(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "", "network", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "evm:sepolia:11155111")
	assert.Contains(t, out, "evm:local:1337")
}

func TestNetworkUse(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "", "network", "use", "8453")
	require.NoError(t, err)

	out, err := runCLI(t, dir, "", "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "evm:base:8453")

	_, err = runCLI(t, dir, "", "network", "use", "nowhere")
	assert.Error(t, err)
}

func TestNetworkCheck(t *testing.T) {
	dir := t.TempDir()
	a := newRPCServer(t, map[string]string{"eth_blockNumber": `"0x64"`})
	b := newRPCServer(t, map[string]string{"eth_blockNumber": `"0x65"`})
	for _, u := range []string{b.URL, a.URL} {
		_, err := runCLI(t, dir, "", "config", "rpc", "add", "local", u)
		require.NoError(t, err)
	}

	out, err := runCLI(t, dir, "", "network", "check", "local", "--algo", "failover", "--format", "brief", "--save")
	require.NoError(t, err)
	assert.Equal(t, b.URL+"\n", out)
	assert.Equal(t, 1, a.called("eth_blockNumber"))

	out, err = runCLI(t, dir, "", "config", "rpc", "list", "local")
	require.NoError(t, err)
	assert.Equal(t, b.URL+"\n"+a.URL+"\n", out)

	_, err = runCLI(t, dir, "", "network", "check", "local", "--algo", "round-robin")
	assert.Error(t, err)
}
