package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// Hardhat's first development account.
const (
	testKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testSender = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	testToken  = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	testTo     = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
)

// resetFlags restores every flag of c and its children to its default so
// commands can be executed repeatedly in one process.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes the root command with an isolated config dir and
// returns everything written to stdout.
func runCLI(t *testing.T, configDir string, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, env := range []string{"ETH_PROVIDER", "RPC_PROVIDER", "CHAIN_SPEC", "RPC_AUTHENTICATION", "ETH_PASSPHRASE"} {
		t.Setenv(env, "")
	}
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", configDir}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

// rpcServer answers JSON-RPC requests from a method → raw JSON result map
// and records the methods it saw.
type rpcServer struct {
	*httptest.Server
	mu      sync.Mutex
	methods []string
}

func newRPCServer(t *testing.T, results map[string]string) *rpcServer {
	t.Helper()
	s := &rpcServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		s.methods = append(s.methods, req.Method)
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		res, ok := results[req.Method]
		if !ok {
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"error":{"code":-32601,"message":"method not found"}}`, req.ID)
			return
		}
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, req.ID, res)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *rpcServer) called(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.methods {
		if m == method {
			n++
		}
	}
	return n
}

// writeHexKey writes the test key as a plain hex key file.
func writeHexKey(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "key.hex")
	require.NoError(t, os.WriteFile(path, []byte(testKeyHex+"\n"), 0o600))
	return path
}

// word left-pads a hex number to a 32-byte ABI word.
func word(hexNum string) string {
	return strings.Repeat("0", 64-len(hexNum)) + hexNum
}
