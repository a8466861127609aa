package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/Mohsinsiddi/tokencli/internal/log"
	"github.com/ethereum/go-ethereum/common"
)

// ErrReceiptPending is returned by TransactionReceipt while the node has
// not yet recorded the transaction. Callers poll on it.
var ErrReceiptPending = errors.New("receipt not yet available")

// Client is a minimal JSON-RPC client for EVM nodes.
type Client struct {
	url    string
	client *http.Client
	ids    IDGenerator
	user   string
	pass   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithIDGenerator sets the request id source (UUIDs by default).
func WithIDGenerator(g IDGenerator) Option {
	return func(c *Client) { c.ids = g }
}

// WithBasicAuth sends HTTP basic credentials with every request.
func WithBasicAuth(user, pass string) Option {
	return func(c *Client) {
		c.user = user
		c.pass = pass
	}
}

// NewClient creates a client pointed at url.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url: url,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		ids: UUIDGenerator{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the endpoint the client talks to.
func (c *Client) URL() string { return c.url }

// IDs returns the client's request id generator.
func (c *Client) IDs() IDGenerator { return c.ids }

// CallMsg is the parameter object of eth_call.
type CallMsg struct {
	From string `json:"from,omitempty"`
	To   string `json:"to"`
	Data string `json:"data"`
}

// Call executes a read-only call against the latest block and returns the
// raw 0x-prefixed result.
func (c *Client) Call(ctx context.Context, msg CallMsg) (string, error) {
	var out string
	if err := c.call(ctx, &out, "eth_call", msg, "latest"); err != nil {
		return "", err
	}
	return out, nil
}

// SendRawTransaction broadcasts a signed raw transaction and returns its hash.
func (c *Client) SendRawTransaction(ctx context.Context, rawTx string) (string, error) {
	var hash string
	if err := c.call(ctx, &hash, "eth_sendRawTransaction", rawTx); err != nil {
		return "", err
	}
	return hash, nil
}

// Send posts a prebuilt request object, e.g. one produced by the
// transaction factory, and returns the raw result.
func (c *Client) Send(ctx context.Context, req Request) (json.RawMessage, error) {
	return c.do(ctx, req)
}

// PendingNonceAt returns the transaction count of addr including pending
// transactions.
func (c *Client) PendingNonceAt(ctx context.Context, addr common.Address) (uint64, error) {
	n, err := c.callBig(ctx, "eth_getTransactionCount", addr.Hex(), "pending")
	if err != nil {
		return 0, fmt.Errorf("getting nonce: %w", err)
	}
	return n.Uint64(), nil
}

// SuggestGasPrice returns the node's eth_gasPrice.
func (c *Client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	gp, err := c.callBig(ctx, "eth_gasPrice")
	if err != nil {
		return nil, fmt.Errorf("getting gas price: %w", err)
	}
	return gp, nil
}

// ChainID returns the chain id reported by the node.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	id, err := c.callBig(ctx, "eth_chainId")
	if err != nil {
		return nil, fmt.Errorf("getting chain id: %w", err)
	}
	return id, nil
}

// BlockNumber returns the latest block number.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	n, err := c.callBig(ctx, "eth_blockNumber")
	if err != nil {
		return 0, fmt.Errorf("getting block number: %w", err)
	}
	return n.Uint64(), nil
}

// --- internal JSON-RPC plumbing ---

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// RPCError is an error object returned by the node.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

func (c *Client) call(ctx context.Context, out interface{}, method string, params ...interface{}) error {
	raw, err := c.do(ctx, NewRequest(c.ids, method, params...))
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parsing %s result: %w", method, err)
	}
	return nil
}

func (c *Client) callBig(ctx context.Context, method string, params ...interface{}) (*big.Int, error) {
	var hexStr string
	if err := c.call(ctx, &hexStr, method, params...); err != nil {
		return nil, err
	}
	n, ok := parseBigHex(hexStr)
	if !ok {
		return nil, fmt.Errorf("could not parse %s result: %q", method, hexStr)
	}
	return n, nil
}

func (c *Client) do(ctx context.Context, r Request) (json.RawMessage, error) {
	reqBody, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	debug := log.IsDebugEnabled()
	if debug {
		log.L(ctx).Debugf("rpc -> %s", reqBody)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.user != "" {
		req.SetBasicAuth(c.user, c.pass)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("RPC request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if debug {
		log.L(ctx).Debugf("rpc <- %s", body)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}
	return rpcResp.Result, nil
}

func parseBigHex(s string) (*big.Int, bool) {
	if s == "" {
		return nil, false
	}
	n, ok := new(big.Int).SetString(strings.TrimPrefix(s, "0x"), 16)
	return n, ok
}
