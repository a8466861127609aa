package txn

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/Mohsinsiddi/tokencli/internal/chain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// Format selects what Finalize produces.
type Format int

const (
	// FormatJSONRPC yields a signed eth_sendRawTransaction request.
	FormatJSONRPC Format = iota
	// FormatRLPSigned yields the signed transaction bytes only.
	FormatRLPSigned
	// FormatUnsigned yields a plain description without signing.
	FormatUnsigned
)

func (f Format) String() string {
	switch f {
	case FormatJSONRPC:
		return "jsonrpc"
	case FormatRLPSigned:
		return "rlp"
	case FormatUnsigned:
		return "unsigned"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Signed reports whether the format requires a signature.
func (f Format) Signed() bool { return f != FormatUnsigned }

// Result is a finalized transaction. Raw, Hash and Tx's signature are only
// set for signed formats; Request only for FormatJSONRPC.
type Result struct {
	Format  Format
	From    common.Address
	Tx      *types.Transaction
	Hash    common.Hash
	Raw     []byte
	Request *chain.Request
}

// RawHex returns the signed transaction as 0x-prefixed hex.
func (r *Result) RawHex() string {
	return hexutil.Encode(r.Raw)
}

// Description is the plain, unsigned view of a transaction.
type Description struct {
	From     string `json:"from"`
	To       string `json:"to,omitempty"`
	Value    string `json:"value"`
	Data     string `json:"data"`
	Nonce    uint64 `json:"nonce"`
	GasPrice string `json:"gasPrice"`
	Gas      uint64 `json:"gas"`
	ChainID  string `json:"chainId"`
}

// Describe returns the unsigned description of the transaction.
func (r *Result) Describe(chainID *big.Int) Description {
	d := Description{
		From:     r.From.Hex(),
		Value:    r.Tx.Value().String(),
		Data:     hexutil.Encode(r.Tx.Data()),
		Nonce:    r.Tx.Nonce(),
		GasPrice: r.Tx.GasPrice().String(),
		Gas:      r.Tx.Gas(),
	}
	if chainID != nil {
		d.ChainID = chainID.String()
	}
	if to := r.Tx.To(); to != nil {
		d.To = to.Hex()
	}
	return d
}

// JSON renders the result the way it would be printed for its format.
func (r *Result) JSON(chainID *big.Int) ([]byte, error) {
	switch r.Format {
	case FormatJSONRPC:
		return json.Marshal(r.Request)
	case FormatRLPSigned:
		return json.Marshal(r.RawHex())
	default:
		return json.Marshal(r.Describe(chainID))
	}
}
