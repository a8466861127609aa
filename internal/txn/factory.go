package txn

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/Mohsinsiddi/tokencli/internal/chain"
	"github.com/Mohsinsiddi/tokencli/internal/log"
	"github.com/Mohsinsiddi/tokencli/internal/oracle"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrNoSigner is returned when a signed format is requested from a
// factory without a signer.
var ErrNoSigner = errors.New("no signer configured")

// TxSigner signs a transaction on behalf of from.
type TxSigner interface {
	SignTx(from common.Address, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// Factory turns templates into finalized transactions, consulting the
// nonce and gas sources and the signer. One factory serves every flow.
type Factory struct {
	ChainID *big.Int
	Nonce   oracle.NonceSource
	Gas     oracle.GasSource
	Signer  TxSigner
	// IDs issues JSON-RPC request ids for FormatJSONRPC results.
	IDs chain.IDGenerator
}

// Template starts a new template on the factory's chain.
func (f *Factory) Template(from common.Address, to *common.Address, value *big.Int, data []byte) *Template {
	return NewTemplate(f.ChainID, from, to, value, data)
}

// Build assigns a nonce, then gas, then finalizes. Fields already set on
// tpl are kept. When a later step fails, a nonce assigned here is handed
// back to a NonceReleaser source and tpl returns to Created.
func (f *Factory) Build(ctx context.Context, tpl *Template, format Format) (res *Result, err error) {
	if tpl.State() == Finalized {
		return nil, ErrTemplateFinalized
	}

	if tpl.State() == Created {
		if f.Nonce == nil {
			return nil, &TemplateIncompleteError{Missing: []string{"nonce"}}
		}
		n, nerr := f.Nonce.Next(ctx, tpl.From)
		if nerr != nil {
			return nil, nerr
		}
		if nerr := tpl.SetNonce(n); nerr != nil {
			return nil, nerr
		}
		if r, ok := f.Nonce.(oracle.NonceReleaser); ok {
			defer func() {
				if err != nil && tpl.State() != Finalized && r.Release(tpl.From, n) {
					tpl.clearNonce()
					log.L(ctx).Debugf("released nonce %d of %s", n, tpl.From.Hex())
				}
			}()
		}
	}

	if tpl.State() == Nonced {
		if f.Gas == nil {
			return nil, &TemplateIncompleteError{Missing: []string{"gas price", "gas limit"}}
		}
		price, limit, qerr := f.Gas.Quote(ctx, oracle.CallContext{From: tpl.From, To: tpl.To, Data: tpl.Data})
		if qerr != nil {
			return nil, qerr
		}
		if qerr := tpl.SetGas(price, limit); qerr != nil {
			return nil, qerr
		}
	}

	return f.Finalize(ctx, tpl, format)
}

// Finalize produces the result for format and freezes the template.
func (f *Factory) Finalize(ctx context.Context, tpl *Template, format Format) (*Result, error) {
	if tpl.State() == Finalized {
		return nil, ErrTemplateFinalized
	}
	tx, err := tpl.Tx()
	if err != nil {
		return nil, err
	}

	res := &Result{Format: format, From: tpl.From, Tx: tx}
	if format.Signed() {
		if f.Signer == nil {
			return nil, ErrNoSigner
		}
		signed, err := f.Signer.SignTx(tpl.From, tx, tpl.ChainID)
		if err != nil {
			return nil, err
		}
		raw, err := signed.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("marshaling signed tx: %w", err)
		}
		res.Tx = signed
		res.Raw = raw
		res.Hash = signed.Hash()
		if format == FormatJSONRPC {
			req := chain.NewRequest(f.IDs, "eth_sendRawTransaction", res.RawHex())
			res.Request = &req
		}
		log.L(ctx).Debugf("finalized tx %s nonce=%d from=%s", res.Hash.Hex(), tx.Nonce(), tpl.From.Hex())
	}

	tpl.state = Finalized
	return res, nil
}
