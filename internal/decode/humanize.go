package decode

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Mohsinsiddi/tokencli/internal/abi"
	"github.com/Mohsinsiddi/tokencli/internal/chain"
	"github.com/Mohsinsiddi/tokencli/internal/log"
	"github.com/Mohsinsiddi/tokencli/internal/token"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Reader executes read-only contract calls.
type Reader interface {
	Call(ctx context.Context, msg chain.CallMsg) (string, error)
}

// Humanizer renders a decoded transaction as "key: value" lines. With a
// Reader it resolves token metadata for transfers; lookup failures fall
// back to raw values. Artifact names non-transfer methods; the standard
// token ABI is used when it is nil.
type Humanizer struct {
	Reader   Reader
	Artifact *token.Artifact
}

type metadata struct {
	name     string
	symbol   string
	decimals uint8
}

// Humanize writes the description of tx to w. It only fails when w does.
func (h *Humanizer) Humanize(ctx context.Context, w io.Writer, tx *Tx) error {
	var b strings.Builder

	if req, err := token.ParseTransferRequest(tx.Data); err == nil && tx.To != nil {
		h.writeTransfer(ctx, &b, *tx.To, req)
	} else {
		h.writeCall(&b, tx)
	}

	line(&b, "from", tx.From.Hex())
	line(&b, "nonce", fmt.Sprint(tx.Nonce))
	line(&b, "gasPrice", tx.GasPrice.String())
	line(&b, "gas", fmt.Sprint(tx.Gas))
	line(&b, "ethValue", tx.Value.String())
	line(&b, "data", hexutil.Encode(tx.Data))
	if tx.ChainID != nil && tx.ChainID.Sign() > 0 {
		line(&b, "chainId", tx.ChainID.String())
	}
	line(&b, "v", tx.V.String())
	line(&b, "r", hexutil.EncodeBig(tx.R))
	line(&b, "s", hexutil.EncodeBig(tx.S))
	line(&b, "hash", tx.Hash.Hex())
	line(&b, "src", hexutil.Encode(tx.Raw))

	_, err := io.WriteString(w, b.String())
	return err
}

func (h *Humanizer) writeTransfer(ctx context.Context, b *strings.Builder, contract common.Address, req *token.TransferRequest) {
	line(b, "to", req.To.Hex())

	if h.Reader != nil {
		md, err := h.lookup(ctx, contract)
		if err == nil {
			line(b, "token", fmt.Sprintf("%s (%s)", md.name, md.symbol))
			line(b, "value", fmt.Sprintf("%s (%d decimals)", token.FormatBalance(req.Amount, md.decimals), md.decimals))
			return
		}
		log.L(ctx).Debugf("token metadata for %s unavailable: %s", contract.Hex(), err)
	}
	line(b, "token", contract.Hex())
	line(b, "value", req.Amount.String())
}

func (h *Humanizer) lookup(ctx context.Context, contract common.Address) (*metadata, error) {
	erc20 := token.NewERC20(nil)
	md := &metadata{}

	res, err := h.Reader.Call(ctx, erc20.Symbol(contract))
	if err != nil {
		return nil, err
	}
	if md.symbol, err = token.ParseSymbol(res); err != nil {
		return nil, err
	}

	if res, err = h.Reader.Call(ctx, erc20.Name(contract)); err != nil {
		return nil, err
	}
	if md.name, err = token.ParseName(res); err != nil {
		return nil, err
	}

	if res, err = h.Reader.Call(ctx, erc20.Decimals(contract)); err != nil {
		return nil, err
	}
	if md.decimals, err = token.ParseDecimals(res); err != nil {
		return nil, err
	}
	return md, nil
}

func (h *Humanizer) writeCall(b *strings.Builder, tx *Tx) {
	if tx.To == nil {
		line(b, "to", "(contract creation)")
		return
	}
	line(b, "to", tx.To.Hex())

	sel, args, err := abi.SplitCall(tx.Data)
	if err != nil {
		return
	}
	art := h.Artifact
	if art == nil {
		art = token.Standard()
	}
	m, err := art.ABI.MethodById(sel[:])
	if err != nil {
		line(b, "method", sel.Hex())
		return
	}
	line(b, "method", m.Sig)

	vals, err := m.Inputs.Unpack(args)
	if err != nil {
		return
	}
	for i, in := range m.Inputs {
		name := in.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		line(b, "  "+name, fmt.Sprint(vals[i]))
	}
}

func line(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteByte('\n')
}
