package token

import (
	"context"
	"errors"
	"math/big"

	"github.com/Mohsinsiddi/tokencli/internal/abi"
	"github.com/Mohsinsiddi/tokencli/internal/chain"
	"github.com/Mohsinsiddi/tokencli/internal/log"
	"github.com/Mohsinsiddi/tokencli/internal/txn"
	"github.com/ethereum/go-ethereum/common"
)

// ErrReadOnly is returned by write methods of a token without a factory.
var ErrReadOnly = errors.New("token has no transaction factory")

// ERC20 builds read calls and factory-finalized write transactions for a
// standard token. It holds no per-token state; the token address is passed
// to every method.
type ERC20 struct {
	factory *txn.Factory
}

// NewERC20 binds the token interface to a factory. A nil factory gives a
// read-only interface.
func NewERC20(f *txn.Factory) *ERC20 {
	return &ERC20{factory: f}
}

// --- reads ---

func (t *ERC20) BalanceOf(token, owner common.Address) chain.CallMsg {
	return callMsg(token, BuildBalanceOf(owner))
}

func (t *ERC20) Decimals(token common.Address) chain.CallMsg {
	return callMsg(token, BuildDecimals())
}

func (t *ERC20) Name(token common.Address) chain.CallMsg {
	return callMsg(token, BuildName())
}

func (t *ERC20) Symbol(token common.Address) chain.CallMsg {
	return callMsg(token, BuildSymbol())
}

func (t *ERC20) TotalSupply(token common.Address) chain.CallMsg {
	return callMsg(token, BuildTotalSupply())
}

func (t *ERC20) Allowance(token, owner, spender common.Address) chain.CallMsg {
	return callMsg(token, BuildAllowance(owner, spender))
}

// --- writes ---

// Transfer moves amount of token from sender to to.
func (t *ERC20) Transfer(ctx context.Context, token, sender, to common.Address, amount *big.Int, format txn.Format) (*txn.Result, error) {
	data, err := BuildTransfer(to, amount)
	if err != nil {
		return nil, err
	}
	return t.send(ctx, sender, &token, data, format)
}

// TransferFrom moves amount from from to to using sender's allowance.
func (t *ERC20) TransferFrom(ctx context.Context, token, sender, from, to common.Address, amount *big.Int, format txn.Format) (*txn.Result, error) {
	data, err := BuildTransferFrom(from, to, amount)
	if err != nil {
		return nil, err
	}
	return t.send(ctx, sender, &token, data, format)
}

// Approve lets spender move up to amount of sender's tokens.
func (t *ERC20) Approve(ctx context.Context, token, sender, spender common.Address, amount *big.Int, format txn.Format) (*txn.Result, error) {
	data, err := BuildApprove(spender, amount)
	if err != nil {
		return nil, err
	}
	return t.send(ctx, sender, &token, data, format)
}

func (t *ERC20) send(ctx context.Context, sender common.Address, to *common.Address, data []byte, format txn.Format) (*txn.Result, error) {
	if t.factory == nil {
		return nil, ErrReadOnly
	}
	if to != nil {
		log.L(ctx).Debugf("token call %s on %s", methodLabel(data), to.Hex())
	}
	tpl := t.factory.Template(sender, to, nil, data)
	return t.factory.Build(ctx, tpl, format)
}

func callMsg(token common.Address, data []byte) chain.CallMsg {
	return chain.CallMsg{To: token.Hex(), Data: abi.ToHex(data)}
}

func methodLabel(data []byte) string {
	sel, _, err := abi.SplitCall(data)
	if err != nil {
		return "<none>"
	}
	if name, ok := MethodName(sel); ok {
		return name
	}
	return sel.Hex()
}
