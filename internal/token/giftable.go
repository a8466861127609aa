package token

import (
	"context"
	"math/big"

	"github.com/Mohsinsiddi/tokencli/internal/abi"
	"github.com/Mohsinsiddi/tokencli/internal/txn"
	"github.com/ethereum/go-ethereum/common"
)

// GiftableToken is an ERC20 whose minters can mint to any address.
type GiftableToken struct {
	*ERC20
	artifact *Artifact
}

// NewGiftableToken binds the minter extension to a factory and the
// contract artifact used for deployment.
func NewGiftableToken(f *txn.Factory, a *Artifact) *GiftableToken {
	return &GiftableToken{ERC20: NewERC20(f), artifact: a}
}

// GiftableConstructorArgs are (string name, string symbol, uint8 decimals).
func GiftableConstructorArgs(name, symbol string, decimals uint8) []abi.Value {
	return []abi.Value{
		abi.StringValue(name),
		abi.StringValue(symbol),
		abi.Uint64Value(uint64(decimals)),
	}
}

// Constructor builds the deployment transaction.
func (g *GiftableToken) Constructor(ctx context.Context, sender common.Address, name, symbol string, decimals uint8, format txn.Format) (*txn.Result, error) {
	data, err := g.artifact.DeployData(GiftableConstructorArgs(name, symbol, decimals)...)
	if err != nil {
		return nil, err
	}
	return g.send(ctx, sender, nil, data, format)
}

// MintTo creates amount new tokens for to. sender must be a minter.
func (g *GiftableToken) MintTo(ctx context.Context, token, sender, to common.Address, amount *big.Int, format txn.Format) (*txn.Result, error) {
	data, err := BuildMintTo(to, amount)
	if err != nil {
		return nil, err
	}
	return g.send(ctx, sender, &token, data, format)
}

// AddMinter grants minting rights to minter.
func (g *GiftableToken) AddMinter(ctx context.Context, token, sender, minter common.Address, format txn.Format) (*txn.Result, error) {
	return g.send(ctx, sender, &token, BuildAddMinter(minter), format)
}

// RemoveMinter revokes minting rights from minter.
func (g *GiftableToken) RemoveMinter(ctx context.Context, token, sender, minter common.Address, format txn.Format) (*txn.Result, error) {
	return g.send(ctx, sender, &token, BuildRemoveMinter(minter), format)
}
