package token

import (
	"context"
	"math/big"

	"github.com/Mohsinsiddi/tokencli/internal/abi"
	"github.com/Mohsinsiddi/tokencli/internal/txn"
	"github.com/ethereum/go-ethereum/common"
)

// StaticToken is an ERC20 whose whole supply is minted to the deployer.
type StaticToken struct {
	*ERC20
	artifact *Artifact
}

func NewStaticToken(f *txn.Factory, a *Artifact) *StaticToken {
	return &StaticToken{ERC20: NewERC20(f), artifact: a}
}

// StaticConstructorArgs are (string name, string symbol, uint256 decimals,
// uint256 supply).
func StaticConstructorArgs(name, symbol string, decimals uint8, supply *big.Int) []abi.Value {
	return []abi.Value{
		abi.StringValue(name),
		abi.StringValue(symbol),
		abi.Uint64Value(uint64(decimals)),
		abi.Uint256Value(supply),
	}
}

// Constructor builds the deployment transaction.
func (s *StaticToken) Constructor(ctx context.Context, sender common.Address, name, symbol string, decimals uint8, supply *big.Int, format txn.Format) (*txn.Result, error) {
	data, err := s.artifact.DeployData(StaticConstructorArgs(name, symbol, decimals, supply)...)
	if err != nil {
		return nil, err
	}
	return s.send(ctx, sender, nil, data, format)
}
