package token

import (
	"github.com/Mohsinsiddi/tokencli/internal/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Gas budgets per operation. These are fixed upper bounds, not estimates.
const (
	DeployGasLimit       uint64 = 2_000_000
	TransferGasLimit     uint64 = 60_000
	ApproveGasLimit      uint64 = 60_000
	TransferFromGasLimit uint64 = 80_000
	MintToGasLimit       uint64 = 80_000
	MinterGasLimit       uint64 = 60_000
	DefaultGasLimit      uint64 = 100_000
)

var gasBySelector = map[abi.Selector]uint64{
	SelTransfer:     TransferGasLimit,
	SelApprove:      ApproveGasLimit,
	SelTransferFrom: TransferFromGasLimit,
	SelMintTo:       MintToGasLimit,
	SelAddMinter:    MinterGasLimit,
	SelRemoveMinter: MinterGasLimit,
}

// GasLimit picks the gas budget for a call: DeployGasLimit for contract
// creation (to == nil), a per-method budget for known selectors and
// DefaultGasLimit otherwise. It satisfies oracle.LimitFunc.
func GasLimit(to *common.Address, data []byte) uint64 {
	if to == nil {
		return DeployGasLimit
	}
	sel, _, err := abi.SplitCall(data)
	if err != nil {
		return DefaultGasLimit
	}
	if limit, ok := gasBySelector[sel]; ok {
		return limit
	}
	return DefaultGasLimit
}
