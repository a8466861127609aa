// Package token builds and parses calldata for ERC20 tokens and the
// giftable minter extension, and wraps them into factory-built
// transactions.
package token

import (
	"fmt"
	"math/big"

	"github.com/Mohsinsiddi/tokencli/internal/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Method selectors.
//
//	balanceOf(address)                     0x70a08231
//	decimals()                             0x313ce567
//	name()                                 0x06fdde03
//	symbol()                               0x95d89b41
//	totalSupply()                          0x18160ddd
//	allowance(address,address)             0xdd62ed3e
//	transfer(address,uint256)              0xa9059cbb
//	transferFrom(address,address,uint256)  0x23b872dd
//	approve(address,uint256)               0x095ea7b3
var (
	SelBalanceOf    = abi.SelectorFor("balanceOf(address)")
	SelDecimals     = abi.SelectorFor("decimals()")
	SelName         = abi.SelectorFor("name()")
	SelSymbol       = abi.SelectorFor("symbol()")
	SelTotalSupply  = abi.SelectorFor("totalSupply()")
	SelAllowance    = abi.SelectorFor("allowance(address,address)")
	SelTransfer     = abi.SelectorFor("transfer(address,uint256)")
	SelTransferFrom = abi.SelectorFor("transferFrom(address,address,uint256)")
	SelApprove      = abi.SelectorFor("approve(address,uint256)")
	SelMintTo       = abi.SelectorFor("mintTo(address,uint256)")
	SelAddMinter    = abi.SelectorFor("addMinter(address)")
	SelRemoveMinter = abi.SelectorFor("removeMinter(address)")
)

var methodNames = map[abi.Selector]string{
	SelBalanceOf:    "balanceOf(address)",
	SelDecimals:     "decimals()",
	SelName:         "name()",
	SelSymbol:       "symbol()",
	SelTotalSupply:  "totalSupply()",
	SelAllowance:    "allowance(address,address)",
	SelTransfer:     "transfer(address,uint256)",
	SelTransferFrom: "transferFrom(address,address,uint256)",
	SelApprove:      "approve(address,uint256)",
	SelMintTo:       "mintTo(address,uint256)",
	SelAddMinter:    "addMinter(address)",
	SelRemoveMinter: "removeMinter(address)",
}

// MethodName returns the signature of a known token method.
func MethodName(sel abi.Selector) (string, bool) {
	name, ok := methodNames[sel]
	return name, ok
}

// --- read calls ---

func BuildBalanceOf(owner common.Address) []byte {
	return pack(SelBalanceOf, abi.AddressValue(owner))
}

func BuildDecimals() []byte    { return SelDecimals.Bytes() }
func BuildName() []byte        { return SelName.Bytes() }
func BuildSymbol() []byte      { return SelSymbol.Bytes() }
func BuildTotalSupply() []byte { return SelTotalSupply.Bytes() }

func BuildAllowance(owner, spender common.Address) []byte {
	return pack(SelAllowance, abi.AddressValue(owner), abi.AddressValue(spender))
}

// ParseBalance decodes a balanceOf result.
func ParseBalance(result string) (*big.Int, error) { return parseUint(result) }

// ParseTotalSupply decodes a totalSupply result.
func ParseTotalSupply(result string) (*big.Int, error) { return parseUint(result) }

// ParseAllowance decodes an allowance result.
func ParseAllowance(result string) (*big.Int, error) { return parseUint(result) }

// ParseDecimals decodes a decimals result, which must fit in 0-255.
func ParseDecimals(result string) (uint8, error) {
	n, err := parseUint(result)
	if err != nil {
		return 0, err
	}
	if !n.IsUint64() || n.Uint64() > 255 {
		return 0, &abi.DecodeError{Index: 0, Reason: fmt.Sprintf("decimals %s out of range 0-255", n)}
	}
	return uint8(n.Uint64()), nil
}

// ParseName decodes a name result.
func ParseName(result string) (string, error) { return parseString(result) }

// ParseSymbol decodes a symbol result.
func ParseSymbol(result string) (string, error) { return parseString(result) }

// --- write calls ---

// TransferRequest is the argument tuple of transfer and mintTo.
type TransferRequest struct {
	To     common.Address
	Amount *big.Int
}

// TransferFromRequest is the argument tuple of transferFrom.
type TransferFromRequest struct {
	From   common.Address
	To     common.Address
	Amount *big.Int
}

// ApproveRequest is the argument tuple of approve.
type ApproveRequest struct {
	Spender common.Address
	Amount  *big.Int
}

func BuildTransfer(to common.Address, amount *big.Int) ([]byte, error) {
	return abi.EncodeCall(SelTransfer, abi.AddressValue(to), abi.Uint256Value(amount))
}

func BuildTransferFrom(from, to common.Address, amount *big.Int) ([]byte, error) {
	return abi.EncodeCall(SelTransferFrom, abi.AddressValue(from), abi.AddressValue(to), abi.Uint256Value(amount))
}

func BuildApprove(spender common.Address, amount *big.Int) ([]byte, error) {
	return abi.EncodeCall(SelApprove, abi.AddressValue(spender), abi.Uint256Value(amount))
}

func BuildMintTo(to common.Address, amount *big.Int) ([]byte, error) {
	return abi.EncodeCall(SelMintTo, abi.AddressValue(to), abi.Uint256Value(amount))
}

func BuildAddMinter(minter common.Address) []byte {
	return pack(SelAddMinter, abi.AddressValue(minter))
}

func BuildRemoveMinter(minter common.Address) []byte {
	return pack(SelRemoveMinter, abi.AddressValue(minter))
}

var (
	addrUint     = []abi.Type{abi.Address, abi.Uint256}
	addrAddrUint = []abi.Type{abi.Address, abi.Address, abi.Uint256}
	addrOnly     = []abi.Type{abi.Address}
)

// ParseTransferRequest decodes transfer calldata.
func ParseTransferRequest(data []byte) (*TransferRequest, error) {
	v, err := abi.DecodeCall(SelTransfer, addrUint, data)
	if err != nil {
		return nil, err
	}
	return &TransferRequest{To: v[0].Addr, Amount: v[1].Int}, nil
}

// ParseTransferFromRequest decodes transferFrom calldata.
func ParseTransferFromRequest(data []byte) (*TransferFromRequest, error) {
	v, err := abi.DecodeCall(SelTransferFrom, addrAddrUint, data)
	if err != nil {
		return nil, err
	}
	return &TransferFromRequest{From: v[0].Addr, To: v[1].Addr, Amount: v[2].Int}, nil
}

// ParseApproveRequest decodes approve calldata.
func ParseApproveRequest(data []byte) (*ApproveRequest, error) {
	v, err := abi.DecodeCall(SelApprove, addrUint, data)
	if err != nil {
		return nil, err
	}
	return &ApproveRequest{Spender: v[0].Addr, Amount: v[1].Int}, nil
}

// ParseMintToRequest decodes mintTo calldata.
func ParseMintToRequest(data []byte) (*TransferRequest, error) {
	v, err := abi.DecodeCall(SelMintTo, addrUint, data)
	if err != nil {
		return nil, err
	}
	return &TransferRequest{To: v[0].Addr, Amount: v[1].Int}, nil
}

// ParseAddMinterRequest decodes addMinter calldata.
func ParseAddMinterRequest(data []byte) (common.Address, error) {
	return parseMinter(SelAddMinter, data)
}

// ParseRemoveMinterRequest decodes removeMinter calldata.
func ParseRemoveMinterRequest(data []byte) (common.Address, error) {
	return parseMinter(SelRemoveMinter, data)
}

func parseMinter(sel abi.Selector, data []byte) (common.Address, error) {
	v, err := abi.DecodeCall(sel, addrOnly, data)
	if err != nil {
		return common.Address{}, err
	}
	return v[0].Addr, nil
}

// --- helpers ---

// pack encodes calls whose arguments are all addresses and cannot fail.
func pack(sel abi.Selector, values ...abi.Value) []byte {
	data, err := abi.EncodeCall(sel, values...)
	if err != nil {
		panic(err)
	}
	return data
}

func parseUint(result string) (*big.Int, error) {
	v, err := abi.DecodeHex([]abi.Type{abi.Uint256}, result)
	if err != nil {
		return nil, err
	}
	return v[0].Int, nil
}

func parseString(result string) (string, error) {
	v, err := abi.DecodeHex([]abi.Type{abi.String}, result)
	if err != nil {
		return "", err
	}
	return v[0].Str, nil
}
