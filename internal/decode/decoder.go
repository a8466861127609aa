// Package decode turns signed raw transactions back into their fields and
// renders them for people.
package decode

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/Mohsinsiddi/tokencli/internal/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
)

// ErrEmpty is returned for an empty input.
var ErrEmpty = errors.New("empty transaction")

// Tx holds the structural fields of a signed transaction. To is nil for
// contract creation.
type Tx struct {
	Type     uint8
	Nonce    uint64
	GasPrice *big.Int
	Gas      uint64
	To       *common.Address
	Value    *big.Int
	Data     []byte
	ChainID  *big.Int
	V, R, S  *big.Int
	Hash     common.Hash
	From     common.Address
	Raw      []byte
}

// DecodeHex is Decode for 0x-prefixed or bare hex input, surrounding
// whitespace allowed.
func DecodeHex(s string) (*Tx, error) {
	raw, err := abi.FromHex(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

// Decode parses a signed transaction and recovers its sender. No network
// access is needed.
func Decode(raw []byte) (*Tx, error) {
	if len(raw) == 0 {
		return nil, ErrEmpty
	}
	if raw[0] >= 0x80 {
		kind, _, rest, err := rlp.Split(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding transaction: %w", err)
		}
		if kind != rlp.List || len(rest) != 0 {
			return nil, errors.New("decoding transaction: not a single RLP list")
		}
	}

	var tx types.Transaction
	if err := tx.UnmarshalBinary(raw); err != nil {
		return nil, fmt.Errorf("decoding transaction: %w", err)
	}

	v, r, s := tx.RawSignatureValues()
	out := &Tx{
		Type:     tx.Type(),
		Nonce:    tx.Nonce(),
		GasPrice: tx.GasPrice(),
		Gas:      tx.Gas(),
		To:       tx.To(),
		Value:    tx.Value(),
		Data:     tx.Data(),
		ChainID:  tx.ChainId(),
		V:        v,
		R:        r,
		S:        s,
		Hash:     tx.Hash(),
		Raw:      common.CopyBytes(raw),
	}

	var signer types.Signer = types.HomesteadSigner{}
	if tx.Protected() {
		signer = types.LatestSignerForChainID(tx.ChainId())
	}
	from, err := types.Sender(signer, &tx)
	if err != nil {
		return nil, fmt.Errorf("recovering sender: %w", err)
	}
	out.From = from
	return out, nil
}
