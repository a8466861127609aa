// Package wallet signs transactions with keys held by a Keystore.
package wallet

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Signer produces EIP-155 signatures through a Keystore.
type Signer struct {
	ks Keystore
}

// NewSigner creates a signer backed by ks.
func NewSigner(ks Keystore) *Signer {
	return &Signer{ks: ks}
}

// SignTx signs tx for chainID as from and returns the signed transaction.
// The signature is checked to recover to from before it is returned.
func (s *Signer) SignTx(from common.Address, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	if chainID == nil || chainID.Sign() <= 0 {
		return nil, fmt.Errorf("signing transaction: invalid chain id %v", chainID)
	}
	if !s.ks.Has(from) {
		return nil, fmt.Errorf("signing transaction: %w: %s", ErrKeyNotFound, from.Hex())
	}

	signer := types.NewEIP155Signer(chainID)
	digest := signer.Hash(tx)
	sig, err := s.ks.SignHash(from, digest.Bytes())
	if err != nil {
		return nil, fmt.Errorf("signing transaction: %w", err)
	}

	signed, err := tx.WithSignature(signer, sig)
	if err != nil {
		return nil, fmt.Errorf("attaching signature: %w", err)
	}

	sender, err := types.Sender(signer, signed)
	if err != nil {
		return nil, fmt.Errorf("recovering sender: %w", err)
	}
	if sender != from {
		return nil, fmt.Errorf("signature recovers to %s, want %s", sender.Hex(), from.Hex())
	}
	return signed, nil
}
