// Package txn assembles, signs and submits transactions. A Template moves
// through Created, Nonced, Priced and Finalized in that order.
package txn

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// State is the position of a template in its lifecycle.
type State int

const (
	Created State = iota
	Nonced
	Priced
	Finalized
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Nonced:
		return "nonced"
	case Priced:
		return "priced"
	case Finalized:
		return "finalized"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrTemplateFinalized is returned when a finalized template is mutated.
	ErrTemplateFinalized = errors.New("template already finalized")
	// ErrOutOfOrder is returned when gas is set before the nonce, or the
	// nonce is changed after gas was set.
	ErrOutOfOrder = errors.New("template fields set out of order")
)

// TemplateIncompleteError lists the fields still missing at finalization.
type TemplateIncompleteError struct {
	Missing []string
}

func (e *TemplateIncompleteError) Error() string {
	return "template incomplete: missing " + strings.Join(e.Missing, ", ")
}

// Template is an unsigned transaction under construction. To is nil for
// contract creation.
type Template struct {
	From    common.Address
	To      *common.Address
	Value   *big.Int
	Data    []byte
	ChainID *big.Int

	nonce    uint64
	gasPrice *big.Int
	gasLimit uint64
	state    State
}

// NewTemplate starts a template in the Created state.
func NewTemplate(chainID *big.Int, from common.Address, to *common.Address, value *big.Int, data []byte) *Template {
	if value == nil {
		value = new(big.Int)
	}
	return &Template{
		From:    from,
		To:      to,
		Value:   value,
		Data:    data,
		ChainID: chainID,
	}
}

// State returns the current lifecycle state.
func (t *Template) State() State { return t.state }

// IsCreation reports whether the template deploys a contract.
func (t *Template) IsCreation() bool { return t.To == nil }

// Nonce returns the assigned nonce and whether one has been set.
func (t *Template) Nonce() (uint64, bool) { return t.nonce, t.state >= Nonced }

// Gas returns the assigned price and limit; price is nil until set.
func (t *Template) Gas() (*big.Int, uint64) { return t.gasPrice, t.gasLimit }

// SetNonce assigns the nonce. It may be replaced until gas is set.
func (t *Template) SetNonce(n uint64) error {
	switch t.state {
	case Finalized:
		return ErrTemplateFinalized
	case Priced:
		return fmt.Errorf("%w: nonce after gas", ErrOutOfOrder)
	}
	t.nonce = n
	t.state = Nonced
	return nil
}

func (t *Template) clearNonce() {
	t.nonce = 0
	t.gasPrice = nil
	t.gasLimit = 0
	t.state = Created
}

// SetGas assigns gas price and limit. The nonce must already be set.
func (t *Template) SetGas(price *big.Int, limit uint64) error {
	switch t.state {
	case Finalized:
		return ErrTemplateFinalized
	case Created:
		return fmt.Errorf("%w: gas before nonce", ErrOutOfOrder)
	}
	if price != nil {
		price = new(big.Int).Set(price)
	}
	t.gasPrice = price
	t.gasLimit = limit
	t.state = Priced
	return nil
}

func (t *Template) missing() []string {
	var m []string
	if t.state < Nonced {
		m = append(m, "nonce")
	}
	if t.gasPrice == nil {
		m = append(m, "gas price")
	}
	if t.gasLimit == 0 {
		m = append(m, "gas limit")
	}
	if t.ChainID == nil || t.ChainID.Sign() <= 0 {
		m = append(m, "chain id")
	}
	return m
}

// Tx returns the unsigned legacy transaction described by the template.
func (t *Template) Tx() (*types.Transaction, error) {
	if m := t.missing(); len(m) > 0 {
		return nil, &TemplateIncompleteError{Missing: m}
	}
	var to *common.Address
	if t.To != nil {
		addr := *t.To
		to = &addr
	}
	return types.NewTx(&types.LegacyTx{
		Nonce:    t.nonce,
		GasPrice: new(big.Int).Set(t.gasPrice),
		Gas:      t.gasLimit,
		To:       to,
		Value:    new(big.Int).Set(t.Value),
		Data:     common.CopyBytes(t.Data),
	}), nil
}
