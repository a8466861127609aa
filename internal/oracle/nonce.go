// Package oracle supplies nonce and gas decisions to the transaction
// factory. Oracles only read chain state; they never submit anything.
package oracle

import (
	"context"
	"fmt"
	"sync"

	"github.com/Mohsinsiddi/tokencli/internal/log"
	"github.com/ethereum/go-ethereum/common"
)

// NonceSource yields the nonce for the next transaction of sender.
type NonceSource interface {
	Next(ctx context.Context, sender common.Address) (uint64, error)
}

// NonceReader reads the pending transaction count of an account.
type NonceReader interface {
	PendingNonceAt(ctx context.Context, addr common.Address) (uint64, error)
}

// NonceReleaser is implemented by sources that can take back the nonce
// they issued last, so a transaction that failed before signing leaves no
// gap.
type NonceReleaser interface {
	Release(sender common.Address, nonce uint64) bool
}

// StaticNonce returns the same caller-supplied nonce for every request.
// It is never incremented.
type StaticNonce struct {
	Value uint64
}

func (s StaticNonce) Next(_ context.Context, _ common.Address) (uint64, error) {
	return s.Value, nil
}

// RPCNonce reads the pending nonce from the network on the first request
// for a sender and counts locally from there, so a run of transactions
// from one key gets contiguous nonces without further round trips.
type RPCNonce struct {
	reader NonceReader

	mu   sync.Mutex
	next map[common.Address]uint64
}

// NewCountingNonce hands out start, start+1, ... for every sender without
// asking the network.
func NewCountingNonce(start uint64) *RPCNonce {
	return NewRPCNonce(startAt(start))
}

type startAt uint64

func (s startAt) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return uint64(s), nil
}

// NewRPCNonce creates an RPCNonce backed by reader.
func NewRPCNonce(reader NonceReader) *RPCNonce {
	return &RPCNonce{
		reader: reader,
		next:   make(map[common.Address]uint64),
	}
}

func (o *RPCNonce) Next(ctx context.Context, sender common.Address) (uint64, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	n, ok := o.next[sender]
	if !ok {
		pending, err := o.reader.PendingNonceAt(ctx, sender)
		if err != nil {
			return 0, fmt.Errorf("reading nonce for %s: %w", sender.Hex(), err)
		}
		n = pending
		log.L(ctx).Debugf("first nonce for %s: %d", sender.Hex(), n)
	}
	o.next[sender] = n + 1
	return n, nil
}

// Release takes back nonce if it is the last one issued for sender.
// Earlier nonces stay taken: later transactions already depend on them.
func (o *RPCNonce) Release(sender common.Address, nonce uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if next, ok := o.next[sender]; !ok || next != nonce+1 {
		return false
	}
	o.next[sender] = nonce
	return true
}
