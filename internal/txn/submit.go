package txn

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Mohsinsiddi/tokencli/internal/chain"
	"github.com/Mohsinsiddi/tokencli/internal/log"
)

// ErrReceiptTimeout is returned when no receipt shows up before the
// submitter's timeout.
var ErrReceiptTimeout = errors.New("timed out waiting for receipt")

// Defaults for Submitter.
const (
	DefaultPollInterval = time.Second
	DefaultWaitTimeout  = 3 * time.Minute
)

// WaitMode controls which submitted transactions are waited on.
type WaitMode int

const (
	WaitNone WaitMode = iota
	WaitLast
	WaitEvery
)

// Backend is the part of the RPC client the submitter needs.
type Backend interface {
	SendRawTransaction(ctx context.Context, rawTx string) (string, error)
	TransactionReceipt(ctx context.Context, hash string) (*chain.Receipt, error)
}

// Submitter broadcasts finalized transactions and waits for receipts.
type Submitter struct {
	Backend      Backend
	Mode         WaitMode
	PollInterval time.Duration
	Timeout      time.Duration
}

// NewSubmitter creates a submitter with default polling settings.
func NewSubmitter(b Backend, mode WaitMode) *Submitter {
	return &Submitter{
		Backend:      b,
		Mode:         mode,
		PollInterval: DefaultPollInterval,
		Timeout:      DefaultWaitTimeout,
	}
}

// Send broadcasts a signed result and returns the node's hash.
func (s *Submitter) Send(ctx context.Context, r *Result) (string, error) {
	if !r.Format.Signed() || len(r.Raw) == 0 {
		return "", errors.New("cannot submit an unsigned transaction")
	}
	hash, err := s.Backend.SendRawTransaction(ctx, r.RawHex())
	if err != nil {
		return "", fmt.Errorf("broadcasting transaction: %w", err)
	}
	log.L(ctx).Infof("submitted %s", hash)
	return hash, nil
}

// Wait polls for the receipt of hash until it exists, ctx is done or the
// timeout passes. A reverted receipt is returned with a *chain.RevertError.
func (s *Submitter) Wait(ctx context.Context, hash string) (*chain.Receipt, error) {
	interval := s.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		receipt, err := s.Backend.TransactionReceipt(ctx, hash)
		switch {
		case err == nil:
			if !receipt.Succeeded() {
				return receipt, &chain.RevertError{Hash: hash, Receipt: receipt}
			}
			return receipt, nil
		case errors.Is(err, chain.ErrReceiptPending):
			log.L(ctx).Debugf("receipt for %s pending", hash)
		default:
			return nil, fmt.Errorf("fetching receipt %s: %w", hash, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, fmt.Errorf("%w: %s after %s", ErrReceiptTimeout, hash, timeout)
		case <-time.After(interval):
		}
	}
}

// Submission is the outcome of one transaction in SubmitAll.
type Submission struct {
	Hash    string
	Receipt *chain.Receipt
}

// SubmitAll sends results in order and waits according to Mode. It stops at
// the first failure, returning what was submitted so far.
func (s *Submitter) SubmitAll(ctx context.Context, results []*Result) ([]Submission, error) {
	out := make([]Submission, 0, len(results))
	for i, r := range results {
		hash, err := s.Send(ctx, r)
		if err != nil {
			return out, err
		}
		sub := Submission{Hash: hash}

		last := i == len(results)-1
		if s.Mode == WaitEvery || (s.Mode == WaitLast && last) {
			receipt, err := s.Wait(ctx, hash)
			sub.Receipt = receipt
			if err != nil {
				return append(out, sub), err
			}
		}
		out = append(out, sub)
	}
	return out, nil
}
