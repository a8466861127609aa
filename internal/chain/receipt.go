package chain

import (
	"context"
	"encoding/json"
	"fmt"
)

// Receipt holds the on-chain outcome of a mined transaction.
type Receipt struct {
	Hash            string
	Status          uint64 // 1 = success, 0 = reverted
	// StatusMissing is set for receipts without a status field, as on
	// pre-Byzantium chains. Status is meaningless then.
	StatusMissing   bool
	BlockNumber     uint64
	GasUsed         uint64
	ContractAddress string // non-empty when a contract was deployed
}

// Succeeded reports whether the EVM executed the transaction without
// reverting. A receipt without a status is not treated as a revert.
func (r *Receipt) Succeeded() bool { return r.StatusMissing || r.Status == 1 }

// RevertError reports a transaction that was mined but reverted.
type RevertError struct {
	Hash    string
	Receipt *Receipt
}

func (e *RevertError) Error() string {
	return fmt.Sprintf("transaction reverted (hash: %s)", e.Hash)
}

// TransactionReceipt fetches the receipt for hash. It returns
// ErrReceiptPending while the transaction has not been included.
func (c *Client) TransactionReceipt(ctx context.Context, hash string) (*Receipt, error) {
	var raw json.RawMessage
	if err := c.call(ctx, &raw, "eth_getTransactionReceipt", hash); err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, ErrReceiptPending
	}

	var r struct {
		Status          string `json:"status"`
		BlockNumber     string `json:"blockNumber"`
		GasUsed         string `json:"gasUsed"`
		ContractAddress string `json:"contractAddress"`
	}
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("parsing receipt: %w", err)
	}

	receipt := &Receipt{Hash: hash, ContractAddress: r.ContractAddress}
	if s, ok := parseBigHex(r.Status); ok {
		receipt.Status = s.Uint64()
	} else {
		receipt.StatusMissing = true
	}
	if bn, ok := parseBigHex(r.BlockNumber); ok {
		receipt.BlockNumber = bn.Uint64()
	}
	if gu, ok := parseBigHex(r.GasUsed); ok {
		receipt.GasUsed = gu.Uint64()
	}
	return receipt, nil
}
