package chain

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Request is a JSON-RPC 2.0 request envelope.
type Request struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      interface{}   `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

// IDGenerator supplies JSON-RPC request ids.
type IDGenerator interface {
	Next() interface{}
}

// UUIDGenerator issues random UUID ids.
type UUIDGenerator struct{}

func (UUIDGenerator) Next() interface{} { return uuid.NewString() }

// SeqGenerator issues increasing integer ids starting at 1. Safe for
// concurrent use.
type SeqGenerator struct {
	n atomic.Uint64
}

func (g *SeqGenerator) Next() interface{} { return g.n.Add(1) }

// NewRequest builds a request envelope. A nil generator yields UUID ids.
func NewRequest(ids IDGenerator, method string, params ...interface{}) Request {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if params == nil {
		params = []interface{}{}
	}
	return Request{
		JSONRPC: "2.0",
		ID:      ids.Next(),
		Method:  method,
		Params:  params,
	}
}
