package oracle

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/Mohsinsiddi/tokencli/internal/log"
	"github.com/ethereum/go-ethereum/common"
)

// DefaultGasLimit is used when no limit policy applies.
const DefaultGasLimit uint64 = 100_000

// ErrNoGasPrice is returned by a StaticGas that has neither a price nor a
// fallback source.
var ErrNoGasPrice = errors.New("no gas price available")

// CallContext describes the transaction being priced. To is nil for
// contract creation.
type CallContext struct {
	From common.Address
	To   *common.Address
	Data []byte
}

// GasSource quotes gas price and gas limit for a call.
type GasSource interface {
	Quote(ctx context.Context, call CallContext) (price *big.Int, limit uint64, err error)
}

// LimitFunc picks a gas limit from the call target and its code.
type LimitFunc func(to *common.Address, data []byte) uint64

// PriceReader reads the network's suggested gas price.
type PriceReader interface {
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
}

// RPCGas quotes eth_gasPrice and takes the limit from Limit.
type RPCGas struct {
	Reader PriceReader
	Limit  LimitFunc
}

// NewRPCGas creates an RPCGas. A nil limit func yields DefaultGasLimit.
func NewRPCGas(reader PriceReader, limit LimitFunc) *RPCGas {
	return &RPCGas{Reader: reader, Limit: limit}
}

func (g *RPCGas) Quote(ctx context.Context, call CallContext) (*big.Int, uint64, error) {
	price, err := g.Reader.SuggestGasPrice(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("quoting gas price: %w", err)
	}
	limit := DefaultGasLimit
	if g.Limit != nil {
		if l := g.Limit(call.To, call.Data); l > 0 {
			limit = l
		}
	}
	log.L(ctx).Debugf("gas quote: price=%s limit=%d", price, limit)
	return price, limit, nil
}

// StaticGas returns caller-supplied values. A missing limit comes from
// LimitFunc when set. Whatever is still unset is taken from Fallback when
// present; a missing limit otherwise falls back to DefaultGasLimit.
type StaticGas struct {
	Price     *big.Int
	Limit     uint64
	LimitFunc LimitFunc
	Fallback  GasSource
}

func (g StaticGas) Quote(ctx context.Context, call CallContext) (*big.Int, uint64, error) {
	price, limit := g.Price, g.Limit
	if limit == 0 && g.LimitFunc != nil {
		limit = g.LimitFunc(call.To, call.Data)
	}
	if (price == nil || limit == 0) && g.Fallback != nil {
		fbPrice, fbLimit, err := g.Fallback.Quote(ctx, call)
		if err != nil {
			return nil, 0, err
		}
		if price == nil {
			price = fbPrice
		}
		if limit == 0 {
			limit = fbLimit
		}
	}
	if price == nil {
		return nil, 0, ErrNoGasPrice
	}
	if limit == 0 {
		limit = DefaultGasLimit
	}
	return new(big.Int).Set(price), limit, nil
}
