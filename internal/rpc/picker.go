package rpc

import (
	"errors"
	"fmt"
)

// ErrNoHealthyRPC is returned when no probed endpoint can be used.
var ErrNoHealthyRPC = errors.New("no healthy RPC endpoint available")

// Algorithm selects how Pick chooses among endpoints.
type Algorithm string

const (
	AlgorithmFastest  Algorithm = "fastest"
	AlgorithmFailover Algorithm = "failover"

	// Endpoints more than this many blocks behind the best are stale.
	StaleBlockThreshold = 3
)

// ParseAlgorithm accepts "" (fastest), "fastest" or "failover".
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(s); a {
	case "":
		return AlgorithmFastest, nil
	case AlgorithmFastest, AlgorithmFailover:
		return a, nil
	default:
		return "", fmt.Errorf("unknown RPC algorithm %q: want fastest or failover", s)
	}
}

// Stale reports whether e lags best by more than StaleBlockThreshold.
func Stale(e Endpoint, best uint64) bool {
	return e.Healthy() && best > e.BlockNumber && best-e.BlockNumber > StaleBlockThreshold
}

// BestBlock is the highest block any healthy endpoint reported.
func BestBlock(endpoints []Endpoint) uint64 {
	var best uint64
	for _, e := range endpoints {
		if e.Healthy() && e.BlockNumber > best {
			best = e.BlockNumber
		}
	}
	return best
}

// Pick chooses an endpoint. Fastest takes the lowest latency among healthy,
// non-stale endpoints; failover takes the first of those in list order.
func Pick(endpoints []Endpoint, algo Algorithm) (*Endpoint, error) {
	best := BestBlock(endpoints)

	var winner *Endpoint
	for i := range endpoints {
		e := &endpoints[i]
		if !e.Healthy() || Stale(*e, best) {
			continue
		}
		if algo == AlgorithmFailover {
			return e, nil
		}
		if winner == nil || e.Latency < winner.Latency {
			winner = e
		}
	}
	if winner == nil {
		return nil, ErrNoHealthyRPC
	}
	return winner, nil
}
