package rpc

import (
	"context"
	"time"

	"github.com/Mohsinsiddi/tokencli/internal/chain"
	"github.com/Mohsinsiddi/tokencli/internal/log"
	"golang.org/x/sync/errgroup"
)

const (
	// ProbeTimeout bounds a single endpoint probe.
	ProbeTimeout = 5 * time.Second
	// MaxParallelProbes caps concurrent probes.
	MaxParallelProbes = 8
)

// BlockReader is the one call a probe needs.
type BlockReader interface {
	BlockNumber(ctx context.Context) (uint64, error)
}

// Dialer builds a reader for an endpoint URL.
type Dialer func(url string) BlockReader

// DialHTTP dials endpoints with chain.NewClient and the given options.
func DialHTTP(opts ...chain.Option) Dialer {
	return func(url string) BlockReader {
		return chain.NewClient(url, opts...)
	}
}

// Endpoint is the measured state of one RPC URL.
type Endpoint struct {
	URL         string
	Latency     time.Duration
	BlockNumber uint64
	Err         error
}

// Healthy reports whether the probe answered.
func (e Endpoint) Healthy() bool { return e.Err == nil }

// Probe asks every URL for its latest block in parallel. Results keep the
// order of urls.
func Probe(ctx context.Context, urls []string, dial Dialer) []Endpoint {
	out := make([]Endpoint, len(urls))
	var g errgroup.Group
	g.SetLimit(MaxParallelProbes)
	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			out[i] = probeOne(ctx, url, dial(url))
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func probeOne(ctx context.Context, url string, r BlockReader) Endpoint {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	start := time.Now()
	block, err := r.BlockNumber(ctx)
	ep := Endpoint{URL: url, Latency: time.Since(start), BlockNumber: block, Err: err}
	if err != nil {
		log.L(ctx).Debugf("probe %s failed: %s", url, err)
	}
	return ep
}
