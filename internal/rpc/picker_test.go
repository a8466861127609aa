package rpc

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDown = errors.New("connection refused")

func TestPickFastest(t *testing.T) {
	eps := []Endpoint{
		{URL: "a", Latency: 80 * time.Millisecond, BlockNumber: 100},
		{URL: "b", Latency: 20 * time.Millisecond, BlockNumber: 100},
		{URL: "c", Latency: 5 * time.Millisecond, Err: errDown},
	}
	e, err := Pick(eps, AlgorithmFastest)
	require.NoError(t, err)
	assert.Equal(t, "b", e.URL)
}

func TestPickSkipsStale(t *testing.T) {
	eps := []Endpoint{
		{URL: "fast-but-behind", Latency: time.Millisecond, BlockNumber: 90},
		{URL: "slow", Latency: time.Second, BlockNumber: 100},
		{URL: "close-enough", Latency: 500 * time.Millisecond, BlockNumber: 97},
	}
	e, err := Pick(eps, AlgorithmFastest)
	require.NoError(t, err)
	assert.Equal(t, "close-enough", e.URL)
	assert.True(t, Stale(eps[0], 100))
	assert.False(t, Stale(eps[2], 100))
}

func TestPickFailover(t *testing.T) {
	eps := []Endpoint{
		{URL: "down", Err: errDown},
		{URL: "second", Latency: time.Second, BlockNumber: 100},
		{URL: "third", Latency: time.Millisecond, BlockNumber: 100},
	}
	e, err := Pick(eps, AlgorithmFailover)
	require.NoError(t, err)
	assert.Equal(t, "second", e.URL)
}

func TestPickNoneHealthy(t *testing.T) {
	_, err := Pick([]Endpoint{{URL: "a", Err: errDown}}, AlgorithmFastest)
	assert.ErrorIs(t, err, ErrNoHealthyRPC)

	_, err = Pick(nil, AlgorithmFailover)
	assert.ErrorIs(t, err, ErrNoHealthyRPC)
}

func TestBestBlockIgnoresFailures(t *testing.T) {
	eps := []Endpoint{
		{BlockNumber: 50},
		{BlockNumber: 9999, Err: errDown},
		{BlockNumber: 70},
	}
	assert.Equal(t, uint64(70), BestBlock(eps))
}

func TestParseAlgorithm(t *testing.T) {
	a, err := ParseAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmFastest, a)

	a, err = ParseAlgorithm("failover")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmFailover, a)

	_, err = ParseAlgorithm("round-robin")
	assert.Error(t, err)
}
