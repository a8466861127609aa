package chain

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Spec identifies the target chain of an invocation, written as
// "<engine>:<network>:<chain id>[:<tag>]", e.g. "evm:ethereum:1".
type Spec struct {
	Engine  string
	Network string
	ChainID uint64
	Tag     string
}

// ParseSpec parses a chain specification string.
func ParseSpec(s string) (Spec, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return Spec{}, fmt.Errorf("invalid chain spec %q: want <engine>:<network>:<chain id>[:<tag>]", s)
	}
	if parts[0] != "evm" {
		return Spec{}, fmt.Errorf("invalid chain spec %q: unsupported engine %q", s, parts[0])
	}
	if parts[1] == "" {
		return Spec{}, fmt.Errorf("invalid chain spec %q: empty network name", s)
	}
	id, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil || id == 0 {
		return Spec{}, fmt.Errorf("invalid chain spec %q: bad chain id %q", s, parts[2])
	}
	spec := Spec{Engine: parts[0], Network: parts[1], ChainID: id}
	if len(parts) == 4 {
		spec.Tag = parts[3]
	}
	return spec, nil
}

// String renders the spec in its canonical string form.
func (s Spec) String() string {
	out := fmt.Sprintf("%s:%s:%d", s.Engine, s.Network, s.ChainID)
	if s.Tag != "" {
		out += ":" + s.Tag
	}
	return out
}

// BigChainID returns the chain id for transaction signing.
func (s Spec) BigChainID() *big.Int {
	return new(big.Int).SetUint64(s.ChainID)
}
