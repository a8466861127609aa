package chain

import (
	"errors"
	"sort"
	"strings"
)

// ErrChainNotFound is returned when a network is not in the registry.
var ErrChainNotFound = errors.New("chain not found")

// Network holds the metadata used to pick a default provider and to render
// explorer links for a known EVM network.
type Network struct {
	Name           string
	DisplayName    string
	ChainID        uint64
	NativeCurrency string
	RPCs           []string
	Explorer       string
}

// TxURL returns the explorer link for a transaction hash, or "" when the
// network has no explorer.
func (n *Network) TxURL(hash string) string {
	if n.Explorer == "" {
		return ""
	}
	return n.Explorer + "/tx/" + hash
}

// Registry indexes known networks by name and chain id.
type Registry struct {
	networks []Network
	byName   map[string]*Network
	byID     map[uint64]*Network
}

// NewRegistry returns the built-in network registry.
func NewRegistry() *Registry {
	networks := allNetworks()
	r := &Registry{
		networks: networks,
		byName:   make(map[string]*Network, len(networks)),
		byID:     make(map[uint64]*Network, len(networks)),
	}
	for i := range r.networks {
		n := &r.networks[i]
		r.byName[n.Name] = n
		r.byID[n.ChainID] = n
	}
	return r
}

// All returns every network sorted by chain id.
func (r *Registry) All() []Network {
	out := append([]Network(nil), r.networks...)
	sort.Slice(out, func(i, j int) bool { return out[i].ChainID < out[j].ChainID })
	return out
}

// GetByName finds a network by slug (e.g. "ethereum", "sepolia").
func (r *Registry) GetByName(name string) (*Network, error) {
	n, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, ErrChainNotFound
	}
	return n, nil
}

// GetByChainID finds a network by numeric chain id.
func (r *Registry) GetByChainID(id uint64) (*Network, error) {
	n, ok := r.byID[id]
	if !ok {
		return nil, ErrChainNotFound
	}
	return n, nil
}

// Resolve returns the network for a chain spec, matching on chain id.
func (r *Registry) Resolve(s Spec) (*Network, error) {
	return r.GetByChainID(s.ChainID)
}

// --- network data ---

func allNetworks() []Network {
	return []Network{
		{
			Name: "ethereum", DisplayName: "Ethereum", ChainID: 1, NativeCurrency: "ETH",
			RPCs:     []string{"https://eth.llamarpc.com", "https://ethereum-rpc.publicnode.com"},
			Explorer: "https://etherscan.io",
		},
		{
			Name: "sepolia", DisplayName: "Sepolia", ChainID: 11155111, NativeCurrency: "ETH",
			RPCs:     []string{"https://rpc.sepolia.org", "https://sepolia.gateway.tenderly.co"},
			Explorer: "https://sepolia.etherscan.io",
		},
		{
			Name: "base", DisplayName: "Base", ChainID: 8453, NativeCurrency: "ETH",
			RPCs:     []string{"https://mainnet.base.org", "https://base.llamarpc.com"},
			Explorer: "https://basescan.org",
		},
		{
			Name: "base-sepolia", DisplayName: "Base Sepolia", ChainID: 84532, NativeCurrency: "ETH",
			RPCs:     []string{"https://sepolia.base.org"},
			Explorer: "https://sepolia.basescan.org",
		},
		{
			Name: "polygon", DisplayName: "Polygon", ChainID: 137, NativeCurrency: "POL",
			RPCs:     []string{"https://polygon-bor-rpc.publicnode.com"},
			Explorer: "https://polygonscan.com",
		},
		{
			Name: "arbitrum", DisplayName: "Arbitrum", ChainID: 42161, NativeCurrency: "ETH",
			RPCs:     []string{"https://arb1.arbitrum.io/rpc"},
			Explorer: "https://arbiscan.io",
		},
		{
			Name: "optimism", DisplayName: "Optimism", ChainID: 10, NativeCurrency: "ETH",
			RPCs:     []string{"https://mainnet.optimism.io"},
			Explorer: "https://optimistic.etherscan.io",
		},
		{
			Name: "bnb", DisplayName: "BNB Chain", ChainID: 56, NativeCurrency: "BNB",
			RPCs:     []string{"https://bsc-dataseed.binance.org"},
			Explorer: "https://bscscan.com",
		},
		{
			Name: "gnosis", DisplayName: "Gnosis", ChainID: 100, NativeCurrency: "xDAI",
			RPCs:     []string{"https://rpc.gnosischain.com"},
			Explorer: "https://gnosisscan.io",
		},
		{
			Name: "celo", DisplayName: "Celo", ChainID: 42220, NativeCurrency: "CELO",
			RPCs:     []string{"https://forno.celo.org"},
			Explorer: "https://celoscan.io",
		},
		{
			Name: "avalanche", DisplayName: "Avalanche", ChainID: 43114, NativeCurrency: "AVAX",
			RPCs:     []string{"https://api.avax.network/ext/bc/C/rpc"},
			Explorer: "https://snowtrace.io",
		},
		{
			Name: "local", DisplayName: "Local devnet", ChainID: 1337, NativeCurrency: "ETH",
			RPCs: []string{"http://localhost:8545"},
		},
	}
}
