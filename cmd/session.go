package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"strings"

	"github.com/Mohsinsiddi/tokencli/internal/abi"
	"github.com/Mohsinsiddi/tokencli/internal/address"
	"github.com/Mohsinsiddi/tokencli/internal/chain"
	"github.com/Mohsinsiddi/tokencli/internal/config"
	"github.com/Mohsinsiddi/tokencli/internal/log"
	"github.com/Mohsinsiddi/tokencli/internal/oracle"
	"github.com/Mohsinsiddi/tokencli/internal/token"
	"github.com/Mohsinsiddi/tokencli/internal/txn"
	"github.com/Mohsinsiddi/tokencli/internal/wallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var errNoSender = errors.New("no sender: set --key-file, --keyring or --from")

// session is everything one invocation needs to talk to the chain.
type session struct {
	spec    chain.Spec
	network *chain.Network // nil for networks missing from the registry
	client  *chain.Client
	factory *txn.Factory
	sender  common.Address
	signed  bool
}

// newSession resolves the chain spec and provider and builds the RPC
// client. With writes set it also wires the oracles and the signer.
func newSession(cmd *cobra.Command, writes bool) (*session, error) {
	spec, err := cfg.Spec()
	if err != nil {
		return nil, err
	}
	reg := chain.NewRegistry()
	s := &session{spec: spec}
	if n, err := reg.Resolve(spec); err == nil {
		s.network = n
	}
	s.client = newClient(cfg.ResolveProvider(reg, spec))

	ctx := log.WithLogField(cmd.Context(), "chain", spec.String())
	cmd.SetContext(ctx)
	log.L(ctx).Debugf("provider %s", s.client.URL())

	if !writes {
		return s, nil
	}

	gas, err := gasSource(s.client)
	if err != nil {
		return nil, err
	}
	s.factory = &txn.Factory{
		ChainID: spec.BigChainID(),
		Nonce:   nonceSource(cmd, s.client),
		Gas:     gas,
		IDs:     s.client.IDs(),
	}

	signer, sender, err := loadSigner()
	switch {
	case err == nil:
		s.factory.Signer = signer
		s.sender = sender
		s.signed = true
	case errors.Is(err, errNoSender) && flagFrom != "" && !flagSend:
		if s.sender, err = parseAddress(flagFrom); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	return s, nil
}

func newClient(url string) *chain.Client {
	opts := []chain.Option{chain.WithHTTPClient(&http.Client{Timeout: config.RPCTimeout})}
	if cfg.SeqIDs {
		opts = append(opts, chain.WithIDGenerator(&chain.SeqGenerator{}))
	}
	if cfg.Auth != nil {
		opts = append(opts, chain.WithBasicAuth(cfg.Auth.Username, cfg.Auth.Password))
	}
	return chain.NewClient(url, opts...)
}

// nonceSource counts up from --nonce when given; otherwise nonces come from
// the node's pending count. Either way they are handed out contiguously.
func nonceSource(cmd *cobra.Command, client *chain.Client) oracle.NonceSource {
	if cmd.Flags().Changed("nonce") {
		return oracle.NewCountingNonce(flagNonce)
	}
	return oracle.NewRPCNonce(client)
}

func gasSource(client *chain.Client) (oracle.GasSource, error) {
	rpc := oracle.NewRPCGas(client, token.GasLimit)
	if flagGasPrice == "" && flagGasLimit == 0 {
		return rpc, nil
	}
	g := oracle.StaticGas{Limit: flagGasLimit, LimitFunc: token.GasLimit, Fallback: rpc}
	if flagGasPrice != "" {
		price, ok := new(big.Int).SetString(flagGasPrice, 10)
		if !ok || price.Sign() < 0 {
			return nil, fmt.Errorf("invalid --gas-price %q: want a non-negative integer in wei", flagGasPrice)
		}
		g.Price = price
	}
	return g, nil
}

// loadSigner opens the configured key: a key file (passphrase from the
// environment) or an address held in the OS keychain.
func loadSigner() (*wallet.Signer, common.Address, error) {
	switch {
	case cfg.KeyFile != "":
		ks, err := wallet.OpenFileKeystore(cfg.KeyFile, cfg.Passphrase(os.Getenv))
		if err != nil {
			return nil, common.Address{}, err
		}
		return wallet.NewSigner(ks), ks.Address(), nil
	case cfg.KeyringAddress != "":
		addr, err := parseAddress(cfg.KeyringAddress)
		if err != nil {
			return nil, common.Address{}, err
		}
		ks, err := wallet.DefaultKeyring()
		if err != nil {
			return nil, common.Address{}, err
		}
		if !ks.Has(addr) {
			return nil, common.Address{}, fmt.Errorf("%w: %s", wallet.ErrKeyNotFound, addr.Hex())
		}
		return wallet.NewSigner(ks), addr, nil
	default:
		return nil, common.Address{}, errNoSender
	}
}

// txFormat picks what the factory should produce for this invocation.
func (s *session) txFormat() txn.Format {
	switch {
	case !s.signed:
		return txn.FormatUnsigned
	case flagFormat == formatJSONRPC:
		return txn.FormatJSONRPC
	default:
		return txn.FormatRLPSigned
	}
}

// erc20 returns a token handle bound to the session's factory.
func (s *session) erc20() *token.ERC20 {
	return token.NewERC20(s.factory)
}

// parseAddress parses a user supplied address, honouring --unsafe.
func parseAddress(s string) (common.Address, error) {
	return address.Parse(s, flagUnsafe)
}

// parseAmount parses a token amount. Integers are raw units; a decimal
// point means whole tokens, which needs the token's decimals.
func parseAmount(ctx context.Context, s *session, tokenAddr common.Address, arg string) (*big.Int, error) {
	if !strings.Contains(arg, ".") {
		n, ok := new(big.Int).SetString(arg, 10)
		if !ok {
			return nil, fmt.Errorf("invalid amount %q", arg)
		}
		if err := abi.CheckUint256(n); err != nil {
			return nil, fmt.Errorf("invalid amount %q: %w", arg, err)
		}
		return n, nil
	}

	res, err := s.client.Call(ctx, s.erc20().Decimals(tokenAddr))
	if err != nil {
		return nil, fmt.Errorf("reading decimals: %w", err)
	}
	decimals, err := token.ParseDecimals(res)
	if err != nil {
		return nil, err
	}
	n, ok := token.ParseAmount(arg, decimals)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q for a token with %d decimals", arg, decimals)
	}
	if err := abi.CheckUint256(n); err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", arg, err)
	}
	return n, nil
}
