package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Mohsinsiddi/tokencli/internal/chain"
)

const (
	configFile         = "config.json"
	defaultArtifactDir = "artifacts"
)

// ErrUnsupportedAuth is returned for an RPC_AUTHENTICATION scheme other
// than "basic".
var ErrUnsupportedAuth = errors.New("unsupported RPC authentication scheme")

// Load reads config from dir (or creates defaults). dir defaults to ~/.tokencli.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".tokencli")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.configDir = dir
	if cfg.CustomRPCs == nil {
		cfg.CustomRPCs = make(map[string][]string)
	}

	return cfg, nil
}

// Clone returns a deep copy. Environment and flag overlays go on a clone
// so that Save on the loaded config never persists them.
func (c *Config) Clone() *Config {
	out := *c
	out.CustomRPCs = make(map[string][]string, len(c.CustomRPCs))
	for network, rpcs := range c.CustomRPCs {
		out.CustomRPCs[network] = slices.Clone(rpcs)
	}
	if c.Auth != nil {
		auth := *c.Auth
		out.Auth = &auth
	}
	return &out
}

// ArtifactPath returns the artifact directory. A relative ArtifactDir is
// taken relative to the config directory.
func (c *Config) ArtifactPath() string {
	dir := c.ArtifactDir
	if dir == "" {
		dir = defaultArtifactDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.configDir, dir)
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// ApplyEnv overlays environment settings. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvRPCProvider); v != "" {
		c.Provider = v
	}
	if v := getenv(EnvProvider); v != "" {
		c.Provider = v
	}
	if v := getenv(EnvChainSpec); v != "" {
		c.ChainSpec = v
	}

	switch scheme := strings.ToLower(getenv(EnvRPCAuth)); scheme {
	case "":
	case "basic":
		user := getenv(EnvRPCUsername)
		if user == "" {
			return fmt.Errorf("%s=basic requires %s", EnvRPCAuth, EnvRPCUsername)
		}
		c.Auth = &RPCAuth{Username: user, Password: getenv(EnvRPCPassword)}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedAuth, scheme)
	}
	return nil
}

// PassphraseVar returns the environment variable holding the key file
// passphrase: PassphraseEnv when set, otherwise <EnvPrefix>_ETH_PASSPHRASE.
func (c *Config) PassphraseVar() string {
	if c.PassphraseEnv != "" {
		return c.PassphraseEnv
	}
	if c.EnvPrefix == "" {
		return passphraseSuffix
	}
	return strings.ToUpper(c.EnvPrefix) + "_" + passphraseSuffix
}

// Passphrase reads the key file passphrase from the environment.
func (c *Config) Passphrase(getenv func(string) string) string {
	return getenv(c.PassphraseVar())
}

// Spec parses the configured chain spec.
func (c *Config) Spec() (chain.Spec, error) {
	return chain.ParseSpec(c.ChainSpec)
}

// ResolveProvider picks the RPC endpoint: an explicit provider, then the
// first custom RPC for the spec's network, then the registry's first public
// RPC, then DefaultProvider.
func (c *Config) ResolveProvider(reg *chain.Registry, spec chain.Spec) string {
	if c.Provider != "" {
		return c.Provider
	}
	if rpcs := c.CustomRPCs[spec.Network]; len(rpcs) > 0 {
		return rpcs[0]
	}
	if n, err := reg.Resolve(spec); err == nil && len(n.RPCs) > 0 {
		if custom := c.CustomRPCs[n.Name]; len(custom) > 0 {
			return custom[0]
		}
		return n.RPCs[0]
	}
	return DefaultProvider
}

// AddRPC adds a custom RPC URL for a network.
func (c *Config) AddRPC(network, url string) error {
	if c.CustomRPCs == nil {
		c.CustomRPCs = make(map[string][]string)
	}
	if slices.Contains(c.CustomRPCs[network], url) {
		return fmt.Errorf("RPC %s already exists for network %s", url, network)
	}
	c.CustomRPCs[network] = append(c.CustomRPCs[network], url)
	return nil
}

// RemoveRPC removes a custom RPC URL for a network.
func (c *Config) RemoveRPC(network, url string) error {
	rpcs := c.CustomRPCs[network]
	idx := slices.Index(rpcs, url)
	if idx == -1 {
		return fmt.Errorf("RPC %s not found for network %s", url, network)
	}
	c.CustomRPCs[network] = slices.Delete(rpcs, idx, idx+1)
	return nil
}

// GetRPCs returns custom RPCs for a network.
func (c *Config) GetRPCs(network string) []string {
	return c.CustomRPCs[network]
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// --- helpers ---

func defaults(dir string) *Config {
	return &Config{
		ChainSpec:   DefaultChainSpec,
		EnvPrefix:   DefaultEnvPrefix,
		ArtifactDir: defaultArtifactDir,
		CustomRPCs:  make(map[string][]string),
		configDir:   dir,
	}
}
