package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Mohsinsiddi/tokencli/internal/config"
	"github.com/Mohsinsiddi/tokencli/internal/log"
	"github.com/spf13/cobra"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/tokencli/cmd.Version=1.2.3" .
var Version = "0.1.0"

var (
	cfgDir string
	// stored is config.json as loaded; cfg is stored plus environment and
	// flag overlays. Only stored is ever saved.
	stored *config.Config
	cfg    *config.Config

	flagProvider      string
	flagChainSpec     string
	flagKeyFile       string
	flagKeyring       string
	flagFrom          string
	flagEnvPrefix     string
	flagPassphraseEnv string
	flagSeq           bool

	flagWait      bool
	flagWaitEvery bool
	flagSend      bool
	flagUnsafe    bool
	flagTimeout   time.Duration

	flagGasPrice string
	flagGasLimit uint64
	flagNonce    uint64

	flagFormat  string
	verbose     bool
	veryVerbose bool
	flagLogFile string
	flagLogJSON bool
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "tokencli",
	Short: "Build, sign, send and decode ERC20 token transactions",
	Long: `tokencli builds ERC20 contract calls, signs them with a local key
and optionally broadcasts them to an EVM JSON-RPC node.

Write commands are dry runs unless --send is given: the signed raw
transaction is printed instead of being broadcast. Use -w to wait for the
receipt of the last transaction, --ww to wait for every one.

Settings are read from ~/.tokencli/config.json, then the environment
(ETH_PROVIDER, RPC_PROVIDER, CHAIN_SPEC, RPC_AUTHENTICATION, RPC_USERNAME,
RPC_PASSWORD, <PREFIX>_ETH_PASSPHRASE), then flags.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		stored, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = stored.Clone()
		if err := cfg.ApplyEnv(os.Getenv); err != nil {
			return err
		}
		applyFlags(cmd)

		level := cfg.Log.Level
		if verbose || veryVerbose || level == "" {
			level = log.VerbosityLevel(verbose, veryVerbose)
		}
		logConf := log.Config{Level: level, Format: cfg.Log.Format, File: cfg.Log.File}
		if flagLogJSON {
			logConf.Format = "json"
		}
		log.InitConfig(logConf)

		switch flagFormat {
		case formatTerminal, formatRaw, formatBrief, formatJSONRPC:
		default:
			return fmt.Errorf("invalid --format %q: want terminal, raw, brief or jsonrpc", flagFormat)
		}
		return nil
	},
}

// applyFlags overlays explicitly set flags on the loaded config.
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.Provider = flagProvider
	}
	if flags.Changed("chain-spec") {
		cfg.ChainSpec = flagChainSpec
	}
	if flags.Changed("key-file") {
		cfg.KeyFile = flagKeyFile
		cfg.KeyringAddress = ""
	}
	if flags.Changed("keyring") {
		cfg.KeyringAddress = flagKeyring
		cfg.KeyFile = ""
	}
	if flags.Changed("env-prefix") {
		cfg.EnvPrefix = flagEnvPrefix
	}
	if flags.Changed("passphrase-env") {
		cfg.PassphraseEnv = flagPassphraseEnv
	}
	if flagSeq {
		cfg.SeqIDs = true
	}
	if flags.Changed("log-file") {
		cfg.Log.File = flagLogFile
	}
}

// persist applies change to the stored config and saves it. The effective
// config gets the same change so the rest of the run sees it.
func persist(change func(c *config.Config) error) error {
	if err := change(stored); err != nil {
		return err
	}
	if err := stored.Save(); err != nil {
		return err
	}
	return change(cfg)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
}

func init() {
	// TOKENCLI_CONFIG_DIR env var overrides --config flag.
	if envDir := os.Getenv("TOKENCLI_CONFIG_DIR"); envDir != "" {
		cfgDir = envDir
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.tokencli)")
	pf.StringVarP(&flagProvider, "provider", "p", "", "JSON-RPC provider URL")
	pf.StringVarP(&flagChainSpec, "chain-spec", "i", "", "chain spec, e.g. evm:sepolia:11155111")
	pf.StringVarP(&flagKeyFile, "key-file", "y", "", "keystore JSON or hex key file used for signing")
	pf.StringVar(&flagKeyring, "keyring", "", "sign with the key stored in the OS keychain for this address")
	pf.StringVar(&flagFrom, "from", "", "sender address for unsigned dry runs when no key is configured")
	pf.StringVar(&flagEnvPrefix, "env-prefix", "", "prefix of the passphrase environment variable")
	pf.StringVar(&flagPassphraseEnv, "passphrase-env", "", "environment variable holding the key file passphrase")
	pf.BoolVar(&flagSeq, "seq", false, "use sequential JSON-RPC request ids instead of UUIDs")

	pf.BoolVarP(&flagSend, "send", "s", false, "broadcast the transaction (default: dry run)")
	pf.BoolVarP(&flagWait, "wait", "w", false, "wait for the receipt of the last transaction")
	pf.BoolVar(&flagWaitEvery, "ww", false, "wait for the receipt of every transaction")
	pf.DurationVar(&flagTimeout, "timeout", 0, "receipt wait timeout (default 3m, 5m for deployments)")
	pf.BoolVarP(&flagUnsafe, "unsafe", "u", false, "accept addresses that fail the EIP-55 checksum")

	pf.StringVar(&flagGasPrice, "gas-price", "", "gas price in wei (default: eth_gasPrice)")
	pf.Uint64Var(&flagGasLimit, "gas-limit", 0, "gas limit (default: per-method budget)")
	pf.Uint64Var(&flagNonce, "nonce", 0, "nonce of the first transaction (default: pending count)")

	pf.StringVar(&flagFormat, "format", formatTerminal, "output format: terminal, raw, brief or jsonrpc")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.BoolVar(&veryVerbose, "vv", false, "debug output")
	pf.StringVar(&flagLogFile, "log-file", "", "write logs to a rotating file")
	pf.BoolVar(&flagLogJSON, "log-json", false, "log in JSON format")

	rootCmd.AddCommand(
		balanceCmd,
		infoCmd,
		allowanceCmd,
		transferCmd,
		transferFromCmd,
		approveCmd,
		mintCmd,
		minterCmd,
		deployCmd,
		decodeCmd,
		selectorCmd,
		checksumCmd,
		networkCmd,
		keyCmd,
		configCmd,
	)
}
