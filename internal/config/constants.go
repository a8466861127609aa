package config

import "time"

// Defaults used when neither config.json, the environment nor flags set a value.
const (
	DefaultChainSpec = "evm:ethereum:1"
	DefaultProvider  = "http://localhost:8545"
	DefaultEnvPrefix = ""
)

// Timeout constants used across cmd.
const (
	RPCTimeout       = 15 * time.Second // single JSON-RPC round trip
	TxConfirmTimeout = 3 * time.Minute  // standard transaction confirmation wait
	TxDeployTimeout  = 5 * time.Minute  // contract deployment confirmation wait
	ReceiptPoll      = time.Second      // receipt polling interval
)

// Environment variables read by ApplyEnv.
const (
	EnvProvider      = "ETH_PROVIDER"
	EnvRPCProvider   = "RPC_PROVIDER"
	EnvChainSpec     = "CHAIN_SPEC"
	EnvRPCAuth       = "RPC_AUTHENTICATION"
	EnvRPCUsername   = "RPC_USERNAME"
	EnvRPCPassword   = "RPC_PASSWORD"
	passphraseSuffix = "ETH_PASSPHRASE"
)
