package config

// Config holds all tokencli configuration. Values come from config.json,
// then the environment, then command-line flags.
type Config struct {
	Provider  string `json:"provider,omitempty"`
	ChainSpec string `json:"chain_spec"`

	// Signing key: an encrypted key file or an address held in the OS keychain.
	KeyFile        string `json:"key_file,omitempty"`
	KeyringAddress string `json:"keyring_address,omitempty"`
	EnvPrefix      string `json:"env_prefix,omitempty"`
	PassphraseEnv  string `json:"passphrase_env,omitempty"`

	ArtifactDir     string `json:"artifact_dir"`
	ArtifactVersion string `json:"artifact_version,omitempty"`

	SeqIDs     bool                `json:"seq_ids"`
	CustomRPCs map[string][]string `json:"custom_rpcs"`
	Log        LogConfig           `json:"log"`

	// Auth is only read from the environment, never persisted.
	Auth *RPCAuth `json:"-"`

	// internal: config dir path used for Save()
	configDir string
}

// LogConfig is the persisted part of the logging setup.
type LogConfig struct {
	Level  string `json:"level,omitempty"`
	Format string `json:"format,omitempty"` // "simple" | "json"
	File   string `json:"file,omitempty"`
}

// RPCAuth holds HTTP basic credentials for the provider.
type RPCAuth struct {
	Username string
	Password string
}
