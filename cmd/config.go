package cmd

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/Mohsinsiddi/tokencli/internal/chain"
	"github.com/Mohsinsiddi/tokencli/internal/config"
	"github.com/Mohsinsiddi/tokencli/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n\n", ui.StyleTitle.Render("Current Configuration"))
		fmt.Fprintln(out, string(data))
		if spec, err := cfg.Spec(); err == nil {
			fmt.Fprintln(out, ui.Meta("Provider: "+cfg.ResolveProvider(chain.NewRegistry(), spec)))
		}
		fmt.Fprintln(out, ui.Meta("Config directory: "+cfg.Dir()))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a setting",
	Long: `Persist one of: provider, chain-spec, key-file, keyring, env-prefix,
passphrase-env, artifact-dir, artifact-version, log-level, log-format,
log-file, seq.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if key == "chain-spec" {
			if _, err := chain.ParseSpec(value); err != nil {
				return err
			}
		}
		if err := persist(func(c *config.Config) error {
			return setting(c, key, value)
		}); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("%s set to %q", key, value)))
		return nil
	},
}

var configRPCCmd = &cobra.Command{
	Use:   "rpc",
	Short: "Manage custom RPC endpoints per network",
}

var configRPCAddCmd = &cobra.Command{
	Use:   "add <network> <url>",
	Short: "Add a custom RPC for a network",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		network, url := args[0], args[1]
		if slices.Contains(stored.GetRPCs(network), url) {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Warn(fmt.Sprintf("RPC %s already exists for network %s", url, network)))
			return nil
		}
		if err := persist(func(c *config.Config) error {
			return c.AddRPC(network, url)
		}); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("RPC %s added for %s", url, network)))
		return nil
	},
}

var configRPCRemoveCmd = &cobra.Command{
	Use:   "remove <network> <url>",
	Short: "Remove a custom RPC",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := persist(func(c *config.Config) error {
			return c.RemoveRPC(args[0], args[1])
		}); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("RPC %s removed from %s", args[1], args[0])))
		return nil
	},
}

var configRPCListCmd = &cobra.Command{
	Use:   "list <network>",
	Short: "List custom RPCs of a network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rpcs := cfg.GetRPCs(args[0])
		if len(rpcs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Meta("no custom RPCs for "+args[0]))
			return nil
		}
		for _, u := range rpcs {
			fmt.Fprintln(cmd.OutOrStdout(), u)
		}
		return nil
	},
}

// setting assigns one named config field.
func setting(c *config.Config, key, value string) error {
	switch key {
	case "provider":
		c.Provider = value
	case "chain-spec":
		c.ChainSpec = value
	case "key-file":
		c.KeyFile = value
	case "keyring":
		c.KeyringAddress = value
	case "env-prefix":
		c.EnvPrefix = value
	case "passphrase-env":
		c.PassphraseEnv = value
	case "artifact-dir":
		c.ArtifactDir = value
	case "artifact-version":
		c.ArtifactVersion = value
	case "log-level":
		c.Log.Level = value
	case "log-format":
		c.Log.Format = value
	case "log-file":
		c.Log.File = value
	case "seq":
		c.SeqIDs = value == "true"
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func init() {
	configRPCCmd.AddCommand(configRPCAddCmd, configRPCRemoveCmd, configRPCListCmd)
	configCmd.AddCommand(configListCmd, configSetCmd, configRPCCmd)
}
