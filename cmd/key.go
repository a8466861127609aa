package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/Mohsinsiddi/tokencli/internal/config"
	"github.com/Mohsinsiddi/tokencli/internal/ui"
	"github.com/Mohsinsiddi/tokencli/internal/wallet"
	"github.com/spf13/cobra"
)

var (
	keyImportDefault bool
	keyNewImport     string
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage signing keys",
}

var keyNewCmd = &cobra.Command{
	Use:   "new <path>",
	Short: "Write an encrypted key file",
	Long: `Create a go-ethereum encrypted key file at <path>, encrypted with the
passphrase read from the passphrase environment variable (ETH_PASSPHRASE
unless --env-prefix or --passphrase-env say otherwise).

A fresh key is generated unless --import gives a hex private key.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pass := cfg.Passphrase(os.Getenv)
		if pass == "" {
			return fmt.Errorf("%s is empty: refusing to write an unencrypted key", cfg.PassphraseVar())
		}
		addr, err := wallet.WriteKeyFile(args[0], keyNewImport, pass)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Key file %s written for %s", args[0], ui.Addr(addr.Hex()))))
		return nil
	},
}

var keyImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Store a hex private key from stdin in the OS keychain",
	Long: `Read a hex private key from stdin and store it in the OS keychain.
Sign with it afterwards using --keyring <address>, or pass --default to
make it the configured signing key.

Example:
  cat key.hex | tokencli key import --default`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			return fmt.Errorf("no key on stdin: %v", err)
		}

		ks, err := wallet.DefaultKeyring()
		if err != nil {
			return err
		}
		addr, err := ks.Store(line)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Key stored for "+ui.Addr(addr.Hex())))

		if keyImportDefault {
			if err := persist(func(c *config.Config) error {
				c.KeyringAddress = addr.Hex()
				c.KeyFile = ""
				return nil
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Info("set as default signing key"))
		}
		return nil
	},
}

var keyDeleteCmd = &cobra.Command{
	Use:   "delete <address>",
	Short: "Remove a key from the OS keychain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		ks, err := wallet.DefaultKeyring()
		if err != nil {
			return err
		}
		if !ks.Has(addr) {
			return fmt.Errorf("%w: %s", wallet.ErrKeyNotFound, addr.Hex())
		}
		if err := ks.Delete(addr); err != nil {
			return err
		}
		if strings.EqualFold(stored.KeyringAddress, addr.Hex()) {
			if err := persist(func(c *config.Config) error {
				c.KeyringAddress = ""
				return nil
			}); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Key removed for "+ui.Addr(addr.Hex())))
		return nil
	},
}

func init() {
	keyNewCmd.Flags().StringVar(&keyNewImport, "import", "", "hex private key to encrypt instead of generating one")
	keyImportCmd.Flags().BoolVar(&keyImportDefault, "default", false, "use this key for signing by default")
	keyCmd.AddCommand(keyNewCmd, keyImportCmd, keyDeleteCmd)
}
