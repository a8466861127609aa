package cmd

import (
	"fmt"
	"strings"

	"github.com/Mohsinsiddi/tokencli/internal/address"
	"github.com/Mohsinsiddi/tokencli/internal/ui"
	"github.com/spf13/cobra"
)

var checksumCmd = &cobra.Command{
	Use:   "checksum <address>",
	Short: "Validate or convert an address to EIP-55 checksum format",
	Long: `Convert any Ethereum address to its EIP-55 checksummed form and
validate if the input was already correctly checksummed. A mixed-case
input that fails the checksum exits with status 1.

Examples:
  tokencli checksum 0xd8da6bf26964af9d7eed9e03e53415d37aa96045
  tokencli checksum 0xD8DA6BF26964AF9D7EED9E03E53415D37AA96045`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := strings.TrimSpace(args[0])
		if _, err := address.Parse(input, true); err != nil {
			return err
		}
		checksummed := address.ToChecksum(input)

		// Single-case input carries no checksum; only mixed case is checked.
		var err error
		body := strings.TrimPrefix(strings.TrimPrefix(input, "0x"), "0X")
		if body != strings.ToLower(body) && body != strings.ToUpper(body) {
			_, err = address.Parse("0x"+body, false)
		}

		if flagFormat != formatTerminal {
			fmt.Fprintln(cmd.OutOrStdout(), checksummed)
			return err
		}

		pairs := [][2]string{
			{"Input", input},
			{"Checksummed", ui.Addr(checksummed)},
		}
		switch {
		case err != nil:
			pairs = append(pairs, [2]string{"Valid", ui.Err("checksum mismatch")})
		case input == checksummed:
			pairs = append(pairs, [2]string{"Valid", ui.Success("address is correctly checksummed")})
		default:
			pairs = append(pairs, [2]string{"Valid", ui.Warn("valid address but not checksummed")})
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.KeyValueBlock("EIP-55 Checksum", pairs))
		return err
	},
}
