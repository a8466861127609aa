package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Mohsinsiddi/tokencli/internal/abi"
	"github.com/Mohsinsiddi/tokencli/internal/decode"
	"github.com/Mohsinsiddi/tokencli/internal/log"
	"github.com/Mohsinsiddi/tokencli/internal/token"
	"github.com/Mohsinsiddi/tokencli/internal/ui"
	"github.com/spf13/cobra"
)

var (
	decodeNoResolve bool
	decodeCalldata  bool
	decodeABI       string
)

var decodeCmd = &cobra.Command{
	Use:   "decode [raw-tx]",
	Short: "Decode a signed raw transaction for humans",
	Long: `Decode a signed raw transaction (0x-prefixed hex) into its fields,
the recovered sender and, for token calls, the method and its arguments.

For transfers the token's name, symbol and decimals are looked up over
RPC; --no-resolve skips the lookup and shows raw amounts. The transaction
is read from stdin when no argument is given. With --calldata the input
is plain calldata instead of a transaction and no RPC is used.

Examples:
  tokencli decode 0xf8a9...
  tokencli transfer -y key.json <token> <to> 100 --format raw | tokencli decode --no-resolve
  tokencli decode --calldata 0xa9059cbb000000000000000000000000d8da6bf26964af9d7eed9e03e53415d37aa960450000000000000000000000000000000000000000000000000de0b6b3a7640000`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := decodeInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		art := token.Standard()
		if decodeABI != "" {
			data, err := os.ReadFile(decodeABI)
			if err != nil {
				return fmt.Errorf("reading ABI: %w", err)
			}
			if art, err = token.NewArtifact(decodeABI, data, "", ""); err != nil {
				return err
			}
		}

		if decodeCalldata {
			return printCalldata(cmd.OutOrStdout(), art, input)
		}

		tx, err := decode.DecodeHex(input)
		if err != nil {
			return err
		}
		h := &decode.Humanizer{Artifact: art}
		if !decodeNoResolve {
			if s, err := newSession(cmd, false); err != nil {
				log.L(cmd.Context()).Warnf("not resolving token metadata: %v", err)
			} else {
				h.Reader = s.client
			}
		}
		return h.Humanize(cmd.Context(), cmd.OutOrStdout(), tx)
	},
}

// decodeInput returns the positional argument or, without one, stdin.
func decodeInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return strings.TrimSpace(args[0]), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	input := strings.TrimSpace(string(data))
	if input == "" {
		return "", fmt.Errorf("no input: pass a hex string or pipe one on stdin")
	}
	return input, nil
}

func printCalldata(w io.Writer, art *token.Artifact, input string) error {
	data, err := abi.FromHex(input)
	if err != nil {
		return err
	}
	sel, args, err := abi.SplitCall(data)
	if err != nil {
		return err
	}

	method, ok := art.MethodName(sel)
	if !ok {
		method = sel.Hex()
	}
	pairs := [][2]string{
		{"Method", ui.Val(method)},
		{"Selector", sel.Hex()},
	}
	for i, word := range splitHexWords(abi.ToHex(args)[2:]) {
		pairs = append(pairs, [2]string{fmt.Sprintf("Arg[%d]", i), "0x" + word})
	}
	fmt.Fprintln(w, ui.KeyValueBlock("Decoded Calldata", pairs))
	return nil
}

// splitHexWords splits a hex string into 64-char (32-byte) words. A
// trailing partial word is kept as is.
func splitHexWords(hex string) []string {
	var words []string
	for len(hex) >= 64 {
		words = append(words, hex[:64])
		hex = hex[64:]
	}
	if hex != "" {
		words = append(words, hex)
	}
	return words
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeNoResolve, "no-resolve", false, "do not query token metadata")
	decodeCmd.Flags().BoolVar(&decodeCalldata, "calldata", false, "input is calldata, not a signed transaction")
	decodeCmd.Flags().StringVar(&decodeABI, "abi", "", "contract ABI JSON used to name methods")
}
