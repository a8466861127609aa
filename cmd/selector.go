package cmd

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/Mohsinsiddi/tokencli/internal/abi"
	"github.com/Mohsinsiddi/tokencli/internal/token"
	"github.com/Mohsinsiddi/tokencli/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/sha3"
)

var (
	selectorList  bool
	selectorEvent bool
)

var selectorCmd = &cobra.Command{
	Use:   "selector [signature-or-selector]",
	Short: "Compute or look up a 4-byte function selector",
	Long: `Compute a 4-byte function selector from a method signature, or look up
one of the token methods tokencli knows.

Parameter names are dropped before hashing, so "transfer(address to,
uint256 amount)" gives the same selector as "transfer(address,uint256)".

Examples:
  tokencli selector "transfer(address,uint256)"     # → 0xa9059cbb
  tokencli selector "mintTo(address to, uint256 value)"
  tokencli selector 0xa9059cbb                      # → transfer(address,uint256)
  tokencli selector --event "Transfer(address,address,uint256)"
  tokencli selector --list`,
	Args: func(cmd *cobra.Command, args []string) error {
		if selectorList {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if selectorList {
			fmt.Fprint(out, knownSelectorTable())
			return nil
		}
		input := args[0]

		if strings.HasPrefix(input, "0x") || strings.HasPrefix(input, "0X") {
			raw, err := abi.FromHex(input)
			if err != nil || len(raw) != 4 {
				return fmt.Errorf("invalid selector %q: want 0x followed by 8 hex digits", input)
			}
			var sel abi.Selector
			copy(sel[:], raw)
			method := "unknown"
			if sig, ok := token.Standard().MethodName(sel); ok {
				method = sig
			}
			fmt.Fprintln(out, ui.KeyValueBlock("Selector Lookup", [][2]string{
				{"Selector", sel.Hex()},
				{"Method", ui.Val(method)},
			}))
			return nil
		}

		sig := normalizeSignature(input)
		if err := abi.ValidateSignature(sig); err != nil {
			return err
		}

		if selectorEvent {
			fmt.Fprintln(out, ui.KeyValueBlock("Event Topic", [][2]string{
				{"Signature", sig},
				{"Topic", ui.Val(computeEventTopic(sig))},
			}))
			return nil
		}

		sel := abi.SelectorFor(sig)
		if flagFormat != formatTerminal {
			fmt.Fprintln(out, sel.Hex())
			return nil
		}
		fmt.Fprintln(out, ui.KeyValueBlock("Function Selector", [][2]string{
			{"Signature", sig},
			{"Selector", ui.Val(sel.Hex())},
			{"Full Hash", computeEventTopic(sig)},
		}))
		return nil
	},
}

// normalizeSignature removes parameter names, keeping only types.
// "transfer(address to, uint256 amount)" → "transfer(address,uint256)"
func normalizeSignature(sig string) string {
	sig = strings.TrimSpace(sig)
	parenIdx := strings.Index(sig, "(")
	if parenIdx < 0 || !strings.HasSuffix(sig, ")") {
		return sig
	}

	name := strings.TrimSpace(sig[:parenIdx])
	paramStr := strings.TrimSpace(sig[parenIdx+1 : len(sig)-1])
	if paramStr == "" {
		return name + "()"
	}

	var types []string
	for _, p := range strings.Split(paramStr, ",") {
		if parts := strings.Fields(p); len(parts) > 0 {
			types = append(types, parts[0])
		}
	}
	return name + "(" + strings.Join(types, ",") + ")"
}

// computeEventTopic returns the full Keccak-256 hash of sig, which is also
// the topic0 of an event with that signature.
func computeEventTopic(sig string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(sig))
	return "0x" + hex.EncodeToString(h.Sum(nil))
}

// knownSelectorTable lists the methods of the standard token ABI.
func knownSelectorTable() string {
	methods := token.Standard().ABI.Methods
	sigs := make([]string, 0, len(methods))
	ids := make(map[string]string, len(methods))
	for _, m := range methods {
		sigs = append(sigs, m.Sig)
		ids[m.Sig] = "0x" + hex.EncodeToString(m.ID)
	}
	sort.Strings(sigs)

	tbl := ui.NewTable([]ui.Column{
		{Title: "Selector", Width: 10},
		{Title: "Signature", Width: 40},
	})
	for _, sig := range sigs {
		tbl.AddRow(ui.Row{ids[sig], sig})
	}
	return tbl.Render()
}

func init() {
	selectorCmd.Flags().BoolVar(&selectorList, "list", false, "list the known token selectors")
	selectorCmd.Flags().BoolVar(&selectorEvent, "event", false, "treat the signature as an event and print its topic")
}
