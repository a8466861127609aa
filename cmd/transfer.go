package cmd

import (
	"fmt"

	"github.com/Mohsinsiddi/tokencli/internal/abi"
	"github.com/Mohsinsiddi/tokencli/internal/txn"
	"github.com/spf13/cobra"
)

var transferCmd = &cobra.Command{
	Use:   "transfer <token> <to> <amount> [<to> <amount>...]",
	Short: "Transfer tokens to one or more recipients",
	Long: `Build and sign ERC20 transfer transactions from the configured key.

Amounts are integers in the token's smallest unit, or decimal numbers of
whole tokens (e.g. 1.5), in which case the token's decimals are queried.
Several recipients produce one transaction each with consecutive nonces.

Examples:
  tokencli transfer -y key.json <token> 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045 1000000
  tokencli transfer -y key.json -s -w <token> <to> 1.5 <to2> 2.25`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 3 || (len(args)-1)%2 != 0 {
			return fmt.Errorf("want <token> followed by <to> <amount> pairs, got %d args", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenAddr, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		s, err := newSession(cmd, true)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		var results []*txn.Result
		for i := 1; i < len(args); i += 2 {
			to, err := parseAddress(args[i])
			if err != nil {
				return err
			}
			amount, err := parseAmount(ctx, s, tokenAddr, args[i+1])
			if err != nil {
				return err
			}
			r, err := s.erc20().Transfer(ctx, tokenAddr, s.sender, to, amount, s.txFormat())
			if err != nil {
				return err
			}
			results = append(results, r)
		}
		return emit(ctx, cmd.OutOrStdout(), s, results, false)
	},
}

var transferFromCmd = &cobra.Command{
	Use:   "transfer-from <token> <from> <to> <amount>",
	Short: "Transfer tokens out of an account that approved the sender",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenAddr, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		from, err := parseAddress(args[1])
		if err != nil {
			return err
		}
		to, err := parseAddress(args[2])
		if err != nil {
			return err
		}
		s, err := newSession(cmd, true)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		amount, err := parseAmount(ctx, s, tokenAddr, args[3])
		if err != nil {
			return err
		}
		r, err := s.erc20().TransferFrom(ctx, tokenAddr, s.sender, from, to, amount, s.txFormat())
		if err != nil {
			return err
		}
		return emit(ctx, cmd.OutOrStdout(), s, []*txn.Result{r}, false)
	},
}

var approveMax bool

var approveCmd = &cobra.Command{
	Use:   "approve <token> <spender> [amount]",
	Short: "Allow a spender to transfer tokens on behalf of the sender",
	Long: `Set the allowance of spender over the sender's tokens.

Examples:
  tokencli approve -y key.json <token> <spender> 5000000
  tokencli approve -y key.json <token> <spender> --max`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenAddr, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		spender, err := parseAddress(args[1])
		if err != nil {
			return err
		}
		if approveMax == (len(args) == 3) {
			return fmt.Errorf("give either an amount or --max")
		}
		s, err := newSession(cmd, true)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		amount := abi.MaxUint256()
		if !approveMax {
			if amount, err = parseAmount(ctx, s, tokenAddr, args[2]); err != nil {
				return err
			}
		}
		r, err := s.erc20().Approve(ctx, tokenAddr, s.sender, spender, amount, s.txFormat())
		if err != nil {
			return err
		}
		return emit(ctx, cmd.OutOrStdout(), s, []*txn.Result{r}, false)
	},
}

func init() {
	approveCmd.Flags().BoolVar(&approveMax, "max", false, "approve the maximum uint256 amount")
}
