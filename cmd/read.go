package cmd

import (
	"fmt"

	"github.com/Mohsinsiddi/tokencli/internal/abi"
	"github.com/Mohsinsiddi/tokencli/internal/token"
	"github.com/Mohsinsiddi/tokencli/internal/ui"
	"github.com/spf13/cobra"
)

var balanceRaw bool

var balanceCmd = &cobra.Command{
	Use:   "balance <token> <owner>",
	Short: "Show the token balance of an address",
	Long: `Query balanceOf on an ERC20 contract.

The balance is shown with the token's decimals applied; --raw prints the
integer amount in the token's smallest unit.

Examples:
  tokencli balance 0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045
  tokencli balance --raw -i evm:sepolia:11155111 <token> <owner>`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenAddr, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		owner, err := parseAddress(args[1])
		if err != nil {
			return err
		}
		s, err := newSession(cmd, false)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		erc20 := s.erc20()

		res, err := s.client.Call(ctx, erc20.BalanceOf(tokenAddr, owner))
		if err != nil {
			return fmt.Errorf("balanceOf: %w", err)
		}
		bal, err := token.ParseBalance(res)
		if err != nil {
			return err
		}
		if balanceRaw {
			fmt.Fprintln(cmd.OutOrStdout(), bal.String())
			return nil
		}

		res, err = s.client.Call(ctx, erc20.Decimals(tokenAddr))
		if err != nil {
			return fmt.Errorf("decimals: %w", err)
		}
		decimals, err := token.ParseDecimals(res)
		if err != nil {
			return err
		}
		formatted := token.FormatBalance(bal, decimals)

		if flagFormat != formatTerminal {
			fmt.Fprintln(cmd.OutOrStdout(), formatted)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.KeyValueBlock("Token Balance", [][2]string{
			{"Token", ui.Addr(tokenAddr.Hex())},
			{"Owner", ui.Addr(owner.Hex())},
			{"Balance", ui.Val(formatted)},
			{"Decimals", fmt.Sprint(decimals)},
		}))
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info <token>",
	Short: "Show name, symbol, decimals and total supply of a token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenAddr, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		s, err := newSession(cmd, false)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		erc20 := s.erc20()

		res, err := s.client.Call(ctx, erc20.Name(tokenAddr))
		if err != nil {
			return fmt.Errorf("name: %w", err)
		}
		name, err := token.ParseName(res)
		if err != nil {
			return err
		}
		res, err = s.client.Call(ctx, erc20.Symbol(tokenAddr))
		if err != nil {
			return fmt.Errorf("symbol: %w", err)
		}
		symbol, err := token.ParseSymbol(res)
		if err != nil {
			return err
		}
		res, err = s.client.Call(ctx, erc20.Decimals(tokenAddr))
		if err != nil {
			return fmt.Errorf("decimals: %w", err)
		}
		decimals, err := token.ParseDecimals(res)
		if err != nil {
			return err
		}
		res, err = s.client.Call(ctx, erc20.TotalSupply(tokenAddr))
		if err != nil {
			return fmt.Errorf("totalSupply: %w", err)
		}
		supply, err := token.ParseTotalSupply(res)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if flagFormat != formatTerminal {
			fmt.Fprintf(out, "name: %s\nsymbol: %s\ndecimals: %d\ntotalSupply: %s\n",
				name, symbol, decimals, token.FormatBalance(supply, decimals))
			return nil
		}
		fmt.Fprintln(out, ui.KeyValueBlock("Token", [][2]string{
			{"Address", ui.Addr(tokenAddr.Hex())},
			{"Name", name},
			{"Symbol", symbol},
			{"Decimals", fmt.Sprint(decimals)},
			{"Total Supply", ui.Val(token.FormatBalance(supply, decimals))},
		}))
		return nil
	},
}

var allowanceCmd = &cobra.Command{
	Use:   "allowance <token> <owner> <spender>",
	Short: "Show how much a spender may transfer on behalf of an owner",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenAddr, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		owner, err := parseAddress(args[1])
		if err != nil {
			return err
		}
		spender, err := parseAddress(args[2])
		if err != nil {
			return err
		}
		s, err := newSession(cmd, false)
		if err != nil {
			return err
		}
		res, err := s.client.Call(cmd.Context(), s.erc20().Allowance(tokenAddr, owner, spender))
		if err != nil {
			return fmt.Errorf("allowance: %w", err)
		}
		allowance, err := token.ParseAllowance(res)
		if err != nil {
			return err
		}

		if flagFormat != formatTerminal {
			fmt.Fprintln(cmd.OutOrStdout(), allowance.String())
			return nil
		}
		value := allowance.String()
		if allowance.Cmp(abi.MaxUint256()) == 0 {
			value += " " + ui.Meta("(unlimited)")
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.KeyValueBlock("Allowance", [][2]string{
			{"Token", ui.Addr(tokenAddr.Hex())},
			{"Owner", ui.Addr(owner.Hex())},
			{"Spender", ui.Addr(spender.Hex())},
			{"Allowance", ui.Val(value)},
		}))
		return nil
	},
}

func init() {
	balanceCmd.Flags().BoolVar(&balanceRaw, "raw", false, "print the raw integer balance")
}
