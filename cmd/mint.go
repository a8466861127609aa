package cmd

import (
	"context"

	"github.com/Mohsinsiddi/tokencli/internal/token"
	"github.com/Mohsinsiddi/tokencli/internal/txn"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var mintCmd = &cobra.Command{
	Use:   "mint <token> <to> <amount>",
	Short: "Mint new tokens on a giftable token (sender must be a minter)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenAddr, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		to, err := parseAddress(args[1])
		if err != nil {
			return err
		}
		s, err := newSession(cmd, true)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		amount, err := parseAmount(ctx, s, tokenAddr, args[2])
		if err != nil {
			return err
		}
		r, err := token.NewGiftableToken(s.factory, nil).MintTo(ctx, tokenAddr, s.sender, to, amount, s.txFormat())
		if err != nil {
			return err
		}
		return emit(ctx, cmd.OutOrStdout(), s, []*txn.Result{r}, false)
	},
}

var minterCmd = &cobra.Command{
	Use:   "minter",
	Short: "Grant or revoke minting rights on a giftable token",
}

var minterAddCmd = &cobra.Command{
	Use:   "add <token> <minter>",
	Short: "Grant minting rights",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMinter(cmd, args, (*token.GiftableToken).AddMinter)
	},
}

var minterRemoveCmd = &cobra.Command{
	Use:   "remove <token> <minter>",
	Short: "Revoke minting rights",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMinter(cmd, args, (*token.GiftableToken).RemoveMinter)
	},
}

type minterOp func(g *token.GiftableToken, ctx context.Context, tok, sender, minter common.Address, format txn.Format) (*txn.Result, error)

func runMinter(cmd *cobra.Command, args []string, op minterOp) error {
	tokenAddr, err := parseAddress(args[0])
	if err != nil {
		return err
	}
	minter, err := parseAddress(args[1])
	if err != nil {
		return err
	}
	s, err := newSession(cmd, true)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	r, err := op(token.NewGiftableToken(s.factory, nil), ctx, tokenAddr, s.sender, minter, s.txFormat())
	if err != nil {
		return err
	}
	return emit(ctx, cmd.OutOrStdout(), s, []*txn.Result{r}, false)
}

func init() {
	minterCmd.AddCommand(minterAddCmd, minterRemoveCmd)
}
