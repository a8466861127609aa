// check-balances: queries the token balance of several owners on one network
// in parallel and prints a summary table.
//
// Run from the module root:
//
//	go run ./scripts/check-balances [-u] <network> <token> <owner> [<owner>...]
//
// Addresses must carry a valid EIP-55 checksum unless -u is given.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/Mohsinsiddi/tokencli/internal/address"
	"github.com/Mohsinsiddi/tokencli/internal/chain"
	"github.com/Mohsinsiddi/tokencli/internal/token"
	"github.com/Mohsinsiddi/tokencli/internal/ui"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"
)

const rpcTimeout = 12 * time.Second

type result struct {
	owner   string
	balance string
	err     string
}

func main() {
	unsafe := pflag.BoolP("unsafe", "u", false, "accept addresses that fail the EIP-55 checksum")
	pflag.Parse()
	args := pflag.Args()
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: check-balances [-u] <network> <token> <owner> [<owner>...]")
		os.Exit(2)
	}

	n, err := chain.NewRegistry().GetByName(args[0])
	if err != nil {
		fail(err)
	}
	tok, err := address.Parse(args[1], *unsafe)
	if err != nil {
		fail(err)
	}
	client := chain.NewClient(n.RPCs[0])
	erc20 := token.NewERC20(nil)

	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()

	symbol, decimals := "?", uint8(0)
	if res, err := client.Call(ctx, erc20.Symbol(tok)); err == nil {
		if s, err := token.ParseSymbol(res); err == nil {
			symbol = s
		}
	}
	if res, err := client.Call(ctx, erc20.Decimals(tok)); err == nil {
		if d, err := token.ParseDecimals(res); err == nil {
			decimals = d
		}
	}

	owners := args[2:]
	results := make([]result, len(owners))
	var wg sync.WaitGroup
	for i, o := range owners {
		wg.Add(1)
		go func(i int, o string) {
			defer wg.Done()
			results[i] = balanceOf(ctx, client, erc20, tok, o, decimals, *unsafe)
		}(i, o)
	}
	wg.Wait()

	fmt.Printf("\n%s on %s (%s)\n\n", symbol, n.DisplayName, tok.Hex())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OWNER\tBALANCE\tERROR")
	fmt.Fprintln(w, "─────\t───────\t─────")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ui.TruncateAddr(r.owner), r.balance, r.err)
	}
	w.Flush()
}

func balanceOf(ctx context.Context, client *chain.Client, erc20 *token.ERC20, tok common.Address, owner string, decimals uint8, unsafe bool) result {
	r := result{owner: owner, balance: "-"}
	addr, err := address.Parse(owner, unsafe)
	if err != nil {
		r.err = shortErr(err)
		return r
	}
	res, err := client.Call(ctx, erc20.BalanceOf(tok, addr))
	if err != nil {
		r.err = shortErr(err)
		return r
	}
	bal, err := token.ParseBalance(res)
	if err != nil {
		r.err = shortErr(err)
		return r
	}
	r.balance = trimZeros(token.FormatBalance(bal, decimals))
	return r
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func shortErr(err error) string {
	s := err.Error()
	if len(s) > 48 {
		return s[:45] + "..."
	}
	return s
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
