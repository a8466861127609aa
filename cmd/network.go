package cmd

import (
	"fmt"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/Mohsinsiddi/tokencli/internal/chain"
	"github.com/Mohsinsiddi/tokencli/internal/config"
	"github.com/Mohsinsiddi/tokencli/internal/rpc"
	"github.com/Mohsinsiddi/tokencli/internal/ui"
	"github.com/spf13/cobra"
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "List, probe or pick the default network",
}

var networkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in EVM networks",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), networkTable(chain.NewRegistry()))
		return nil
	},
}

var networkUseCmd = &cobra.Command{
	Use:   "use <name|chain-id>",
	Short: "Set the default chain spec to a known network",
	Long: `Persist evm:<name>:<chain id> as the default chain spec.

Examples:
  tokencli network use sepolia
  tokencli network use 8453`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := lookupNetwork(chain.NewRegistry(), args[0])
		if err != nil {
			return err
		}
		spec := chain.Spec{Engine: "evm", Network: n.Name, ChainID: n.ChainID}
		if err := persist(func(c *config.Config) error {
			c.ChainSpec = spec.String()
			return nil
		}); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Default chain spec set to %s (%s)", spec, ui.ChainName(n.DisplayName))))
		return nil
	},
}

var (
	checkAlgo string
	checkSave bool
)

var networkCheckCmd = &cobra.Command{
	Use:   "check <name|chain-id>",
	Short: "Probe a network's RPC endpoints and pick the best one",
	Long: `Query eth_blockNumber on every custom and built-in RPC of a network,
in parallel, and report latency and head block. Endpoints more than a few
blocks behind the best head are marked stale.

With --save the chosen endpoint becomes the first custom RPC of the
network, so later commands on that network use it.

Examples:
  tokencli network check sepolia
  tokencli network check 8453 --algo failover --save`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		algo, err := rpc.ParseAlgorithm(checkAlgo)
		if err != nil {
			return err
		}
		n, err := lookupNetwork(chain.NewRegistry(), args[0])
		if err != nil {
			return err
		}
		urls := candidateRPCs(n)

		var spin *ui.Spinner
		if flagFormat == formatTerminal {
			spin = ui.NewSpinner(os.Stderr, fmt.Sprintf("probing %d endpoints...", len(urls)))
			spin.Start()
		}
		eps := rpc.Probe(cmd.Context(), urls, rpc.DialHTTP(chain.WithHTTPClient(&http.Client{Timeout: config.RPCTimeout})))
		if spin != nil {
			spin.StopWithMsg(ui.Info(fmt.Sprintf("%s: %d endpoints probed", n.DisplayName, len(eps))))
		}

		winner, pickErr := rpc.Pick(eps, algo)
		out := cmd.OutOrStdout()
		if flagFormat == formatTerminal {
			fmt.Fprintln(out, probeTable(eps, winner))
		}
		if pickErr != nil {
			return pickErr
		}
		fmt.Fprintln(out, winner.URL)

		if !checkSave {
			return nil
		}
		return persist(func(c *config.Config) error {
			rest := slices.DeleteFunc(slices.Clone(c.GetRPCs(n.Name)), func(u string) bool {
				return u == winner.URL
			})
			c.CustomRPCs[n.Name] = append([]string{winner.URL}, rest...)
			return nil
		})
	},
}

// candidateRPCs lists custom RPCs first, then the built-in ones, without
// duplicates.
func candidateRPCs(n *chain.Network) []string {
	var urls []string
	for _, u := range append(slices.Clone(cfg.GetRPCs(n.Name)), n.RPCs...) {
		if !slices.Contains(urls, u) {
			urls = append(urls, u)
		}
	}
	return urls
}

func probeTable(eps []rpc.Endpoint, winner *rpc.Endpoint) string {
	t := ui.NewTable([]ui.Column{
		{Title: "", Width: 1},
		{Title: "URL", Width: 44},
		{Title: "Latency", Width: 10},
		{Title: "Block", Width: 12},
		{Title: "Status", Width: 8},
	})
	best := rpc.BestBlock(eps)
	for _, e := range eps {
		mark := ""
		if winner != nil && e.URL == winner.URL {
			mark = "*"
		}
		status, latency, block := "ok", e.Latency.Round(time.Millisecond).String(), fmt.Sprint(e.BlockNumber)
		switch {
		case !e.Healthy():
			status, block = "error", "-"
		case rpc.Stale(e, best):
			status = "stale"
		}
		t.AddRow(ui.Row{mark, e.URL, latency, block, status})
	}
	return t.Render()
}

func lookupNetwork(reg *chain.Registry, arg string) (*chain.Network, error) {
	if n, err := reg.GetByName(arg); err == nil {
		return n, nil
	}
	var id uint64
	if _, err := fmt.Sscanf(arg, "%d", &id); err == nil {
		if n, err := reg.GetByChainID(id); err == nil {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (see tokencli network list)", chain.ErrChainNotFound, arg)
}

func networkTable(reg *chain.Registry) string {
	t := ui.NewTable([]ui.Column{
		{Title: "Name", Width: 14},
		{Title: "Display", Width: 20},
		{Title: "Chain ID", Width: 10},
		{Title: "Currency", Width: 8},
		{Title: "Chain Spec", Width: 28},
	})
	for _, n := range reg.All() {
		spec := chain.Spec{Engine: "evm", Network: n.Name, ChainID: n.ChainID}
		t.AddRow(ui.Row{n.Name, n.DisplayName, fmt.Sprint(n.ChainID), n.NativeCurrency, spec.String()})
	}
	return t.Render()
}

func init() {
	networkCheckCmd.Flags().StringVar(&checkAlgo, "algo", "fastest", "selection algorithm: fastest or failover")
	networkCheckCmd.Flags().BoolVar(&checkSave, "save", false, "store the chosen endpoint as the network's first custom RPC")
	networkCmd.AddCommand(networkListCmd, networkUseCmd, networkCheckCmd)
}
