package cmd

import (
	"fmt"
	"math/big"

	"github.com/Mohsinsiddi/tokencli/internal/abi"
	"github.com/Mohsinsiddi/tokencli/internal/token"
	"github.com/Mohsinsiddi/tokencli/internal/txn"
	"github.com/spf13/cobra"
)

// Artifact names under <artifact dir>/<version>/.
const (
	giftableArtifact = "GiftableToken"
	staticArtifact   = "StaticToken"
)

var (
	deployName     string
	deploySymbol   string
	deployDecimals uint8
	deploySupply   string
	deployVersion  string
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy a token contract from a compiled artifact",
	Long: `Deploy a token from <artifact dir>/<version>/<Name>.json and .bin.

The artifact directory defaults to ~/.tokencli/artifacts and the version
must be given with --artifact-version or artifact_version in config.json.
With -w the contract address is shown once the deployment is mined.`,
}

var deployGiftableCmd = &cobra.Command{
	Use:   "giftable",
	Short: "Deploy a giftable token (mintable by its minters)",
	Example: `  tokencli deploy giftable -y key.json --name "Test Token" --symbol TST --decimals 6
  tokencli deploy giftable -y key.json -s -w --name Foo --symbol FOO --artifact-version 0.1.0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		art, err := loadArtifact(giftableArtifact)
		if err != nil {
			return err
		}
		s, err := newSession(cmd, true)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		r, err := token.NewGiftableToken(s.factory, art).Constructor(ctx, s.sender, deployName, deploySymbol, deployDecimals, s.txFormat())
		if err != nil {
			return err
		}
		return emit(ctx, cmd.OutOrStdout(), s, []*txn.Result{r}, true)
	},
}

var deployStaticCmd = &cobra.Command{
	Use:   "static",
	Short: "Deploy a fixed-supply token minted to the deployer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		supply, ok := new(big.Int).SetString(deploySupply, 10)
		if !ok {
			return fmt.Errorf("invalid --supply %q", deploySupply)
		}
		if err := abi.CheckUint256(supply); err != nil {
			return fmt.Errorf("invalid --supply %q: %w", deploySupply, err)
		}
		art, err := loadArtifact(staticArtifact)
		if err != nil {
			return err
		}
		s, err := newSession(cmd, true)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		r, err := token.NewStaticToken(s.factory, art).Constructor(ctx, s.sender, deployName, deploySymbol, deployDecimals, supply, s.txFormat())
		if err != nil {
			return err
		}
		return emit(ctx, cmd.OutOrStdout(), s, []*txn.Result{r}, true)
	},
}

func loadArtifact(name string) (*token.Artifact, error) {
	version := cfg.ArtifactVersion
	if deployVersion != "" {
		version = deployVersion
	}
	return token.LoadArtifact(cfg.ArtifactPath(), name, version)
}

func init() {
	for _, c := range []*cobra.Command{deployGiftableCmd, deployStaticCmd} {
		c.Flags().StringVar(&deployName, "name", "", "token name")
		c.Flags().StringVar(&deploySymbol, "symbol", "", "token symbol")
		c.Flags().Uint8Var(&deployDecimals, "decimals", 18, "token decimals")
		c.Flags().StringVar(&deployVersion, "artifact-version", "", "artifact version directory")
		_ = c.MarkFlagRequired("name")
		_ = c.MarkFlagRequired("symbol")
	}
	deployStaticCmd.Flags().StringVar(&deploySupply, "supply", "0", "initial supply in raw units")
	deployCmd.AddCommand(deployGiftableCmd, deployStaticCmd)
}
