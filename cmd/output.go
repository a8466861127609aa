package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Mohsinsiddi/tokencli/internal/chain"
	"github.com/Mohsinsiddi/tokencli/internal/config"
	"github.com/Mohsinsiddi/tokencli/internal/decode"
	"github.com/Mohsinsiddi/tokencli/internal/txn"
	"github.com/Mohsinsiddi/tokencli/internal/ui"
)

// Output formats accepted by --format.
const (
	formatTerminal = "terminal"
	formatRaw      = "raw"
	formatBrief    = "brief"
	formatJSONRPC  = "jsonrpc"
)

// errorLine renders a command error for stderr.
func errorLine(err error) string {
	var revert *chain.RevertError
	if errors.As(err, &revert) && revert.Receipt != nil {
		return ui.Err(fmt.Sprintf("transaction %s reverted in block %d", revert.Hash, revert.Receipt.BlockNumber))
	}
	return ui.Err(err.Error())
}

// waitMode maps -w / --ww to the submitter's wait mode.
func waitMode() txn.WaitMode {
	switch {
	case flagWaitEvery:
		return txn.WaitEvery
	case flagWait:
		return txn.WaitLast
	default:
		return txn.WaitNone
	}
}

// emit prints or submits finalized results. Without --send the results are
// printed as a dry run; with it they are broadcast in order and waited on
// per the wait mode. deploy selects the longer default receipt timeout.
func emit(ctx context.Context, w io.Writer, s *session, results []*txn.Result, deploy bool) error {
	if !flagSend {
		return printDryRun(ctx, w, s, results)
	}

	sub := txn.NewSubmitter(s.client, waitMode())
	sub.PollInterval = config.ReceiptPoll
	sub.Timeout = receiptTimeout(deploy)

	var spin *ui.Spinner
	if flagFormat == formatTerminal && sub.Mode != txn.WaitNone {
		spin = ui.NewSpinner(os.Stderr, "waiting for receipt...")
		spin.Start()
	}
	subs, err := sub.SubmitAll(ctx, results)
	if spin != nil {
		spin.Stop()
	}

	for _, sb := range subs {
		printSubmission(w, s, sb)
	}
	return err
}

func receiptTimeout(deploy bool) time.Duration {
	switch {
	case flagTimeout > 0:
		return flagTimeout
	case deploy:
		return config.TxDeployTimeout
	default:
		return config.TxConfirmTimeout
	}
}

func printDryRun(ctx context.Context, w io.Writer, s *session, results []*txn.Result) error {
	for _, r := range results {
		switch {
		case r.Format != txn.FormatRLPSigned:
			data, err := r.JSON(s.spec.BigChainID())
			if err != nil {
				return err
			}
			fmt.Fprintln(w, string(data))
		case flagFormat == formatTerminal && (verbose || veryVerbose):
			tx, err := decode.Decode(r.Raw)
			if err != nil {
				return err
			}
			h := &decode.Humanizer{Reader: s.client}
			if err := h.Humanize(ctx, w, tx); err != nil {
				return err
			}
		default:
			fmt.Fprintln(w, r.RawHex())
		}
	}
	if flagFormat == formatTerminal {
		fmt.Fprintln(os.Stderr, ui.Warn("dry run: nothing was sent (use --send to broadcast)"))
	}
	return nil
}

func printSubmission(w io.Writer, s *session, sb txn.Submission) {
	switch flagFormat {
	case formatTerminal:
		pairs := [][2]string{{"Hash", ui.Addr(sb.Hash)}}
		if s.network != nil {
			pairs = append(pairs, [2]string{"Network", ui.ChainName(s.network.DisplayName)})
			if url := s.network.TxURL(sb.Hash); url != "" {
				pairs = append(pairs, [2]string{"Explorer", ui.Meta(url)})
			}
		}
		if r := sb.Receipt; r != nil {
			status := ui.Success("success")
			switch {
			case r.StatusMissing:
				status = ui.Meta("unknown")
			case !r.Succeeded():
				status = ui.Err("reverted")
			}
			pairs = append(pairs,
				[2]string{"Status", status},
				[2]string{"Block", fmt.Sprint(r.BlockNumber)},
				[2]string{"Gas Used", fmt.Sprint(r.GasUsed)},
			)
			if r.ContractAddress != "" {
				pairs = append(pairs, [2]string{"Contract", ui.Addr(r.ContractAddress)})
			}
		}
		fmt.Fprintln(w, ui.KeyValueBlock("Transaction", pairs))
	default:
		if sb.Receipt != nil && sb.Receipt.ContractAddress != "" {
			fmt.Fprintln(w, sb.Receipt.ContractAddress)
			return
		}
		fmt.Fprintln(w, sb.Hash)
	}
}
