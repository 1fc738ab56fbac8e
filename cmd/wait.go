package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/axquery/internal/ax"
	"github.com/mj1618/axquery/internal/model"
	"github.com/mj1618/axquery/internal/output"
	"github.com/mj1618/axquery/internal/query"
)

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait until a query matches",
	Long: `Poll the query given by the find flags until it matches at least one element,
or with --gone until it matches none. The target application is re-resolved on
every poll, so waiting for an application that has not started yet works.

Timeout and interval default to the wait section of the config file.`,
	Example: `  axquery wait --app Editor -d --title Save
  axquery wait --app Editor -d --role sheet --gone --timeout 30s`,
	RunE: runWait,
}

func init() {
	rootCmd.AddCommand(waitCmd)
	addQueryFlags(waitCmd)
	waitCmd.Flags().Bool("gone", false, "Wait until the query no longer matches")
	waitCmd.Flags().Duration("timeout", 0, "Max time to wait (default from config, 10s)")
	waitCmd.Flags().Duration("interval", 0, "Polling interval (default from config, 500ms)")
}

func runWait(cmd *cobra.Command, args []string) error {
	spec, err := specFromFlags(cmd)
	if err != nil {
		return err
	}
	gone, _ := cmd.Flags().GetBool("gone")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	interval, _ := cmd.Flags().GetDuration("interval")
	if timeout <= 0 {
		timeout = time.Duration(cfg.Wait.Timeout)
	}
	if interval <= 0 {
		interval = time.Duration(cfg.Wait.Interval)
	}

	var root *ax.Element
	probe := func() (ax.Elements, error) {
		r, err := resolveRoot()
		if err != nil {
			return nil, err
		}
		root = r
		_, els, err := spec.Run(r)
		return els, err
	}
	out, err := query.Wait(cmd.Context(), probe, query.WaitOptions{
		Timeout:  timeout,
		Interval: interval,
		Gone:     gone,
		OnPoll: func(poll int, els ax.Elements, err error) {
			logger.Debug("wait poll", "poll", poll, "matches", len(els), "err", err)
		},
	})

	result := output.WaitResult{
		OK:      err == nil,
		Query:   spec.String(),
		Gone:    gone,
		Elapsed: fmt.Sprintf("%.1fs", out.Elapsed.Seconds()),
		Polls:   out.Polls,
	}
	if err != nil {
		result.TimedOut = errors.Is(err, query.ErrTimeout)
		// print the result, then return the error for a non-zero exit code
		_ = printResult(cmd, result)
		return err
	}
	if len(out.Elements) > 0 {
		els := model.Results(root, out.Elements[:1])
		result.Element = &els[0]
	}
	return printResult(cmd, result)
}
