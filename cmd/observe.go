package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/axquery/internal/ax"
	"github.com/mj1618/axquery/internal/model"
	"github.com/mj1618/axquery/internal/output"
	"github.com/mj1618/axquery/internal/platform"
)

var observeCmd = &cobra.Command{
	Use:   "observe",
	Short: "Watch for UI changes and stream diffs as JSONL",
	Long: `Continuously poll the element tree under --scope and emit changes (added,
removed, changed elements) as JSONL to stdout. Elements are matched between
polls by position path. No output is emitted while the UI is stable.

With --attr, watch a single attribute of the element at --pos instead and
emit one event each time its value changes. The element is re-resolved on
every poll, so a replaced element is picked up at the same position.

Output is always JSONL regardless of --format. Use Ctrl+C, --duration or
--count to stop observing.`,
	Example: `  axquery observe --app Editor --scope 1 --ignore-bounds
  axquery observe --app Editor --pos 1/2 --attr value --interval 200ms`,
	RunE: runObserve,
}

func init() {
	rootCmd.AddCommand(observeCmd)
	observeCmd.Flags().String("scope", "", "Position path of the subtree to observe")
	observeCmd.Flags().Int("depth", 0, "Max depth to traverse (0 = unlimited)")
	observeCmd.Flags().String("roles", "", "Comma-separated roles to include (e.g. \"btn,input\")")
	observeCmd.Flags().String("pos", "", "Position path of the element whose --attr is watched")
	observeCmd.Flags().String("attr", "", "Watch one attribute of --pos instead of the tree")
	observeCmd.Flags().Duration("interval", 0, "Polling interval (default from config, 500ms)")
	observeCmd.Flags().Duration("duration", 0, "Max time to observe (0 = until Ctrl+C)")
	observeCmd.Flags().Int("count", 0, "Stop after this many polls (0 = no limit)")
	observeCmd.Flags().Bool("ignore-bounds", false, "Ignore element position changes")
	observeCmd.Flags().Bool("ignore-focus", false, "Ignore focus changes")
}

// observeEvent is one JSONL line of observe output other than a change.
type observeEvent struct {
	Type    string `json:"type"`
	TS      int64  `json:"ts"`
	Count   *int   `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
	Elapsed string `json:"elapsed,omitempty"`
	Events  *int   `json:"events,omitempty"`
	Pos     string `json:"pos,omitempty"`
	Attr    string `json:"attr,omitempty"`
	Value   any    `json:"value,omitempty"`
	Present *bool  `json:"present,omitempty"`
}

type observeOptions struct {
	Interval     time.Duration
	Duration     time.Duration
	Count        int
	IgnoreBounds bool
	IgnoreFocus  bool
}

func runObserve(cmd *cobra.Command, args []string) error {
	scope, _ := cmd.Flags().GetString("scope")
	depth, _ := cmd.Flags().GetInt("depth")
	rolesStr, _ := cmd.Flags().GetString("roles")
	posStr, _ := cmd.Flags().GetString("pos")
	attr, _ := cmd.Flags().GetString("attr")
	opts := observeOptions{}
	opts.Interval, _ = cmd.Flags().GetDuration("interval")
	opts.Duration, _ = cmd.Flags().GetDuration("duration")
	opts.Count, _ = cmd.Flags().GetInt("count")
	opts.IgnoreBounds, _ = cmd.Flags().GetBool("ignore-bounds")
	opts.IgnoreFocus, _ = cmd.Flags().GetBool("ignore-focus")
	if opts.Interval <= 0 {
		opts.Interval = time.Duration(cfg.Wait.Interval)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if attr != "" {
		if posStr == "" {
			return errors.New("--attr requires --pos")
		}
		pos, err := platform.ParsePath(posStr)
		if err != nil {
			return err
		}
		resolve := func() *ax.Element {
			root, err := resolveRoot()
			if err != nil {
				return nil
			}
			return ax.Resolve(root, pos)
		}
		return observeAttribute(ctx, cmd.OutOrStdout(), resolve, posStr, platform.AttrName(attr), opts)
	}

	roles := splitList(rolesStr)
	poll := func() ([]model.FlatElement, error) {
		_, elements, err := captureScope(scope, depth)
		if err != nil {
			return nil, err
		}
		return model.FlattenElements(model.FilterElements(elements, roles, nil)), nil
	}
	return observeTree(ctx, cmd.OutOrStdout(), poll, opts)
}

// observeTree emits a snapshot event, then one line per change between
// consecutive polls, then a done event.
func observeTree(ctx context.Context, w io.Writer, poll func() ([]model.FlatElement, error), opts observeOptions) error {
	prev, err := poll()
	if err != nil {
		return fmt.Errorf("initial read failed: %w", err)
	}
	count := len(prev)
	if err := output.PrintLine(w, observeEvent{Type: "snapshot", TS: time.Now().Unix(), Count: &count}); err != nil {
		return err
	}

	events := 0
	err = pollLoop(ctx, opts, func() error {
		curr, err := poll()
		if err != nil {
			return output.PrintLine(w, observeEvent{Type: "error", TS: time.Now().Unix(), Error: err.Error()})
		}
		for _, change := range model.DiffElements(prev, curr) {
			if change.Type == model.ChangeChanged {
				if opts.IgnoreBounds {
					delete(change.Changes, "b")
				}
				if opts.IgnoreFocus {
					delete(change.Changes, "f")
				}
				if len(change.Changes) == 0 {
					continue
				}
			}
			if err := output.PrintLine(w, change); err != nil {
				return err
			}
			events++
		}
		prev = curr
		return nil
	}, func(elapsed time.Duration) error {
		return output.PrintLine(w, observeEvent{
			Type:    "done",
			TS:      time.Now().Unix(),
			Elapsed: fmt.Sprintf("%.1fs", elapsed.Seconds()),
			Events:  &events,
		})
	})
	return err
}

// observeAttribute watches one attribute of the element resolve returns and
// emits an attr event for the initial value and for every change.
func observeAttribute(ctx context.Context, w io.Writer, resolve ax.Resolver, pos, name string, opts observeOptions) error {
	el := ax.ElementObservable(resolve)
	prop := ax.WatchProperty(el, name, false)
	defer prop.Close()

	var writeErr error
	emit := func(v ax.Value) {
		present := v.OK
		ev := observeEvent{Type: "attr", TS: time.Now().Unix(), Pos: pos, Attr: name, Value: printable(v.Data), Present: &present}
		if err := output.PrintLine(w, ev); err != nil && writeErr == nil {
			writeErr = err
		}
	}
	v, ok := prop.Get()
	emit(ax.Value{Data: v, OK: ok})

	events := 0
	cancel := prop.Watch(func(v ax.Value) {
		events++
		emit(v)
	})
	defer cancel()

	return pollLoop(ctx, opts, func() error {
		el.Refresh()
		prop.Update()
		return writeErr
	}, func(elapsed time.Duration) error {
		return output.PrintLine(w, observeEvent{
			Type:    "done",
			TS:      time.Now().Unix(),
			Elapsed: fmt.Sprintf("%.1fs", elapsed.Seconds()),
			Events:  &events,
		})
	})
}

// pollLoop calls tick every opts.Interval until ctx ends, opts.Duration
// passes or opts.Count ticks have run, then calls done.
func pollLoop(ctx context.Context, opts observeOptions, tick func() error, done func(time.Duration) error) error {
	start := time.Now()
	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}
	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for polls := 0; opts.Count <= 0 || polls < opts.Count; polls++ {
		select {
		case <-ctx.Done():
			return done(time.Since(start))
		case <-ticker.C:
		}
		if err := tick(); err != nil {
			return err
		}
	}
	return done(time.Since(start))
}

func printable(v any) any {
	switch x := v.(type) {
	case *ax.Element:
		return x.Describe()
	case ax.Elements:
		return len(x)
	case ax.Frame:
		return x.Bounds()
	}
	return v
}
