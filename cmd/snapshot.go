package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mj1618/axquery/internal/model"
	"github.com/mj1618/axquery/internal/platform"
	"github.com/mj1618/axquery/internal/store"
)

// SnapshotResult is the output of `snapshot show`.
type SnapshotResult struct {
	Snapshot store.Snapshot      `yaml:"snapshot" json:"snapshot"`
	Elements []model.FlatElement `yaml:"elements" json:"elements"`
}

// SnapshotDiffResult is the output of `snapshot diff`.
type SnapshotDiffResult struct {
	From int64          `yaml:"from" json:"from"`
	To   string         `yaml:"to"   json:"to"`
	Diff model.TreeDiff `yaml:"diff" json:"diff"`
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save, list and diff captured trees",
	Long: `Snapshots are flattened captures of an application's tree stored in a local
SQLite database (store.path in the config file, or --db). Diffs match elements
by a content hash of role, title, description, subrole, identifier and path,
so elements shifted by insertions still pair up.`,
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Capture the target's tree and store it",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotSave,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots of the target, newest first",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotList,
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotShow,
}

var snapshotDiffCmd = &cobra.Command{
	Use:   "diff <from> [to]",
	Short: "Diff two snapshots, or a snapshot against the live tree",
	Long: `Compare snapshot <from> with snapshot [to]. Without [to] the target's tree is
captured now under the scope stored with <from>.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSnapshotDiff,
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotDelete,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.PersistentFlags().String("db", "", "Snapshot database path (default from config)")
	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotListCmd, snapshotShowCmd, snapshotDiffCmd, snapshotDeleteCmd)

	snapshotSaveCmd.Flags().String("scope", "", "Position path of the subtree to capture")
	snapshotSaveCmd.Flags().Int("depth", 0, "Max depth to capture (0 = unlimited)")
	snapshotListCmd.Flags().Bool("all", false, "List snapshots of every target")
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = cfg.Store.Path
	}
	logger.Debug("opening snapshot store", "path", path)
	return store.Open(path)
}

func parseSnapshotID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid snapshot id %q", s)
	}
	return id, nil
}

func runSnapshotSave(cmd *cobra.Command, args []string) error {
	scope, _ := cmd.Flags().GetString("scope")
	depth, _ := cmd.Flags().GetInt("depth")

	path, elements, err := captureScope(scope, depth)
	if err != nil {
		return err
	}
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	snap, err := st.Save(cmd.Context(), currentTarget().String(), platform.FormatPath(path), model.FlattenElements(elements))
	if err != nil {
		return err
	}
	logger.Info("snapshot saved", "id", snap.ID, "elements", snap.Count)
	return printResult(cmd, snap)
}

func runSnapshotList(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	target := currentTarget().String()
	if all {
		target = ""
	}
	snaps, err := st.List(cmd.Context(), target)
	if err != nil {
		return err
	}
	return printResult(cmd, snaps)
}

func runSnapshotShow(cmd *cobra.Command, args []string) error {
	id, err := parseSnapshotID(args[0])
	if err != nil {
		return err
	}
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	snap, els, err := st.Load(cmd.Context(), id)
	if err != nil {
		return err
	}
	return printResult(cmd, SnapshotResult{Snapshot: snap, Elements: els})
}

func runSnapshotDiff(cmd *cobra.Command, args []string) error {
	from, err := parseSnapshotID(args[0])
	if err != nil {
		return err
	}
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if len(args) == 2 {
		to, err := parseSnapshotID(args[1])
		if err != nil {
			return err
		}
		diff, err := st.Diff(cmd.Context(), from, to)
		if err != nil {
			return err
		}
		return printResult(cmd, SnapshotDiffResult{From: from, To: args[1], Diff: diff})
	}

	snap, prev, err := st.Load(cmd.Context(), from)
	if err != nil {
		return err
	}
	_, elements, err := captureScope(snap.Scope, 0)
	if err != nil {
		return err
	}
	diff := model.DiffElementsByHash(prev, model.FlattenElements(elements))
	return printResult(cmd, SnapshotDiffResult{From: from, To: "live", Diff: diff})
}

func runSnapshotDelete(cmd *cobra.Command, args []string) error {
	id, err := parseSnapshotID(args[0])
	if err != nil {
		return err
	}
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(cmd.Context(), id); err != nil {
		return err
	}
	return printResult(cmd, map[string]any{"ok": true, "deleted": id})
}
