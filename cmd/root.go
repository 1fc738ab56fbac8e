package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/axquery/internal/ax"
	"github.com/mj1618/axquery/internal/config"
	"github.com/mj1618/axquery/internal/logging"
	"github.com/mj1618/axquery/internal/output"
	"github.com/mj1618/axquery/internal/platform"
	"github.com/mj1618/axquery/internal/platform/memtree"
	"github.com/mj1618/axquery/internal/version"
)

var (
	cfg     = config.Default()
	logger  = logging.Discard()
	session platform.Session
)

var rootCmd = &cobra.Command{
	Use:   "axquery",
	Short: "Query, match and watch accessibility elements",
	Long: `axquery reads an application's accessibility tree and finds elements by
role, title, attributes and on-screen geometry.

Elements are addressed by position paths: 1-based child indexes from the
application root, e.g. "1/2/3" is the third child of the second child of the
first window. Every result carries its path so it can be fed back as --pos
or --scope.

Pass --tree to query a recorded YAML/JSON tree instead of the live desktop.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	err := rootCmd.Execute()
	closeSession()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (.yaml, .yml or .toml)")
	pf.String("format", "", "Output format: yaml, json (default from config)")
	pf.Bool("pretty", false, "Indent JSON output")
	pf.String("tree", "", "Query a recorded tree file instead of the live desktop")
	pf.String("app", "", "Target application name (default: frontmost)")
	pf.Int("pid", 0, "Target process ID")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentPreRunE = setup
}

// setup resolves configuration in order: defaults, config file, environment,
// then explicitly passed flags.
func setup(cmd *cobra.Command, _ []string) error {
	pf := rootCmd.PersistentFlags()
	path, _ := pf.GetString("config")
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if pf.Changed("format") {
		loaded.Format, _ = pf.GetString("format")
	}
	if pf.Changed("tree") {
		loaded.Tree, _ = pf.GetString("tree")
	}
	if pf.Changed("app") {
		loaded.App, _ = pf.GetString("app")
	}
	if pf.Changed("pid") {
		loaded.PID, _ = pf.GetInt("pid")
	}
	if pf.Changed("log-level") {
		loaded.Log.Level, _ = pf.GetString("log-level")
	}

	format, err := output.ParseFormat(loaded.Format)
	if err != nil {
		return err
	}
	output.OutputFormat = format
	output.PrettyOutput, _ = pf.GetBool("pretty")

	l, err := logging.New(logging.Options{
		Level:  loaded.Log.Level,
		Format: loaded.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	cfg, logger = loaded, l
	logger.Debug("config loaded", "source", cfg.Source, "command", cmd.Name())
	return nil
}

// currentSession opens the session on first use: the recorded tree when
// --tree is set, the native accessibility API otherwise.
func currentSession() (platform.Session, error) {
	if session != nil {
		return session, nil
	}
	var err error
	if cfg.Tree != "" {
		session, err = memtree.OpenFile(cfg.Tree)
	} else {
		session, err = platform.NewSession()
	}
	if err != nil {
		session = nil
		return nil, err
	}
	logger.Debug("session opened", "tree", cfg.Tree)
	return session, nil
}

func closeSession() {
	if session == nil {
		return
	}
	if err := session.Close(); err != nil {
		logger.Warn("close session", "err", err)
	}
	session = nil
}

func currentTarget() platform.Target {
	return platform.Target{App: cfg.App, PID: cfg.PID}
}

// resolveRoot returns the application element of the configured target.
func resolveRoot() (*ax.Element, error) {
	s, err := currentSession()
	if err != nil {
		return nil, err
	}
	root, err := s.Root(currentTarget())
	if err != nil {
		return nil, err
	}
	logger.Debug("root resolved", "target", currentTarget().String(), "root", root.Describe())
	return root, nil
}

func printResult(cmd *cobra.Command, v any) error {
	return output.Print(cmd.OutOrStdout(), v)
}
