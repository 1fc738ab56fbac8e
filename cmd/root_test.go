package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mj1618/axquery/internal/output"
)

const editorTree = "../internal/platform/memtree/testdata/editor.yaml"

// runCommand executes the root command with args and returns stdout. Every
// flag is reset first since cobra keeps flag values between executions.
func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(closeSession)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// runEditor runs args against the recorded editor tree with JSON output.
func runEditor(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCommand(t, "", append([]string{"--tree", editorTree, "--app", "Editor", "--format", "json"}, args...)...)
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func decodeJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return v
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"tree", "find", "line", "column", "get", "set", "action", "focus", "assert", "wait", "observe", "do", "snapshot", "annotate", "serve"}
	commands := rootCmd.Commands()

	found := make(map[string]bool)
	for _, c := range commands {
		found[c.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "format", "pretty", "tree", "app", "pid", "log-level"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag --%s", name)
		}
	}
}

func TestRootCommand_ConfigFile(t *testing.T) {
	tree, err := filepath.Abs(editorTree)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "axquery.yaml")
	body := "format: json\ntree: " + tree + "\napp: Editor\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "", "find", "--config", path, "--scope", "1/1")
	if err != nil {
		t.Fatal(err)
	}
	res := decodeJSON[output.QueryResult](t, out)
	if res.Target != "Editor" || res.Count != 3 {
		t.Errorf("result = %+v", res)
	}

	// flags win over the file
	out, err = runCommand(t, "", "find", "--config", path, "--scope", "1/1", "--format", "yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "target: Editor") {
		t.Errorf("expected YAML output, got %q", out)
	}
}

func TestRootCommand_BadConfig(t *testing.T) {
	if _, err := runCommand(t, "", "find", "--config", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
	if _, err := runEditor(t, "find", "--format", "xml"); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}

func TestRootCommand_UnknownApp(t *testing.T) {
	_, err := runCommand(t, "", "--tree", editorTree, "--app", "Mail", "find")
	if err == nil || !strings.Contains(err.Error(), "no matching application") {
		t.Errorf("err = %v", err)
	}
}
