package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// run executes the command tree with args and returns stdout. Flags are
// reset afterwards because cobra commands are package-level singletons.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() { resetFlags(rootCmd) })

	err := rootCmd.Execute()
	return out.String(), err
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

func testDB(t *testing.T) string {
	t.Helper()
	t.Setenv("STUDYPLAN_DB", "")
	return filepath.Join(t.TempDir(), "studyplan.db")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "studyplan ") {
		t.Errorf("output = %q", out)
	}
}

func TestTemplates(t *testing.T) {
	out, err := run(t, "templates")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "cse") {
		t.Errorf("branch list missing cse:\n%s", out)
	}

	out, err = run(t, "templates", "--branch", "cse")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Topic") {
		t.Errorf("branch detail missing topic table:\n%s", out)
	}
}

func TestPlanDryRunDoesNotPersist(t *testing.T) {
	db := testDB(t)
	out, err := run(t, "--db", db, "plan", "--demo", "--dry-run", "--explain")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "dry run") {
		t.Errorf("missing dry run title:\n%s", out)
	}
	if !strings.Contains(out, "Allocated") {
		t.Errorf("missing allocation table:\n%s", out)
	}

	if _, err := run(t, "--db", db, "today"); err == nil {
		t.Error("today succeeded without a stored plan")
	}
}

func TestPlanThenTrack(t *testing.T) {
	db := testDB(t)
	if _, err := run(t, "--db", db, "plan", "--demo"); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "--db", db, "sessions", "--status", "scheduled")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "sessions") {
		t.Errorf("sessions output:\n%s", out)
	}

	out, err = run(t, "--db", db, "stats", "--topics")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Coverage") {
		t.Errorf("stats output missing coverage:\n%s", out)
	}

	out, err = run(t, "--db", db, "history")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "generate") {
		t.Errorf("history missing generate event:\n%s", out)
	}

	csvPath := filepath.Join(t.TempDir(), "plan.csv")
	if _, err := run(t, "--db", db, "export", "--out", csvPath); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Date,") {
		t.Errorf("csv header = %q", strings.SplitN(string(data), "\n", 2)[0])
	}
}

func TestPlanFlagErrors(t *testing.T) {
	db := testDB(t)
	tests := []struct {
		name string
		args []string
	}{
		{"no source", []string{"--db", db, "plan"}},
		{"both sources", []string{"--db", db, "plan", "--demo", "--file", "x.yaml"}},
		{"bad start", []string{"--db", db, "plan", "--demo", "--start", "tomorrow"}},
		{"unknown branch", []string{"--db", db, "plan", "--demo", "--branch", "astrology"}},
		{"bad status", []string{"--db", db, "sessions", "--status", "lost"}},
		{"reset unconfirmed", []string{"--db", db, "reset"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
