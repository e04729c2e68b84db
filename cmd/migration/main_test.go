package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/riskibarqy/live-match/internal/platform/logging"
)

type fakeMigrator struct {
	calls   []string
	steps   int
	target  uint
	forced  int
	version uint
	dirty   bool
	err     error
}

func (f *fakeMigrator) Up() error {
	f.calls = append(f.calls, "up")
	return f.err
}

func (f *fakeMigrator) Steps(n int) error {
	f.calls = append(f.calls, "steps")
	f.steps = n
	return f.err
}

func (f *fakeMigrator) Migrate(v uint) error {
	f.calls = append(f.calls, "migrate")
	f.target = v
	return f.err
}

func (f *fakeMigrator) Force(v int) error {
	f.calls = append(f.calls, "force")
	f.forced = v
	return f.err
}

func (f *fakeMigrator) Version() (uint, bool, error) { return f.version, f.dirty, f.err }

func exec(t *testing.T, m migrator, name string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := commands[name].run(m, args, &out, logging.NewNop())
	return out.String(), err
}

func TestCommands_UpTreatsNoChangeAsSuccess(t *testing.T) {
	m := &fakeMigrator{err: migrate.ErrNoChange}
	if _, err := exec(t, m, "up"); err != nil {
		t.Fatalf("up: %v", err)
	}
	if len(m.calls) != 1 || m.calls[0] != "up" {
		t.Fatalf("calls = %v", m.calls)
	}
}

func TestCommands_Down(t *testing.T) {
	m := &fakeMigrator{}
	if _, err := exec(t, m, "down"); err != nil || m.steps != -1 {
		t.Fatalf("default down: steps=%d err=%v", m.steps, err)
	}
	if _, err := exec(t, m, "down", " 3 "); err != nil || m.steps != -3 {
		t.Fatalf("down 3: steps=%d err=%v", m.steps, err)
	}
	for _, bad := range []string{"0", "x"} {
		if _, err := exec(t, m, "down", bad); err == nil {
			t.Fatalf("down %q should fail", bad)
		}
	}
}

func TestCommands_GotoAndForceNeedVersion(t *testing.T) {
	m := &fakeMigrator{}
	if _, err := exec(t, m, "goto", "1788220860"); err != nil || m.target != 1788220860 {
		t.Fatalf("goto: target=%d err=%v", m.target, err)
	}
	if _, err := exec(t, m, "force", "1788220920"); err != nil || m.forced != 1788220920 {
		t.Fatalf("force: forced=%d err=%v", m.forced, err)
	}
	for _, name := range []string{"goto", "force"} {
		if _, err := exec(t, m, name); err == nil {
			t.Fatalf("%s without version should fail", name)
		}
		if _, err := exec(t, m, name, "-5"); err == nil {
			t.Fatalf("%s with negative version should fail", name)
		}
	}
}

func TestCommands_Version(t *testing.T) {
	out, err := exec(t, &fakeMigrator{version: 7, dirty: true}, "version")
	if err != nil || out != "version: 7\ndirty: true\n" {
		t.Fatalf("version output %q err=%v", out, err)
	}
	out, err = exec(t, &fakeMigrator{err: migrate.ErrNilVersion}, "version")
	if err != nil || out != "version: none\ndirty: false\n" {
		t.Fatalf("nil version output %q err=%v", out, err)
	}
	boom := errors.New("boom")
	if _, err := exec(t, &fakeMigrator{err: boom}, "version"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestRun_UsageErrors(t *testing.T) {
	for _, args := range [][]string{nil, {"sideways"}} {
		if err := run(args, logging.NewNop()); !errors.Is(err, errUsage) {
			t.Fatalf("run(%v) = %v, want usage error", args, err)
		}
	}
}

func TestRun_RequiresDBURL(t *testing.T) {
	t.Setenv("DB_URL", "")
	if err := run([]string{"up"}, logging.NewNop()); err == nil || errors.Is(err, errUsage) {
		t.Fatalf("expected DB_URL error, got %v", err)
	}
}

func TestEnvBool(t *testing.T) {
	for value, want := range map[string]bool{"yes": true, " TRUE ": true, "1": true, "off": false, "": false} {
		t.Setenv("MIGRATION_TEST_FLAG", value)
		if got := envBool("MIGRATION_TEST_FLAG"); got != want {
			t.Fatalf("envBool(%q) = %v, want %v", value, got, want)
		}
	}
}

func TestPrintUsageListsCommands(t *testing.T) {
	var buf bytes.Buffer
	printUsage(&buf)
	for _, usage := range []string{"down [steps=1]", "force <version>", "goto <version>", "up", "version"} {
		if !bytes.Contains(buf.Bytes(), []byte(usage)) {
			t.Fatalf("usage missing %q:\n%s", usage, buf.String())
		}
	}
}
