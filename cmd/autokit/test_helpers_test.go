package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"autokit/internal/config"
	"autokit/internal/mailer"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	inbox      string
	stateDir   string
}

// setupCLITestEnv isolates HOME, the working directory and credential
// variables, and writes a config pointing every path into a temp dir. extra
// is appended to the generated TOML.
func setupCLITestEnv(t *testing.T, extra string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	for _, key := range []string{"EMAIL_ADDRESS", "EMAIL_PASSWORD", "AUTOKIT_NTFY_TOPIC"} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
	chdir(t, base)

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "autokit-test.toml"),
		inbox:      filepath.Join(base, "inbox"),
		stateDir:   filepath.Join(base, "state"),
	}
	if err := os.MkdirAll(env.inbox, 0o755); err != nil {
		t.Fatalf("mkdir inbox: %v", err)
	}

	content := "[paths]\n" +
		"state_dir = " + quote(env.stateDir) + "\n" +
		"log_dir = " + quote(filepath.Join(base, "logs")) + "\n\n" +
		"[organizer]\n" +
		"source_dir = " + quote(env.inbox) + "\n\n" +
		"[logging]\nlevel = \"error\"\n\n" + extra
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func quote(s string) string {
	return "'" + s + "'"
}

func runCLI(t *testing.T, env *cliTestEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd, cliCtx := newCLI()
	defer func() {
		if err := cliCtx.close(); err != nil {
			t.Errorf("close log file: %v", err)
		}
	}()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n---\n%s", needle, haystack)
	}
}

func requireExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

type recordingTransport struct {
	authErr error
	opens   int
	sends   int
	to      []string
}

func (r *recordingTransport) Open(context.Context) (mailer.Session, error) {
	r.opens++
	return &recordingSession{parent: r}, nil
}

type recordingSession struct {
	parent *recordingTransport
}

func (s *recordingSession) Auth(mailer.Credentials) error { return s.parent.authErr }

func (s *recordingSession) Send(_ string, to []string, _ []byte) error {
	s.parent.sends++
	s.parent.to = append(s.parent.to, to...)
	return nil
}

func (s *recordingSession) Close() error { return nil }

func useTransport(t *testing.T, transport mailer.Transport) {
	t.Helper()
	previous := transportFactory
	transportFactory = func(*config.Config) mailer.Transport { return transport }
	t.Cleanup(func() { transportFactory = previous })
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore cwd: %v", err)
		}
	})
}
