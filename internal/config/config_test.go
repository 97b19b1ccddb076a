package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"autokit/internal/config"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"EMAIL_ADDRESS", "EMAIL_PASSWORD", "AUTOKIT_NTFY_TOPIC"} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
	chdir(t, t.TempDir())
	return home
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	home := isolateEnv(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(home, "Downloads"); cfg.Organizer.SourceDir != want {
		t.Fatalf("unexpected source dir: got %q want %q", cfg.Organizer.SourceDir, want)
	}
	if want := filepath.Join(home, ".local", "share", "autokit"); cfg.Paths.StateDir != want {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, want)
	}
	if cfg.Email.SMTPHost != "smtp.gmail.com" || cfg.Email.SMTPPort != 587 {
		t.Fatalf("unexpected relay: %s:%d", cfg.Email.SMTPHost, cfg.Email.SMTPPort)
	}
	if cfg.MailCredentialsPresent() {
		t.Fatal("expected no mail credentials")
	}
	if len(cfg.Organizer.Categories) != 6 || cfg.Organizer.Categories[0].Name != "Images" {
		t.Fatalf("unexpected default categories: %+v", cfg.Organizer.Categories)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
	}
}

func TestLoadCustomCategoriesReplaceDefaults(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "autokit.toml")
	body := `
[organizer]
source_dir = "/tmp/inbox"

[[organizer.categories]]
name = "Pictures"
extensions = ["JPG", ".png"]

[[organizer.categories]]
name = "Books"
extensions = [".epub"]
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config %q to be loaded, got %q exists=%v", path, resolved, exists)
	}
	if len(cfg.Organizer.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %+v", cfg.Organizer.Categories)
	}
	pictures := cfg.Organizer.Categories[0]
	if pictures.Name != "Pictures" || strings.Join(pictures.Extensions, ",") != ".jpg,.png" {
		t.Fatalf("unexpected normalized category: %+v", pictures)
	}
	if cfg.Organizer.SourceDir != "/tmp/inbox" {
		t.Fatalf("unexpected source dir %q", cfg.Organizer.SourceDir)
	}
}

func TestLoadReadsCredentialsFromEnvironment(t *testing.T) {
	isolateEnv(t)
	t.Setenv("EMAIL_ADDRESS", " sender@example.com ")
	t.Setenv("EMAIL_PASSWORD", "app-token")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Email.Address != "sender@example.com" || cfg.Email.Password != "app-token" {
		t.Fatalf("unexpected credentials: %q %q", cfg.Email.Address, cfg.Email.Password)
	}
	if !cfg.MailCredentialsPresent() {
		t.Fatal("expected credentials to be present")
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	isolateEnv(t)
	if err := os.WriteFile(".env", []byte("EMAIL_ADDRESS=dot@example.com\nEMAIL_PASSWORD=dotpass\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Unsetenv("EMAIL_ADDRESS")
		_ = os.Unsetenv("EMAIL_PASSWORD")
	})

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Email.Address != "dot@example.com" || cfg.Email.Password != "dotpass" {
		t.Fatalf("expected .env credentials, got %q %q", cfg.Email.Address, cfg.Email.Password)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"port", func(c *config.Config) { c.Email.SMTPPort = 70000 }, "smtp_port"},
		{"template", func(c *config.Config) { c.Email.Template = "fancy" }, "email.template"},
		{"level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"ntfy", func(c *config.Config) { c.Notifications.NtfyTopic = "topic" }, "ntfy_topic"},
		{"empty category", func(c *config.Config) { c.Organizer.Categories[0].Name = "" }, "name must be set"},
		{"nested category", func(c *config.Config) { c.Organizer.Categories[0].Name = "a/b" }, "not a valid folder"},
		{"duplicate category", func(c *config.Config) { c.Organizer.Categories[1].Name = "images" }, "duplicate"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestSampleConfigLoads(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if len(cfg.Organizer.Categories) != len(config.DefaultCategories()) {
		t.Fatalf("expected default categories from sample, got %d", len(cfg.Organizer.Categories))
	}
}

func TestEncodeRedactsPassword(t *testing.T) {
	cfg := config.Default()
	cfg.Email.Password = "secret"
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if strings.Contains(string(data), "secret") {
		t.Fatalf("expected password to be redacted:\n%s", data)
	}
	if cfg.Email.Password != "secret" {
		t.Fatal("Encode must not mutate the config")
	}
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
