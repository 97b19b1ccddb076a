package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	env := setupCLITestEnv(t, "")
	target := filepath.Join(env.baseDir, "generated", "config.toml")

	out, _, err := runCLI(t, env, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration to "+target)
	requireExists(t, target)

	if _, _, err := runCLI(t, env, "", "config", "init", "--path", target); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected existing file error, got %v", err)
	}
	if _, _, err := runCLI(t, env, "", "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidateReportsOverlaps(t *testing.T) {
	env := setupCLITestEnv(t, `[[organizer.categories]]
name = "Images"
extensions = [".png", ".svg"]

[[organizer.categories]]
name = "Design"
extensions = [".svg", ".fig"]
`)
	out, _, err := runCLI(t, env, "", "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+env.configPath)
	requireContains(t, out, "Warning: .svg is listed in Images and Design; Images wins")
	requireContains(t, out, "Configuration valid")
}

func TestConfigShowRedactsPassword(t *testing.T) {
	env := setupCLITestEnv(t, "[email]\naddress = 'me@example.com'\npassword = 'hunter2'\n")
	out, _, err := runCLI(t, env, "", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if strings.Contains(out, "hunter2") {
		t.Fatalf("password leaked:\n%s", out)
	}
	requireContains(t, out, "me@example.com")
	requireContains(t, out, "********")
}

func TestInvalidConfigFails(t *testing.T) {
	env := setupCLITestEnv(t, "[email]\ntemplate = 'fancy'\n")
	if _, _, err := runCLI(t, env, "", "config", "validate"); err == nil {
		t.Fatal("expected validation error for unknown template")
	}
	if _, err := os.Stat(env.configPath); err != nil {
		t.Fatalf("config removed: %v", err)
	}
}
