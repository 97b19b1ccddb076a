package preflight

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"autokit/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckCredentials(t *testing.T) {
	tests := []struct {
		address, password string
		passed            bool
		detail            string
	}{
		{"me@example.com", "secret", true, "sender me@example.com"},
		{"", "", false, "EMAIL_ADDRESS and EMAIL_PASSWORD not set"},
		{"me@example.com", "", false, "EMAIL_PASSWORD not set"},
		{"  ", "secret", false, "EMAIL_ADDRESS not set"},
	}
	for _, tc := range tests {
		result := CheckCredentials(tc.address, tc.password)
		if result.Passed != tc.passed || result.Detail != tc.detail {
			t.Errorf("CheckCredentials(%q, %q) = %+v", tc.address, tc.password, result)
		}
		if strings.Contains(result.Detail, "secret") {
			t.Errorf("password leaked in detail %q", result.Detail)
		}
	}
}

// fakeRelay accepts connections and writes greeting to each.
func fakeRelay(t *testing.T, greeting string) (string, int) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			_, _ = conn.Write([]byte(greeting))
			_ = conn.Close()
		}
	}()
	addr := ln.Addr().(*net.TCPAddr)
	return "127.0.0.1", addr.Port
}

func TestCheckRelay_OK(t *testing.T) {
	host, port := fakeRelay(t, "220 smtp.test ESMTP ready\r\n")
	result := CheckRelay(context.Background(), host, port)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckRelay_UnexpectedGreeting(t *testing.T) {
	host, port := fakeRelay(t, "554 go away\r\n")
	result := CheckRelay(context.Background(), host, port)
	if result.Passed || !strings.Contains(result.Detail, "unexpected greeting") {
		t.Fatalf("expected greeting failure, got %+v", result)
	}
}

func TestCheckRelay_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()

	result := CheckRelay(context.Background(), "127.0.0.1", port)
	if result.Passed {
		t.Fatal("expected failure for closed port")
	}
	if !strings.Contains(result.Detail, "127.0.0.1:"+strconv.Itoa(port)) {
		t.Fatalf("expected address in detail, got %q", result.Detail)
	}
}

func TestCheckRelay_MissingHost(t *testing.T) {
	if result := CheckRelay(context.Background(), "", 587); result.Passed {
		t.Fatal("expected failure for missing host")
	}
}

func TestCheckNtfy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"healthy":true}`))
	}))
	defer srv.Close()

	if result := CheckNtfy(context.Background(), srv.URL+"/autokit"); !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if result := CheckNtfy(context.Background(), "autokit"); result.Passed {
		t.Fatal("expected failure for bare topic")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	results := RunAll(context.Background(), nil)
	if results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_MinimalConfig(t *testing.T) {
	host, port := fakeRelay(t, "220 ready\r\n")
	cfg := testsupport.NewConfig(t,
		testsupport.WithMailCredentials("me@example.com", "secret"),
		testsupport.WithRelay(host, port),
	)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(cfg.Organizer.SourceDir, 0o755); err != nil {
		t.Fatal(err)
	}

	results := RunAll(context.Background(), cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if Failed(results) != 0 {
		for _, r := range results {
			if !r.Passed {
				t.Errorf("check %q failed: %s", r.Name, r.Detail)
			}
		}
	}
}

func TestRunAll_IncludesNtfyWhenConfigured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testsupport.NewConfig(t,
		testsupport.WithRelay("", 0),
		testsupport.WithNtfyTopic(srv.URL+"/autokit"),
	)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}

	results := RunAll(context.Background(), cfg)
	found := false
	for _, r := range results {
		if r.Name == "ntfy" {
			found = true
			if !r.Passed {
				t.Errorf("ntfy check failed: %s", r.Detail)
			}
		}
	}
	if !found {
		t.Fatal("expected ntfy check in results")
	}
	if Failed(results) != 3 {
		t.Fatalf("expected source, credentials and relay to fail, got %d failures", Failed(results))
	}
}
