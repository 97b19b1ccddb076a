package testsupport

import (
	"path/filepath"
	"testing"

	"autokit/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Organizer.SourceDir = filepath.Join(base, "inbox")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithMailCredentials sets the sender credentials on the test config.
func WithMailCredentials(address, password string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Email.Address = address
		b.cfg.Email.Password = password
	}
}

// WithRelay points the mailer at host:port.
func WithRelay(host string, port int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Email.SMTPHost = host
		b.cfg.Email.SMTPPort = port
	}
}

// WithNtfyTopic enables notifications against topic.
func WithNtfyTopic(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topic
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
