package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"autokit/internal/config"
	"autokit/internal/logging"
	"autokit/internal/services"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	closeLog   func() error

	runID string
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		runID:        uuid.NewString(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				cfg.Logging.Level = level
			}
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// loggerFor returns the process logger, writing console output to the
// command's stderr. It falls back to a no-op logger when setup fails.
func (c *commandContext) loggerFor(cmd *cobra.Command) *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		var logPath string
		if cfg.Paths.LogDir != "" {
			logPath = filepath.Join(cfg.Paths.LogDir, "autokit.log")
		}
		logger, closeLog, err := logging.New(logging.Options{
			Level:    cfg.Logging.Level,
			Format:   cfg.Logging.Format,
			Console:  cmd.ErrOrStderr(),
			FilePath: logPath,
			RunID:    c.runID,
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
		c.closeLog = closeLog
	})
	return c.logger
}

// close releases the log file opened by loggerFor.
func (c *commandContext) close() error {
	if c.closeLog == nil {
		return nil
	}
	return c.closeLog()
}

// runContext annotates the command context with the run id and tool name.
func (c *commandContext) runContext(cmd *cobra.Command, toolName string) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return services.WithTool(services.WithRunID(ctx, c.runID), toolName)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
