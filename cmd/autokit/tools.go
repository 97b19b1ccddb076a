package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"autokit/internal/config"
	"autokit/internal/history"
	"autokit/internal/logging"
	"autokit/internal/notifications"
	"autokit/internal/services"
)

const (
	toolOrganizer = "organizer"
	toolMCQ       = "mcq"
	toolEmail     = "email"
)

// tool is the closed set of runnable tools. Values are only built through
// their constructors, which enforce the required arguments.
type tool interface {
	toolName() string
	target() string
}

type organizeTool struct {
	dir    string
	dryRun bool
}

type gradeTool struct {
	csvPath string
	asJSON  bool
}

type emailTool struct {
	args emailArgs
}

type emailArgs struct {
	recipient string
	subject   string
	message   string
	html      string
	template  string
	name      string
}

func (organizeTool) toolName() string { return toolOrganizer }
func (gradeTool) toolName() string    { return toolMCQ }
func (emailTool) toolName() string    { return toolEmail }

func (t organizeTool) target() string { return t.dir }
func (t gradeTool) target() string    { return t.csvPath }
func (t emailTool) target() string    { return t.args.recipient }

// newOrganizeTool falls back to organizer.source_dir when dir is empty.
func newOrganizeTool(cfg *config.Config, dir string, dryRun bool) (organizeTool, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" && cfg != nil {
		dir = cfg.Organizer.SourceDir
	}
	if dir == "" {
		return organizeTool{}, errors.New("--source-dir is required when organizer.source_dir is not configured")
	}
	expanded, err := config.ExpandPath(dir)
	if err != nil {
		return organizeTool{}, fmt.Errorf("resolve source dir: %w", err)
	}
	return organizeTool{dir: expanded, dryRun: dryRun}, nil
}

func newGradeTool(csvPath string, asJSON bool) (gradeTool, error) {
	csvPath = strings.TrimSpace(csvPath)
	if csvPath == "" {
		return gradeTool{}, errors.New("--csv-file is required for the mcq tool")
	}
	expanded, err := config.ExpandPath(csvPath)
	if err != nil {
		return gradeTool{}, fmt.Errorf("resolve csv path: %w", err)
	}
	return gradeTool{csvPath: expanded, asJSON: asJSON}, nil
}

// newEmailTool requires a recipient and subject; the body may be empty, in
// which case the mailer substitutes its placeholder text.
func newEmailTool(cfg *config.Config, args emailArgs) (emailTool, error) {
	args.recipient = strings.TrimSpace(args.recipient)
	args.subject = strings.TrimSpace(args.subject)
	var missing []string
	if args.recipient == "" {
		missing = append(missing, "--recipient")
	}
	if args.subject == "" {
		missing = append(missing, "--subject")
	}
	if len(missing) > 0 {
		return emailTool{}, fmt.Errorf("%s required for the email tool", strings.Join(missing, " and "))
	}
	if strings.TrimSpace(args.template) == "" && cfg != nil {
		args.template = cfg.Email.Template
	}
	return emailTool{args: args}, nil
}

// outcome is what a tool reports back for history and notifications.
type outcome struct {
	status  history.Status
	summary string
	event   notifications.Event
	payload notifications.Payload
}

// runTool dispatches t to its handler and records the run.
func runTool(ctx *commandContext, cmd *cobra.Command, t tool) error {
	var run func(context.Context) (outcome, error)
	switch t := t.(type) {
	case organizeTool:
		run = func(runCtx context.Context) (outcome, error) { return runOrganize(runCtx, ctx, cmd, t) }
	case gradeTool:
		run = func(runCtx context.Context) (outcome, error) { return runGrade(runCtx, ctx, cmd, t) }
	case emailTool:
		run = func(runCtx context.Context) (outcome, error) { return runEmail(runCtx, ctx, cmd, t) }
	default:
		return fmt.Errorf("unsupported tool %T", t)
	}
	return ctx.record(cmd, t, run)
}

// record runs fn, then stores the result in history and publishes a
// notification. Both side effects are best-effort.
func (c *commandContext) record(cmd *cobra.Command, t tool, fn func(context.Context) (outcome, error)) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	runCtx := c.runContext(cmd, t.toolName())
	logger := logging.WithContext(runCtx, c.loggerFor(cmd))

	started := time.Now()
	result, runErr := fn(runCtx)
	finished := time.Now()

	run := history.Run{
		RunID:      c.runID,
		Tool:       t.toolName(),
		Target:     t.target(),
		Status:     result.status,
		Summary:    result.summary,
		StartedAt:  started,
		FinishedAt: finished,
	}
	event, payload := result.event, result.payload
	if runErr != nil {
		run.Status = history.StatusFailed
		run.Error = runErr.Error()
		event = notifications.EventToolFailed
		payload = notifications.Payload{"tool": t.toolName(), "error": runErr.Error()}
		logger.Debug("tool failed",
			logging.String("failure_class", string(services.Classify(runErr))),
			logging.Error(runErr),
		)
	}
	if run.Status == "" {
		run.Status = history.StatusSucceeded
	}

	if cfg.History.Enabled {
		if err := recordHistory(runCtx, cfg, run); err != nil {
			logger.Warn("could not record run history", logging.Error(err))
		}
	}
	if event != "" {
		if err := notifications.NewService(cfg).Publish(runCtx, event, payload); err != nil {
			logger.Warn("notification failed", logging.Error(err))
		}
	}
	return runErr
}

func recordHistory(ctx context.Context, cfg *config.Config, run history.Run) error {
	store, err := history.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	if _, err := store.Record(ctx, run); err != nil {
		return err
	}
	_, err = store.Prune(ctx, history.Retention)
	return err
}
