package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// legacyFlags mirror the single-command form `autokit --tool <name> ...`.
type legacyFlags struct {
	tool      string
	sourceDir string
	csvFile   string
	recipient string
	subject   string
	message   string
}

func (f legacyFlags) any() bool {
	return f.tool != "" || f.sourceDir != "" || f.csvFile != "" ||
		f.recipient != "" || f.subject != "" || f.message != ""
}

// newCLI builds the command tree and returns the shared context so the caller
// can release its resources once execution finishes.
func newCLI() (*cobra.Command, *commandContext) {
	var configFlag string
	var logLevelFlag string
	var legacy legacyFlags

	ctx := newCommandContext(&configFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:   "autokit",
		Short: "File organizer, quiz grader and email sender",
		Example: `  autokit --tool organizer --source-dir ~/Downloads
  autokit --tool mcq --csv-file quiz.csv
  autokit --tool email --recipient user@domain.com --subject "Test" --message "Hello"
  autokit organizer --dry-run`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if legacy.any() {
				t, err := legacyTool(ctx, legacy)
				if err != nil {
					return err
				}
				return runTool(ctx, cmd, t)
			}
			if isInteractive(cmd) {
				return runMenu(ctx, cmd)
			}
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override the configured log level (debug, info, warn, error)")

	flags := rootCmd.Flags()
	flags.StringVarP(&legacy.tool, "tool", "t", "", "Tool to run: organizer, mcq or email")
	flags.StringVar(&legacy.sourceDir, "source-dir", "", "Directory to organize (default: organizer.source_dir)")
	flags.StringVar(&legacy.csvFile, "csv-file", "", "Quiz CSV file path")
	flags.StringVar(&legacy.recipient, "recipient", "", "Recipient email address")
	flags.StringVar(&legacy.subject, "subject", "", "Email subject")
	flags.StringVar(&legacy.message, "message", "", "Email message body")

	rootCmd.AddCommand(newOrganizerCommand(ctx))
	rootCmd.AddCommand(newMCQCommand(ctx))
	rootCmd.AddCommand(newEmailCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newTestNotifyCommand(ctx))

	return rootCmd, ctx
}

// legacyTool builds the tool selected by --tool from the flat flag set.
func legacyTool(ctx *commandContext, f legacyFlags) (tool, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(strings.TrimSpace(f.tool)) {
	case toolOrganizer:
		return newOrganizeTool(cfg, f.sourceDir, false)
	case toolMCQ:
		return newGradeTool(f.csvFile, false)
	case toolEmail:
		return newEmailTool(cfg, emailArgs{recipient: f.recipient, subject: f.subject, message: f.message})
	case "":
		return nil, fmt.Errorf("--tool is required when tool flags are given (organizer, mcq or email)")
	default:
		return nil, fmt.Errorf("unknown tool %q (expected organizer, mcq or email)", f.tool)
	}
}
