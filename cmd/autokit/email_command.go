package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"autokit/internal/config"
	"autokit/internal/history"
	"autokit/internal/mailer"
	"autokit/internal/notifications"
)

// transportFactory builds the relay transport; tests replace it.
var transportFactory = func(cfg *config.Config) mailer.Transport {
	return mailer.NewSMTPTransport(cfg.Email.SMTPHost, cfg.Email.SMTPPort)
}

func newEmailCommand(ctx *commandContext) *cobra.Command {
	var args emailArgs

	cmd := &cobra.Command{
		Use:     "email",
		Aliases: []string{"mail"},
		Short:   "Send an HTML email through the configured SMTP relay",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			t, err := newEmailTool(cfg, args)
			if err != nil {
				return err
			}
			return runTool(ctx, cmd, t)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&args.recipient, "recipient", "r", "", "Recipient email address")
	flags.StringVarP(&args.subject, "subject", "s", "", "Email subject")
	flags.StringVarP(&args.message, "message", "m", "", "Plain-text message body")
	flags.StringVar(&args.html, "html", "", "HTML body sent verbatim instead of a template")
	flags.StringVar(&args.template, "template", "", "HTML template: default, notification or welcome (default: email.template)")
	flags.StringVar(&args.name, "name", "", "Greeting name for the welcome template")
	return cmd
}

func runEmail(runCtx context.Context, ctx *commandContext, cmd *cobra.Command, t emailTool) (outcome, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return outcome{}, err
	}

	creds := mailer.Credentials{Address: cfg.Email.Address, Password: cfg.Email.Password}
	if err := creds.Validate(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Set EMAIL_ADDRESS and EMAIL_PASSWORD (environment, .env or [email] in config).")
		return outcome{}, err
	}

	m := mailer.New(transportFactory(cfg), creds, ctx.loggerFor(cmd))
	msg := mailer.Message{
		To:       t.args.recipient,
		Subject:  t.args.subject,
		Body:     t.args.message,
		HTMLBody: t.args.html,
		Template: t.args.template,
		Name:     t.args.name,
	}
	if err := m.Send(runCtx, msg); err != nil {
		return outcome{}, describeSendError(err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Email sent successfully to %s\n", t.args.recipient)
	return outcome{
		status:  history.StatusSucceeded,
		summary: fmt.Sprintf("sent %q", t.args.subject),
		event:   notifications.EventEmailSent,
		payload: notifications.Payload{"recipient": t.args.recipient, "subject": t.args.subject},
	}, nil
}

// describeSendError prefixes err with guidance for its failure kind.
func describeSendError(err error) error {
	var sendErr *mailer.SendError
	if !errors.As(err, &sendErr) {
		return err
	}
	var hint string
	switch sendErr.Kind {
	case mailer.KindAuthentication:
		hint = "authentication failed, check your email address and app password"
	case mailer.KindProtocol:
		hint = "the mail relay rejected the message"
	default:
		hint = "could not reach the mail relay, check network and email.smtp_host"
	}
	return fmt.Errorf("%s: %w", strings.TrimSpace(hint), err)
}
