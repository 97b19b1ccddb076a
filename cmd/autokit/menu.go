package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// runMenu prompts for a tool and its arguments, then runs it once. An invalid
// choice re-prompts; choice 4 or end of input exits without error.
func runMenu(ctx *commandContext, cmd *cobra.Command) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	for {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "autokit")
		fmt.Fprintln(out, strings.Repeat("=", 30))
		fmt.Fprintln(out, "1. File Organizer")
		fmt.Fprintln(out, "2. MCQ Evaluator")
		fmt.Fprintln(out, "3. Email Notifier")
		fmt.Fprintln(out, "4. Exit")

		choice, ok := prompt(in, out, "\nEnter your choice (1-4): ")
		if !ok {
			return nil
		}

		var t tool
		switch choice {
		case "1":
			dir, _ := prompt(in, out, fmt.Sprintf("Enter directory to organize (press Enter for %s): ", cfg.Organizer.SourceDir))
			t, err = newOrganizeTool(cfg, dir, false)
		case "2":
			path, _ := prompt(in, out, "Enter CSV file path: ")
			t, err = newGradeTool(path, false)
		case "3":
			recipient, _ := prompt(in, out, "Recipient email: ")
			subject, _ := prompt(in, out, "Subject: ")
			message, _ := prompt(in, out, "Message: ")
			t, err = newEmailTool(cfg, emailArgs{recipient: recipient, subject: subject, message: message})
		case "4":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(out, "Invalid choice. Try again.")
			continue
		}
		if err != nil {
			return err
		}
		return runTool(ctx, cmd, t)
	}
}

func prompt(in *bufio.Scanner, out io.Writer, label string) (string, bool) {
	fmt.Fprint(out, label)
	if !in.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}
