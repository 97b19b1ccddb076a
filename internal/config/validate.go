package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Mail credentials are not
// required here; the email tool checks them before connecting.
func (c *Config) Validate() error {
	if err := c.validateOrganizer(); err != nil {
		return err
	}
	if err := c.validateEmail(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateOrganizer() error {
	seen := make(map[string]struct{}, len(c.Organizer.Categories))
	for i, category := range c.Organizer.Categories {
		name := strings.TrimSpace(category.Name)
		if name == "" {
			return fmt.Errorf("organizer.categories[%d].name must be set", i)
		}
		if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
			return fmt.Errorf("organizer.categories[%d].name %q is not a valid folder name", i, name)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("organizer.categories: duplicate category %q", name)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func (c *Config) validateEmail() error {
	if c.Email.SMTPPort <= 0 || c.Email.SMTPPort > 65535 {
		return fmt.Errorf("email.smtp_port must be between 1 and 65535, got %d", c.Email.SMTPPort)
	}
	if strings.ContainsAny(c.Email.SMTPHost, " \t/") {
		return fmt.Errorf("email.smtp_host %q is not a valid host name", c.Email.SMTPHost)
	}
	switch c.Email.Template {
	case "default", "notification", "welcome":
	default:
		return fmt.Errorf("email.template must be one of default, notification, welcome; got %q", c.Email.Template)
	}
	return nil
}

func (c *Config) validateNotifications() error {
	topic := c.Notifications.NtfyTopic
	if topic == "" {
		return nil
	}
	if !strings.HasPrefix(topic, "http://") && !strings.HasPrefix(topic, "https://") {
		return errors.New("notifications.ntfy_topic must be a full http(s) URL")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}

// MailCredentialsPresent reports whether both sender credentials are set.
func (c *Config) MailCredentialsPresent() bool {
	return strings.TrimSpace(c.Email.Address) != "" && c.Email.Password != ""
}
