package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeOrganizer(); err != nil {
		return err
	}
	c.normalizeEmail()
	c.normalizeNotifications()
	c.normalizeHistory()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeOrganizer() error {
	var err error
	if strings.TrimSpace(c.Organizer.SourceDir) == "" {
		c.Organizer.SourceDir = defaultSourceDir
	}
	if c.Organizer.SourceDir, err = expandPath(strings.TrimSpace(c.Organizer.SourceDir)); err != nil {
		return fmt.Errorf("organizer.source_dir: %w", err)
	}
	if len(c.Organizer.Categories) == 0 {
		c.Organizer.Categories = DefaultCategories()
		return nil
	}
	categories := make([]Category, 0, len(c.Organizer.Categories))
	for _, category := range c.Organizer.Categories {
		exts := make([]string, 0, len(category.Extensions))
		for _, ext := range category.Extensions {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			exts = append(exts, ext)
		}
		categories = append(categories, Category{
			Name:       strings.TrimSpace(category.Name),
			Extensions: exts,
		})
	}
	c.Organizer.Categories = categories
	return nil
}

func (c *Config) normalizeEmail() {
	c.Email.SMTPHost = strings.TrimSpace(c.Email.SMTPHost)
	if c.Email.SMTPHost == "" {
		c.Email.SMTPHost = defaultSMTPHost
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = defaultSMTPPort
	}
	c.Email.Address = strings.TrimSpace(c.Email.Address)
	if c.Email.Address == "" {
		if value, ok := os.LookupEnv("EMAIL_ADDRESS"); ok {
			c.Email.Address = strings.TrimSpace(value)
		}
	}
	if c.Email.Password == "" {
		if value, ok := os.LookupEnv("EMAIL_PASSWORD"); ok {
			c.Email.Password = value
		}
	}
	c.Email.Template = strings.ToLower(strings.TrimSpace(c.Email.Template))
	if c.Email.Template == "" {
		c.Email.Template = defaultEmailTemplate
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		if value, ok := os.LookupEnv("AUTOKIT_NTFY_TOPIC"); ok {
			c.Notifications.NtfyTopic = strings.TrimSpace(value)
		}
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeHistory() {
	if c.History.Limit <= 0 {
		c.History.Limit = defaultHistoryLimit
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
