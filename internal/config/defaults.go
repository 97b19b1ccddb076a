package config

const (
	defaultStateDir             = "~/.local/share/autokit"
	defaultLogDir               = "~/.local/share/autokit/logs"
	defaultSourceDir            = "~/Downloads"
	defaultSMTPHost             = "smtp.gmail.com"
	defaultSMTPPort             = 587
	defaultEmailTemplate        = "default"
	defaultNotifyRequestTimeout = 10
	defaultHistoryEnabled       = true
	defaultHistoryLimit         = 20
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Category is one destination folder and the extensions routed into it.
type Category struct {
	Name       string   `toml:"name"`
	Extensions []string `toml:"extensions"`
}

// DefaultCategories returns the built-in category table in lookup order.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp"}},
		{Name: "Documents", Extensions: []string{".pdf", ".docx", ".doc", ".txt", ".xlsx", ".xls", ".pptx", ".odt"}},
		{Name: "Videos", Extensions: []string{".mp4", ".mkv", ".avi", ".mov", ".webm"}},
		{Name: "Audio", Extensions: []string{".mp3", ".wav", ".ogg", ".flac"}},
		{Name: "Code", Extensions: []string{".py", ".js", ".html", ".css", ".java", ".cpp", ".c", ".sh", ".json", ".yaml"}},
		{Name: "Archives", Extensions: []string{".zip", ".tar", ".gz", ".rar", ".7z"}},
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Organizer: Organizer{
			SourceDir:  defaultSourceDir,
			Categories: DefaultCategories(),
		},
		Email: Email{
			SMTPHost: defaultSMTPHost,
			SMTPPort: defaultSMTPPort,
			Template: defaultEmailTemplate,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
			Limit:   defaultHistoryLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
