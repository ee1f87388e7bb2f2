package config

import "time"

// SubmissionMode selects how contact form submissions are handled.
type SubmissionMode string

const (
	// SubmissionStore persists messages and notifies webhooks.
	SubmissionStore SubmissionMode = "store"
	// SubmissionSimulated waits, logs and discards, like a static demo.
	SubmissionSimulated SubmissionMode = "simulated"
)

// Config is the top-level portfolio configuration, corresponding to .portfolio.yml.
type Config struct {
	Port            int                 `yaml:"port" koanf:"port"`
	DataDir         string              `yaml:"data_dir" koanf:"data_dir"`
	ContentDir      string              `yaml:"content_dir" koanf:"content_dir"`
	AllowAllOrigins bool                `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	AllowedOrigins  []string            `yaml:"allowed_origins" koanf:"allowed_origins"`
	MaxBodyBytes    int64               `yaml:"max_body_bytes" koanf:"max_body_bytes"`
	Site            SiteConfig          `yaml:"site" koanf:"site"`
	Submission      SubmissionConfig    `yaml:"submission" koanf:"submission"`
	Notifications   NotificationsConfig `yaml:"notifications" koanf:"notifications"`
	Log             LogConfig           `yaml:"log" koanf:"log"`
}

// SiteConfig holds the text shown in the page layout.
type SiteConfig struct {
	Title          string `yaml:"title" koanf:"title"`
	Author         string `yaml:"author" koanf:"author"`
	Tagline        string `yaml:"tagline" koanf:"tagline"`
	DefaultSection string `yaml:"default_section" koanf:"default_section"`
}

// SubmissionConfig controls the contact form backend.
type SubmissionConfig struct {
	Mode  SubmissionMode `yaml:"mode" koanf:"mode"`
	Delay time.Duration  `yaml:"delay" koanf:"delay"`
}

// NotificationsConfig lists webhook URLs that receive new contact messages.
type NotificationsConfig struct {
	Webhooks []string `yaml:"webhooks" koanf:"webhooks"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"` // json or console
}
