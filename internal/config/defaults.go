package config

import (
	"path/filepath"

	"github.com/ziadkadry99/portfolio/internal/contact"
	"github.com/ziadkadry99/portfolio/internal/viewrouter"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".portfolio.yml"

// DefaultMaxBodyBytes caps request bodies at 16 MiB.
const DefaultMaxBodyBytes = 16 << 20

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:         8080,
		DataDir:      "data",
		MaxBodyBytes: DefaultMaxBodyBytes,
		Site: SiteConfig{
			Title:          "Portfolio",
			Author:         "Python Developer",
			Tagline:        "Building reliable backends and clean web apps.",
			DefaultSection: viewrouter.DefaultSection,
		},
		Submission: SubmissionConfig{
			Mode:  SubmissionStore,
			Delay: contact.DefaultSimulatedDelay,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// DatabasePath returns the SQLite file inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "portfolio.db")
}
