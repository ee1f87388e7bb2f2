package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// contentMarkers are directories that look like a content tree.
var contentMarkers = []string{"content", "site", "portfolio"}

// detectContentDir returns the first directory in the working directory
// that holds a sections/ subdirectory, or "" to use the embedded content.
func detectContentDir() string {
	for _, dir := range contentMarkers {
		if info, err := os.Stat(dir + "/sections"); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to portfolio! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	contentDir := detectContentDir()
	if contentDir != "" {
		fmt.Printf("Detected content directory: %s\n\n", contentDir)
	}

	// 1. Site text.
	title, err := (&promptui.Prompt{Label: "Site title", Default: cfg.Site.Title}).Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	author, err := (&promptui.Prompt{Label: "Author name", Default: cfg.Site.Author}).Run()
	if err != nil {
		return nil, fmt.Errorf("author: %w", err)
	}

	// 2. Port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("port must be between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	// 3. Submission mode.
	modePrompt := promptui.Select{
		Label: "How should contact messages be handled",
		Items: []string{
			"store     - save to SQLite and notify webhooks",
			"simulated - log and discard (demo mode)",
		},
	}
	modeIdx, _, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("submission mode: %w", err)
	}
	modes := []SubmissionMode{SubmissionStore, SubmissionSimulated}

	// 4. Webhooks.
	var webhooks []string
	if modes[modeIdx] == SubmissionStore {
		hookStr, err := (&promptui.Prompt{
			Label:   "Notification webhooks (comma-separated, leave blank for none)",
			Default: "",
		}).Run()
		if err != nil {
			return nil, fmt.Errorf("webhooks: %w", err)
		}
		webhooks = splitAndTrim(hookStr)
	}

	cfg.Port = port
	cfg.ContentDir = contentDir
	cfg.Site.Title = title
	cfg.Site.Author = author
	cfg.Submission.Mode = modes[modeIdx]
	cfg.Notifications.Webhooks = webhooks

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
