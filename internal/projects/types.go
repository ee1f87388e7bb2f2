package projects

import (
	"html/template"
	"strings"
	"time"
)

// Project is one portfolio item.
type Project struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	DescriptionHTML template.HTML `json:"description_html,omitempty"`
	Technologies    string        `json:"technologies"`
	GitHubURL       string        `json:"github_url"`
	LiveURL         string        `json:"live_url"`
	ImageURL        string        `json:"image_url"`
	Featured        bool          `json:"featured"`
	Completed       bool          `json:"completed"`
	CompletionDate  *time.Time    `json:"completion_date"`
	UserID          string        `json:"user_id"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// TechList splits the comma separated technologies.
func (p Project) TechList() []string {
	var out []string
	for _, t := range strings.Split(p.Technologies, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ListFilter controls which projects to return.
type ListFilter struct {
	FeaturedOnly  bool
	CompletedOnly bool
	UserID        string
	Limit         int
}
