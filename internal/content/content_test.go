package content

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/ziadkadry99/portfolio/internal/markdown"
)

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"sections/02-about.md":   {Data: []byte("# About Me\n\nHello **there**.\n")},
		"sections/01-home.md":    {Data: []byte("# Home\n\nWelcome.\n")},
		"sections/10-contact.md": {Data: []byte("Reach out.\n")},
		"sections/notes.txt":     {Data: []byte("ignored")},
		"previews/app.py":        {Data: []byte("print('hi')\n")},
		"previews/db/models.go":  {Data: []byte("package db\n")},
	}

	lib, err := Load(fsys, markdown.New())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if diff := cmp.Diff([]string{"home", "about", "contact"}, lib.IDs()); diff != "" {
		t.Errorf("IDs() (-want +got):\n%s", diff)
	}

	about, ok := lib.Section("about")
	if !ok {
		t.Fatal("expected about section")
	}
	if about.Title != "About Me" {
		t.Errorf("title = %q, want %q", about.Title, "About Me")
	}
	if strings.Contains(string(about.HTML), "About Me") {
		t.Errorf("title heading should be stripped from body: %s", about.HTML)
	}
	if !strings.Contains(string(about.HTML), "<strong>there</strong>") {
		t.Errorf("body not rendered: %s", about.HTML)
	}

	contact, _ := lib.Section("contact")
	if contact.Title != "Contact" {
		t.Errorf("derived title = %q, want Contact", contact.Title)
	}

	if _, ok := lib.Section("missing"); ok {
		t.Error("unexpected section for unknown id")
	}

	if diff := cmp.Diff([]string{"app", "models"}, lib.PreviewNames()); diff != "" {
		t.Errorf("PreviewNames() (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"app.py", "db/models.go"}, lib.PreviewPaths()); diff != "" {
		t.Errorf("PreviewPaths() (-want +got):\n%s", diff)
	}
	if lib.Previews[0].Language != "python" || lib.Previews[1].Language != "go" {
		t.Errorf("languages = %q, %q", lib.Previews[0].Language, lib.Previews[1].Language)
	}
	if !strings.Contains(string(lib.Previews[0].HTML), "<pre") {
		t.Errorf("preview not highlighted: %s", lib.Previews[0].HTML)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"empty", fstest.MapFS{"previews/app.py": {Data: []byte("x")}}},
		{"duplicate", fstest.MapFS{
			"sections/01-home.md": {Data: []byte("# A")},
			"sections/02-home.md": {Data: []byte("# B")},
		}},
		{"bad name", fstest.MapFS{"sections/Home Page.md": {Data: []byte("# A")}}},
		{"duplicate preview name", fstest.MapFS{
			"sections/01-home.md": {Data: []byte("# Home")},
			"previews/a/app.py":   {Data: []byte("a = 1")},
			"previews/b/app.py":   {Data: []byte("b = 2")},
		}},
		{"duplicate preview stem across extensions", fstest.MapFS{
			"sections/01-home.md": {Data: []byte("# Home")},
			"previews/app.py":     {Data: []byte("a = 1")},
			"previews/app.go":     {Data: []byte("package app")},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.fsys, markdown.New()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDefault(t *testing.T) {
	lib, err := Default(markdown.New())
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	want := []string{"home", "about", "skills", "services", "projects", "contact"}
	if diff := cmp.Diff(want, lib.IDs()); diff != "" {
		t.Errorf("IDs() (-want +got):\n%s", diff)
	}
	if len(lib.Previews) == 0 {
		t.Error("expected embedded previews")
	}
}

func TestTitleFromID(t *testing.T) {
	for id, want := range map[string]string{
		"home":         "Home",
		"case-studies": "Case Studies",
		"open_source":  "Open Source",
	} {
		if got := titleFromID(id); got != want {
			t.Errorf("titleFromID(%q) = %q, want %q", id, got, want)
		}
	}
}
