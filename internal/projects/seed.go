package projects

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/portfolio/internal/progress"
	"github.com/ziadkadry99/portfolio/internal/users"
)

// SeedFile is the YAML document read by `portfolio seed`.
//
//	owner:
//	  username: jdoe
//	  email: jdoe@example.com
//	projects:
//	  - title: Task API
//	    technologies: Python, FastAPI
//	    completed: true
//	    completion_date: 2024-06-01
type SeedFile struct {
	Owner    SeedOwner     `yaml:"owner"`
	Projects []SeedProject `yaml:"projects"`
}

// SeedOwner describes the user that owns the seeded projects.
type SeedOwner struct {
	Username  string `yaml:"username"`
	Email     string `yaml:"email"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
}

// SeedProject is one project entry.
type SeedProject struct {
	Title          string     `yaml:"title"`
	Description    string     `yaml:"description"`
	Technologies   string     `yaml:"technologies"`
	GitHubURL      string     `yaml:"github_url"`
	LiveURL        string     `yaml:"live_url"`
	ImageURL       string     `yaml:"image_url"`
	Featured       bool       `yaml:"featured"`
	Completed      bool       `yaml:"completed"`
	CompletionDate *time.Time `yaml:"completion_date"`
}

// ParseSeed decodes a seed document.
func ParseSeed(r io.Reader) (*SeedFile, error) {
	var f SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("seed file is empty")
		}
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	if f.Owner.Username == "" {
		return nil, errors.New("seed file: owner.username is required")
	}
	return &f, nil
}

// SeedResult counts what Seed did.
type SeedResult struct {
	Created int
	Skipped int
}

// Seed ensures the owner exists and creates every project it does not
// already own by title. Re-running a seed is therefore harmless. A nil
// reporter is silent.
func Seed(ctx context.Context, userStore *users.Store, store *Store, f *SeedFile, reporter progress.Reporter) (SeedResult, error) {
	var res SeedResult
	if reporter == nil {
		reporter = progress.Nop()
	}

	owner, err := userStore.EnsureUser(ctx, users.User{
		Username:  f.Owner.Username,
		Email:     f.Owner.Email,
		FirstName: f.Owner.FirstName,
		LastName:  f.Owner.LastName,
	})
	if err != nil {
		return res, fmt.Errorf("ensuring owner %s: %w", f.Owner.Username, err)
	}

	existing, err := store.List(ctx, ListFilter{UserID: owner.ID})
	if err != nil {
		return res, err
	}
	have := make(map[string]bool, len(existing))
	for _, p := range existing {
		have[p.Title] = true
	}

	reporter.Start(len(f.Projects))
	defer reporter.Finish()

	for i, sp := range f.Projects {
		reporter.Update(i+1, sp.Title)
		if have[sp.Title] {
			res.Skipped++
			continue
		}
		_, err := store.Create(ctx, Project{
			Title:          sp.Title,
			Description:    sp.Description,
			Technologies:   sp.Technologies,
			GitHubURL:      sp.GitHubURL,
			LiveURL:        sp.LiveURL,
			ImageURL:       sp.ImageURL,
			Featured:       sp.Featured,
			Completed:      sp.Completed,
			CompletionDate: sp.CompletionDate,
			UserID:         owner.ID,
		})
		if err != nil {
			return res, fmt.Errorf("seeding %q: %w", sp.Title, err)
		}
		have[sp.Title] = true
		res.Created++
	}
	return res, nil
}
