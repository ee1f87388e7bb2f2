package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/ziadkadry99/portfolio/internal/audit"
	"github.com/ziadkadry99/portfolio/internal/config"
	"github.com/ziadkadry99/portfolio/internal/contact"
	"github.com/ziadkadry99/portfolio/internal/db"
	"github.com/ziadkadry99/portfolio/internal/markdown"
)

func TestNewSubmitter(t *testing.T) {
	c := config.DefaultConfig()

	c.Submission.Mode = config.SubmissionSimulated
	if _, ok := newSubmitter(c, nil, nil, zap.NewNop()).(*contact.SimulatedSubmitter); !ok {
		t.Error("simulated mode should build a SimulatedSubmitter")
	}

	c.Submission.Mode = config.SubmissionStore
	if _, ok := newSubmitter(c, nil, nil, zap.NewNop()).(*contact.StoreSubmitter); !ok {
		t.Error("store mode should build a StoreSubmitter")
	}
}

func TestLoadContent(t *testing.T) {
	md := markdown.New()
	c := config.DefaultConfig()

	lib, err := loadContent(c, md)
	if err != nil {
		t.Fatalf("embedded content: %v", err)
	}
	if _, ok := lib.Section("home"); !ok {
		t.Error("embedded content should have a home section")
	}

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sections"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sections", "01-intro.md"), []byte("# Intro\n\nHi."), 0o644); err != nil {
		t.Fatal(err)
	}
	c.ContentDir = dir
	lib, err = loadContent(c, md)
	if err != nil {
		t.Fatalf("content dir: %v", err)
	}
	if ids := lib.IDs(); len(ids) != 1 || ids[0] != "intro" {
		t.Errorf("IDs() = %v, want [intro]", ids)
	}

	c.ContentDir = filepath.Join(dir, "missing")
	if _, err := loadContent(c, md); err == nil {
		t.Error("expected error for a content dir without sections")
	}
}

func TestOpenDatabaseCreatesDataDir(t *testing.T) {
	c := config.DefaultConfig()
	c.DataDir = filepath.Join(t.TempDir(), "nested", "data")

	database, err := openDatabase(c)
	if err != nil {
		t.Fatalf("openDatabase: %v", err)
	}
	defer database.Close()

	if _, err := os.Stat(c.DatabasePath()); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestRecordCLIAction(t *testing.T) {
	logger = zap.NewNop()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()

	store := audit.NewStore(database)
	recordCLIAction(context.Background(), store, audit.ActionTokenRevoked, "tok-1", "")

	entries, err := store.Query(context.Background(), audit.QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if e := entries[0]; e.ActorType != audit.ActorCLI || e.Action != audit.ActionTokenRevoked || e.Target != "tok-1" {
		t.Errorf("unexpected entry: %+v", e)
	}
}
