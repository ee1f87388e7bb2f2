// Package doctor runs the installation checks behind `portfolio doctor`.
package doctor

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ziadkadry99/portfolio/internal/config"
	"github.com/ziadkadry99/portfolio/internal/content"
	"github.com/ziadkadry99/portfolio/internal/db"
)

// Check is one named diagnostic. Run returns a short detail line on success.
type Check struct {
	Name string
	Run  func(ctx context.Context) (string, error)
}

// Result is the outcome of one check.
type Result struct {
	Name   string
	Detail string
	Err    error
}

// RunAll runs every check in order, printing a PASS/FAIL line for each and
// a summary. It reports whether all checks passed.
func RunAll(ctx context.Context, w io.Writer, checks []Check) ([]Result, bool) {
	results := make([]Result, 0, len(checks))
	ok := true
	for _, c := range checks {
		detail, err := c.Run(ctx)
		results = append(results, Result{Name: c.Name, Detail: detail, Err: err})
		if err != nil {
			ok = false
			fmt.Fprintf(w, "FAIL  %-20s %v\n", c.Name, err)
			continue
		}
		fmt.Fprintf(w, "PASS  %-20s %s\n", c.Name, detail)
	}

	fmt.Fprintln(w, strings.Repeat("-", 50))
	if ok {
		fmt.Fprintln(w, "All checks passed. Your portfolio setup is ready.")
	} else {
		fmt.Fprintln(w, "Some checks failed. Please check the configuration.")
	}
	return results, ok
}

// ConfigCheck validates the loaded configuration.
func ConfigCheck(cfg *config.Config) Check {
	return Check{Name: "configuration", Run: func(context.Context) (string, error) {
		if err := cfg.Validate(); err != nil {
			return "", err
		}
		return fmt.Sprintf("port %d, submissions %s", cfg.Port, cfg.Submission.Mode), nil
	}}
}

// DatabaseCheck reports the SQLite version and the schema tables.
func DatabaseCheck(database *db.DB) Check {
	return Check{Name: "database", Run: func(ctx context.Context) (string, error) {
		version, err := database.SQLiteVersion(ctx)
		if err != nil {
			return "", err
		}
		tables, err := database.Tables(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("SQLite %s, %d tables", version, len(tables)), nil
	}}
}

// ContentCheck loads the content library.
func ContentCheck(load func() (*content.Library, error)) Check {
	return Check{Name: "content", Run: func(context.Context) (string, error) {
		lib, err := load()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d sections (%s), %d previews",
			len(lib.Sections), strings.Join(lib.IDs(), ", "), len(lib.Previews)), nil
	}}
}
