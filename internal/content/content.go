// Package content loads the portfolio's sections and code previews.
//
// A content tree looks like:
//
//	sections/01-home.md
//	sections/02-about.md
//	previews/app.py
//
// The numeric prefix orders sections and the rest of the file stem is the
// section id. The first "# " heading is the navigation title. Every file
// under previews/ becomes a tab named after its stem; stems must be unique
// across subdirectories. The preview paths also form the project file list.
package content

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ziadkadry99/portfolio/internal/markdown"
)

//go:embed all:defaults
var defaultsFS embed.FS

// Section is one page-equivalent view.
type Section struct {
	ID    string
	Title string
	Order int
	HTML  template.HTML
}

// Preview is one highlighted source file shown as a tab. Path is relative
// to previews/.
type Preview struct {
	Name     string
	Filename string
	Path     string
	Language string
	HTML     template.HTML
}

// Library is a loaded content tree.
type Library struct {
	Sections []Section
	Previews []Preview
	index    map[string]int
}

var sectionFile = regexp.MustCompile(`^(?:(\d+)-)?([a-z0-9][a-z0-9_-]*)\.md$`)

var languages = map[string]string{
	".py":   "python",
	".go":   "go",
	".js":   "javascript",
	".ts":   "typescript",
	".html": "html",
	".css":  "css",
	".sql":  "sql",
	".sh":   "bash",
	".yml":  "yaml",
	".yaml": "yaml",
	".toml": "toml",
	".json": "json",
}

// Default loads the content embedded in the binary.
func Default(md *markdown.Renderer) (*Library, error) {
	sub, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		return nil, fmt.Errorf("opening embedded content: %w", err)
	}
	return Load(sub, md)
}

// Load reads a content tree from fsys.
func Load(fsys fs.FS, md *markdown.Renderer) (*Library, error) {
	lib := &Library{index: map[string]int{}}

	files, err := doublestar.Glob(fsys, "sections/*.md", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("matching sections: %w", err)
	}
	for _, f := range files {
		s, err := loadSection(fsys, f, md)
		if err != nil {
			return nil, err
		}
		if _, dup := lib.index[s.ID]; dup {
			return nil, fmt.Errorf("duplicate section id %q (%s)", s.ID, f)
		}
		lib.index[s.ID] = len(lib.Sections)
		lib.Sections = append(lib.Sections, s)
	}
	if len(lib.Sections) == 0 {
		return nil, errors.New("content has no sections")
	}

	sort.SliceStable(lib.Sections, func(i, j int) bool {
		if lib.Sections[i].Order != lib.Sections[j].Order {
			return lib.Sections[i].Order < lib.Sections[j].Order
		}
		return lib.Sections[i].ID < lib.Sections[j].ID
	})
	for i, s := range lib.Sections {
		lib.index[s.ID] = i
	}

	previews, err := doublestar.Glob(fsys, "previews/**", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("matching previews: %w", err)
	}
	sort.Strings(previews)
	seen := make(map[string]string, len(previews))
	for _, f := range previews {
		p, err := loadPreview(fsys, f, md)
		if err != nil {
			return nil, err
		}
		if other, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("duplicate preview name %q (%s and %s)", p.Name, other, f)
		}
		seen[p.Name] = f
		lib.Previews = append(lib.Previews, p)
	}

	return lib, nil
}

func loadSection(fsys fs.FS, file string, md *markdown.Renderer) (Section, error) {
	m := sectionFile.FindStringSubmatch(path.Base(file))
	if m == nil {
		return Section{}, fmt.Errorf("invalid section file name %q", file)
	}
	s := Section{ID: m[2]}
	if m[1] != "" {
		s.Order, _ = strconv.Atoi(m[1])
	}

	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return Section{}, fmt.Errorf("reading %s: %w", file, err)
	}
	body := string(data)
	s.Title, body = splitTitle(body, s.ID)

	s.HTML, err = md.Render(body)
	if err != nil {
		return Section{}, fmt.Errorf("rendering %s: %w", file, err)
	}
	return s, nil
}

func loadPreview(fsys fs.FS, file string, md *markdown.Renderer) (Preview, error) {
	base := path.Base(file)
	ext := path.Ext(base)
	p := Preview{
		Name:     strings.TrimSuffix(base, ext),
		Filename: base,
		Path:     strings.TrimPrefix(file, "previews/"),
		Language: languages[strings.ToLower(ext)],
	}
	if p.Language == "" {
		p.Language = "text"
	}

	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return Preview{}, fmt.Errorf("reading %s: %w", file, err)
	}
	p.HTML, err = md.RenderCode(p.Language, strings.TrimRight(string(data), "\n"))
	if err != nil {
		return Preview{}, fmt.Errorf("rendering %s: %w", file, err)
	}
	return p, nil
}

// splitTitle removes the leading "# " heading and returns it as the title.
// Without one the title is derived from id.
func splitTitle(body, id string) (string, string) {
	trimmed := strings.TrimLeft(body, "\r\n ")
	if strings.HasPrefix(trimmed, "# ") {
		line, rest, _ := strings.Cut(trimmed, "\n")
		return strings.TrimSpace(strings.TrimPrefix(line, "# ")), rest
	}
	return titleFromID(id), body
}

func titleFromID(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// IDs returns the section ids in display order.
func (l *Library) IDs() []string {
	ids := make([]string, len(l.Sections))
	for i, s := range l.Sections {
		ids[i] = s.ID
	}
	return ids
}

// Section returns the section with the given id.
func (l *Library) Section(id string) (Section, bool) {
	i, ok := l.index[id]
	if !ok {
		return Section{}, false
	}
	return l.Sections[i], true
}

// PreviewNames returns the preview tab names in display order.
func (l *Library) PreviewNames() []string {
	names := make([]string, len(l.Previews))
	for i, p := range l.Previews {
		names[i] = p.Name
	}
	return names
}

// PreviewPaths returns the preview file paths, relative to previews/, in
// display order.
func (l *Library) PreviewPaths() []string {
	paths := make([]string, len(l.Previews))
	for i, p := range l.Previews {
		paths[i] = p.Path
	}
	return paths
}
