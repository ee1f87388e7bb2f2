// Package site serves the server-rendered portfolio page. Each request
// builds its own viewrouter.Router over Flag handles, so section visibility
// in the markup is always the router's decision.
package site

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/portfolio/internal/contact"
	"github.com/ziadkadry99/portfolio/internal/content"
	"github.com/ziadkadry99/portfolio/internal/projects"
	"github.com/ziadkadry99/portfolio/internal/tabs"
	"github.com/ziadkadry99/portfolio/internal/viewrouter"
)

// Config holds the site-wide text shown in the layout.
type Config struct {
	Title          string
	Author         string
	Tagline        string
	DefaultSection string
}

// Site renders the portfolio page.
type Site struct {
	cfg       Config
	lib       *content.Library
	projects  *projects.Store
	submitter contact.Submitter
	logger    *zap.Logger

	page     *template.Template
	notFound *template.Template
}

// New parses the templates. projectStore may be nil, in which case the
// projects section lists nothing.
func New(cfg Config, lib *content.Library, projectStore *projects.Store, submitter contact.Submitter, logger *zap.Logger) (*Site, error) {
	if lib == nil {
		return nil, errors.New("site: content library is required")
	}
	if cfg.DefaultSection == "" {
		cfg.DefaultSection = viewrouter.DefaultSection
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	page, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	notFound, err := template.New("404").Parse(notFoundTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing 404 template: %w", err)
	}

	return &Site{
		cfg:       cfg,
		lib:       lib,
		projects:  projectStore,
		submitter: submitter,
		logger:    logger.Named("site"),
		page:      page,
		notFound:  notFound,
	}, nil
}

// RegisterRoutes mounts the page, the form fallback and static assets.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/static/style.css", serveAsset("text/css; charset=utf-8", cssContent))
	r.Get("/static/nav.js", serveAsset("application/javascript; charset=utf-8", jsContent))
	r.Get("/", s.handleIndex)
	if s.submitter != nil {
		r.Post("/contact", s.handleContact)
	}
	r.Get("/{section}", s.handleSection)
}

type linkView struct {
	ID     string
	Title  string
	Active bool
}

type sectionView struct {
	ID     string
	HTML   template.HTML
	Active bool
}

type tabView struct {
	Name     string
	Filename string
	Language string
	HTML     template.HTML
	Active   bool
	Preview  bool
}

type fileView struct {
	Path   string
	Active bool
}

type pageData struct {
	Title     string
	Author    string
	Tagline   string
	PageTitle string
	Current   string
	Year      int

	Links    []linkView
	Sections []sectionView
	Tabs     []tabView
	Files    []fileView
	Projects []projects.Project
	Featured []projects.Project

	Form      contact.Form
	Errors    contact.FieldErrors
	FormError string
	Sent      bool
}

// view routes to section and builds the template data from the resulting
// flag states. An empty section means "use the fragment default".
func (s *Site) view(r *http.Request, section string) *pageData {
	flags := viewrouter.NewFlagSet(s.lib.IDs())
	router := viewrouter.New(flags, viewrouter.NewMemoryHistory(""),
		viewrouter.WithDefault(s.cfg.DefaultSection),
		viewrouter.WithObserver(func(from, to string, known bool) {
			s.logger.Debug("render section", zap.String("section", to), zap.Bool("known", known))
		}))
	if section == "" {
		router.Initialize()
	} else {
		router.NavigateTo(section)
	}

	data := &pageData{
		Title:   s.cfg.Title,
		Author:  s.cfg.Author,
		Tagline: s.cfg.Tagline,
		Current: router.Current(),
		Year:    time.Now().Year(),
	}
	for _, sec := range s.lib.Sections {
		data.Links = append(data.Links, linkView{ID: sec.ID, Title: sec.Title, Active: flags.Link[sec.ID].On})
		data.Sections = append(data.Sections, sectionView{ID: sec.ID, HTML: sec.HTML, Active: flags.Section[sec.ID].On})
		if flags.Section[sec.ID].On {
			data.PageTitle = sec.Title
		}
	}

	data.Tabs = s.tabs(r.URL.Query().Get("tab"))
	data.Files = s.files(r.URL.Query().Get("file"))

	if s.projects != nil {
		list, err := s.projects.List(r.Context(), projects.ListFilter{CompletedOnly: true})
		if err != nil {
			s.logger.Warn("listing projects", zap.Error(err))
		}
		data.Projects = list

		featured, err := s.projects.List(r.Context(), projects.ListFilter{CompletedOnly: true, FeaturedOnly: true})
		if err != nil {
			s.logger.Warn("listing featured projects", zap.Error(err))
		}
		data.Featured = featured
	}
	return data
}

// files lists the preview paths as the project file tree. Selecting a file
// only highlights it; files have no panel of their own.
func (s *Site) files(selected string) []fileView {
	paths := s.lib.PreviewPaths()
	if len(paths) == 0 {
		return nil
	}
	group := tabs.New(paths, nil)
	group.Select(selected)

	out := make([]fileView, 0, len(paths))
	for _, item := range group.Items() {
		out = append(out, fileView{Path: item.Name, Active: item.Active})
	}
	return out
}

// tabs selects name, falling back to the first preview.
func (s *Site) tabs(name string) []tabView {
	if len(s.lib.Previews) == 0 {
		return nil
	}
	group := tabs.FromNames(s.lib.PreviewNames())
	if name == "" || !group.Select(name) {
		group.Select(s.lib.Previews[0].Name)
	}

	out := make([]tabView, 0, len(s.lib.Previews))
	for i, item := range group.Items() {
		p := s.lib.Previews[i]
		out = append(out, tabView{
			Name:     p.Name,
			Filename: p.Filename,
			Language: p.Language,
			HTML:     p.HTML,
			Active:   item.Active,
			Preview:  group.PreviewActive(p.Name + tabs.PreviewSuffix),
		})
	}
	return out
}

func (s *Site) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, s.view(r, ""))
}

func (s *Site) handleSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "section")
	if _, ok := s.lib.Section(id); !ok {
		s.NotFound(w, r)
		return
	}
	data := s.view(r, id)
	if id == "contact" && r.URL.Query().Get("sent") == "1" {
		data.Sent = true
	}
	s.render(w, http.StatusOK, data)
}

// handleContact is the form fallback for browsers without the script.
func (s *Site) handleContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := contact.Form{
		Name:       r.PostFormValue("name"),
		Email:      r.PostFormValue("email"),
		Subject:    r.PostFormValue("subject"),
		Message:    r.PostFormValue("message"),
		Newsletter: r.PostFormValue("newsletter") != "",
	}

	_, err := s.submitter.Submit(r.Context(), form)
	if err == nil {
		http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
		return
	}

	data := s.view(r, "contact")
	data.Form = form
	var fe contact.FieldErrors
	if errors.As(err, &fe) {
		data.Errors = fe
		s.render(w, http.StatusBadRequest, data)
		return
	}
	s.logger.Error("contact submission failed", zap.Error(err))
	data.FormError = "Failed to send message"
	s.render(w, http.StatusInternalServerError, data)
}

// NotFound renders the 404 page.
func (s *Site) NotFound(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.notFound.Execute(&buf, map[string]string{"Title": s.cfg.Title, "Path": r.URL.Path}); err != nil {
		s.logger.Error("rendering 404", zap.Error(err))
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write(buf.Bytes())
}

func (s *Site) render(w http.ResponseWriter, status int, data *pageData) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.logger.Error("rendering page", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func serveAsset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Write([]byte(body))
	}
}
