// Package viewrouter keeps track of which portfolio section is visible and
// keeps that choice in step with the navigation history fragment.
//
// A Router is owned by exactly one host (a page render or a websocket
// session) and is not safe for concurrent use. Events are applied in the
// order the host delivers them and each call runs to completion.
package viewrouter

// DefaultSection is shown when no fragment is present, unless WithDefault
// names another section.
const DefaultSection = "home"

// History is the address-bar side of navigation.
type History interface {
	// Fragment returns the current fragment, with or without a leading '#'.
	Fragment() string
	// Push records id as a new history entry.
	Push(id string)
	// ScrollTop asks the host to reset the scroll position.
	ScrollTop()
}

// UnknownPolicy decides what NavigateTo does with an id that is not registered.
type UnknownPolicy int

const (
	// UnknownLeaveEmpty deactivates everything and activates nothing.
	UnknownLeaveEmpty UnknownPolicy = iota
	// UnknownKeepPrevious re-activates the section that was active before.
	UnknownKeepPrevious
	// UnknownUseDefault activates the default section when it is registered.
	UnknownUseDefault
)

// ViewState is the router's only state.
type ViewState struct {
	Current string `json:"current"`
}

// Observer is called after every transition. known is false when to was not
// a registered section.
type Observer func(from, to string, known bool)

// Option configures a Router.
type Option func(*Router)

// WithUnknownPolicy overrides the default UnknownLeaveEmpty behavior.
func WithUnknownPolicy(p UnknownPolicy) Option {
	return func(r *Router) { r.policy = p }
}

// WithDefault replaces DefaultSection as the section used for an empty
// fragment. An empty id is ignored.
func WithDefault(id string) Option {
	return func(r *Router) {
		if id != "" {
			r.def = id
		}
	}
}

// WithObserver registers a transition callback.
func WithObserver(fn Observer) Option {
	return func(r *Router) { r.observer = fn }
}

// Router owns ViewState and drives the registry's view handles.
type Router struct {
	reg      SectionRegistry
	hist     History
	policy   UnknownPolicy
	observer Observer
	def      string

	state  ViewState
	active string // "" when no section is visible
}

// New creates a Router over reg. hist may be nil for hosts without an
// address bar; Initialize and OnHistoryBack then behave as if the fragment
// were empty, and pushes are dropped.
func New(reg SectionRegistry, hist History, opts ...Option) *Router {
	r := &Router{
		reg:  reg,
		hist: hist,
		def:  DefaultSection,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.state.Current = r.def
	return r
}

// Initialize applies the fragment present at startup, or the default section.
func (r *Router) Initialize() {
	r.NavigateTo(r.fragmentOrDefault())
}

// NavigateTo deactivates every section and link, then activates id when it
// is registered. Current always becomes id, so an unknown id leaves Current
// pointing at a section that is not visible. Nothing is returned or logged.
func (r *Router) NavigateTo(id string) {
	from := r.state.Current
	prev := r.active

	for _, s := range r.reg.Sections() {
		r.reg.SetActive(s, false)
		r.reg.SetLinkActive(s, false)
	}
	r.active = ""
	r.state.Current = id

	known := r.reg.Has(id)
	target := id
	if !known {
		switch r.policy {
		case UnknownKeepPrevious:
			target = prev
		case UnknownUseDefault:
			target = r.def
		default:
			target = ""
		}
	}
	if target != "" && r.reg.Has(target) {
		r.reg.SetActive(target, true)
		r.reg.SetLinkActive(target, true)
		r.active = target
	}

	if r.observer != nil {
		r.observer(from, id, known)
	}
}

// OnNavigationRequest handles a link activation: navigate, record the id in
// history, then reset the scroll position.
func (r *Router) OnNavigationRequest(id string) {
	r.NavigateTo(id)
	if r.hist != nil {
		r.hist.Push(id)
		r.hist.ScrollTop()
	}
}

// OnHistoryBack resynchronizes with the fragment after a back/forward
// navigation, falling back to the default section. It never pushes a
// history entry.
func (r *Router) OnHistoryBack() {
	r.NavigateTo(r.fragmentOrDefault())
}

// Current returns the requested section id.
func (r *Router) Current() string { return r.state.Current }

// Default returns the section used for an empty fragment.
func (r *Router) Default() string { return r.def }

// State returns a copy of the view state.
func (r *Router) State() ViewState { return r.state }

// Active returns the ids of the visible sections: one element after a
// successful navigation, none after an unknown id.
func (r *Router) Active() []string {
	if r.active == "" {
		return []string{}
	}
	return []string{r.active}
}

func (r *Router) fragmentOrDefault() string {
	if r.hist == nil {
		return r.def
	}
	if id := ParseFragment(r.hist.Fragment()); id != "" {
		return id
	}
	return r.def
}
