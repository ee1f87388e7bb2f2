package viewrouter

// View is a handle to one renderable element that can be shown or hidden.
type View interface {
	Activate()
	Deactivate()
}

// SectionRegistry is the set of known sections and their visibility toggles.
type SectionRegistry interface {
	Sections() []string
	Has(id string) bool
	SetActive(id string, active bool)
	SetLinkActive(id string, active bool)
}

type entry struct {
	section View
	link    View // may be nil
}

// Registry maps section identifiers to their view handles. It is built once
// and looked up by id; registration order is preserved by Sections.
type Registry struct {
	order   []string
	entries map[string]entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Add registers a section and its optional navigation link. Re-adding an id
// replaces its handles without changing its position.
func (r *Registry) Add(id string, section, link View) {
	if _, ok := r.entries[id]; !ok {
		r.order = append(r.order, id)
	}
	r.entries[id] = entry{section: section, link: link}
}

// Sections returns the registered ids in registration order.
func (r *Registry) Sections() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Has reports whether id is a registered section.
func (r *Registry) Has(id string) bool {
	_, ok := r.entries[id]
	return ok
}

// SetActive toggles the section view for id. Unknown ids are ignored.
func (r *Registry) SetActive(id string, active bool) {
	e, ok := r.entries[id]
	if !ok || e.section == nil {
		return
	}
	toggle(e.section, active)
}

// SetLinkActive toggles the navigation link for id, if it has one.
func (r *Registry) SetLinkActive(id string, active bool) {
	e, ok := r.entries[id]
	if !ok || e.link == nil {
		return
	}
	toggle(e.link, active)
}

func toggle(v View, active bool) {
	if active {
		v.Activate()
	} else {
		v.Deactivate()
	}
}

// Flag is a View that records its state in a bool. Renderers that build
// markup after routing use it as the section or link handle.
type Flag struct {
	On bool
}

func (f *Flag) Activate()   { f.On = true }
func (f *Flag) Deactivate() { f.On = false }

// FlagSet is a Registry whose section and link handles are all Flags.
type FlagSet struct {
	*Registry
	Section map[string]*Flag
	Link    map[string]*Flag
}

// NewFlagSet registers ids in order, each with a section and a link Flag.
func NewFlagSet(ids []string) *FlagSet {
	fs := &FlagSet{
		Registry: NewRegistry(),
		Section:  make(map[string]*Flag, len(ids)),
		Link:     make(map[string]*Flag, len(ids)),
	}
	for _, id := range ids {
		s, l := &Flag{}, &Flag{}
		fs.Section[id] = s
		fs.Link[id] = l
		fs.Add(id, s, l)
	}
	return fs
}
