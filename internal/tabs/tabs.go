// Package tabs implements single-selection groups such as the code preview
// tabs and the project file tree.
package tabs

// PreviewSuffix is appended to a tab name to form its preview id.
const PreviewSuffix = "-tab"

// Item is one selectable entry and whether it is currently active.
type Item struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Group tracks which button and which preview are active. Buttons and
// previews are independent: a button may exist without a matching preview.
type Group struct {
	buttons  []string
	previews map[string]bool // preview id -> active
	active   map[string]bool // button name -> active
	selected string
}

// New creates a group. previews are preview ids, normally name+PreviewSuffix.
func New(buttons []string, previews []string) *Group {
	g := &Group{
		buttons:  append([]string(nil), buttons...),
		previews: make(map[string]bool, len(previews)),
		active:   make(map[string]bool, len(buttons)),
	}
	for _, p := range previews {
		g.previews[p] = false
	}
	return g
}

// FromNames creates a group where every button has a preview.
func FromNames(names []string) *Group {
	previews := make([]string, len(names))
	for i, n := range names {
		previews[i] = n + PreviewSuffix
	}
	return New(names, previews)
}

// Select deactivates every button and preview, then activates the named
// button and its preview. It reports whether a preview was shown.
func (g *Group) Select(name string) bool {
	for b := range g.active {
		g.active[b] = false
	}
	for p := range g.previews {
		g.previews[p] = false
	}
	g.selected = ""

	if !g.hasButton(name) {
		return false
	}
	g.active[name] = true
	g.selected = name

	id := name + PreviewSuffix
	if _, ok := g.previews[id]; ok {
		g.previews[id] = true
		return true
	}
	return false
}

// Selected returns the active button name, or "".
func (g *Group) Selected() string { return g.selected }

// PreviewActive reports whether the preview with the given id is shown.
func (g *Group) PreviewActive(id string) bool { return g.previews[id] }

// Items returns the buttons in order with their state.
func (g *Group) Items() []Item {
	out := make([]Item, len(g.buttons))
	for i, b := range g.buttons {
		out[i] = Item{Name: b, Active: g.active[b]}
	}
	return out
}

func (g *Group) hasButton(name string) bool {
	for _, b := range g.buttons {
		if b == name {
			return true
		}
	}
	return false
}
