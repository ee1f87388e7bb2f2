package viewrouter

import "strings"

// ParseFragment extracts a section id from a location hash. It accepts a
// bare id ("about"), a hash ("#about") or anything ending in one
// ("/index.html#about"). A string without '#' is treated as a bare id.
func ParseFragment(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.LastIndexByte(raw, '#'); i >= 0 {
		raw = raw[i+1:]
	}
	return strings.TrimSpace(raw)
}

// MemoryHistory is a History backed by a slice of pushed fragments. It is
// used by hosts that only need to report what was pushed, and by tests.
type MemoryHistory struct {
	Entries  []string
	Scrolled int
	current  string
}

// NewMemoryHistory starts with the given fragment.
func NewMemoryHistory(fragment string) *MemoryHistory {
	return &MemoryHistory{current: fragment}
}

func (h *MemoryHistory) Fragment() string { return h.current }

// SetFragment changes the fragment without recording an entry, as a
// back/forward navigation does.
func (h *MemoryHistory) SetFragment(f string) { h.current = f }

func (h *MemoryHistory) Push(id string) {
	h.Entries = append(h.Entries, id)
	h.current = "#" + id
}

func (h *MemoryHistory) ScrollTop() { h.Scrolled++ }
