package library

import "sync"

// Modifiers describes the keyboard state of a pointer gesture, already
// classified by the presentation layer.
type Modifiers struct {
	Ctrl  bool // ctrl/cmd — toggle membership
	Shift bool // shift — range from anchor
}

// Selection tracks the set of selected asset ids plus the anchor used
// as the start point of range selection. Ordering questions (what lies
// "between" two items) are answered by the catalog order passed into
// each gesture, not by the selection itself.
type Selection struct {
	mu       sync.Mutex
	selected map[string]struct{}
	anchor   string
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{selected: make(map[string]struct{})}
}

// Click applies a single activation gesture on id given the current
// catalog order.
func (s *Selection) Click(order []string, id string, mods Modifiers) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case mods.Shift && s.anchor != "":
		s.rangeSelect(order, id)
	case mods.Ctrl:
		s.toggle(id)
	default:
		// Plain click, or shift-click with no anchor to extend from.
		s.selected = map[string]struct{}{id: {}}
		s.anchor = id
	}
}

// toggle flips membership of id. When the item leaves the selection
// the anchor is kept so a later shift-click can still extend from it.
func (s *Selection) toggle(id string) {
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	s.selected[id] = struct{}{}
	s.anchor = id
}

// rangeSelect replaces the selection with the contiguous run between
// the anchor and id in catalog order, inclusive. The anchor stays put.
func (s *Selection) rangeSelect(order []string, id string) {
	from, to := -1, -1
	for i, cur := range order {
		if cur == s.anchor {
			from = i
		}
		if cur == id {
			to = i
		}
	}
	if from == -1 || to == -1 {
		// Anchor fell out of the catalog; degrade to a plain click.
		s.selected = map[string]struct{}{id: {}}
		s.anchor = id
		return
	}
	if from > to {
		from, to = to, from
	}
	s.selected = make(map[string]struct{}, to-from+1)
	for _, cur := range order[from : to+1] {
		s.selected[cur] = struct{}{}
	}
}

// SelectAll selects every id in the catalog. The anchor is unchanged.
func (s *Selection) SelectAll(order []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]struct{}, len(order))
	for _, id := range order {
		s.selected[id] = struct{}{}
	}
}

// Clear empties the selection and drops the anchor.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]struct{})
	s.anchor = ""
}

// ReconcileWith intersects the selection with the ids that still exist
// in the catalog. An evicted anchor is dropped.
func (s *Selection) ReconcileWith(order []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	present := make(map[string]struct{}, len(order))
	for _, id := range order {
		present[id] = struct{}{}
	}
	for id := range s.selected {
		if _, ok := present[id]; !ok {
			delete(s.selected, id)
		}
	}
	if s.anchor != "" {
		if _, ok := present[s.anchor]; !ok {
			s.anchor = ""
		}
	}
}

// InOrder returns the selected ids in the order the catalog lists them.
func (s *Selection) InOrder(order []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.selected))
	for _, id := range order {
		if _, ok := s.selected[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selected[id]
	return ok
}

// Count returns the number of selected items.
func (s *Selection) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selected)
}

// Anchor returns the current range anchor, or "" if none.
func (s *Selection) Anchor() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anchor
}
