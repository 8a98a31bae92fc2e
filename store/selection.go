package store

import "sort"

// Selection is the set of entity IDs marked for a bulk action. It is scoped
// to the current fetch cycle of a single view and is not safe for concurrent
// use; the owning view mutates it from one goroutine.
type Selection struct {
	ids map[int]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[int]struct{})}
}

// Toggle adds id if absent and removes it if present.
func (s *Selection) Toggle(id int) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

func (s *Selection) IsSelected(id int) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int { return len(s.ids) }

// IDs returns the selected IDs in ascending order.
func (s *Selection) IDs() []int {
	out := make([]int, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = make(map[int]struct{})
}

// Prune drops every selected ID that is not in visible, keeping the
// selection consistent with the page on display.
func (s *Selection) Prune(visible []int) {
	keep := make(map[int]struct{}, len(visible))
	for _, id := range visible {
		keep[id] = struct{}{}
	}
	for id := range s.ids {
		if _, ok := keep[id]; !ok {
			delete(s.ids, id)
		}
	}
}
