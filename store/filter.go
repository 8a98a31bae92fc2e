package store

import "strings"

// FilterBy returns the items whose key contains term, case-insensitively,
// preserving order. It only sees the current page: the match is bounded by
// the page size and never reaches the server. An empty term matches all.
func FilterBy[T any](items []T, term string, key func(T) string) []T {
	needle := strings.ToLower(term)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(key(item)), needle) {
			out = append(out, item)
		}
	}
	return out
}
