package models

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Toggle returns the opposite sort order.
func (s SortOrder) Toggle() SortOrder {
	if s == SortDesc {
		return SortAsc
	}
	return SortDesc
}

// IsValid reports whether s is a known sort order.
func (s SortOrder) IsValid() bool {
	return s == SortAsc || s == SortDesc
}

// AllowedLimits are the page sizes the listing endpoints accept.
var AllowedLimits = []int{5, 10, 30, 50}

// IsAllowedLimit reports whether n is one of the accepted page sizes.
func IsAllowedLimit(n int) bool {
	for _, l := range AllowedLimits {
		if n == l {
			return true
		}
	}
	return false
}

// Pagination is one server-side page of entities plus the metadata describing
// its position within the full result set.
type Pagination[T any] struct {
	Limit      int       `json:"limit"`
	Page       int       `json:"page"`
	Sort       SortOrder `json:"sort"`
	TotalItems int       `json:"totalItems"`
	TotalPages int       `json:"totalPages"`
	Items      []T       `json:"items"`
}

// TotalPages computes ceil(totalItems/limit). A non-positive limit yields 0.
func TotalPages(totalItems, limit int) int {
	if limit <= 0 || totalItems <= 0 {
		return 0
	}
	return (totalItems + limit - 1) / limit
}
