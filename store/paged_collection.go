// Package store implements the list-synchronization core shared by the
// project and task views: one server-side page of entities, the selection
// made over it, the client-side filter, and the coordinator reconciling
// mutations against the backend.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/jecortes2304/simple-todo/models"
)

// Entity is anything the store can page over.
type Entity interface {
	EntityID() int
}

// Query carries the paging parameters of a fetch. Scope narrows the listing
// to an owning context (the selected project for tasks); zero means unscoped.
type Query struct {
	Limit int
	Page  int
	Sort  models.SortOrder
	Scope int
}

// FetchFunc issues the read query against the transport collaborator. It
// either returns a complete page or an error; partial results do not exist.
type FetchFunc[T Entity] func(ctx context.Context, q Query) (*models.Pagination[T], error)

// ErrStaleResponse marks a fetch whose response arrived after a newer fetch
// was issued. The response is discarded and the store keeps the fresher state.
var ErrStaleResponse = errors.New("stale fetch response discarded")

const defaultLimit = 10

// PagedCollection is the single source of truth for the page of entities a
// view currently displays. All paging fields and the item slice are replaced
// atomically from the same fetch response; a failed fetch changes nothing.
type PagedCollection[T Entity] struct {
	mu    sync.Mutex
	fetch FetchFunc[T]

	items   []T
	pending []T

	page       int
	limit      int
	sort       models.SortOrder
	totalItems int
	totalPages int
	scope      int

	seq     uint64
	onApply func(visibleIDs []int)
}

func NewPagedCollection[T Entity](fetch FetchFunc[T]) *PagedCollection[T] {
	return &PagedCollection[T]{
		fetch: fetch,
		page:  1,
		limit: defaultLimit,
		sort:  models.SortAsc,
	}
}

// OnApply registers a hook invoked with the visible entity IDs every time a
// fetched page is applied. The coordinator uses it to prune the selection.
func (p *PagedCollection[T]) OnApply(fn func(visibleIDs []int)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onApply = fn
}

// SetPage requests page max(1, n) and refetches at the current limit and
// sort. Requesting the current page refetches as well.
func (p *PagedCollection[T]) SetPage(ctx context.Context, n int) error {
	p.mu.Lock()
	if n < 1 {
		n = 1
	}
	p.page = n
	p.mu.Unlock()
	return p.Fetch(ctx)
}

// SetLimit changes the page size and resets to page 1, so the view never
// points at a page that no longer exists under the new size.
func (p *PagedCollection[T]) SetLimit(ctx context.Context, n int) error {
	if !models.IsAllowedLimit(n) {
		return &models.ValidationError{Field: "limit", Reason: "page size not allowed"}
	}
	p.mu.Lock()
	p.limit = n
	p.page = 1
	p.mu.Unlock()
	return p.Fetch(ctx)
}

// ToggleSort flips the sort order and refetches.
func (p *PagedCollection[T]) ToggleSort(ctx context.Context) error {
	p.mu.Lock()
	p.sort = p.sort.Toggle()
	p.mu.Unlock()
	return p.Fetch(ctx)
}

// SetScope switches the owning context, resets to page 1 and refetches.
func (p *PagedCollection[T]) SetScope(ctx context.Context, scope int) error {
	p.mu.Lock()
	p.scope = scope
	p.page = 1
	p.mu.Unlock()
	return p.Fetch(ctx)
}

// Fetch issues the read query at the current paging parameters. On success
// the items and all five paging fields are replaced atomically from the
// response and pending entries are dropped; on failure the state is left
// untouched. Each fetch carries a sequence number: a response that is no
// longer the newest issued is discarded with ErrStaleResponse.
func (p *PagedCollection[T]) Fetch(ctx context.Context) error {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	q := Query{Limit: p.limit, Page: p.page, Sort: p.sort, Scope: p.scope}
	p.mu.Unlock()

	page, err := p.fetch(ctx, q)
	if err != nil {
		return err
	}

	p.mu.Lock()
	if seq != p.seq {
		p.mu.Unlock()
		return ErrStaleResponse
	}
	p.items = page.Items
	p.pending = nil
	p.page = page.Page
	p.limit = page.Limit
	p.sort = page.Sort
	p.totalItems = page.TotalItems
	p.totalPages = page.TotalPages
	hook := p.onApply
	ids := p.visibleIDsLocked()
	p.mu.Unlock()

	if hook != nil {
		hook(ids)
	}
	return nil
}

// AppendPending adds an optimistic entry shown alongside the confirmed items
// until the next applied fetch replaces it with the authoritative list.
func (p *PagedCollection[T]) AppendPending(item T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, item)
}

// Replace swaps the confirmed items without touching the paging metadata.
// Used to drop deleted entities locally while the post-delete refetch is in
// flight.
func (p *PagedCollection[T]) Replace(items []T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = append([]T(nil), items...)
}

// Items returns the confirmed items of the current page.
func (p *PagedCollection[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]T(nil), p.items...)
}

// Visible returns the confirmed items followed by any pending entries.
func (p *PagedCollection[T]) Visible() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, 0, len(p.items)+len(p.pending))
	out = append(out, p.items...)
	return append(out, p.pending...)
}

// VisibleIDs returns the IDs of every visible entity.
func (p *PagedCollection[T]) VisibleIDs() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visibleIDsLocked()
}

func (p *PagedCollection[T]) visibleIDsLocked() []int {
	ids := make([]int, 0, len(p.items)+len(p.pending))
	for _, item := range p.items {
		ids = append(ids, item.EntityID())
	}
	for _, item := range p.pending {
		ids = append(ids, item.EntityID())
	}
	return ids
}

func (p *PagedCollection[T]) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

func (p *PagedCollection[T]) Limit() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.limit
}

func (p *PagedCollection[T]) Sort() models.SortOrder {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sort
}

func (p *PagedCollection[T]) TotalItems() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalItems
}

func (p *PagedCollection[T]) TotalPages() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalPages
}

func (p *PagedCollection[T]) Scope() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scope
}

// Empty reports whether the current page holds nothing visible. An empty
// page is a regular state, not an error.
func (p *PagedCollection[T]) Empty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items) == 0 && len(p.pending) == 0
}
