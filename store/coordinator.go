package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/jecortes2304/simple-todo/alerts"
)

// MutationKind distinguishes the three tracked mutation flows.
type MutationKind int

const (
	MutationCreate MutationKind = iota
	MutationUpdate
	MutationDelete
)

func (k MutationKind) String() string {
	switch k {
	case MutationCreate:
		return "create"
	case MutationUpdate:
		return "update"
	case MutationDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// MutationState is the lifecycle of one mutation kind.
type MutationState int

const (
	StateIdle MutationState = iota
	StateSubmitting
	StateCommitted
	StateFailed
)

func (s MutationState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateCommitted:
		return "committed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Coordinator sequences create, update and delete calls against the backend
// and reconciles the paged collection afterwards. The policy is
// refetch-over-patch: every committed mutation re-requests the current page
// instead of patching the mutated record locally.
type Coordinator[T Entity] struct {
	store     *PagedCollection[T]
	selection *Selection
	alerts    alerts.Notifier

	mu     sync.Mutex
	states map[MutationKind]MutationState
}

func NewCoordinator[T Entity](collection *PagedCollection[T], selection *Selection, notifier alerts.Notifier) *Coordinator[T] {
	c := &Coordinator[T]{
		store:     collection,
		selection: selection,
		alerts:    notifier,
		states: map[MutationKind]MutationState{
			MutationCreate: StateIdle,
			MutationUpdate: StateIdle,
			MutationDelete: StateIdle,
		},
	}
	collection.OnApply(func(visibleIDs []int) {
		selection.Prune(visibleIDs)
	})
	return c
}

// State returns the lifecycle state of the given mutation kind.
func (c *Coordinator[T]) State(kind MutationKind) MutationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.states[kind]
}

// Ready reports whether a new mutation of the given kind may start: any
// state but an in-flight submission allows resubmission.
func (c *Coordinator[T]) Ready(kind MutationKind) bool {
	return c.State(kind) != StateSubmitting
}

func (c *Coordinator[T]) setState(kind MutationKind, state MutationState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[kind] = state
}

// Create runs a create call. On commit the created entity is appended as a
// pending entry so the view shows it immediately, then the current page is
// refetched and the authoritative list replaces it. On failure the store is
// untouched and a single error alert is raised.
func (c *Coordinator[T]) Create(ctx context.Context, call func(ctx context.Context) (*T, error), successMsg string) error {
	c.setState(MutationCreate, StateSubmitting)

	created, err := call(ctx)
	if err != nil {
		c.fail(MutationCreate, err)
		return err
	}

	c.store.AppendPending(*created)
	c.setState(MutationCreate, StateCommitted)
	c.alerts.Success(successMsg)
	return c.refetch(ctx)
}

// Update runs an update call and refetches on commit.
func (c *Coordinator[T]) Update(ctx context.Context, call func(ctx context.Context) (*T, error), successMsg string) error {
	c.setState(MutationUpdate, StateSubmitting)

	if _, err := call(ctx); err != nil {
		c.fail(MutationUpdate, err)
		return err
	}

	c.setState(MutationUpdate, StateCommitted)
	c.alerts.Success(successMsg)
	return c.refetch(ctx)
}

// Delete runs a single delete call and refetches on commit.
func (c *Coordinator[T]) Delete(ctx context.Context, call func(ctx context.Context) error, successMsg string) error {
	c.setState(MutationDelete, StateSubmitting)

	if err := call(ctx); err != nil {
		c.fail(MutationDelete, err)
		return err
	}

	c.setState(MutationDelete, StateCommitted)
	c.alerts.Success(successMsg)
	return c.refetch(ctx)
}

// DeleteSelected deletes every selected entity, dispatching one call per ID
// concurrently and waiting for all of them to settle before reconciling.
// The selection is cleared whatever the individual outcomes; the IDs whose
// delete failed are returned so the caller can offer a retry. At most one
// failure alert is raised per invocation.
func (c *Coordinator[T]) DeleteSelected(ctx context.Context, call func(ctx context.Context, id int) error, successMsg, failureMsg string) ([]int, error) {
	ids := c.selection.IDs()
	if len(ids) == 0 {
		return nil, nil
	}

	c.setState(MutationDelete, StateSubmitting)

	var wg sync.WaitGroup
	outcomes := make([]error, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i, id int) {
			defer wg.Done()
			outcomes[i] = call(ctx, id)
		}(i, id)
	}
	wg.Wait()

	var failed []int
	for i, err := range outcomes {
		if err != nil {
			failed = append(failed, ids[i])
		}
	}

	// Drop the deleted entities locally so the view reflects the bulk
	// action before the refetch lands.
	deleted := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if containsID(failed, id) {
			continue
		}
		deleted[id] = struct{}{}
	}
	var remaining []T
	for _, item := range c.store.Items() {
		if _, gone := deleted[item.EntityID()]; !gone {
			remaining = append(remaining, item)
		}
	}
	c.store.Replace(remaining)

	c.selection.Clear()

	var err error
	if len(failed) > 0 {
		err = fmt.Errorf("%d of %d delete requests failed", len(failed), len(ids))
		c.setState(MutationDelete, StateFailed)
		c.alerts.Error(failureMsg)
	} else {
		c.setState(MutationDelete, StateCommitted)
		c.alerts.Success(successMsg)
	}

	if refetchErr := c.refetch(ctx); refetchErr != nil && err == nil {
		err = refetchErr
	}
	return failed, err
}

func (c *Coordinator[T]) fail(kind MutationKind, err error) {
	c.setState(kind, StateFailed)
	c.alerts.Error(err.Error())
}

func (c *Coordinator[T]) refetch(ctx context.Context) error {
	if err := c.store.Fetch(ctx); err != nil && err != ErrStaleResponse {
		c.alerts.Error(err.Error())
		return err
	}
	return nil
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
