package services

import (
	"context"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/jecortes2304/simple-todo/models"
)

func TestTaskLifecycle(t *testing.T) {
	api, store := newBackend(t)
	project := store.SeedProject("Task fixtures", "Holds the lifecycle tasks")
	svc := NewTaskService(api)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, models.TaskCreateDto{
		Title:       "Wire the paging store",
		Description: "Connect the list view to the collection store",
	}, project.ID)
	if err != nil {
		t.Fatalf("CreateTask() returned error: %v", err)
	}
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, project.ID, created.ProjectID)

	updated, err := svc.UpdateTask(ctx, models.TaskUpdateDto{
		Title:       "Wire the paging store",
		Description: "Connect the list view to the collection store",
		Status:      models.StatusOngoing,
	}, created.ID)
	if err != nil {
		t.Fatalf("UpdateTask() returned error: %v", err)
	}
	assert.Equal(t, models.StatusOngoing, updated.Status)
	assert.Equal(t, models.StatusOngoing.ID(), updated.StatusID)

	page, err := svc.GetTasksByProject(ctx, 10, 1, models.SortAsc, project.ID)
	if err != nil {
		t.Fatalf("GetTasksByProject() returned error: %v", err)
	}
	assert.Equal(t, 1, page.TotalItems)
	assert.Equal(t, created.ID, page.Items[0].ID)
}

func TestGetTasksScopedByProject(t *testing.T) {
	api, store := newBackend(t)
	first := store.SeedProject("First board", "Tasks of the first board")
	second := store.SeedProject("Second board", "Tasks of the second board")
	store.SeedTask(first.ID, "Only in first", "Belongs to the first project", models.StatusPending)
	store.SeedTask(second.ID, "Only in second", "Belongs to the second project", models.StatusPending)
	svc := NewTaskService(api)

	page, err := svc.GetTasksByProject(context.Background(), 10, 1, models.SortAsc, second.ID)
	if err != nil {
		t.Fatalf("GetTasksByProject() returned error: %v", err)
	}
	assert.Equal(t, 1, len(page.Items))
	assert.Equal(t, "Only in second", page.Items[0].Title)
}

func TestDeleteTasksBulk(t *testing.T) {
	api, store := newBackend(t)
	project := store.SeedProject("Bulk board", "Board for bulk deletion")
	var ids []int
	for i := 0; i < 3; i++ {
		task := store.SeedTask(project.ID, "Disposable task", "A task created to be deleted", models.StatusPending)
		ids = append(ids, task.ID)
	}
	svc := NewTaskService(api)
	ctx := context.Background()

	if err := svc.DeleteTasks(ctx, ids[:2]); err != nil {
		t.Fatalf("DeleteTasks() returned error: %v", err)
	}

	page, err := svc.GetTasksByProject(ctx, 10, 1, models.SortAsc, project.ID)
	if err != nil {
		t.Fatalf("GetTasksByProject() returned error: %v", err)
	}
	assert.Equal(t, 1, page.TotalItems)
	assert.Equal(t, ids[2], page.Items[0].ID)
}

func TestCreateTaskUnderUnknownProject(t *testing.T) {
	api, _ := newBackend(t)
	svc := NewTaskService(api)

	_, err := svc.CreateTask(context.Background(), models.TaskCreateDto{
		Title:       "Orphan task",
		Description: "This task has no project to live in",
	}, 999)
	if err == nil {
		t.Fatal("expected error for unknown project")
	}
}
