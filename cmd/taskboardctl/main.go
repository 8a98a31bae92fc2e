// Command taskboardctl is a small terminal front-end over the backend API.
// It logs in with the credentials from the environment and pages through
// projects or tasks, wiring the same store and coordinator the views use.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/jecortes2304/simple-todo/alerts"
	"github.com/jecortes2304/simple-todo/client"
	"github.com/jecortes2304/simple-todo/logging"
	"github.com/jecortes2304/simple-todo/models"
	"github.com/jecortes2304/simple-todo/services"
	"github.com/jecortes2304/simple-todo/store"
)

func main() {
	logging.Init("taskboardctl", "logs/taskboardctl.log")

	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	var (
		limit     = flag.Int("limit", 10, "page size (5, 10, 30 or 50)")
		page      = flag.Int("page", 1, "page number")
		sortOrder = flag.String("sort", "asc", "sort order (asc or desc)")
		projectID = flag.Int("project", 0, "project scope for the tasks and delete-tasks commands")
		ids       = flag.String("ids", "", "comma separated task ids for the delete-tasks command")
		search    = flag.String("search", "", "client-side filter over the fetched page")
	)
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		fmt.Fprintln(os.Stderr, "usage: taskboardctl [flags] projects|tasks|delete-tasks|dashboard")
		os.Exit(2)
	}

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: API_BASE_URL is not set in the environment variables.")
	}

	tokens := client.NewTokenStore()
	api := client.New(baseURL, tokens)
	auth := services.NewAuthService(api, tokens)

	ctx := context.Background()
	login := models.LoginDto{
		Email:    os.Getenv("API_EMAIL"),
		Password: os.Getenv("API_PASSWORD"),
	}
	if _, err := auth.Login(ctx, login); err != nil {
		logging.Logger.Fatalf("Event ID: LOGIN_FAILED, Description: Login failed: %v", err)
	}

	notifier := &alerts.LogNotifier{Logger: logging.Logger}

	var err error
	switch command {
	case "projects":
		err = listProjects(ctx, api, *limit, *page, models.SortOrder(*sortOrder), *search)
	case "tasks":
		err = listTasks(ctx, api, *limit, *page, models.SortOrder(*sortOrder), *projectID, *search)
	case "delete-tasks":
		err = deleteTasks(ctx, api, notifier, *projectID, *ids)
	case "dashboard":
		err = showDashboard(ctx, api, models.SortOrder(*sortOrder))
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
		os.Exit(2)
	}
	if err != nil {
		logging.Logger.Fatalf("Event ID: COMMAND_FAILED, Description: Command %s failed: %v", command, err)
	}
}

func listProjects(ctx context.Context, api *client.Client, limit, page int, sort models.SortOrder, search string) error {
	svc := services.NewProjectService(api)

	collection := store.NewPagedCollection(func(ctx context.Context, q store.Query) (*models.Pagination[models.Project], error) {
		return svc.GetUserProjects(ctx, q.Limit, q.Page, q.Sort)
	})

	if err := collection.SetLimit(ctx, limit); err != nil {
		return err
	}
	if sort == models.SortDesc {
		if err := collection.ToggleSort(ctx); err != nil {
			return err
		}
	}
	if err := collection.SetPage(ctx, page); err != nil {
		return err
	}

	visible := store.FilterBy(collection.Visible(), search, func(p models.Project) string { return p.Name })
	if len(visible) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION\tTASKS")
	for _, project := range visible {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", project.ID, project.Name, project.Description, len(project.Tasks))
	}
	w.Flush()
	fmt.Printf("Page %d of %d (%d projects total)\n", collection.Page(), collection.TotalPages(), collection.TotalItems())
	return nil
}

func listTasks(ctx context.Context, api *client.Client, limit, page int, sort models.SortOrder, projectID int, search string) error {
	if projectID <= 0 {
		return fmt.Errorf("the tasks command needs -project")
	}
	svc := services.NewTaskService(api)

	collection := store.NewPagedCollection(func(ctx context.Context, q store.Query) (*models.Pagination[models.Task], error) {
		return svc.GetTasksByProject(ctx, q.Limit, q.Page, q.Sort, q.Scope)
	})

	if err := collection.SetLimit(ctx, limit); err != nil {
		return err
	}
	if sort == models.SortDesc {
		if err := collection.ToggleSort(ctx); err != nil {
			return err
		}
	}
	if err := collection.SetScope(ctx, projectID); err != nil {
		return err
	}
	if err := collection.SetPage(ctx, page); err != nil {
		return err
	}

	visible := store.FilterBy(collection.Visible(), search, func(t models.Task) string { return t.Title })
	if len(visible) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPROJECT")
	for _, task := range visible {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", task.ID, task.Title, task.Status, task.ProjectID)
	}
	w.Flush()
	fmt.Printf("Page %d of %d (%d tasks total)\n", collection.Page(), collection.TotalPages(), collection.TotalItems())
	return nil
}

// deleteTasks selects the given task IDs and runs the bulk delete flow:
// one concurrent delete per ID, unconditional selection clear, one refetch.
func deleteTasks(ctx context.Context, api *client.Client, notifier alerts.Notifier, projectID int, csv string) error {
	if projectID <= 0 {
		return fmt.Errorf("the delete-tasks command needs -project")
	}
	if csv == "" {
		return fmt.Errorf("the delete-tasks command needs -ids")
	}

	svc := services.NewTaskService(api)
	collection := store.NewPagedCollection(func(ctx context.Context, q store.Query) (*models.Pagination[models.Task], error) {
		return svc.GetTasksByProject(ctx, q.Limit, q.Page, q.Sort, q.Scope)
	})
	selection := store.NewSelection()
	coordinator := store.NewCoordinator(collection, selection, notifier)

	if err := collection.SetScope(ctx, projectID); err != nil {
		return err
	}
	for _, part := range strings.Split(csv, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("invalid task id %q", part)
		}
		if !selection.IsSelected(id) {
			selection.Toggle(id)
		}
	}

	failed, err := coordinator.DeleteSelected(ctx, func(ctx context.Context, id int) error {
		return svc.DeleteTask(ctx, id)
	}, "selected tasks deleted", "some tasks could not be deleted")
	if len(failed) > 0 {
		fmt.Printf("Failed to delete tasks: %v\n", failed)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d tasks. %d tasks remain in project %d.\n", len(strings.Split(csv, ","))-len(failed), collection.TotalItems(), projectID)
	return nil
}

func showDashboard(ctx context.Context, api *client.Client, sort models.SortOrder) error {
	svc := services.NewDashboardService(services.NewProjectService(api))
	dashboard, err := svc.Build(ctx, sort)
	if err != nil {
		return err
	}

	fmt.Println("Tasks per project:")
	for _, row := range dashboard.TasksPerProject {
		fmt.Printf("  %-40s %d\n", row.Name, row.Tasks)
	}
	fmt.Println("Tasks by status:")
	for _, row := range dashboard.StatusDistribution {
		fmt.Printf("  %-12s %d\n", row.Name, row.Value)
	}
	return nil
}
