package services

import (
	"context"

	"github.com/jecortes2304/simple-todo/models"
)

// Dashboard summarizes the user's projects and the status distribution of
// their tasks.
type Dashboard struct {
	TasksPerProject    []models.ProjectData
	StatusDistribution []models.TaskStatusData
}

type DashboardService struct {
	projects *ProjectService
}

func NewDashboardService(projects *ProjectService) *DashboardService {
	return &DashboardService{projects: projects}
}

// Build walks every page of the user's projects and aggregates the dashboard
// figures client-side, the way the dashboard view derives its charts.
func (s *DashboardService) Build(ctx context.Context, sort models.SortOrder) (*Dashboard, error) {
	const limit = 50

	var all []models.Project
	for page := 1; ; page++ {
		result, err := s.projects.GetUserProjects(ctx, limit, page, sort)
		if err != nil {
			return nil, err
		}
		all = append(all, result.Items...)
		if page >= result.TotalPages {
			break
		}
	}

	dashboard := &Dashboard{}
	statusCounts := make(map[models.TaskStatus]int)
	for _, project := range all {
		dashboard.TasksPerProject = append(dashboard.TasksPerProject, models.ProjectData{
			Name:  project.Name,
			Tasks: len(project.Tasks),
		})
		for _, task := range project.Tasks {
			statusCounts[models.StatusFromID(task.StatusID)]++
		}
	}

	// Stable chart order regardless of map iteration.
	for _, status := range []models.TaskStatus{
		models.StatusPending,
		models.StatusOngoing,
		models.StatusCompleted,
		models.StatusBlocked,
		models.StatusCancelled,
	} {
		if count := statusCounts[status]; count > 0 {
			dashboard.StatusDistribution = append(dashboard.StatusDistribution, models.TaskStatusData{
				Name:  status,
				Value: count,
			})
		}
	}
	return dashboard, nil
}
