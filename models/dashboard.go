package models

// TaskStatusData is one slice of the status distribution chart.
type TaskStatusData struct {
	Name  TaskStatus `json:"name"`
	Value int        `json:"value"`
}

// ProjectData is one bar of the tasks-per-project chart.
type ProjectData struct {
	Name  string `json:"name"`
	Tasks int    `json:"tasks"`
}
