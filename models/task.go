package models

import "time"

type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusOngoing   TaskStatus = "ongoing"
	StatusCompleted TaskStatus = "completed"
	StatusBlocked   TaskStatus = "blocked"
	StatusCancelled TaskStatus = "cancelled"
)

// StatusFromID maps the numeric status identifier used by the backend to its
// named status. Unknown identifiers fall back to pending.
func StatusFromID(id int) TaskStatus {
	switch id {
	case 1:
		return StatusPending
	case 2:
		return StatusOngoing
	case 3:
		return StatusCompleted
	case 4:
		return StatusBlocked
	case 5:
		return StatusCancelled
	default:
		return StatusPending
	}
}

// ID returns the numeric identifier of a status, the inverse of
// StatusFromID. Unknown statuses map to pending's identifier.
func (s TaskStatus) ID() int {
	switch s {
	case StatusOngoing:
		return 2
	case StatusCompleted:
		return 3
	case StatusBlocked:
		return 4
	case StatusCancelled:
		return 5
	default:
		return 1
	}
}

// IsValid reports whether s is one of the known task statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusOngoing, StatusCompleted, StatusBlocked, StatusCancelled:
		return true
	}
	return false
}

type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	StatusID    int        `json:"statusId"`
	UserID      int        `json:"userId"`
	ProjectID   int        `json:"projectId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (t Task) EntityID() int { return t.ID }

type TaskCreateDto struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate applies the form bounds checked before any create request is sent.
func (d TaskCreateDto) Validate() error {
	if err := validateLength("title", d.Title, TitleMinLen, TitleMaxLen); err != nil {
		return err
	}
	return validateLength("description", d.Description, DescriptionMinLen, DescriptionMaxLen)
}

type TaskUpdateDto struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
}

func (d TaskUpdateDto) Validate() error {
	if err := validateLength("title", d.Title, TitleMinLen, TitleMaxLen); err != nil {
		return err
	}
	if err := validateLength("description", d.Description, DescriptionMinLen, DescriptionMaxLen); err != nil {
		return err
	}
	if !d.Status.IsValid() {
		return &ValidationError{Field: "status", Reason: "unknown task status " + string(d.Status)}
	}
	return nil
}
