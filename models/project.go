package models

import "time"

type Project struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Tasks       []Task    `json:"tasks"`
}

func (p Project) EntityID() int { return p.ID }

type CreateProjectDto struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d CreateProjectDto) Validate() error {
	if err := validateLength("name", d.Name, TitleMinLen, TitleMaxLen); err != nil {
		return err
	}
	return validateLength("description", d.Description, DescriptionMinLen, DescriptionMaxLen)
}

type UpdateProjectDto struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d UpdateProjectDto) Validate() error {
	if err := validateLength("name", d.Name, TitleMinLen, TitleMaxLen); err != nil {
		return err
	}
	return validateLength("description", d.Description, DescriptionMinLen, DescriptionMaxLen)
}
