package models

import (
	"errors"
	"strings"
	"testing"
)

func TestStatusFromIDRoundTrip(t *testing.T) {
	for id := 1; id <= 5; id++ {
		status := StatusFromID(id)
		if !status.IsValid() {
			t.Errorf("StatusFromID(%d) = %s is not a valid status", id, status)
		}
		if status.ID() != id {
			t.Errorf("StatusFromID(%d).ID() = %d, expected %d", id, status.ID(), id)
		}
	}

	if StatusFromID(0) != StatusPending || StatusFromID(99) != StatusPending {
		t.Error("unknown status ids must fall back to pending")
	}
}

func TestTaskCreateDtoValidate(t *testing.T) {
	longTitle := strings.Repeat("t", 101)
	longDescription := strings.Repeat("d", 301)

	tests := []struct {
		name    string
		dto     TaskCreateDto
		wantErr bool
	}{
		{"valid", TaskCreateDto{Title: "Write docs", Description: "Document the paging flow"}, false},
		{"title at lower bound", TaskCreateDto{Title: "12345", Description: "1234567890"}, false},
		{"title too short", TaskCreateDto{Title: "abcd", Description: "long enough text"}, true},
		{"title too long", TaskCreateDto{Title: longTitle, Description: "long enough text"}, true},
		{"description too short", TaskCreateDto{Title: "Valid title", Description: "short"}, true},
		{"description too long", TaskCreateDto{Title: "Valid title", Description: longDescription}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.dto.Validate()
			if (err != nil) != test.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, test.wantErr)
			}
		})
	}
}

func TestTaskUpdateDtoValidateStatus(t *testing.T) {
	dto := TaskUpdateDto{
		Title:       "Valid title",
		Description: "Valid description here",
		Status:      TaskStatus("archived"),
	}
	if err := dto.Validate(); err == nil {
		t.Error("expected unknown status to be rejected")
	}

	dto.Status = StatusBlocked
	if err := dto.Validate(); err != nil {
		t.Errorf("Validate() returned error for valid update: %v", err)
	}
}

func TestCreateProjectDtoValidate(t *testing.T) {
	valid := CreateProjectDto{Name: "Board revamp", Description: "Rework the board layout"}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() returned error for valid project: %v", err)
	}

	invalid := CreateProjectDto{Name: "abc", Description: "Rework the board layout"}
	err := invalid.Validate()
	if err == nil {
		t.Fatal("expected error for short name")
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if vErr.Field != "name" {
		t.Errorf("expected failing field name, got %s", vErr.Field)
	}
}
