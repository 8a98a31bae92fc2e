package store

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/jecortes2304/simple-todo/models"
)

func projectName(p models.Project) string { return p.Name }

func TestFilterByMatchesSubstringCaseInsensitively(t *testing.T) {
	items := []models.Project{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Beta"},
	}

	tests := []struct {
		term string
		want []int
	}{
		{"alp", []int{1}},
		{"ALP", []int{1}},
		{"a", []int{1, 2}},
		{"eta", []int{2}},
		{"", []int{1, 2}},
		{"gamma", nil},
	}

	for _, test := range tests {
		got := FilterBy(items, test.term, projectName)
		var ids []int
		for _, p := range got {
			ids = append(ids, p.ID)
		}
		assert.Equal(t, test.want, ids)
	}
}

func TestFilterByIsPureAndOrderPreserving(t *testing.T) {
	items := []models.Project{
		{ID: 3, Name: "task runner"},
		{ID: 1, Name: "Tasks"},
		{ID: 2, Name: "backlog"},
	}

	first := FilterBy(items, "task", projectName)
	second := FilterBy(items, "task", projectName)

	assert.Equal(t, first, second)
	assert.Equal(t, 3, first[0].ID)
	assert.Equal(t, 1, first[1].ID)

	// The input is never mutated.
	assert.Equal(t, 3, items[0].ID)
	assert.Equal(t, 3, len(items))
}
