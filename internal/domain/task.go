package domain

import (
	"slices"
	"time"
)

// Task is a to-do item. Recurrence is an opaque RRULE string.
type Task struct {
	ID         string     `json:"id,omitempty"`
	Title      string     `json:"title"`
	Notes      string     `json:"notes,omitempty"`
	Status     TaskStatus `json:"status"`
	Priority   Priority   `json:"priority"`
	Due        time.Time  `json:"due,omitzero"`
	Project    *Ref       `json:"project,omitempty"`
	Labels     []string   `json:"labels,omitempty"`
	Recurrence string     `json:"recurrence,omitempty"`
}

// NewTask returns a defaulted draft.
func NewTask() Task {
	return Task{Status: TaskTodo, Priority: PriorityMedium}
}

func (t Task) Key() string   { return t.ID }
func (t Task) Label() string { return t.Title }

func (t Task) Value(field string) any {
	switch field {
	case "id":
		return t.ID
	case "title":
		return t.Title
	case "status":
		return t.Status
	case "priority":
		return t.Priority
	case "due":
		return t.Due
	case "project", "project.name":
		if t.Project == nil {
			return ""
		}
		return t.Project.Name
	case "labels":
		return t.Labels
	case "recurrence":
		return t.Recurrence
	}
	return nil
}

func (t Task) Validate() error {
	v := ValidationError{}
	required(v, "title", t.Title)
	if _, ok := taskStatuses[t.Status]; !ok {
		v.Add("status", "is required")
	}
	if _, ok := priorities[t.Priority]; !ok {
		v.Add("priority", "is required")
	}
	return v.Err()
}

func (t Task) Clone() Task {
	if t.Project != nil {
		p := *t.Project
		t.Project = &p
	}
	t.Labels = slices.Clone(t.Labels)
	return t
}

// TaskFilter narrows task searches.
type TaskFilter struct {
	Status    TaskStatus `json:"status,omitempty"`
	Priority  Priority   `json:"priority,omitempty"`
	ProjectID string     `json:"projectId,omitempty"`
}

func (f TaskFilter) IsZero() bool { return f == TaskFilter{} }
