package models

import (
	"github.com/Leyinc1/manuelbest/internal/lib/optional"
	"github.com/lib/pq"
)

type Task struct {
	ID          int64          `db:"id" json:"id"`
	Content     string         `db:"content" json:"content"`
	Status      string         `db:"status" json:"status"`
	ProjectID   string         `db:"project_id" json:"projectId"`
	AssignedTo  *string        `db:"assigned_to" json:"assignedTo"`
	Description *string        `db:"description" json:"description"`
	Tags        pq.StringArray `db:"tags" json:"tags"`
}

type NewTask struct {
	ProjectID   string   `json:"projectId"`
	Content     string   `json:"content"`
	Status      string   `json:"status"`
	AssignedTo  *string  `json:"assignedTo"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
}

// TaskPatch is a JSON merge-patch over a task: omitted fields stay
// untouched, null clears nullable fields.
type TaskPatch struct {
	Content     optional.Field[string]   `json:"content"`
	Status      optional.Field[string]   `json:"status"`
	AssignedTo  optional.Field[string]   `json:"assignedTo"`
	Description optional.Field[string]   `json:"description"`
	Tags        optional.Field[[]string] `json:"tags"`
}

func (p TaskPatch) IsEmpty() bool {
	return !p.Content.Set && !p.Status.Set && !p.AssignedTo.Set &&
		!p.Description.Set && !p.Tags.Set
}
