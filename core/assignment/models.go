package assignment

import (
	"github.com/matrusri/standup/core"
)

// Assignment is one task handed to an intern by a tech lead or admin.
type Assignment struct {
	Timestamp  string `json:"timestamp"`
	AssignedBy string `json:"assigned_by"`
	Assignee   string `json:"assignee"`
	Task       string `json:"task"`
}

type NewAssignment struct {
	AssignedBy string `json:"assigned_by" validate:"required,max=50"`
	Assignee   string `json:"assignee" validate:"required,max=50"`
	Task       string `json:"task" validate:"required,max=2000"`
}

func (na *NewAssignment) Validate() error {
	na.AssignedBy = core.CleanString(na.AssignedBy)
	na.Assignee = core.CleanString(na.Assignee)
	na.Task = core.CleanString(na.Task)
	return core.Validate.Struct(na)
}
