package report

import (
	"github.com/matrusri/standup/core"
)

// Teams available in the submission form. Free text is still accepted by
// older rows; new submissions must pick one of these (or none).
var Teams = []string{"Web", "Mobile", "Data", "DevOps"}

// Report is one standup submission. Timestamp doubles as the row key;
// collisions are possible for rows created within the same second.
type Report struct {
	Timestamp string `json:"timestamp"`
	Date      string `json:"date"`
	Team      string `json:"team,omitempty"`
	Username  string `json:"username"`
	Body      string `json:"report"`
	Comment   string `json:"comment,omitempty"`
}

// HasComment reports whether an admin has commented; the empty string is
// the "unanswered" sentinel.
func (r Report) HasComment() bool {
	return r.Comment != ""
}

type NewReport struct {
	Username string `json:"username" validate:"required,max=50"`
	Team     string `json:"team" validate:"omitempty,team"`
	Body     string `json:"report" validate:"required,max=5000"`
}

func (nr *NewReport) Validate() error {
	nr.Username = core.CleanString(nr.Username)
	nr.Team = core.CleanString(nr.Team)
	nr.Body = core.CleanString(nr.Body)
	return core.Validate.Struct(nr)
}

// Stats summarizes today's submissions for the admin panel.
type Stats struct {
	Date    string   `json:"date"`
	Count   int      `json:"count"`
	Reports []Report `json:"reports"`
}
