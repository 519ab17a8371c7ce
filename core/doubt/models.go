package doubt

import (
	"github.com/matrusri/standup/core"
)

// Status names the table a doubt currently lives in. A doubt is in
// exactly one of the two at any time.
type Status string

const (
	StatusActive   Status = "active"
	StatusResolved Status = "resolved"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusResolved
}

// Doubt is one intern question. Timestamp doubles as the row key.
// The Active -> Resolved transition is one-way and terminal.
type Doubt struct {
	Timestamp string `json:"timestamp"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Body      string `json:"doubt"`
	Comment   string `json:"comment,omitempty"`
}

// HasComment reports whether a tech lead has answered; the empty string
// is the "unanswered" sentinel.
func (d Doubt) HasComment() bool {
	return d.Comment != ""
}

type NewDoubt struct {
	Name  string `json:"name" validate:"required,max=50"`
	Phone string `json:"phone" validate:"required,phone"`
	Body  string `json:"doubt" validate:"required,max=5000"`
}

func (nd *NewDoubt) Validate() error {
	nd.Name = core.CleanString(nd.Name)
	nd.Phone = core.CleanString(nd.Phone)
	nd.Body = core.CleanString(nd.Body)
	return core.Validate.Struct(nd)
}
