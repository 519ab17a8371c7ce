package assignment

import (
	"strings"

	"github.com/matrusri/standup/core"
)

type (
	// Store is the assignments table, append-and-list only.
	Store interface {
		Initialize() error
		// Append stamps Timestamp and writes a as the last row.
		Append(a Assignment) error
		Load() ([]Assignment, error)
	}

	Service struct {
		store Store
	}
)

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (svc *Service) Assign(na NewAssignment) error {
	return svc.store.Append(Assignment{
		AssignedBy: na.AssignedBy,
		Assignee:   na.Assignee,
		Task:       na.Task,
	})
}

func (svc *Service) QueryAll() ([]Assignment, error) {
	return svc.store.Load()
}

// QueryForAssignee filters assignments by assignee, case-insensitively.
func (svc *Service) QueryForAssignee(assignee string) ([]Assignment, error) {
	all, err := svc.store.Load()
	if err != nil {
		return nil, err
	}

	assignee = core.CleanString(assignee, true /* lower */)
	matches := make([]Assignment, 0, len(all))
	for _, a := range all {
		if strings.ToLower(strings.TrimSpace(a.Assignee)) == assignee {
			matches = append(matches, a)
		}
	}
	return matches, nil
}
