package doubt

import (
	"errors"
	"fmt"

	"github.com/matrusri/standup/core"
)

var (
	// errors
	ErrNotFound = errors.New("doubt not found")
)

type (
	// Store is the pair of doubt tables (active and resolved), each
	// backed by its own CSV file. Reads are always fresh; mutating
	// calls rewrite the affected table whole.
	Store interface {
		Initialize() error
		// Append stamps Timestamp and writes d as the last active row.
		Append(d Doubt) error
		Load(status Status) ([]Doubt, error)
		// UpdateComment sets the Comment of the row(s) whose Timestamp
		// exactly equals key; silent no-op when nothing matches.
		UpdateComment(status Status, key, comment string) error
		// MoveToResolved moves the active row keyed by timestamp into
		// the resolved table. The resolved table is persisted before the
		// active one, so a crash in between duplicates the row rather
		// than losing it. Returns false when no active row matches.
		MoveToResolved(key string) (bool, error)
		Clear(status Status) error
	}

	Service struct {
		store   Store
		mailSvc core.EmailService
	}
)

func NewService(store Store, mailSvc core.EmailService) *Service {
	return &Service{store: store, mailSvc: mailSvc}
}

// Submit appends a new active doubt and notifies the tech leads.
func (svc *Service) Submit(nd NewDoubt) error {
	d := Doubt{
		Name:  nd.Name,
		Phone: nd.Phone,
		Body:  nd.Body,
	}
	if err := svc.store.Append(d); err != nil {
		return err
	}
	svc.notifyTechLeads(d)
	return nil
}

func (svc *Service) Query(status Status) ([]Doubt, error) {
	return svc.store.Load(status)
}

// Comment sets the tech lead's answer on the doubt keyed by timestamp.
// A miss is a silent no-op, mirroring the store contract.
func (svc *Service) Comment(status Status, timestamp, comment string) error {
	return svc.store.UpdateComment(status, timestamp, core.CleanString(comment))
}

// Resolve moves a doubt from the active to the resolved table.
// There is no way back.
func (svc *Service) Resolve(timestamp string) error {
	moved, err := svc.store.MoveToResolved(timestamp)
	if err != nil {
		return err
	}
	if !moved {
		return ErrNotFound
	}
	return nil
}

// Clear irreversibly truncates the given table to its header.
func (svc *Service) Clear(status Status) error {
	return svc.store.Clear(status)
}

func (svc *Service) notifyTechLeads(d Doubt) {
	to := core.Conf.TechLeadAddresses()
	if len(to) == 0 {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      to,
		Subject: fmt.Sprintf("[%s] New doubt from %s", core.Conf.AppName, d.Name),
		BodyStr: fmt.Sprintf("%s (%s) asks:\n\n%s", d.Name, d.Phone, d.Body),
	})
}
