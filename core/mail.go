package core

import "net/mail"

type (
	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Subject string
		BodyStr string // text/plain content
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

// TechLeadAddresses resolves the configured tech lead notification list.
func (conf *Config) TechLeadAddresses() []mail.Address {
	addrs := make([]mail.Address, 0, len(conf.TechLeadEmails))
	for _, email := range conf.TechLeadEmails {
		addrs = append(addrs, mail.Address{Address: email})
	}
	return addrs
}
