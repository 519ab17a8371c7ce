package emailsvc

import (
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/matrusri/standup/core"
)

var (
	// SentMessages collects everything "sent" by the console service so
	// tests can assert on notifications.
	SentMessages = make([]core.EmailMessage, 0)
	mu           sync.Mutex
)

type consoleService struct {
	defaultFromEmail string
	subjPrefix       string
	disableOutput    bool
}

var _ core.EmailService = (*consoleService)(nil)

func NewConsoleService(disableOutput ...bool) core.EmailService {
	var disable bool
	if len(disableOutput) > 0 {
		disable = disableOutput[0]
	}
	return &consoleService{
		defaultFromEmail: core.Conf.DefaultFromEmail,
		subjPrefix:       "[" + core.Conf.AppName + "] ",
		disableOutput:    disable,
	}
}

func (svc consoleService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		go svc.sendMessage(msg)
	}
}

func (svc consoleService) sendMessage(msg *core.EmailMessage) {
	if len(msg.To) == 0 || msg.BodyStr == "" {
		return
	}
	svc.send(*msg)
	mu.Lock()
	SentMessages = append(SentMessages, *msg)
	mu.Unlock()
}

func (svc consoleService) send(msg core.EmailMessage) {
	if svc.disableOutput {
		return
	}

	body := new(strings.Builder)
	fmt.Fprintf(body, "From: %s\n", svc.defaultFromEmail)
	fmt.Fprintf(body, "To: %s\n", formatAddresses(msg.To))
	if len(msg.Cc) > 0 {
		fmt.Fprintf(body, "Cc: %s\n", formatAddresses(msg.Cc))
	}
	fmt.Fprintf(body, "Date: %s\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(body, "Subject: %s%s\n\n", svc.subjPrefix, msg.Subject)
	body.WriteString(msg.BodyStr)

	log.Printf("sending email:\n%s\n", body.String())
}

func formatAddresses(addrs []mail.Address) string {
	strs := make([]string, len(addrs))
	for i, addr := range addrs {
		strs[i] = addr.String()
	}
	return strings.Join(strs, ", ")
}

// ClearSentMessages resets the captured outbox. Test use only.
func ClearSentMessages() {
	mu.Lock()
	defer mu.Unlock()
	SentMessages = SentMessages[:0]
}
