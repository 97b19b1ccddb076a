package mailer

import (
	"errors"
	"net/mail"
	"strings"
)

// Message is one outbound email to a single recipient.
type Message struct {
	To       string
	Subject  string
	Body     string
	HTMLBody string
	// Template selects the HTML wrapper applied when HTMLBody is empty.
	Template string
	// Name is the greeting used by the welcome template.
	Name string
}

// Validate checks the recipient address.
func (m Message) Validate() error {
	to := strings.TrimSpace(m.To)
	if to == "" {
		return errors.New("recipient is required")
	}
	if _, err := envelopeAddress(to); err != nil {
		return errors.New("recipient " + to + " is not a valid address")
	}
	return nil
}

// envelopeAddress returns the bare addr-spec of raw, dropping any display
// name. MAIL FROM and RCPT TO only accept this form.
func envelopeAddress(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return addr.Address, nil
}

// Resolve returns the plain and HTML bodies to send. An explicit HTMLBody is
// used verbatim. Otherwise Body, or Placeholder when Body is empty, is
// wrapped in the selected template. The plain part is empty unless Body was
// given.
func (m Message) Resolve() (plain, html string, err error) {
	plain = m.Body
	if strings.TrimSpace(m.HTMLBody) != "" {
		return plain, m.HTMLBody, nil
	}
	text := m.Body
	if strings.TrimSpace(text) == "" {
		plain = ""
		text = Placeholder
	}
	name := m.Name
	if name == "" {
		name = recipientName(m.To)
	}
	data := templateData{Title: m.Subject, Message: text, Name: name}
	if plain == "" && strings.EqualFold(strings.TrimSpace(m.Template), TemplateWelcome) {
		// The welcome template carries its own greeting text.
		data.Message = ""
	}
	html, err = Render(m.Template, data)
	return plain, html, err
}

func recipientName(to string) string {
	if addr, err := mail.ParseAddress(to); err == nil {
		if addr.Name != "" {
			return addr.Name
		}
		to = addr.Address
	}
	if local, _, ok := strings.Cut(to, "@"); ok {
		return local
	}
	return to
}
