// Package email sends staff notifications for new leads over SMTP.
package email

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/cdentertainment/site-api/config"
	"github.com/cdentertainment/site-api/internal/app/model"
)

var ErrNotConfigured = errors.New("email: not configured")

const boundary = "boundary-cd-entertainment"

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Service sends HTML mail through one SMTP relay.
type Service struct {
	cfg    config.EmailConfig
	server string
	auth   smtp.Auth
	send   sendFunc
}

func NewService(cfg config.EmailConfig) *Service {
	return &Service{
		cfg:    cfg,
		server: cfg.Host + ":" + cfg.Port,
		auth:   smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
		send:   smtp.SendMail,
	}
}

// IsConfigured mirrors the old site: host, user and password must all be set.
func (s *Service) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Port != "" && s.cfg.Username != "" &&
		s.cfg.Password != "" && s.cfg.From != "" && s.cfg.To != ""
}

// SendHTMLEmail sends a multipart message with a plain text fallback.
func (s *Service) SendHTMLEmail(to []string, subject, htmlBody string) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}

	from := s.cfg.From
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.From)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary)

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	fmt.Fprintf(&msg, "Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	fmt.Fprintf(&msg, "A new enquiry arrived. Open this email in an HTML-capable client for details.\r\n\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	fmt.Fprintf(&msg, "Content-Type: text/html; charset=UTF-8\r\n\r\n")
	fmt.Fprintf(&msg, "%s\r\n\r\n", htmlBody)
	fmt.Fprintf(&msg, "--%s--\r\n", boundary)

	return s.send(s.server, s.auth, s.cfg.From, to, msg.Bytes())
}

// SendLead notifies the configured staff inbox about a contact or intake submission.
func (s *Service) SendLead(event model.LeadEvent) error {
	subject, body, err := renderLead(event)
	if err != nil {
		return err
	}
	if err := s.SendHTMLEmail([]string{s.cfg.To}, subject, body); err != nil {
		return fmt.Errorf("email: send %s lead %d: %w", event.Kind, event.RecordID, err)
	}
	return nil
}

var leadTemplate = template.Must(template.New("lead").Parse(leadEmailTemplate))

func renderLead(event model.LeadEvent) (subject, body string, err error) {
	heading := "New Contact Form Submission"
	if event.Kind == model.LeadKindIntake {
		heading = "New Client Intake Form"
	}
	subject = fmt.Sprintf("%s from %s", heading, event.Name)

	data := struct {
		Heading   string
		Event     model.LeadEvent
		EventDate string
	}{Heading: heading, Event: event}
	if !event.EventDate.IsZero() {
		data.EventDate = event.EventDate.Format("January 2, 2006")
	}

	var buf bytes.Buffer
	if err := leadTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("email: render lead template: %w", err)
	}
	return subject, buf.String(), nil
}

const leadEmailTemplate = `<h2>{{.Heading}}</h2>
<p><strong>Name:</strong> {{.Event.Name}}</p>
{{- if .Event.Email}}
<p><strong>Email:</strong> {{.Event.Email}}</p>
{{- end}}
{{- if .Event.Phone}}
<p><strong>Phone:</strong> {{.Event.Phone}}</p>
{{- end}}
<p><strong>Event Type:</strong> {{if .Event.EventType}}{{.Event.EventType}}{{else}}Unknown{{end}}</p>
{{- if .EventDate}}
<p><strong>Event Date:</strong> {{.EventDate}}</p>
{{- end}}
{{- if .Event.Venue}}
<p><strong>Venue:</strong> {{.Event.Venue}}</p>
{{- end}}
{{- if .Event.Summary}}
<p><strong>Description:</strong></p>
<p>{{.Event.Summary}}</p>
{{- end}}
`
