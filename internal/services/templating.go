package services

import (
	"Keyo/internal/notifications"
	"Keyo/internal/templates"
	"bytes"
	"fmt"
	htmlTemplate "html/template"
	textTemplate "text/template"
)

type RenderedEmail struct {
	Subject string
	Html    string
	Text    string
}

//go:generate mockgen -destination=./mocks/templateservice.go -package=mocks Keyo/internal/services TemplateService
type TemplateService interface {
	RenderNotificationEmail(data templates.NotificationEmailData) (*RenderedEmail, error)
}

type templateService struct {
	html *htmlTemplate.Template
	text *textTemplate.Template
}

// NewTemplateService parses the embedded templates and panics when they are broken.
func NewTemplateService() TemplateService {
	html := htmlTemplate.Must(htmlTemplate.New("notification_email.html").
		Funcs(templates.Funcs()).
		Parse(templates.NotificationEmailHtmlTemplate))

	text := textTemplate.Must(textTemplate.New("notification_email.txt").
		Funcs(templates.Funcs()).
		Parse(templates.NotificationEmailTextTemplate))

	return &templateService{
		html: html,
		text: text,
	}
}

func (s *templateService) RenderNotificationEmail(data templates.NotificationEmailData) (*RenderedEmail, error) {
	data = data.WithDefaults()

	var htmlBuf bytes.Buffer
	err := s.html.Execute(&htmlBuf, data)
	if err != nil {
		return nil, fmt.Errorf("executing html template: %w", err)
	}

	var textBuf bytes.Buffer
	err = s.text.Execute(&textBuf, data)
	if err != nil {
		return nil, fmt.Errorf("executing text template: %w", err)
	}

	return &RenderedEmail{
		Subject: notifications.EmailSubject(data.NotificationType, data.Title),
		Html:    htmlBuf.String(),
		Text:    textBuf.String(),
	}, nil
}
