package templates

import (
	"Keyo/internal/notifications"
	_ "embed"
)

//go:embed notification_email.html
var NotificationEmailHtmlTemplate string

//go:embed notification_email.txt
var NotificationEmailTextTemplate string

type NotificationEmailData struct {
	Title            string
	RecipientName    string
	Message          string
	NotificationType notifications.Type
	ClickUrl         string
	AppName          string
	AppUrl           string
}

// WithDefaults points a missing click URL at the app itself.
func (d NotificationEmailData) WithDefaults() NotificationEmailData {
	if d.ClickUrl == "" {
		d.ClickUrl = d.AppUrl
	}
	return d
}

// Funcs are the presentation helpers available to the notification templates.
func Funcs() map[string]any {
	return map[string]any{
		"icon":  notifications.Icon,
		"label": notifications.Label,
		"cta":   notifications.CallToAction,
	}
}
