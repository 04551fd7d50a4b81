package services

import (
	"Keyo/internal/config"
	"Keyo/internal/logging"
	"fmt"

	gomail "gopkg.in/mail.v2"
)

//go:generate mockgen -destination=./mocks/mailservice.go -package=mocks Keyo/internal/services MailService
type MailService interface {
	Send(msgs ...*gomail.Message) error
}

type mailService struct {
	dialer *gomail.Dialer
}

func NewMailService(mc config.MailConfig) MailService {
	return &mailService{
		dialer: gomail.NewDialer(mc.Host, mc.Port, mc.Username, mc.Password),
	}
}

func (s *mailService) Send(msgs ...*gomail.Message) error {
	if err := s.dialer.DialAndSend(msgs...); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}

	return nil
}

type noopMailService struct {
}

// NewNoopMailService logs the recipients instead of sending.
func NewNoopMailService() MailService {
	return &noopMailService{}
}

func (s *noopMailService) Send(msgs ...*gomail.Message) error {
	for _, message := range msgs {
		logging.Logger.Infow("mail delivery disabled, dropping message",
			"to", message.GetHeader("To"),
			"subject", message.GetHeader("Subject"))
	}
	return nil
}

// NewNotificationMail builds a multipart message with a plain text body and an html alternative.
func NewNotificationMail(to string, displayName string, subject string, htmlBody string, textBody string) *gomail.Message {
	mail := gomail.NewMessage()
	mail.SetAddressHeader("From", config.C.Mail.FromAddress, config.C.Mail.FromName)
	mail.SetAddressHeader("To", to, displayName)
	mail.SetHeader("Subject", subject)
	mail.SetBody("text/plain", textBody)
	mail.AddAlternative("text/html", htmlBody)
	return mail
}
