package queries

import (
	"Keyo/internal/authentication/permissions"
	"Keyo/internal/behaviours"
	"Keyo/internal/events"
	"Keyo/internal/middlewares"
	"Keyo/internal/repositories"
	"Keyo/internal/services"
	"context"
	"fmt"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

// previewRecipientName greets profiles the directory does not know yet.
const previewRecipientName = "there"

// RenderNotificationEmail previews the email a notification would send.
type RenderNotificationEmail struct {
	ProfileId      uuid.UUID
	NotificationId uuid.UUID
}

func (a RenderNotificationEmail) LogRequest() bool {
	return true
}

func (a RenderNotificationEmail) LogResponse() bool {
	return false
}

func (a RenderNotificationEmail) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return behaviours.OwnerOrPermission(ctx, a.ProfileId, permissions.NotificationManageAny), nil
}

func (a RenderNotificationEmail) GetRequestName() string {
	return "RenderNotificationEmail"
}

type RenderNotificationEmailResponse struct {
	Subject string
	Html    string
	Text    string
}

func HandleRenderNotificationEmail(ctx context.Context, query RenderNotificationEmail) (*RenderNotificationEmailResponse, error) {
	scope := middlewares.GetScope(ctx)

	notificationRepository := ioc.GetDependency[repositories.NotificationRepository](scope)
	notification, err := notificationRepository.Single(ctx, repositories.NewNotificationFilter().
		Id(query.NotificationId).
		RecipientId(query.ProfileId))
	if err != nil {
		return nil, fmt.Errorf("getting notification: %w", err)
	}

	profileRepository := ioc.GetDependency[repositories.ProfileRepository](scope)
	profile, err := profileRepository.First(ctx, repositories.NewProfileFilter().Id(query.ProfileId))
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}

	recipientName := previewRecipientName
	if profile != nil {
		recipientName = profile.Name()
	}

	templateService := ioc.GetDependency[services.TemplateService](scope)
	rendered, err := templateService.RenderNotificationEmail(events.EmailData(notification, recipientName))
	if err != nil {
		return nil, fmt.Errorf("rendering email: %w", err)
	}

	return &RenderNotificationEmailResponse{
		Subject: rendered.Subject,
		Html:    rendered.Html,
		Text:    rendered.Text,
	}, nil
}
