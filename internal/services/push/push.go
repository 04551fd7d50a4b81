package push

import (
	"Keyo/internal/config"
	"Keyo/internal/logging"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const messagingScope = "https://www.googleapis.com/auth/firebase.messaging"

// ErrUnregisteredToken means the device token is gone and should be deactivated.
var ErrUnregisteredToken = errors.New("push token is no longer registered")

type Message struct {
	Token    string
	Title    string
	Body     string
	Priority string
	Data     map[string]string
}

//go:generate mockgen -destination=./mocks/service.go -package=mocks Keyo/internal/services/push Service
type Service interface {
	Send(ctx context.Context, message Message) error
}

type fcmService struct {
	client    *http.Client
	endpoint  string
	projectId string
}

// NewFcmService authenticates against FCM HTTP v1 with a service account.
func NewFcmService(ctx context.Context, pc config.PushConfig) (Service, error) {
	credentialsJson := []byte(pc.CredentialsJson)
	if len(credentialsJson) == 0 {
		content, err := os.ReadFile(pc.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("reading push credentials: %w", err)
		}
		credentialsJson = content
	}

	credentials, err := google.CredentialsFromJSON(ctx, credentialsJson, messagingScope)
	if err != nil {
		return nil, fmt.Errorf("parsing push credentials: %w", err)
	}

	return newFcmService(oauth2.NewClient(ctx, credentials.TokenSource), pc.Endpoint, pc.ProjectId), nil
}

func newFcmService(client *http.Client, endpoint string, projectId string) *fcmService {
	return &fcmService{
		client:    client,
		endpoint:  endpoint,
		projectId: projectId,
	}
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmAndroidConfig struct {
	Priority string `json:"priority"`
}

type fcmApnsConfig struct {
	Headers map[string]string `json:"headers"`
}

type fcmMessage struct {
	Token        string            `json:"token"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
	Android      fcmAndroidConfig  `json:"android"`
	Apns         fcmApnsConfig     `json:"apns"`
}

type fcmRequest struct {
	Message fcmMessage `json:"message"`
}

type fcmErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
		Details []struct {
			Type      string `json:"@type"`
			ErrorCode string `json:"errorCode"`
		} `json:"details"`
	} `json:"error"`
}

func (r fcmErrorResponse) unregistered() bool {
	if r.Error.Status == "NOT_FOUND" {
		return true
	}

	for _, detail := range r.Error.Details {
		if detail.ErrorCode == "UNREGISTERED" {
			return true
		}
	}

	return false
}

func newFcmRequest(message Message) fcmRequest {
	androidPriority := "normal"
	apnsPriority := "5"
	if message.Priority == "high" || message.Priority == "urgent" {
		androidPriority = "high"
		apnsPriority = "10"
	}

	return fcmRequest{
		Message: fcmMessage{
			Token: message.Token,
			Notification: fcmNotification{
				Title: message.Title,
				Body:  message.Body,
			},
			Data:    message.Data,
			Android: fcmAndroidConfig{Priority: androidPriority},
			Apns: fcmApnsConfig{Headers: map[string]string{
				"apns-priority": apnsPriority,
			}},
		},
	}
}

func (s *fcmService) Send(ctx context.Context, message Message) error {
	body, err := json.Marshal(newFcmRequest(message))
	if err != nil {
		return fmt.Errorf("serializing push message: %w", err)
	}

	url := fmt.Sprintf("%s/v1/projects/%s/messages:send", s.endpoint, s.projectId)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating push request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := s.client.Do(request)
	if err != nil {
		return fmt.Errorf("sending push request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusOK {
		return nil
	}

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("reading push response: %w", err)
	}

	var errorResponse fcmErrorResponse
	if err := json.Unmarshal(responseBody, &errorResponse); err != nil {
		return fmt.Errorf("push request failed with status %d", response.StatusCode)
	}

	if errorResponse.unregistered() {
		return fmt.Errorf("%s: %w", errorResponse.Error.Message, ErrUnregisteredToken)
	}

	return fmt.Errorf("push request failed with status %d: %s", response.StatusCode, errorResponse.Error.Message)
}

type noopService struct {
}

func NewNoopService() Service {
	return &noopService{}
}

func (s *noopService) Send(_ context.Context, message Message) error {
	logging.Logger.Debugw("push delivery disabled, dropping message", "title", message.Title)
	return nil
}
