package handlers

import (
	"Keyo/internal/commands"
	"Keyo/internal/mediator"
	"Keyo/internal/middlewares"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/The127/ioc"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type PlatformHandlerSuite struct {
	suite.Suite
}

func TestPlatformHandlerSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(PlatformHandlerSuite))
}

func (s *PlatformHandlerSuite) request(m mediator.Mediator, body string, handler http.HandlerFunc) *httptest.ResponseRecorder {
	dc := ioc.NewDependencyCollection()
	ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) mediator.Mediator {
		return m
	})

	r := httptest.NewRequest(http.MethodPost, "/internal/events", bytes.NewBufferString(body))
	r = r.WithContext(middlewares.ContextWithScope(r.Context(), dc.BuildProvider()))
	w := httptest.NewRecorder()

	handler(w, r)
	return w
}

func (s *PlatformHandlerSuite) TestFollowEventIsDispatched() {
	// arrange
	followeeId := uuid.New()
	notificationId := uuid.New()
	var received commands.NotifyFollow

	m := mediator.NewMediator()
	mediator.RegisterHandler(m, func(_ context.Context, command commands.NotifyFollow) (*commands.NotifyResponse, error) {
		received = command
		return &commands.NotifyResponse{NotificationIds: []uuid.UUID{notificationId}}, nil
	})

	body := `{"eventType":"profile.followed","payload":{"actor":{"id":"` + uuid.NewString() + `","username":"ada"},"followeeId":"` + followeeId.String() + `"}}`

	// act
	w := s.request(m, body, PublishPlatformEvent)

	// assert
	s.Require().Equal(http.StatusAccepted, w.Code)
	s.Equal(followeeId, received.FolloweeId)
	s.Equal("ada", received.Actor.Username)

	var response PlatformEventResponseDto
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal(EventProfileFollowed, response.EventType)
	s.Equal([]uuid.UUID{notificationId}, response.NotificationIds)
}

func (s *PlatformHandlerSuite) TestStateEventsReturnNoNotifications() {
	// arrange
	m := mediator.NewMediator()
	mediator.RegisterHandler(m, func(_ context.Context, _ commands.Unsubscribe) (*commands.UnsubscribeResponse, error) {
		return &commands.UnsubscribeResponse{}, nil
	})

	body := `{"eventType":"content.unfollowed","payload":{"followerId":"` + uuid.NewString() + `","targetType":"poll","targetId":"42"}}`

	// act
	w := s.request(m, body, PublishPlatformEvent)

	// assert
	s.Require().Equal(http.StatusAccepted, w.Code)
	s.JSONEq(`{"eventType":"content.unfollowed","notificationIds":[],"skipped":0}`, w.Body.String())
}

func (s *PlatformHandlerSuite) TestUnknownEventIsBadRequest() {
	// act
	w := s.request(mediator.NewMediator(), `{"eventType":"poll.deleted","payload":{}}`, PublishPlatformEvent)

	// assert
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *PlatformHandlerSuite) TestMalformedPayloadIsBadRequest() {
	// act
	w := s.request(mediator.NewMediator(), `{"eventType":"poll.voted","payload":[1,2]}`, PublishPlatformEvent)

	// assert
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *PlatformHandlerSuite) TestSendNotificationCreated() {
	// arrange
	id := uuid.New()
	m := mediator.NewMediator()
	mediator.RegisterHandler(m, func(_ context.Context, command commands.SendNotification) (*commands.SendNotificationResponse, error) {
		s.Equal("Welcome", command.Title)
		s.Equal("grace@keyo.test", command.Recipient.Email)
		return &commands.SendNotificationResponse{Id: id}, nil
	})

	body := `{"recipientId":"` + uuid.NewString() + `","recipient":{"email":"grace@keyo.test"},"notificationType":"welcome","title":"Welcome","message":"Hi"}`

	// act
	w := s.request(m, body, SendNotification)

	// assert
	s.Require().Equal(http.StatusCreated, w.Code)
	s.JSONEq(`{"id":"`+id.String()+`","skipped":false}`, w.Body.String())
}

func (s *PlatformHandlerSuite) TestSendNotificationSkipped() {
	// arrange
	m := mediator.NewMediator()
	mediator.RegisterHandler(m, func(_ context.Context, _ commands.SendNotification) (*commands.SendNotificationResponse, error) {
		return &commands.SendNotificationResponse{Skipped: true}, nil
	})

	body := `{"recipientId":"` + uuid.NewString() + `","notificationType":"welcome","title":"Welcome","message":"Hi"}`

	// act
	w := s.request(m, body, SendNotification)

	// assert
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"id":null,"skipped":true}`, w.Body.String())
}

func (s *PlatformHandlerSuite) TestSendNotificationValidatesBody() {
	// act
	w := s.request(mediator.NewMediator(), `{"notificationType":"welcome"}`, SendNotification)

	// assert
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *PlatformHandlerSuite) TestCommandErrorsAreMapped() {
	// arrange
	m := mediator.NewMediator()
	mediator.RegisterHandler(m, func(_ context.Context, _ commands.NotifyPollVote) (*commands.NotifyResponse, error) {
		return nil, errors.New("database unavailable")
	})

	// act
	w := s.request(m, `{"eventType":"poll.voted","payload":{}}`, PublishPlatformEvent)

	// assert
	s.Equal(http.StatusInternalServerError, w.Code)
}
