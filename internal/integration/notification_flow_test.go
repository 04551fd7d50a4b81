//go:build integration

package integration

import (
	"Keyo/internal/commands"
	"Keyo/internal/mediator"
	"Keyo/internal/notifications"
	"Keyo/internal/queries"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gstruct"
)

var _ = Describe("Notification flow", Ordered, func() {
	var h *harness

	recipientId := uuid.New()
	actor := notifications.Actor{
		Id:          uuid.New(),
		Username:    "ada",
		DisplayName: "Ada",
	}
	var notificationId uuid.UUID

	BeforeAll(func() {
		h = newIntegrationTestHarness()
	})

	AfterAll(func() {
		h.Close()
	})

	It("should store the recipient profile", func() {
		_, err := mediator.Send[*commands.UpsertProfileResponse](h.Ctx(), h.Mediator(), commands.UpsertProfile{
			ProfileId:   recipientId,
			Username:    "grace",
			DisplayName: "Grace",
			Email:       "grace@keyo.example",
		})
		Expect(err).ToNot(HaveOccurred())
	})

	It("should notify the followee", func() {
		response, err := mediator.Send[*commands.NotifyResponse](h.Ctx(), h.Mediator(), commands.NotifyFollow{
			Actor:      actor,
			FolloweeId: recipientId,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(response.Skipped).To(Equal(0))
		Expect(response.NotificationIds).To(HaveLen(1))
		notificationId = response.NotificationIds[0]
	})

	It("should skip following yourself", func() {
		response, err := mediator.Send[*commands.NotifyResponse](h.Ctx(), h.Mediator(), commands.NotifyFollow{
			Actor:      actor,
			FolloweeId: actor.Id,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(response.Skipped).To(Equal(1))
		Expect(response.NotificationIds).To(BeEmpty())
	})

	It("should list the notification", func() {
		response, err := mediator.Send[*queries.ListNotificationsResponse](h.Ctx(), h.Mediator(), queries.ListNotifications{
			ProfileId: recipientId,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(response.UnreadCount).To(Equal(1))
		Expect(response.Items).To(ContainElement(gstruct.MatchFields(gstruct.IgnoreExtras, gstruct.Fields{
			"Id":      Equal(notificationId),
			"Type":    Equal(notifications.TypeFollow),
			"ActorId": gstruct.PointTo(Equal(actor.Id)),
		})))
	})

	It("should count the notification as unread", func() {
		response, err := mediator.Send[*queries.GetUnreadCountResponse](h.Ctx(), h.Mediator(), queries.GetUnreadCount{
			ProfileId: recipientId,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(response.UnreadCount).To(Equal(1))
	})

	It("should mark the notification as read once", func() {
		command := commands.MarkNotificationRead{
			ProfileId:      recipientId,
			NotificationId: notificationId,
		}

		first, err := mediator.Send[*commands.MarkNotificationReadResponse](h.Ctx(), h.Mediator(), command)
		Expect(err).ToNot(HaveOccurred())
		Expect(first.AlreadyRead).To(BeFalse())

		second, err := mediator.Send[*commands.MarkNotificationReadResponse](h.Ctx(), h.Mediator(), command)
		Expect(err).ToNot(HaveOccurred())
		Expect(second.AlreadyRead).To(BeTrue())
	})

	It("should have no unread notifications left", func() {
		response, err := mediator.Send[*queries.GetUnreadCountResponse](h.Ctx(), h.Mediator(), queries.GetUnreadCount{
			ProfileId: recipientId,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(response.UnreadCount).To(Equal(0))
	})
})

var _ = Describe("Subscription flow", Ordered, func() {
	var h *harness

	followerId := uuid.New()
	pollId := uuid.NewString()

	BeforeAll(func() {
		h = newIntegrationTestHarness()
	})

	AfterAll(func() {
		h.Close()
	})

	It("should follow a poll", func() {
		response, err := mediator.Send[*commands.SubscribeResponse](h.Ctx(), h.Mediator(), commands.Subscribe{
			FollowerId: followerId,
			TargetType: notifications.TargetPoll,
			TargetId:   pollId,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(response.Created).To(BeTrue())
	})

	It("should not follow the same poll twice", func() {
		response, err := mediator.Send[*commands.SubscribeResponse](h.Ctx(), h.Mediator(), commands.Subscribe{
			FollowerId: followerId,
			TargetType: notifications.TargetPoll,
			TargetId:   pollId,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(response.Created).To(BeFalse())
	})

	It("should unfollow the poll", func() {
		response, err := mediator.Send[*commands.UnsubscribeResponse](h.Ctx(), h.Mediator(), commands.Unsubscribe{
			FollowerId: followerId,
			TargetType: notifications.TargetPoll,
			TargetId:   pollId,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(response.Unsubscribed).To(BeTrue())
	})

	It("should accept unfollowing twice", func() {
		response, err := mediator.Send[*commands.UnsubscribeResponse](h.Ctx(), h.Mediator(), commands.Unsubscribe{
			FollowerId: followerId,
			TargetType: notifications.TargetPoll,
			TargetId:   pollId,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(response.Unsubscribed).To(BeFalse())
	})
})
