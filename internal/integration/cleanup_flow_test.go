//go:build integration

package integration

import (
	"Keyo/internal/commands"
	"Keyo/internal/database"
	"Keyo/internal/mediator"
	"Keyo/internal/notifications"
	"Keyo/internal/queries"
	"time"

	"github.com/The127/ioc"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gstruct"
)

var _ = Describe("Cleanup flow", Ordered, func() {
	var h *harness

	recipientId := uuid.New()
	var readId, unreadId uuid.UUID

	notifyFollow := func(username string) uuid.UUID {
		response, err := mediator.Send[*commands.NotifyResponse](h.Ctx(), h.Mediator(), commands.NotifyFollow{
			Actor: notifications.Actor{
				Id:          uuid.New(),
				Username:    username,
				DisplayName: username,
			},
			FolloweeId: recipientId,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(response.NotificationIds).To(HaveLen(1))
		return response.NotificationIds[0]
	}

	BeforeAll(func() {
		h = newIntegrationTestHarness()
	})

	AfterAll(func() {
		h.Close()
	})

	It("should create two old notifications, one of them read", func() {
		readId = notifyFollow("ada")
		unreadId = notifyFollow("alan")

		_, err := mediator.Send[*commands.MarkNotificationReadResponse](h.Ctx(), h.Mediator(), commands.MarkNotificationRead{
			ProfileId:      recipientId,
			NotificationId: readId,
		})
		Expect(err).ToNot(HaveOccurred())

		tx, err := ioc.GetDependency[database.DbService](h.app.Provider).GetTx()
		Expect(err).ToNot(HaveOccurred())
		_, err = tx.Exec("update notifications set audit_created_at = now() - interval '40 days' where recipient_id = $1", recipientId)
		Expect(err).ToNot(HaveOccurred())
	})

	It("should delete only the read notification", func() {
		response, err := mediator.Send[*commands.CleanupNotificationsResponse](h.Ctx(), h.Mediator(), commands.CleanupNotifications{
			Retention: 30 * 24 * time.Hour,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(response.OldCount).To(Equal(1))
		Expect(response.ExpiredCount).To(Equal(0))
	})

	It("should keep the unread notification", func() {
		response, err := mediator.Send[*queries.ListNotificationsResponse](h.Ctx(), h.Mediator(), queries.ListNotifications{
			ProfileId: recipientId,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(response.Items).To(HaveLen(1))
		Expect(response.Items).To(ContainElement(gstruct.MatchFields(gstruct.IgnoreExtras, gstruct.Fields{
			"Id":     Equal(unreadId),
			"IsRead": BeFalse(),
		})))
	})
})

var _ = Describe("Transaction scope", Ordered, func() {
	var h *harness

	BeforeAll(func() {
		h = newIntegrationTestHarness()
	})

	AfterAll(func() {
		h.Close()
	})

	It("should run after-commit hooks once the scope commits", func() {
		scope := h.app.Provider.NewScope()
		dbService := ioc.GetDependency[database.DbService](scope)

		tx, err := dbService.GetTx()
		Expect(err).ToNot(HaveOccurred())
		_, err = tx.Exec("select 1")
		Expect(err).ToNot(HaveOccurred())

		committed := false
		dbService.AfterCommit(func() { committed = true })
		Expect(committed).To(BeFalse())

		Expect(scope.Close()).To(Succeed())
		Expect(committed).To(BeTrue())
	})
})
