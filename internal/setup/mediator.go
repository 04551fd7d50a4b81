package setup

import (
	"Keyo/internal/behaviours"
	"Keyo/internal/commands"
	"Keyo/internal/events"
	"Keyo/internal/mediator"
	"Keyo/internal/queries"

	"github.com/The127/ioc"
)

func Mediator(dc *ioc.DependencyCollection) {
	m := mediator.NewMediator()

	mediator.RegisterHandler(m, commands.HandleSendNotification)
	mediator.RegisterHandler(m, commands.HandleNotifyPollComment)
	mediator.RegisterHandler(m, commands.HandleNotifyPollVote)
	mediator.RegisterHandler(m, commands.HandleNotifyCommentReply)
	mediator.RegisterHandler(m, commands.HandleNotifyFollow)
	mediator.RegisterHandler(m, commands.HandleNotifyMention)
	mediator.RegisterHandler(m, commands.HandleNotifyCommunityInvite)
	mediator.RegisterHandler(m, commands.HandleNotifyCommunityNewPoll)
	mediator.RegisterHandler(m, commands.HandleNotifyFollowers)
	mediator.RegisterHandler(m, commands.HandleNotifyMilestone)
	mediator.RegisterHandler(m, commands.HandleUpsertProfile)

	mediator.RegisterHandler(m, queries.HandleListNotifications)
	mediator.RegisterHandler(m, queries.HandleGetNotificationSummary)
	mediator.RegisterHandler(m, queries.HandleGetUnreadCount)
	mediator.RegisterHandler(m, queries.HandleRenderNotificationEmail)
	mediator.RegisterHandler(m, commands.HandleMarkNotificationRead)
	mediator.RegisterHandler(m, commands.HandleMarkAllNotificationsRead)
	mediator.RegisterHandler(m, commands.HandleClickNotification)
	mediator.RegisterHandler(m, commands.HandleDeleteNotification)
	mediator.RegisterHandler(m, commands.HandleCleanupNotifications)

	mediator.RegisterHandler(m, queries.HandleListNotificationPreferences)
	mediator.RegisterHandler(m, commands.HandleUpdateNotificationPreference)
	mediator.RegisterHandler(m, commands.HandleBulkUpdateNotificationPreferences)
	mediator.RegisterHandler(m, commands.HandleToggleChannel)

	mediator.RegisterHandler(m, queries.HandleListDevices)
	mediator.RegisterHandler(m, commands.HandleRegisterDevice)
	mediator.RegisterHandler(m, commands.HandleUnregisterDevice)

	mediator.RegisterHandler(m, commands.HandleSubscribe)
	mediator.RegisterHandler(m, commands.HandleUnsubscribe)

	mediator.RegisterEventHandler(m, events.QueueDeliveryOnNotificationCreated)

	mediator.RegisterBehaviour(m, behaviours.LoggingBehaviour)
	mediator.RegisterBehaviour(m, behaviours.PolicyBehaviour)

	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) mediator.Mediator {
		return m
	})
}
