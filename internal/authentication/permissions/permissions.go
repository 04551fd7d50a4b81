package permissions

type Permission string

const (
	SystemUser Permission = "system_user"

	NotificationSend      Permission = "notification:send"
	NotificationManageAny Permission = "notification:manage_any"

	EventPublish Permission = "event:publish"
)
