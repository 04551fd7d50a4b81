package roles

import (
	"Keyo/internal/authentication/permissions"
)

type Role string

const (
	SystemUser Role = "system_user"
	Service    Role = "service"
)

var SystemUserPermissions = []permissions.Permission{
	permissions.SystemUser,
}

// ServicePermissions are granted to the platform calling the internal API.
var ServicePermissions = []permissions.Permission{
	permissions.NotificationSend,
	permissions.NotificationManageAny,
	permissions.EventPublish,
}

var AllRoles = map[Role][]permissions.Permission{
	SystemUser: SystemUserPermissions,
	Service:    ServicePermissions,
}
