package authentication

import (
	"Keyo/internal/authentication/permissions"
	"Keyo/internal/authentication/roles"
	"context"

	"github.com/google/uuid"
)

type PermissionAssignment struct {
	Permission  permissions.Permission
	SourceRoles []roles.Role
}

// CurrentUser is either a profile authenticated by bearer token or a
// service principal authenticated by the service key.
type CurrentUser struct {
	ProfileId   uuid.UUID
	IsService   bool
	Permissions map[permissions.Permission]PermissionAssignment
}

func NewCurrentUser(profileId uuid.UUID) CurrentUser {
	return CurrentUser{
		ProfileId:   profileId,
		Permissions: make(map[permissions.Permission]PermissionAssignment),
	}
}

func (c CurrentUser) IsAuthenticated() bool {
	return c.ProfileId != uuid.Nil || c.IsService
}

func (c CurrentUser) String() string {
	if c.IsService {
		return "service"
	}
	return c.ProfileId.String()
}

type HasPermissionResult struct {
	HasPermission bool
	SourceRoles   []roles.Role
}

func (r HasPermissionResult) IsSuccess() bool {
	return r.HasPermission
}

func (c CurrentUser) HasPermission(permission permissions.Permission) HasPermissionResult {
	assignment, ok := c.Permissions[permission]
	if !ok {
		return HasPermissionResult{
			HasPermission: false,
		}
	}

	return HasPermissionResult{
		HasPermission: true,
		SourceRoles:   assignment.SourceRoles,
	}
}

func assignPermissionsToUser(currentUser *CurrentUser, role roles.Role) {
	for _, permission := range roles.AllRoles[role] {
		assignment, ok := currentUser.Permissions[permission]
		if !ok {
			assignment = PermissionAssignment{
				Permission:  permission,
				SourceRoles: make([]roles.Role, 0),
			}
		}
		assignment.SourceRoles = append(assignment.SourceRoles, role)
		currentUser.Permissions[permission] = assignment
	}
}

type currentUserCtxKeyType string

const currentUserCtxKey currentUserCtxKeyType = "currentUser"

func ContextWithCurrentUser(ctx context.Context, user CurrentUser) context.Context {
	return context.WithValue(ctx, currentUserCtxKey, user)
}

func GetCurrentUser(ctx context.Context) CurrentUser {
	value, ok := ctx.Value(currentUserCtxKey).(CurrentUser)
	if !ok {
		panic("current user not found")
	}
	return value
}

func SystemUser() CurrentUser {
	user := NewCurrentUser(uuid.Nil)
	assignPermissionsToUser(&user, roles.SystemUser)
	return user
}

func ServiceUser() CurrentUser {
	user := NewCurrentUser(uuid.Nil)
	user.IsService = true
	assignPermissionsToUser(&user, roles.Service)
	return user
}
