package behaviours

import (
	"Keyo/internal/authentication"
	"Keyo/internal/authentication/permissions"
	"Keyo/internal/authentication/roles"
	"Keyo/internal/mediator"
	"Keyo/internal/middlewares"
	"Keyo/utils"
	"context"
	"fmt"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

//go:generate mockgen -destination=./mocks/auditlogger.go -package=mocks Keyo/internal/behaviours AuditLogger
type AuditLogger interface {
	Log(ctx context.Context, policy Policy, result PolicyResult) error
}

type PolicyResult struct {
	allowed   bool
	principal string
	reason    AllowReason
}

func (p PolicyResult) IsAllowed() bool {
	return p.allowed
}

func (p PolicyResult) Principal() string {
	return p.principal
}

func (p PolicyResult) Reason() AllowReason {
	return p.reason
}

type AllowReason interface {
	ImplementsAllowReason()
}

type AllowedByOwnership struct{}

func NewAllowedByOwnership() AllowedByOwnership {
	return AllowedByOwnership{}
}

func (a AllowedByOwnership) String() string {
	return "Ownership"
}

func (a AllowedByOwnership) ImplementsAllowReason() {}

type AllowedByPermission struct {
	Permission  permissions.Permission
	SourceRoles []roles.Role
}

func NewAllowedByPermission(permission permissions.Permission, sourceRoles []roles.Role) AllowedByPermission {
	return AllowedByPermission{
		Permission:  permission,
		SourceRoles: sourceRoles,
	}
}

func (a AllowedByPermission) String() string {
	return fmt.Sprintf("Permission: %s, SourceRoles: %v", a.Permission, a.SourceRoles)
}

func (a AllowedByPermission) ImplementsAllowReason() {}

func Allowed(user authentication.CurrentUser, reason AllowReason) PolicyResult {
	return PolicyResult{
		allowed:   true,
		principal: user.String(),
		reason:    reason,
	}
}

func Denied(user authentication.CurrentUser) PolicyResult {
	return PolicyResult{
		allowed:   false,
		principal: user.String(),
	}
}

type Policy interface {
	IsAllowed(ctx context.Context) (PolicyResult, error)
	GetRequestName() string
}

func PolicyBehaviour(ctx context.Context, request Policy, next mediator.Next) error {
	policyResult, err := evaluatePolicy(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to check if request is allowed: %w", err)
	}

	scope := middlewares.GetScope(ctx)
	auditLogger := ioc.GetDependency[AuditLogger](scope)
	err = auditLogger.Log(ctx, request, policyResult)
	if err != nil {
		return fmt.Errorf("failed to log request: %w", err)
	}

	if !policyResult.allowed {
		return fmt.Errorf("request not allowed: %w", utils.ErrHttpForbidden)
	}

	return next()
}

func evaluatePolicy(ctx context.Context, request Policy) (PolicyResult, error) {
	currentUser := authentication.GetCurrentUser(ctx)
	isSystemUser := currentUser.HasPermission(permissions.SystemUser)
	if isSystemUser.IsSuccess() {
		return Allowed(
			currentUser,
			NewAllowedByPermission(permissions.SystemUser, isSystemUser.SourceRoles),
		), nil
	}

	return request.IsAllowed(ctx)
}

// OwnerOrPermission allows the profile itself or any caller holding the permission.
func OwnerOrPermission(ctx context.Context, profileId uuid.UUID, permission permissions.Permission) PolicyResult {
	currentUser := authentication.GetCurrentUser(ctx)

	if currentUser.ProfileId != uuid.Nil && currentUser.ProfileId == profileId {
		return Allowed(currentUser, NewAllowedByOwnership())
	}

	hasPermission := currentUser.HasPermission(permission)
	if hasPermission.IsSuccess() {
		return Allowed(currentUser, NewAllowedByPermission(permission, hasPermission.SourceRoles))
	}

	return Denied(currentUser)
}

// RequirePermission allows only callers holding the permission.
func RequirePermission(ctx context.Context, permission permissions.Permission) PolicyResult {
	currentUser := authentication.GetCurrentUser(ctx)

	hasPermission := currentUser.HasPermission(permission)
	if hasPermission.IsSuccess() {
		return Allowed(currentUser, NewAllowedByPermission(permission, hasPermission.SourceRoles))
	}

	return Denied(currentUser)
}
