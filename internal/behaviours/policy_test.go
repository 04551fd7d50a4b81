package behaviours

import (
	"Keyo/internal/authentication"
	"Keyo/internal/authentication/permissions"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type PolicySuite struct {
	suite.Suite
}

func TestPolicySuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(PolicySuite))
}

func (s *PolicySuite) contextFor(user authentication.CurrentUser) context.Context {
	return authentication.ContextWithCurrentUser(s.T().Context(), user)
}

func (s *PolicySuite) TestOwnerIsAllowed() {
	// arrange
	profileId := uuid.New()
	ctx := s.contextFor(authentication.NewCurrentUser(profileId))

	// act
	result := OwnerOrPermission(ctx, profileId, permissions.NotificationManageAny)

	// assert
	s.True(result.IsAllowed())
	s.IsType(AllowedByOwnership{}, result.Reason())
}

func (s *PolicySuite) TestOtherProfileIsDenied() {
	// arrange
	ctx := s.contextFor(authentication.NewCurrentUser(uuid.New()))

	// act
	result := OwnerOrPermission(ctx, uuid.New(), permissions.NotificationManageAny)

	// assert
	s.False(result.IsAllowed())
}

func (s *PolicySuite) TestAnonymousIsNeverOwner() {
	// arrange
	ctx := s.contextFor(authentication.NewCurrentUser(uuid.Nil))

	// act
	result := OwnerOrPermission(ctx, uuid.Nil, permissions.NotificationManageAny)

	// assert
	s.False(result.IsAllowed())
}

func (s *PolicySuite) TestServiceIsAllowedByPermission() {
	// arrange
	ctx := s.contextFor(authentication.ServiceUser())

	// act
	result := OwnerOrPermission(ctx, uuid.New(), permissions.NotificationManageAny)

	// assert
	s.True(result.IsAllowed())
	s.Equal("service", result.Principal())
}

func (s *PolicySuite) TestRequirePermission() {
	profileCtx := s.contextFor(authentication.NewCurrentUser(uuid.New()))
	serviceCtx := s.contextFor(authentication.ServiceUser())

	s.False(RequirePermission(profileCtx, permissions.EventPublish).IsAllowed())
	s.True(RequirePermission(serviceCtx, permissions.EventPublish).IsAllowed())
}
