package commands

import (
	"Keyo/internal/behaviours"
	"Keyo/internal/middlewares"
	"Keyo/internal/repositories"
	"context"
	"fmt"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

// UpsertProfile refreshes the contact card the platform shares for a profile.
type UpsertProfile struct {
	ProfileId   uuid.UUID
	Username    string
	DisplayName string
	Email       string
}

func (a UpsertProfile) LogRequest() bool {
	return true
}

func (a UpsertProfile) LogResponse() bool {
	return false
}

func (a UpsertProfile) IsAllowed(ctx context.Context) (behaviours.PolicyResult, error) {
	return eventPolicy(ctx)
}

func (a UpsertProfile) GetRequestName() string {
	return "UpsertProfile"
}

type UpsertProfileResponse struct{}

func HandleUpsertProfile(ctx context.Context, command UpsertProfile) (*UpsertProfileResponse, error) {
	scope := middlewares.GetScope(ctx)
	profileRepository := ioc.GetDependency[repositories.ProfileRepository](scope)

	profile := repositories.NewProfile(command.ProfileId, command.Username, command.DisplayName, command.Email)
	err := profileRepository.Upsert(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("upserting profile: %w", err)
	}

	return &UpsertProfileResponse{}, nil
}
