package repositories

import (
	"Keyo/utils"
	"context"
	"strings"

	"github.com/google/uuid"
)

// Profile is the contact card of a platform profile. The platform owns the
// profile; this service keeps the fields needed to address notifications.
type Profile struct {
	ModelBase

	username    string
	displayName string
	email       string
}

func NewProfile(id uuid.UUID, username string, displayName string, email string) *Profile {
	p := &Profile{
		ModelBase:   NewModelBase(),
		username:    username,
		displayName: displayName,
		email:       email,
	}
	p.id = id
	return p
}

func (p *Profile) GetScanPointers() []any {
	return []any{
		&p.id,
		&p.auditCreatedAt,
		&p.auditUpdatedAt,
		&p.version,
		&p.username,
		&p.displayName,
		&p.email,
	}
}

func (p *Profile) Username() string {
	return p.username
}

func (p *Profile) DisplayName() string {
	return p.displayName
}

func (p *Profile) Email() string {
	return p.email
}

// Name is the display name, else the handle.
func (p *Profile) Name() string {
	if name := strings.TrimSpace(p.displayName); name != "" {
		return name
	}
	return "@" + p.username
}

type ProfileFilter struct {
	id  *uuid.UUID
	ids []uuid.UUID
}

func NewProfileFilter() ProfileFilter {
	return ProfileFilter{}
}

func (f ProfileFilter) Clone() ProfileFilter {
	return f
}

func (f ProfileFilter) Id(id uuid.UUID) ProfileFilter {
	filter := f.Clone()
	filter.id = &id
	return filter
}

func (f ProfileFilter) HasId() bool {
	return f.id != nil
}

func (f ProfileFilter) GetId() uuid.UUID {
	return utils.ZeroIfNil(f.id)
}

func (f ProfileFilter) Ids(ids ...uuid.UUID) ProfileFilter {
	filter := f.Clone()
	filter.ids = append([]uuid.UUID(nil), ids...)
	return filter
}

func (f ProfileFilter) HasIds() bool {
	return f.ids != nil
}

func (f ProfileFilter) GetIds() []uuid.UUID {
	return f.ids
}

//go:generate mockgen -destination=./mocks/profile_repository.go -package=mocks Keyo/internal/repositories ProfileRepository
type ProfileRepository interface {
	List(ctx context.Context, filter ProfileFilter) ([]*Profile, error)
	First(ctx context.Context, filter ProfileFilter) (*Profile, error)
	Upsert(ctx context.Context, profile *Profile) error
}
