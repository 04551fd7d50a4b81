package notifications

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Actor is the profile that caused a notification.
type Actor struct {
	Id          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
}

// Name is the display name, else the handle, else a neutral placeholder.
func (a Actor) Name() string {
	if name := strings.TrimSpace(a.DisplayName); name != "" {
		return name
	}
	if a.Username != "" {
		return "@" + a.Username
	}
	return "Someone"
}

type MilestoneKind string

const (
	MilestonePoll    MilestoneKind = "poll"
	MilestoneComment MilestoneKind = "comment"
	MilestoneProfile MilestoneKind = "profile"
)

func (k MilestoneKind) IsValid() bool {
	return k == MilestonePoll || k == MilestoneComment || k == MilestoneProfile
}

const MilestoneTitle = "Milestone Reached!"

// MilestoneMessage formats the celebratory message for a reached threshold.
func MilestoneMessage(kind MilestoneKind, t Type, count int) string {
	switch kind {
	case MilestoneProfile:
		if t == TypeFollowerMilestone {
			return fmt.Sprintf("🌟 You reached %d followers!", count)
		}
	case MilestoneComment:
		switch t {
		case TypeLikeMilestone:
			return fmt.Sprintf("🎉 Your comment reached %d likes!", count)
		case TypeRepliesMilestone:
			return fmt.Sprintf("💬 Your comment received %d replies!", count)
		}
		return fmt.Sprintf("Your comment reached %d!", count)
	case MilestonePoll:
		switch t {
		case TypeVoteMilestone:
			return fmt.Sprintf("🗳️ Your poll reached %d votes!", count)
		case TypeLikeMilestone:
			return fmt.Sprintf("🎉 Your poll reached %d likes!", count)
		case TypeShareMilestone:
			return fmt.Sprintf("🚀 Your poll was shared %d times!", count)
		case TypeBookmarkMilestone:
			return fmt.Sprintf("📚 Your poll was bookmarked %d times!", count)
		case TypeViewMilestone:
			return fmt.Sprintf("👀 Your poll reached %d views!", count)
		case TypeRepliesMilestone:
			return fmt.Sprintf("💬 Your poll received %d comments!", count)
		}
	}
	return fmt.Sprintf("Your poll reached %d!", count)
}
