package notifications

type Type string

const (
	TypePollComment          Type = "poll_comment"
	TypePollVote             Type = "poll_vote"
	TypeReply                Type = "reply"
	TypeFollow               Type = "follow"
	TypeMention              Type = "mention"
	TypeCommunityInvite      Type = "community_invite"
	TypeCommunityNewPoll     Type = "community_new_poll"
	TypeCommunityRoleChange  Type = "community_role_change"
	TypeFollowedUserPoll     Type = "followed_user_poll"
	TypeFollowedPollComment  Type = "followed_poll_comment"
	TypeFollowedCommentReply Type = "followed_comment_reply"
	TypeVoteMilestone        Type = "vote_milestone"
	TypeLikeMilestone        Type = "like_milestone"
	TypeShareMilestone       Type = "share_milestone"
	TypeBookmarkMilestone    Type = "bookmark_milestone"
	TypeViewMilestone        Type = "view_milestone"
	TypeFollowerMilestone    Type = "follower_milestone"
	TypeRepliesMilestone     Type = "replies_milestone"
	TypeVerification         Type = "verification"
	TypeWelcome              Type = "welcome"
	TypeSystem               Type = "system"
)

// Tags used by email templates only. They are never stored.
const (
	TypeCommentReply  Type = "comment_reply"
	TypeAuraMilestone Type = "aura_milestone"
)

var allTypes = []Type{
	TypePollComment,
	TypePollVote,
	TypeReply,
	TypeFollow,
	TypeMention,
	TypeCommunityInvite,
	TypeCommunityNewPoll,
	TypeCommunityRoleChange,
	TypeFollowedUserPoll,
	TypeFollowedPollComment,
	TypeFollowedCommentReply,
	TypeVoteMilestone,
	TypeLikeMilestone,
	TypeShareMilestone,
	TypeBookmarkMilestone,
	TypeViewMilestone,
	TypeFollowerMilestone,
	TypeRepliesMilestone,
	TypeVerification,
	TypeWelcome,
	TypeSystem,
}

// AllTypes lists every storable notification type in declaration order.
func AllTypes() []Type {
	result := make([]Type, len(allTypes))
	copy(result, allTypes)
	return result
}

func (t Type) IsValid() bool {
	for _, known := range allTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}
}

func (p Priority) IsValid() bool {
	return p.Rank() > 0
}

// Rank orders priorities from low (1) to urgent (4). Unknown priorities rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityNormal:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	default:
		return 0
	}
}

type Channel string

const (
	ChannelInApp Channel = "in_app"
	ChannelPush  Channel = "push"
	ChannelEmail Channel = "email"
)

func (c Channel) IsValid() bool {
	return c == ChannelInApp || c == ChannelPush || c == ChannelEmail
}

type TargetType string

const (
	TargetPoll      TargetType = "poll"
	TargetComment   TargetType = "comment"
	TargetProfile   TargetType = "profile"
	TargetCommunity TargetType = "community"
)

func (t TargetType) IsValid() bool {
	switch t {
	case TargetPoll, TargetComment, TargetProfile, TargetCommunity:
		return true
	default:
		return false
	}
}
