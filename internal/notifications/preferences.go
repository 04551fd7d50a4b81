package notifications

// ChannelSettings are the effective delivery switches for one notification type.
type ChannelSettings struct {
	InApp   bool
	Push    bool
	Email   bool
	Enabled bool
}

func (c ChannelSettings) Allows(channel Channel) bool {
	if !c.Enabled {
		return false
	}

	switch channel {
	case ChannelInApp:
		return c.InApp
	case ChannelPush:
		return c.Push
	case ChannelEmail:
		return c.Email
	default:
		return false
	}
}

// Recompute derives the enabled flag from the channel switches.
func (c ChannelSettings) Recompute() ChannelSettings {
	c.Enabled = c.InApp || c.Push || c.Email
	return c
}

var pushByDefault = map[Type]bool{
	TypePollComment:     true,
	TypePollVote:        true,
	TypeReply:           true,
	TypeFollow:          true,
	TypeMention:         true,
	TypeCommunityInvite: true,
}

var emailByDefault = map[Type]bool{
	TypeFollow:           true,
	TypeMention:          true,
	TypeVerification:     true,
	TypeRepliesMilestone: true,
	TypeVoteMilestone:    true,
	TypeCommunityInvite:  true,
}

// DefaultSettings applies when a profile never stored a preference for the type.
func DefaultSettings(t Type) ChannelSettings {
	return ChannelSettings{
		InApp:   true,
		Push:    pushByDefault[t],
		Email:   emailByDefault[t],
		Enabled: true,
	}
}
