package notifications

// Presentation is how a notification type is shown in emails, push payloads and API responses.
type Presentation struct {
	Icon         string
	Label        string
	CallToAction string
	EmailSubject string
}

var fallbackPresentation = Presentation{
	Icon:         "🔔",
	Label:        "Notification",
	CallToAction: "View Details",
}

var presentations = map[Type]Presentation{
	TypePollComment:          {Icon: "💬", Label: "Poll Comment", CallToAction: "View Comment", EmailSubject: "💬 New comment on your poll"},
	TypePollVote:             {Icon: "🗳️", Label: "Poll Vote", CallToAction: "See Poll Results", EmailSubject: "🗳️ Someone voted on your poll"},
	TypeReply:                {Icon: "↩️", Label: "Reply", CallToAction: "View Reply", EmailSubject: "↩️ New reply to your comment"},
	TypeCommentReply:         {Icon: "↩️", Label: "Comment Reply", CallToAction: "View Reply"},
	TypeFollow:               {Icon: "👋", Label: "Follow", CallToAction: "View Profile", EmailSubject: "👋 You have a new follower"},
	TypeMention:              {Icon: "📢", Label: "Mention", CallToAction: "View Mention", EmailSubject: "📢 You were mentioned"},
	TypeCommunityInvite:      {Icon: "🏘️", Label: "Community Invite", CallToAction: "View Invitation", EmailSubject: "🏘️ Community invitation"},
	TypeCommunityNewPoll:     {Icon: "📊", Label: "New Community Poll", CallToAction: "View Poll", EmailSubject: "📊 New poll in your community"},
	TypeCommunityRoleChange:  {Icon: "🛡️", Label: "Community Role Change", CallToAction: "View Community"},
	TypeFollowedUserPoll:     {Icon: "📊", Label: "Followed User Poll", CallToAction: "View Poll", EmailSubject: "📊 New poll from someone you follow"},
	TypeFollowedPollComment:  {Icon: "💬", Label: "Followed Poll Comment", CallToAction: "Join the Discussion"},
	TypeFollowedCommentReply: {Icon: "↩️", Label: "Followed Comment Reply", CallToAction: "View Thread"},
	TypeVoteMilestone:        {Icon: "🗳️", Label: "Vote Milestone", CallToAction: "See Poll Results", EmailSubject: "🗳️ Your poll is getting votes!"},
	TypeLikeMilestone:        {Icon: "🎉", Label: "Like Milestone", CallToAction: "View Details", EmailSubject: "🎉 Milestone reached!"},
	TypeShareMilestone:       {Icon: "🚀", Label: "Share Milestone", CallToAction: "View Poll", EmailSubject: "🚀 Your poll is trending!"},
	TypeBookmarkMilestone:    {Icon: "📚", Label: "Bookmark Milestone", CallToAction: "View Poll", EmailSubject: "📚 People love your content!"},
	TypeViewMilestone:        {Icon: "👀", Label: "View Milestone", CallToAction: "View Poll", EmailSubject: "👀 Your poll is getting views!"},
	TypeFollowerMilestone:    {Icon: "🌟", Label: "Follower Milestone", CallToAction: "View Followers", EmailSubject: "🌟 Congratulations on your followers!"},
	TypeRepliesMilestone:     {Icon: "💬", Label: "Replies Milestone", CallToAction: "View Discussion"},
	TypeAuraMilestone:        {Icon: "✨", Label: "Aura Milestone", CallToAction: "View Your Profile"},
	TypeVerification:         {Icon: "✅", Label: "Verification", CallToAction: "View Your Profile", EmailSubject: "✅ Verification complete"},
	TypeWelcome:              {Icon: "🎊", Label: "Welcome", CallToAction: "Get Started", EmailSubject: "🎊 Welcome!"},
	TypeSystem:               {Icon: "🔔", Label: "System", CallToAction: "View Details"},
}

// PresentationFor never fails: unknown tags get the generic bell presentation.
func PresentationFor(t Type) Presentation {
	p, ok := presentations[t]
	if !ok {
		return fallbackPresentation
	}
	return p
}

func Icon(t Type) string {
	return PresentationFor(t).Icon
}

func Label(t Type) string {
	return PresentationFor(t).Label
}

func CallToAction(t Type) string {
	return PresentationFor(t).CallToAction
}

// EmailSubject falls back to the bell icon followed by the notification title.
func EmailSubject(t Type, title string) string {
	subject := PresentationFor(t).EmailSubject
	if subject == "" {
		return "🔔 " + title
	}
	return subject
}
