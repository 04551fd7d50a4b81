package notifications

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type DomainSuite struct {
	suite.Suite
}

func TestDomainSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(DomainSuite))
}

func (s *DomainSuite) TestDefaultSettings() {
	testCases := []struct {
		notificationType Type
		push             bool
		email            bool
	}{
		{TypePollComment, true, false},
		{TypePollVote, true, false},
		{TypeFollow, true, true},
		{TypeMention, true, true},
		{TypeCommunityInvite, true, true},
		{TypeVerification, false, true},
		{TypeVoteMilestone, false, true},
		{TypeRepliesMilestone, false, true},
		{TypeLikeMilestone, false, false},
		{TypeSystem, false, false},
	}

	for _, tc := range testCases {
		s.Run(string(tc.notificationType), func() {
			// act
			settings := DefaultSettings(tc.notificationType)

			// assert
			s.True(settings.InApp)
			s.True(settings.Enabled)
			s.Equal(tc.push, settings.Push)
			s.Equal(tc.email, settings.Email)
		})
	}
}

func (s *DomainSuite) TestRecomputeDisablesWhenAllChannelsOff() {
	// arrange
	settings := ChannelSettings{Enabled: true}

	// act
	settings = settings.Recompute()

	// assert
	s.False(settings.Enabled)
	s.False(settings.Allows(ChannelInApp))
}

func (s *DomainSuite) TestAllowsRespectsMasterSwitch() {
	settings := ChannelSettings{InApp: true, Push: true, Email: true, Enabled: false}

	s.False(settings.Allows(ChannelPush))

	settings.Enabled = true
	s.True(settings.Allows(ChannelPush))
	s.False(settings.Allows(Channel("sms")))
}

func (s *DomainSuite) TestReachesThreshold() {
	s.True(ReachesThreshold(TypeVoteMilestone, 10, nil))
	s.False(ReachesThreshold(TypeVoteMilestone, 11, nil))
	s.True(ReachesThreshold(TypeLikeMilestone, 1, nil))
	s.False(ReachesThreshold(TypeSystem, 10, nil))
}

func (s *DomainSuite) TestCustomThresholdsReplaceDefaults() {
	s.True(ReachesThreshold(TypeVoteMilestone, 7, []int{7}))
	s.False(ReachesThreshold(TypeVoteMilestone, 10, []int{7}))
}

func (s *DomainSuite) TestActorName() {
	s.Equal("Ada", Actor{DisplayName: "Ada", Username: "ada"}.Name())
	s.Equal("@ada", Actor{DisplayName: "  ", Username: "ada"}.Name())
	s.Equal("Someone", Actor{}.Name())
}

func (s *DomainSuite) TestMilestoneMessage() {
	s.Equal("🗳️ Your poll reached 50 votes!", MilestoneMessage(MilestonePoll, TypeVoteMilestone, 50))
	s.Equal("💬 Your comment received 5 replies!", MilestoneMessage(MilestoneComment, TypeRepliesMilestone, 5))
	s.Equal("Your comment reached 3!", MilestoneMessage(MilestoneComment, TypeShareMilestone, 3))
	s.Equal("🌟 You reached 100 followers!", MilestoneMessage(MilestoneProfile, TypeFollowerMilestone, 100))
	s.Equal("Your poll reached 9!", MilestoneMessage(MilestonePoll, TypeSystem, 9))
}

func (s *DomainSuite) TestUrls() {
	s.Equal("/polls/12?view=thread&commentId=34", CommentUrl("12", "34"))
	s.Equal("/profile/ada/followers", FollowersUrl("ada"))
	s.Equal("https://keyo.app/polls/12", AbsoluteUrl("https://keyo.app/", PollUrl("12")))
	s.Equal("https://keyo.app", AbsoluteUrl("https://keyo.app", ""))
	s.Equal("https://elsewhere.test/x", AbsoluteUrl("https://keyo.app", "https://elsewhere.test/x"))
}

func (s *DomainSuite) TestPriorityRank() {
	s.Less(PriorityLow.Rank(), PriorityNormal.Rank())
	s.Less(PriorityHigh.Rank(), PriorityUrgent.Rank())
	s.False(Priority("whenever").IsValid())
}

func (s *DomainSuite) TestNewDeepLinkNeverHasNilParams() {
	link := NewDeepLink("profile", nil)

	s.NotNil(link.Params)
	s.Equal("profile", link.Screen)
}
