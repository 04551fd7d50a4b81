package notifications

import (
	"net/url"
	"strings"
)

// DeepLink tells the mobile app which screen to open.
type DeepLink struct {
	Screen string         `json:"screen"`
	Params map[string]any `json:"params"`
}

func NewDeepLink(screen string, params map[string]any) DeepLink {
	if params == nil {
		params = map[string]any{}
	}
	return DeepLink{Screen: screen, Params: params}
}

// Click URLs are stored as frontend-relative paths.

func PollUrl(pollId string) string {
	return "/polls/" + url.PathEscape(pollId)
}

func CommentUrl(pollId string, commentId string) string {
	return PollUrl(pollId) + "?view=thread&commentId=" + url.QueryEscape(commentId)
}

func ProfileUrl(username string) string {
	return "/profile/" + url.PathEscape(username)
}

func FollowersUrl(username string) string {
	return ProfileUrl(username) + "/followers"
}

func CommunityUrl(communityId string) string {
	return "/communities/" + url.PathEscape(communityId)
}

// AbsoluteUrl resolves a stored click URL against the frontend base URL.
// An empty click URL resolves to the base itself.
func AbsoluteUrl(base string, clickUrl string) string {
	base = strings.TrimRight(base, "/")
	if clickUrl == "" {
		return base
	}
	if strings.HasPrefix(clickUrl, "http://") || strings.HasPrefix(clickUrl, "https://") {
		return clickUrl
	}
	if !strings.HasPrefix(clickUrl, "/") {
		clickUrl = "/" + clickUrl
	}
	return base + clickUrl
}
