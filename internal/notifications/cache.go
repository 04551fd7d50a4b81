package notifications

import (
	"time"

	"github.com/google/uuid"
)

const UnreadCountCacheTtl = 5 * time.Minute

func UnreadCountCacheKey(profileId uuid.UUID) string {
	return "notifications:unread:" + profileId.String()
}
