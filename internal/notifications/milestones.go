package notifications

import "slices"

var defaultThresholds = map[Type][]int{
	TypeVoteMilestone:     {10, 25, 50, 100, 250, 500, 1000},
	TypeLikeMilestone:     {1, 10, 50, 100, 500, 1000},
	TypeShareMilestone:    {10, 50, 100, 500, 1000},
	TypeBookmarkMilestone: {10, 30, 100, 500},
	TypeViewMilestone:     {100, 500, 1000, 5000, 10000},
	TypeFollowerMilestone: {10, 50, 100, 200, 500, 1000},
	TypeRepliesMilestone:  {5, 10, 25, 50, 100, 250, 500},
}

func IsMilestone(t Type) bool {
	_, ok := defaultThresholds[t]
	return ok
}

func DefaultThresholds(t Type) []int {
	return slices.Clone(defaultThresholds[t])
}

// ReachesThreshold reports whether count is one of the thresholds for t.
// Custom thresholds replace the defaults when present.
func ReachesThreshold(t Type, count int, custom []int) bool {
	thresholds := custom
	if len(thresholds) == 0 {
		thresholds = defaultThresholds[t]
	}
	return slices.Contains(thresholds, count)
}
