package client

// FollowThreshold is how close to the bottom (in pixels) the viewport must be
// for a new message to auto-scroll it.
const FollowThreshold = 50

// ShouldFollow implements the anchor-follow policy: stick to the newest
// message only when the viewer is already at the bottom, or when the action
// is forced (initial load, the viewer's own send or upload). A reader who has
// scrolled up into history is never yanked down.
func ShouldFollow(distanceFromBottom float64, forced bool) bool {
	return forced || distanceFromBottom <= FollowThreshold
}
