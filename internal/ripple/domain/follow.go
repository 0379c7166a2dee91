package domain

import "time"

// Follow is a directed edge in the social graph: follower follows followed.
// The edge set is the single source of truth; follower and following lists
// are projections over it, never independently stored.
type Follow struct {
	FollowerID string
	FollowedID string
	CreatedAt  time.Time
}
