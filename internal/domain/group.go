package domain

import "time"

// Group is a named collection of users sharing tasks and discussion
// points. Joined via a unique invitation code. The owner is always a
// member.
type Group struct {
	ID             int64
	Name           string
	Description    string
	OwnerID        int64
	InvitationCode string
	CreatedAt      time.Time
}

// Member is one row of a group's member set.
type Member struct {
	UserID   int64
	Username string
	Email    string
	JoinedAt time.Time
}

// Point is a free-text discussion entry posted into a group.
type Point struct {
	ID             int64
	Content        string
	UserID         int64
	AuthorUsername string
	GroupID        int64
	CreatedAt      time.Time
}
