package domain

import (
	"strings"
	"time"
)

// MinGroupNameLength is the shortest accepted group name.
const MinGroupNameLength = 5

// Group is a named collection owned by a single admin.
type Group struct {
	ID        int64
	Name      string
	AdminID   int64
	CreatedAt time.Time
}

// IsAdmin reports whether userID owns the group.
func (g *Group) IsAdmin(userID int64) bool {
	return g.AdminID == userID
}

// Membership relates a user to a group. The group's admin is not implied to
// hold one.
type Membership struct {
	GroupID   int64
	UserID    int64
	CreatedAt time.Time
}

// CreateGroupRequest holds parameters for creating a new group.
type CreateGroupRequest struct {
	Name string
}

// Validate checks that the request is well-formed.
func (r *CreateGroupRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrValidation("group name is required")
	}
	if len([]rune(r.Name)) < MinGroupNameLength {
		return ErrValidation("group name must be at least %d characters", MinGroupNameLength)
	}
	return nil
}
