package domain

import (
	"context"
	"time"
)

// GroupRepository is the durable record of groups and memberships.
//
// Lookups return *NotFoundError when nothing matches. Delete and
// DeleteAllByAdmin remove dependent membership rows in the same transaction.
// The store enforces (group_id, user_id) uniqueness on its own; a duplicate
// AddMembership reports zero affected rows instead of an error.
type GroupRepository interface {
	Create(ctx context.Context, g *Group) (*Group, error)
	GetByID(ctx context.Context, id int64) (*Group, error)
	GetByName(ctx context.Context, name string) (*Group, error)
	Delete(ctx context.Context, id int64) (*Group, error)
	AddMembership(ctx context.Context, m *Membership) (int64, error)
	RemoveMembership(ctx context.Context, m *Membership) (int64, error)
	GetMembership(ctx context.Context, userID, groupID int64) (*Membership, error)
	ListMemberIDs(ctx context.Context, groupID int64) ([]int64, error)
	ListGroupsByMember(ctx context.Context, userID int64) ([]Group, error)
	ListGroupsByAdmin(ctx context.Context, adminID int64) ([]Group, error)
	DeleteAllByAdmin(ctx context.Context, adminID int64) error
}

// AuditFilter holds filter parameters for querying audit logs.
type AuditFilter struct {
	PrincipalID *int64
	Action      *string
	Status      *string
	Page        PageRequest
}

// AuditRepository provides operations for audit log entries.
type AuditRepository interface {
	Insert(ctx context.Context, e *AuditEntry) error
	List(ctx context.Context, filter AuditFilter) ([]AuditEntry, int64, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
