// Package testutil provides shared mock implementations of domain interfaces
// for use in tests across the codebase, in the spirit of net/http/httptest.
package testutil

import (
	"context"
	"time"

	"group-manager/internal/domain"
)

// === Audit Repository Mock ===

// MockAuditRepo implements domain.AuditRepository for testing.
type MockAuditRepo struct {
	InsertFn       func(ctx context.Context, e *domain.AuditEntry) error
	ListFn         func(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error)
	DeleteBeforeFn func(ctx context.Context, cutoff time.Time) (int64, error)
	Entries        []*domain.AuditEntry // collected entries for assertions
}

// Insert implements the interface method for testing.
func (m *MockAuditRepo) Insert(ctx context.Context, e *domain.AuditEntry) error {
	if m.InsertFn != nil {
		if err := m.InsertFn(ctx, e); err != nil {
			return err
		}
	}
	m.Entries = append(m.Entries, e)
	return nil
}

// List implements the interface method for testing.
func (m *MockAuditRepo) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	panic("unexpected call to MockAuditRepo.List")
}

// DeleteBefore implements the interface method for testing.
func (m *MockAuditRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteBeforeFn != nil {
		return m.DeleteBeforeFn(ctx, cutoff)
	}
	panic("unexpected call to MockAuditRepo.DeleteBefore")
}

// LastEntry returns the last collected audit entry, or nil if none.
func (m *MockAuditRepo) LastEntry() *domain.AuditEntry {
	if len(m.Entries) == 0 {
		return nil
	}
	return m.Entries[len(m.Entries)-1]
}

// HasAction returns true if any collected entry has the given action.
func (m *MockAuditRepo) HasAction(action string) bool {
	for _, e := range m.Entries {
		if e.Action == action {
			return true
		}
	}
	return false
}

var _ domain.AuditRepository = (*MockAuditRepo)(nil)

// === Group Repository Mock ===

// MockGroupRepo implements domain.GroupRepository for testing. Every
// method panics unless its Fn field is set.
type MockGroupRepo struct {
	CreateFn             func(ctx context.Context, g *domain.Group) (*domain.Group, error)
	GetByIDFn            func(ctx context.Context, id int64) (*domain.Group, error)
	GetByNameFn          func(ctx context.Context, name string) (*domain.Group, error)
	DeleteFn             func(ctx context.Context, id int64) (*domain.Group, error)
	AddMembershipFn      func(ctx context.Context, m *domain.Membership) (int64, error)
	RemoveMembershipFn   func(ctx context.Context, m *domain.Membership) (int64, error)
	GetMembershipFn      func(ctx context.Context, userID, groupID int64) (*domain.Membership, error)
	ListMemberIDsFn      func(ctx context.Context, groupID int64) ([]int64, error)
	ListGroupsByMemberFn func(ctx context.Context, userID int64) ([]domain.Group, error)
	ListGroupsByAdminFn  func(ctx context.Context, adminID int64) ([]domain.Group, error)
	DeleteAllByAdminFn   func(ctx context.Context, adminID int64) error
}

// Create implements the interface method for testing.
func (m *MockGroupRepo) Create(ctx context.Context, g *domain.Group) (*domain.Group, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, g)
	}
	panic("unexpected call to MockGroupRepo.Create")
}

// GetByID implements the interface method for testing.
func (m *MockGroupRepo) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	panic("unexpected call to MockGroupRepo.GetByID")
}

// GetByName implements the interface method for testing.
func (m *MockGroupRepo) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, name)
	}
	panic("unexpected call to MockGroupRepo.GetByName")
}

// Delete implements the interface method for testing.
func (m *MockGroupRepo) Delete(ctx context.Context, id int64) (*domain.Group, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	panic("unexpected call to MockGroupRepo.Delete")
}

// AddMembership implements the interface method for testing.
func (m *MockGroupRepo) AddMembership(ctx context.Context, mem *domain.Membership) (int64, error) {
	if m.AddMembershipFn != nil {
		return m.AddMembershipFn(ctx, mem)
	}
	panic("unexpected call to MockGroupRepo.AddMembership")
}

// RemoveMembership implements the interface method for testing.
func (m *MockGroupRepo) RemoveMembership(ctx context.Context, mem *domain.Membership) (int64, error) {
	if m.RemoveMembershipFn != nil {
		return m.RemoveMembershipFn(ctx, mem)
	}
	panic("unexpected call to MockGroupRepo.RemoveMembership")
}

// GetMembership implements the interface method for testing.
func (m *MockGroupRepo) GetMembership(ctx context.Context, userID, groupID int64) (*domain.Membership, error) {
	if m.GetMembershipFn != nil {
		return m.GetMembershipFn(ctx, userID, groupID)
	}
	panic("unexpected call to MockGroupRepo.GetMembership")
}

// ListMemberIDs implements the interface method for testing.
func (m *MockGroupRepo) ListMemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	if m.ListMemberIDsFn != nil {
		return m.ListMemberIDsFn(ctx, groupID)
	}
	panic("unexpected call to MockGroupRepo.ListMemberIDs")
}

// ListGroupsByMember implements the interface method for testing.
func (m *MockGroupRepo) ListGroupsByMember(ctx context.Context, userID int64) ([]domain.Group, error) {
	if m.ListGroupsByMemberFn != nil {
		return m.ListGroupsByMemberFn(ctx, userID)
	}
	panic("unexpected call to MockGroupRepo.ListGroupsByMember")
}

// ListGroupsByAdmin implements the interface method for testing.
func (m *MockGroupRepo) ListGroupsByAdmin(ctx context.Context, adminID int64) ([]domain.Group, error) {
	if m.ListGroupsByAdminFn != nil {
		return m.ListGroupsByAdminFn(ctx, adminID)
	}
	panic("unexpected call to MockGroupRepo.ListGroupsByAdmin")
}

// DeleteAllByAdmin implements the interface method for testing.
func (m *MockGroupRepo) DeleteAllByAdmin(ctx context.Context, adminID int64) error {
	if m.DeleteAllByAdminFn != nil {
		return m.DeleteAllByAdminFn(ctx, adminID)
	}
	panic("unexpected call to MockGroupRepo.DeleteAllByAdmin")
}

var _ domain.GroupRepository = (*MockGroupRepo)(nil)

// === Fixtures ===

// ErrTest is a generic store fault for tests.
var ErrTest = errTest("test store error")

type errTest string

func (e errTest) Error() string { return string(e) }

// Group returns a group fixture owned by adminID.
func Group(id, adminID int64, name string) *domain.Group {
	return &domain.Group{ID: id, Name: name, AdminID: adminID, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}
