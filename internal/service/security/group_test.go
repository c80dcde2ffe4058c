package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"group-manager/internal/domain"
	"group-manager/internal/service/auditutil"
	"group-manager/internal/testutil"
)

const (
	adminID    int64 = 1
	memberID   int64 = 2
	outsiderID int64 = 3
	groupID    int64 = 10
)

var ctx = context.Background()

// runnersRepo returns a mock holding group 10 "Runners" owned by user 1
// with user 2 as its only member.
func runnersRepo() *testutil.MockGroupRepo {
	return &testutil.MockGroupRepo{
		GetByIDFn: func(_ context.Context, id int64) (*domain.Group, error) {
			if id == groupID {
				return testutil.Group(groupID, adminID, "Runners"), nil
			}
			return nil, domain.ErrNotFound("resource not found")
		},
		GetMembershipFn: func(_ context.Context, userID, gid int64) (*domain.Membership, error) {
			if gid == groupID && userID == memberID {
				return &domain.Membership{GroupID: gid, UserID: userID}, nil
			}
			return nil, domain.ErrNotFound("resource not found")
		},
	}
}

func newService(repo *testutil.MockGroupRepo) (*GroupService, *testutil.MockAuditRepo) {
	audit := &testutil.MockAuditRepo{}
	return NewGroupService(repo, audit), audit
}

func requireErrType[T error](t *testing.T, err error) T {
	t.Helper()
	require.Error(t, err)
	var target T
	require.ErrorAs(t, err, &target)
	return target
}

// === Authentication ===

func TestGroupService_UnresolvedCaller(t *testing.T) {
	svc, _ := newService(&testutil.MockGroupRepo{})

	calls := map[string]func(caller int64) error{
		"Create": func(c int64) error {
			_, err := svc.Create(ctx, c, domain.CreateGroupRequest{Name: "Runners"})
			return err
		},
		"GetByID":   func(c int64) error { _, err := svc.GetByID(ctx, c, groupID); return err },
		"GetByName": func(c int64) error { _, err := svc.GetByName(ctx, c, "Runners"); return err },
		"ListMembers": func(c int64) error {
			_, err := svc.ListMembers(ctx, c, groupID)
			return err
		},
		"GetMemberInGroup": func(c int64) error {
			_, err := svc.GetMemberInGroup(ctx, c, groupID, memberID)
			return err
		},
		"ListGroupsForUser": func(c int64) error { _, err := svc.ListGroupsForUser(ctx, c, memberID); return err },
		"ListGroupsOwnedBy": func(c int64) error { _, err := svc.ListGroupsOwnedBy(ctx, c, adminID); return err },
		"AddMember":         func(c int64) error { return svc.AddMember(ctx, c, groupID, memberID) },
		"RemoveMember":      func(c int64) error { return svc.RemoveMember(ctx, c, groupID, memberID) },
		"Delete":            func(c int64) error { _, err := svc.Delete(ctx, c, groupID); return err },
		"DeleteAllOwnedBy":  func(c int64) error { return svc.DeleteAllOwnedBy(ctx, c, 0) },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			for _, caller := range []int64{0, -1} {
				requireErrType[*domain.UnauthenticatedError](t, call(caller))
			}
		})
	}
}

// === Create ===

func TestGroupService_Create(t *testing.T) {
	var stored *domain.Group
	repo := &testutil.MockGroupRepo{
		GetByNameFn: func(_ context.Context, _ string) (*domain.Group, error) {
			return nil, domain.ErrNotFound("resource not found")
		},
		CreateFn: func(_ context.Context, g *domain.Group) (*domain.Group, error) {
			stored = g
			return testutil.Group(groupID, g.AdminID, g.Name), nil
		},
	}
	svc, audit := newService(repo)

	g, err := svc.Create(ctx, adminID, domain.CreateGroupRequest{Name: "Runners"})
	require.NoError(t, err)
	assert.Equal(t, groupID, g.ID)
	assert.Equal(t, adminID, g.AdminID)
	assert.Equal(t, "Runners", g.Name)
	assert.Equal(t, adminID, stored.AdminID)

	require.NotNil(t, audit.LastEntry())
	assert.Equal(t, auditutil.ActionCreateGroup, audit.LastEntry().Action)
	assert.Equal(t, domain.AuditAllowed, audit.LastEntry().Status)
}

func TestGroupService_Create_Validation(t *testing.T) {
	svc, _ := newService(&testutil.MockGroupRepo{})

	for _, name := range []string{"", "   ", "Run"} {
		_, err := svc.Create(ctx, adminID, domain.CreateGroupRequest{Name: name})
		requireErrType[*domain.ValidationError](t, err)
	}
}

func TestGroupService_Create_NameTaken(t *testing.T) {
	repo := &testutil.MockGroupRepo{
		GetByNameFn: func(_ context.Context, _ string) (*domain.Group, error) {
			return testutil.Group(groupID, 9, "Runners"), nil
		},
	}
	svc, audit := newService(repo)

	_, err := svc.Create(ctx, adminID, domain.CreateGroupRequest{Name: "RUNNERS"})
	require.Error(t, err)
	assert.True(t, domain.IsNameTaken(err))
	assert.Equal(t, "This name group already taken!", err.Error())
	assert.Equal(t, domain.AuditDenied, audit.LastEntry().Status)
}

func TestGroupService_Create_NameTakenByConcurrentInsert(t *testing.T) {
	repo := &testutil.MockGroupRepo{
		GetByNameFn: func(_ context.Context, _ string) (*domain.Group, error) {
			return nil, domain.ErrNotFound("resource not found")
		},
		CreateFn: func(_ context.Context, _ *domain.Group) (*domain.Group, error) {
			return nil, domain.ErrNameTaken()
		},
	}
	svc, _ := newService(repo)

	_, err := svc.Create(ctx, adminID, domain.CreateGroupRequest{Name: "Runners"})
	assert.True(t, domain.IsNameTaken(err))
}

func TestGroupService_Create_StoreFailure(t *testing.T) {
	repo := &testutil.MockGroupRepo{
		GetByNameFn: func(_ context.Context, _ string) (*domain.Group, error) {
			return nil, testutil.ErrTest
		},
	}
	svc, _ := newService(repo)

	_, err := svc.Create(ctx, adminID, domain.CreateGroupRequest{Name: "Runners"})
	sf := requireErrType[*domain.StoreFailureError](t, err)
	assert.ErrorIs(t, sf, testutil.ErrTest)
}

// === Lookups ===

func TestGroupService_GetByID(t *testing.T) {
	svc, _ := newService(runnersRepo())

	g, err := svc.GetByID(ctx, outsiderID, groupID)
	require.NoError(t, err)
	assert.Equal(t, "Runners", g.Name)

	_, err = svc.GetByID(ctx, outsiderID, 404)
	nf := requireErrType[*domain.NotFoundError](t, err)
	assert.Equal(t, "Group Not found!", nf.Message)
}

func TestGroupService_GetByName(t *testing.T) {
	repo := &testutil.MockGroupRepo{
		GetByNameFn: func(_ context.Context, name string) (*domain.Group, error) {
			if name == "Runners" {
				return testutil.Group(groupID, adminID, "Runners"), nil
			}
			return nil, domain.ErrNotFound("resource not found")
		},
	}
	svc, _ := newService(repo)

	g, err := svc.GetByName(ctx, outsiderID, "Runners")
	require.NoError(t, err)
	assert.Equal(t, groupID, g.ID)

	_, err = svc.GetByName(ctx, outsiderID, "Cyclists")
	requireErrType[*domain.NotFoundError](t, err)

	_, err = svc.GetByName(ctx, outsiderID, " ")
	requireErrType[*domain.ValidationError](t, err)
}

func TestGroupService_GetMembership(t *testing.T) {
	svc, _ := newService(runnersRepo())

	m, err := svc.GetMembership(ctx, memberID, groupID)
	require.NoError(t, err)
	assert.Equal(t, memberID, m.UserID)

	_, err = svc.GetMembership(ctx, outsiderID, groupID)
	nf := requireErrType[*domain.NotFoundError](t, err)
	assert.Equal(t, "User not found!", nf.Message)
}

// === ListMembers / GetMemberInGroup ===

func TestGroupService_ListMembers(t *testing.T) {
	repo := runnersRepo()
	repo.ListMemberIDsFn = func(_ context.Context, _ int64) ([]int64, error) {
		return []int64{memberID}, nil
	}
	svc, _ := newService(repo)

	tests := []struct {
		name    string
		caller  int64
		group   int64
		wantErr func(t *testing.T, err error)
	}{
		{name: "admin", caller: adminID, group: groupID},
		{name: "member", caller: memberID, group: groupID},
		{name: "outsider", caller: outsiderID, group: groupID, wantErr: func(t *testing.T, err error) {
			requireErrType[*domain.AccessDeniedError](t, err)
		}},
		{name: "missing group before standing", caller: outsiderID, group: 404, wantErr: func(t *testing.T, err error) {
			requireErrType[*domain.NotFoundError](t, err)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := svc.ListMembers(ctx, tt.caller, tt.group)
			if tt.wantErr != nil {
				tt.wantErr(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []int64{memberID}, ids)
		})
	}
}

func TestGroupService_ListMembers_EmptyIsNotFound(t *testing.T) {
	repo := runnersRepo()
	repo.ListMemberIDsFn = func(_ context.Context, _ int64) ([]int64, error) { return nil, nil }
	svc, _ := newService(repo)

	_, err := svc.ListMembers(ctx, adminID, groupID)
	nf := requireErrType[*domain.NotFoundError](t, err)
	assert.Equal(t, "Can't find any user", nf.Message)
}

func TestGroupService_GetMemberInGroup(t *testing.T) {
	svc, _ := newService(runnersRepo())

	m, err := svc.GetMemberInGroup(ctx, adminID, groupID, memberID)
	require.NoError(t, err)
	assert.Equal(t, groupID, m.GroupID)

	// Members may look up each other.
	_, err = svc.GetMemberInGroup(ctx, memberID, groupID, memberID)
	require.NoError(t, err)

	_, err = svc.GetMemberInGroup(ctx, outsiderID, groupID, memberID)
	requireErrType[*domain.AccessDeniedError](t, err)

	_, err = svc.GetMemberInGroup(ctx, adminID, groupID, outsiderID)
	requireErrType[*domain.NotFoundError](t, err)

	_, err = svc.GetMemberInGroup(ctx, outsiderID, 404, memberID)
	requireErrType[*domain.NotFoundError](t, err)
}

// === Listings by user / admin ===

func TestGroupService_ListGroups(t *testing.T) {
	groups := []domain.Group{*testutil.Group(groupID, adminID, "Runners")}
	repo := &testutil.MockGroupRepo{
		ListGroupsByMemberFn: func(_ context.Context, userID int64) ([]domain.Group, error) {
			if userID == memberID {
				return groups, nil
			}
			return nil, nil
		},
		ListGroupsByAdminFn: func(_ context.Context, id int64) ([]domain.Group, error) {
			if id == adminID {
				return groups, nil
			}
			return []domain.Group{}, nil
		},
	}
	svc, _ := newService(repo)

	got, err := svc.ListGroupsForUser(ctx, outsiderID, memberID)
	require.NoError(t, err)
	assert.Equal(t, groups, got)

	got, err = svc.ListGroupsOwnedBy(ctx, outsiderID, adminID)
	require.NoError(t, err)
	assert.Equal(t, groups, got)

	_, err = svc.ListGroupsForUser(ctx, outsiderID, outsiderID)
	nf := requireErrType[*domain.NotFoundError](t, err)
	assert.Equal(t, "Can't find any Group", nf.Message)

	_, err = svc.ListGroupsOwnedBy(ctx, outsiderID, outsiderID)
	requireErrType[*domain.NotFoundError](t, err)
}

func TestGroupService_ListGroups_StoreFailure(t *testing.T) {
	repo := &testutil.MockGroupRepo{
		ListGroupsByMemberFn: func(_ context.Context, _ int64) ([]domain.Group, error) {
			return nil, testutil.ErrTest
		},
	}
	svc, _ := newService(repo)

	_, err := svc.ListGroupsForUser(ctx, adminID, memberID)
	requireErrType[*domain.StoreFailureError](t, err)
}

// === AddMember ===

func TestGroupService_AddMember(t *testing.T) {
	repo := runnersRepo()
	var added *domain.Membership
	repo.AddMembershipFn = func(_ context.Context, m *domain.Membership) (int64, error) {
		added = m
		return 1, nil
	}
	svc, audit := newService(repo)

	require.NoError(t, svc.AddMember(ctx, adminID, groupID, outsiderID))
	assert.Equal(t, &domain.Membership{GroupID: groupID, UserID: outsiderID}, added)
	assert.Equal(t, auditutil.ActionAddMember, audit.LastEntry().Action)
	assert.Equal(t, domain.AuditAllowed, audit.LastEntry().Status)
	require.NotNil(t, audit.LastEntry().GroupID)
	assert.Equal(t, groupID, *audit.LastEntry().GroupID)
}

func TestGroupService_AddMember_Failures(t *testing.T) {
	tests := []struct {
		name   string
		caller int64
		group  int64
		user   int64
		rows   int64
		check  func(t *testing.T, err error)
	}{
		{name: "missing group", caller: adminID, group: 404, user: outsiderID, check: func(t *testing.T, err error) {
			requireErrType[*domain.NotFoundError](t, err)
		}},
		{name: "non-admin", caller: memberID, group: groupID, user: outsiderID, check: func(t *testing.T, err error) {
			requireErrType[*domain.AccessDeniedError](t, err)
		}},
		{name: "non-admin targeting existing member", caller: outsiderID, group: groupID, user: memberID, check: func(t *testing.T, err error) {
			requireErrType[*domain.AccessDeniedError](t, err)
		}},
		{name: "already member", caller: adminID, group: groupID, user: memberID, check: func(t *testing.T, err error) {
			assert.True(t, domain.IsAlreadyMember(err))
		}},
		{name: "zero rows", caller: adminID, group: groupID, user: outsiderID, rows: 0, check: func(t *testing.T, err error) {
			sf := requireErrType[*domain.StoreFailureError](t, err)
			assert.NoError(t, sf.Unwrap())
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := runnersRepo()
			repo.AddMembershipFn = func(_ context.Context, _ *domain.Membership) (int64, error) {
				return tt.rows, nil
			}
			svc, _ := newService(repo)
			tt.check(t, svc.AddMember(ctx, tt.caller, tt.group, tt.user))
		})
	}
}

func TestGroupService_AddMember_InsertError(t *testing.T) {
	repo := runnersRepo()
	repo.AddMembershipFn = func(_ context.Context, _ *domain.Membership) (int64, error) {
		return 0, testutil.ErrTest
	}
	svc, audit := newService(repo)

	err := svc.AddMember(ctx, adminID, groupID, outsiderID)
	sf := requireErrType[*domain.StoreFailureError](t, err)
	assert.ErrorIs(t, sf, testutil.ErrTest)
	assert.Equal(t, domain.AuditError, audit.LastEntry().Status)
}

// === RemoveMember ===

func TestGroupService_RemoveMember(t *testing.T) {
	repo := runnersRepo()
	repo.RemoveMembershipFn = func(_ context.Context, m *domain.Membership) (int64, error) {
		assert.Equal(t, memberID, m.UserID)
		return 1, nil
	}
	svc, audit := newService(repo)

	require.NoError(t, svc.RemoveMember(ctx, adminID, groupID, memberID))
	assert.True(t, audit.HasAction(auditutil.ActionRemoveMember))
}

func TestGroupService_RemoveMember_Failures(t *testing.T) {
	repo := runnersRepo()
	repo.RemoveMembershipFn = func(_ context.Context, _ *domain.Membership) (int64, error) { return 0, nil }
	svc, audit := newService(repo)

	err := svc.RemoveMember(ctx, adminID, 404, memberID)
	requireErrType[*domain.NotFoundError](t, err)

	// Non-admin is refused even for a user that is not a member.
	err = svc.RemoveMember(ctx, memberID, groupID, outsiderID)
	requireErrType[*domain.AccessDeniedError](t, err)
	assert.Equal(t, domain.AuditDenied, audit.LastEntry().Status)

	err = svc.RemoveMember(ctx, memberID, groupID, memberID)
	requireErrType[*domain.AccessDeniedError](t, err)

	err = svc.RemoveMember(ctx, adminID, groupID, outsiderID)
	nf := requireErrType[*domain.NotFoundError](t, err)
	assert.Equal(t, "User not found!", nf.Message)

	err = svc.RemoveMember(ctx, adminID, groupID, memberID)
	requireErrType[*domain.StoreFailureError](t, err)
}

// === Delete ===

func TestGroupService_Delete(t *testing.T) {
	repo := runnersRepo()
	repo.DeleteFn = func(_ context.Context, id int64) (*domain.Group, error) {
		return testutil.Group(id, adminID, "Runners"), nil
	}
	svc, audit := newService(repo)

	g, err := svc.Delete(ctx, adminID, groupID)
	require.NoError(t, err)
	assert.Equal(t, "Runners", g.Name)
	assert.Equal(t, auditutil.ActionDeleteGroup, audit.LastEntry().Action)

	_, err = svc.Delete(ctx, memberID, groupID)
	requireErrType[*domain.AccessDeniedError](t, err)

	_, err = svc.Delete(ctx, adminID, 404)
	requireErrType[*domain.NotFoundError](t, err)
}

func TestGroupService_Delete_NoRecordReturned(t *testing.T) {
	for name, deleteFn := range map[string]func(context.Context, int64) (*domain.Group, error){
		"vanished": func(context.Context, int64) (*domain.Group, error) {
			return nil, domain.ErrNotFound("resource not found")
		},
		"nil group": func(context.Context, int64) (*domain.Group, error) { return nil, nil },
		"store error": func(context.Context, int64) (*domain.Group, error) {
			return nil, testutil.ErrTest
		},
	} {
		t.Run(name, func(t *testing.T) {
			repo := runnersRepo()
			repo.DeleteFn = deleteFn
			svc, _ := newService(repo)

			_, err := svc.Delete(ctx, adminID, groupID)
			requireErrType[*domain.StoreFailureError](t, err)
		})
	}
}

// === DeleteAllOwnedBy ===

func TestGroupService_DeleteAllOwnedBy(t *testing.T) {
	var deletedFor int64
	repo := &testutil.MockGroupRepo{
		DeleteAllByAdminFn: func(_ context.Context, id int64) error {
			deletedFor = id
			return nil
		},
	}
	svc, audit := newService(repo)

	require.NoError(t, svc.DeleteAllOwnedBy(ctx, adminID, adminID))
	assert.Equal(t, adminID, deletedFor)
	assert.True(t, audit.HasAction(auditutil.ActionDeleteAllGroups))

	err := svc.DeleteAllOwnedBy(ctx, memberID, adminID)
	requireErrType[*domain.AccessDeniedError](t, err)
}

func TestGroupService_DeleteAllOwnedBy_StoreFailure(t *testing.T) {
	repo := &testutil.MockGroupRepo{
		DeleteAllByAdminFn: func(_ context.Context, _ int64) error { return testutil.ErrTest },
	}
	svc, _ := newService(repo)

	err := svc.DeleteAllOwnedBy(ctx, adminID, adminID)
	requireErrType[*domain.StoreFailureError](t, err)
}

// === Audit is best-effort ===

func TestGroupService_AuditFailureDoesNotFailOperation(t *testing.T) {
	repo := runnersRepo()
	repo.AddMembershipFn = func(_ context.Context, _ *domain.Membership) (int64, error) { return 1, nil }
	audit := &testutil.MockAuditRepo{
		InsertFn: func(_ context.Context, _ *domain.AuditEntry) error { return testutil.ErrTest },
	}
	svc := NewGroupService(repo, audit)

	require.NoError(t, svc.AddMember(ctx, adminID, groupID, outsiderID))
	assert.Empty(t, audit.Entries)
}

func TestGroupService_NilAudit(t *testing.T) {
	repo := runnersRepo()
	repo.AddMembershipFn = func(_ context.Context, _ *domain.Membership) (int64, error) { return 1, nil }
	svc := NewGroupService(repo, nil)

	require.NoError(t, svc.AddMember(ctx, adminID, groupID, outsiderID))
}
