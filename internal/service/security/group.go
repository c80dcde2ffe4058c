// Package security implements the group and membership rules: who may see a
// roster and who may change it.
package security

import (
	"context"
	"fmt"
	"strings"

	"group-manager/internal/domain"
	"group-manager/internal/service/auditutil"
)

// GroupService provides group management operations. Every check runs in the
// order existence, then authorization, then the business rule.
type GroupService struct {
	repo  domain.GroupRepository
	audit domain.AuditRepository
}

// NewGroupService creates a new GroupService.
func NewGroupService(repo domain.GroupRepository, audit domain.AuditRepository) *GroupService {
	return &GroupService{repo: repo, audit: audit}
}

// Create validates and persists a new group owned by the caller. The caller
// is not added as a member.
func (s *GroupService) Create(ctx context.Context, callerID int64, req domain.CreateGroupRequest) (*domain.Group, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	_, err := s.repo.GetByName(ctx, req.Name)
	switch {
	case err == nil:
		auditutil.LogDenied(ctx, s.audit, callerID, auditutil.ActionCreateGroup, 0, "name taken: "+req.Name)
		return nil, domain.ErrNameTaken()
	case !domain.IsNotFound(err):
		return nil, storeFailure(ctx, err, "get group by name")
	}

	g, err := s.repo.Create(ctx, &domain.Group{Name: req.Name, AdminID: callerID})
	if err != nil {
		if domain.IsNameTaken(err) {
			return nil, err
		}
		auditutil.LogError(ctx, s.audit, callerID, auditutil.ActionCreateGroup, 0, req.Name)
		return nil, storeFailure(ctx, err, "create group")
	}

	auditutil.LogAllowed(ctx, s.audit, callerID, auditutil.ActionCreateGroup, g.ID, g.Name)
	return g, nil
}

// GetByID returns a group by ID. Any authenticated caller may resolve it.
func (s *GroupService) GetByID(ctx context.Context, callerID, id int64) (*domain.Group, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	return s.lookupGroup(ctx, id)
}

// GetByName returns a group by name, compared without regard to case.
func (s *GroupService) GetByName(ctx context.Context, callerID int64, name string) (*domain.Group, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrValidation("group name is required")
	}

	g, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ErrNotFound("Group Not found!")
		}
		return nil, storeFailure(ctx, err, "get group by name")
	}
	return g, nil
}

// GetMembership reports whether userID belongs to groupID.
func (s *GroupService) GetMembership(ctx context.Context, userID, groupID int64) (*domain.Membership, error) {
	m, err := s.repo.GetMembership(ctx, userID, groupID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ErrNotFound("User not found!")
		}
		return nil, storeFailure(ctx, err, "get membership")
	}
	return m, nil
}

// GetMemberInGroup returns the membership of userID in groupID. The caller
// must be the group's admin or one of its members.
func (s *GroupService) GetMemberInGroup(ctx context.Context, callerID, groupID, userID int64) (*domain.Membership, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	g, err := s.lookupGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.requireAdminOrMember(ctx, g, callerID); err != nil {
		return nil, err
	}
	return s.GetMembership(ctx, userID, groupID)
}

// ListMembers returns the user ids in the group. The caller must be the
// group's admin or one of its members. An empty roster is reported as
// *NotFoundError.
func (s *GroupService) ListMembers(ctx context.Context, callerID, groupID int64) ([]int64, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	g, err := s.lookupGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.requireAdminOrMember(ctx, g, callerID); err != nil {
		return nil, err
	}

	ids, err := s.repo.ListMemberIDs(ctx, groupID)
	if err != nil {
		return nil, storeFailure(ctx, err, "list members")
	}
	if len(ids) == 0 {
		return nil, domain.ErrNotFound("Can't find any user")
	}
	return ids, nil
}

// ListGroupsForUser returns the groups userID belongs to.
func (s *GroupService) ListGroupsForUser(ctx context.Context, callerID, userID int64) ([]domain.Group, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	groups, err := s.repo.ListGroupsByMember(ctx, userID)
	if err != nil {
		return nil, storeFailure(ctx, err, "list groups by member")
	}
	if len(groups) == 0 {
		return nil, domain.ErrNotFound("Can't find any Group")
	}
	return groups, nil
}

// ListGroupsOwnedBy returns the groups administered by adminID.
func (s *GroupService) ListGroupsOwnedBy(ctx context.Context, callerID, adminID int64) ([]domain.Group, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	groups, err := s.repo.ListGroupsByAdmin(ctx, adminID)
	if err != nil {
		return nil, storeFailure(ctx, err, "list groups by admin")
	}
	if len(groups) == 0 {
		return nil, domain.ErrNotFound("Can't find any Group")
	}
	return groups, nil
}

// AddMember adds userID to the group. Only the admin may do so.
//
// The membership pre-check and the insert are not atomic. Two concurrent
// calls for the same pair can both pass the check; the store's primary key
// makes the loser a zero-row insert, which surfaces as *StoreFailureError.
func (s *GroupService) AddMember(ctx context.Context, callerID, groupID, userID int64) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	g, err := s.lookupGroup(ctx, groupID)
	if err != nil {
		return err
	}
	detail := fmt.Sprintf("user %d", userID)
	if !g.IsAdmin(callerID) {
		auditutil.LogDenied(ctx, s.audit, callerID, auditutil.ActionAddMember, groupID, detail)
		return domain.ErrAccessDenied("only the group admin can add members")
	}

	_, err = s.repo.GetMembership(ctx, userID, groupID)
	switch {
	case err == nil:
		auditutil.LogDenied(ctx, s.audit, callerID, auditutil.ActionAddMember, groupID, detail+" already a member")
		return domain.ErrAlreadyMember()
	case !domain.IsNotFound(err):
		return storeFailure(ctx, err, "get membership")
	}

	n, err := s.repo.AddMembership(ctx, &domain.Membership{GroupID: groupID, UserID: userID})
	if err != nil {
		auditutil.LogError(ctx, s.audit, callerID, auditutil.ActionAddMember, groupID, detail)
		return storeFailure(ctx, err, "add membership")
	}
	if n == 0 {
		auditutil.LogError(ctx, s.audit, callerID, auditutil.ActionAddMember, groupID, detail)
		return noEffect(ctx, "add membership")
	}

	auditutil.LogAllowed(ctx, s.audit, callerID, auditutil.ActionAddMember, groupID, detail)
	return nil
}

// RemoveMember removes userID from the group. Only the admin may do so.
func (s *GroupService) RemoveMember(ctx context.Context, callerID, groupID, userID int64) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	g, err := s.lookupGroup(ctx, groupID)
	if err != nil {
		return err
	}
	detail := fmt.Sprintf("user %d", userID)
	if !g.IsAdmin(callerID) {
		auditutil.LogDenied(ctx, s.audit, callerID, auditutil.ActionRemoveMember, groupID, detail)
		return domain.ErrAccessDenied("only the group admin can remove members")
	}

	if _, err := s.GetMembership(ctx, userID, groupID); err != nil {
		return err
	}

	n, err := s.repo.RemoveMembership(ctx, &domain.Membership{GroupID: groupID, UserID: userID})
	if err != nil {
		auditutil.LogError(ctx, s.audit, callerID, auditutil.ActionRemoveMember, groupID, detail)
		return storeFailure(ctx, err, "remove membership")
	}
	if n == 0 {
		auditutil.LogError(ctx, s.audit, callerID, auditutil.ActionRemoveMember, groupID, detail)
		return noEffect(ctx, "remove membership")
	}

	auditutil.LogAllowed(ctx, s.audit, callerID, auditutil.ActionRemoveMember, groupID, detail)
	return nil
}

// Delete removes the group and its memberships and returns the group as it
// was. Only the admin may do so.
func (s *GroupService) Delete(ctx context.Context, callerID, groupID int64) (*domain.Group, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	g, err := s.lookupGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !g.IsAdmin(callerID) {
		auditutil.LogDenied(ctx, s.audit, callerID, auditutil.ActionDeleteGroup, groupID, g.Name)
		return nil, domain.ErrAccessDenied("only the group admin can delete the group")
	}

	deleted, err := s.repo.Delete(ctx, groupID)
	switch {
	case domain.IsNotFound(err), err == nil && deleted == nil:
		// Gone between the lookup and the delete.
		auditutil.LogError(ctx, s.audit, callerID, auditutil.ActionDeleteGroup, groupID, g.Name)
		return nil, noEffect(ctx, "delete group")
	case err != nil:
		auditutil.LogError(ctx, s.audit, callerID, auditutil.ActionDeleteGroup, groupID, g.Name)
		return nil, storeFailure(ctx, err, "delete group")
	}

	auditutil.LogAllowed(ctx, s.audit, callerID, auditutil.ActionDeleteGroup, groupID, deleted.Name)
	return deleted, nil
}

// DeleteAllOwnedBy removes every group adminID owns, with their
// memberships, as one unit. Callers may only bulk-delete their own groups.
func (s *GroupService) DeleteAllOwnedBy(ctx context.Context, callerID, adminID int64) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	if adminID != callerID {
		auditutil.LogDenied(ctx, s.audit, callerID, auditutil.ActionDeleteAllGroups, 0, fmt.Sprintf("admin %d", adminID))
		return domain.ErrAccessDenied("cannot delete groups owned by another admin")
	}

	if err := s.repo.DeleteAllByAdmin(ctx, adminID); err != nil {
		auditutil.LogError(ctx, s.audit, callerID, auditutil.ActionDeleteAllGroups, 0, "")
		return storeFailure(ctx, err, "delete all groups")
	}

	auditutil.LogAllowed(ctx, s.audit, callerID, auditutil.ActionDeleteAllGroups, 0, "")
	return nil
}

func (s *GroupService) lookupGroup(ctx context.Context, id int64) (*domain.Group, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ErrNotFound("Group Not found!")
		}
		return nil, storeFailure(ctx, err, "get group")
	}
	return g, nil
}

// requireAdminOrMember grants access to the group's admin and its members.
func (s *GroupService) requireAdminOrMember(ctx context.Context, g *domain.Group, callerID int64) error {
	if g.IsAdmin(callerID) {
		return nil
	}
	_, err := s.repo.GetMembership(ctx, callerID, g.ID)
	switch {
	case err == nil:
		return nil
	case domain.IsNotFound(err):
		return domain.ErrAccessDenied("only the group admin and its members can view the roster")
	default:
		return storeFailure(ctx, err, "get membership")
	}
}
