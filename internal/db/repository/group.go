package repository

import (
	"context"
	"database/sql"
	"fmt"

	dbstore "group-manager/internal/db/dbstore"
	"group-manager/internal/db/mapper"
	"group-manager/internal/domain"
)

const (
	msgGroupNotFound      = "Group Not found!"
	msgMembershipNotFound = "User not found!"
)

// GroupRepo persists groups and memberships. Writes go through the
// single-connection write pool, reads through the read pool.
type GroupRepo struct {
	db *sql.DB
	q  *dbstore.Queries
	rq *dbstore.Queries
}

// NewGroupRepo returns a GroupRepo. readDB may be nil, in which case reads
// share writeDB.
func NewGroupRepo(writeDB, readDB *sql.DB) *GroupRepo {
	if readDB == nil {
		readDB = writeDB
	}
	return &GroupRepo{db: writeDB, q: dbstore.New(writeDB), rq: dbstore.New(readDB)}
}

func (r *GroupRepo) Create(ctx context.Context, g *domain.Group) (*domain.Group, error) {
	row, err := r.q.CreateGroup(ctx, dbstore.CreateGroupParams{
		Name:    g.Name,
		AdminID: g.AdminID,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrNameTaken()
		}
		return nil, mapDBError(err)
	}
	return mapper.GroupFromDB(row), nil
}

func (r *GroupRepo) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	row, err := r.rq.GetGroup(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, msgGroupNotFound)
	}
	return mapper.GroupFromDB(row), nil
}

func (r *GroupRepo) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	row, err := r.rq.GetGroupByName(ctx, name)
	if err != nil {
		return nil, notFoundAs(err, msgGroupNotFound)
	}
	return mapper.GroupFromDB(row), nil
}

// Delete removes the group and its memberships in one transaction and
// returns the group as it was before deletion.
func (r *GroupRepo) Delete(ctx context.Context, id int64) (*domain.Group, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	qtx := r.q.WithTx(tx)
	if err := qtx.DeleteGroupMembersByGroup(ctx, id); err != nil {
		return nil, fmt.Errorf("delete members of group %d: %w", id, err)
	}
	row, err := qtx.DeleteGroup(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, msgGroupNotFound)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return mapper.GroupFromDB(row), nil
}

// AddMembership inserts the pair and reports affected rows. An existing
// pair yields 0 rather than an error.
func (r *GroupRepo) AddMembership(ctx context.Context, m *domain.Membership) (int64, error) {
	n, err := r.q.AddGroupMember(ctx, dbstore.AddGroupMemberParams{
		GroupID: m.GroupID,
		UserID:  m.UserID,
	})
	if err != nil {
		return 0, mapDBError(err)
	}
	return n, nil
}

func (r *GroupRepo) RemoveMembership(ctx context.Context, m *domain.Membership) (int64, error) {
	n, err := r.q.RemoveGroupMember(ctx, dbstore.RemoveGroupMemberParams{
		GroupID: m.GroupID,
		UserID:  m.UserID,
	})
	if err != nil {
		return 0, mapDBError(err)
	}
	return n, nil
}

func (r *GroupRepo) GetMembership(ctx context.Context, userID, groupID int64) (*domain.Membership, error) {
	row, err := r.rq.GetGroupMember(ctx, dbstore.GetGroupMemberParams{
		GroupID: groupID,
		UserID:  userID,
	})
	if err != nil {
		return nil, notFoundAs(err, msgMembershipNotFound)
	}
	return mapper.MembershipFromDB(row), nil
}

func (r *GroupRepo) ListMemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	ids, err := r.rq.ListGroupMemberIDs(ctx, groupID)
	if err != nil {
		return nil, mapDBError(err)
	}
	return ids, nil
}

func (r *GroupRepo) ListGroupsByMember(ctx context.Context, userID int64) ([]domain.Group, error) {
	rows, err := r.rq.ListGroupsByMember(ctx, userID)
	if err != nil {
		return nil, mapDBError(err)
	}
	return mapper.GroupsFromDB(rows), nil
}

func (r *GroupRepo) ListGroupsByAdmin(ctx context.Context, adminID int64) ([]domain.Group, error) {
	rows, err := r.rq.ListGroupsByAdmin(ctx, adminID)
	if err != nil {
		return nil, mapDBError(err)
	}
	return mapper.GroupsFromDB(rows), nil
}

// DeleteAllByAdmin removes every group owned by adminID together with
// their memberships. Owning no groups is not an error.
func (r *GroupRepo) DeleteAllByAdmin(ctx context.Context, adminID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	qtx := r.q.WithTx(tx)
	if err := qtx.DeleteGroupMembersByAdmin(ctx, adminID); err != nil {
		return fmt.Errorf("delete members of admin %d groups: %w", adminID, err)
	}
	if _, err := qtx.DeleteGroupsByAdmin(ctx, adminID); err != nil {
		return fmt.Errorf("delete groups of admin %d: %w", adminID, err)
	}

	return tx.Commit()
}
