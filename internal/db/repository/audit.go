package repository

import (
	"context"
	"database/sql"
	"time"

	dbstore "group-manager/internal/db/dbstore"
	"group-manager/internal/db/mapper"
	"group-manager/internal/domain"
)

type AuditRepo struct {
	q *dbstore.Queries
}

func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{q: dbstore.New(db)}
}

func (r *AuditRepo) Insert(ctx context.Context, e *domain.AuditEntry) error {
	return r.q.InsertAuditLog(ctx, mapper.AuditEntryToInsertParams(e))
}

func (r *AuditRepo) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	principal := mapper.NullIntFromPtr(filter.PrincipalID)
	action := mapper.NullStrFromPtr(filter.Action)
	status := mapper.NullStrFromPtr(filter.Status)

	total, err := r.q.CountAuditLogs(ctx, dbstore.CountAuditLogsParams{
		PrincipalID: principal,
		Action:      action,
		Status:      status,
	})
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.q.ListAuditLogs(ctx, dbstore.ListAuditLogsParams{
		PrincipalID: principal,
		Action:      action,
		Status:      status,
		Limit:       int64(filter.Page.Limit()),
		Offset:      int64(filter.Page.Offset()),
	})
	if err != nil {
		return nil, 0, err
	}

	return mapper.AuditEntriesFromDB(rows), total, nil
}

// DeleteBefore removes entries created strictly before cutoff.
func (r *AuditRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.q.DeleteAuditLogsBefore(ctx, mapper.FormatTime(cutoff))
}
