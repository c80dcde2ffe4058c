// Package mapper provides conversion functions between domain and database types.
package mapper

import (
	"database/sql"
	"time"

	dbstore "group-manager/internal/db/dbstore"
	"group-manager/internal/domain"
)

// TimeLayout is the format SQLite's datetime('now') produces.
const TimeLayout = "2006-01-02 15:04:05"

func parseTime(s string) time.Time {
	t, _ := time.Parse(TimeLayout, s)
	return t
}

// FormatTime renders t in the store's timestamp format, in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func nullStr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

func ptrStr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func ptrInt(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	return &ni.Int64
}

// NullStrFromPtr converts a *string to sql.NullString.
func NullStrFromPtr(s *string) sql.NullString {
	return nullStr(s)
}

// NullIntFromPtr converts a *int64 to sql.NullInt64.
func NullIntFromPtr(i *int64) sql.NullInt64 {
	return nullInt(i)
}

// --- Group ---

func GroupFromDB(g dbstore.Group) *domain.Group {
	return &domain.Group{
		ID:        g.ID,
		Name:      g.Name,
		AdminID:   g.AdminID,
		CreatedAt: parseTime(g.CreatedAt),
	}
}

func GroupsFromDB(gs []dbstore.Group) []domain.Group {
	out := make([]domain.Group, len(gs))
	for i, g := range gs {
		out[i] = *GroupFromDB(g)
	}
	return out
}

// --- Membership ---

func MembershipFromDB(m dbstore.GroupMember) *domain.Membership {
	return &domain.Membership{
		GroupID:   m.GroupID,
		UserID:    m.UserID,
		CreatedAt: parseTime(m.CreatedAt),
	}
}

// --- Audit ---

func AuditEntryFromDB(a dbstore.AuditLog) *domain.AuditEntry {
	return &domain.AuditEntry{
		ID:          a.ID,
		PrincipalID: a.PrincipalID,
		Action:      a.Action,
		Status:      a.Status,
		GroupID:     ptrInt(a.GroupID),
		Detail:      ptrStr(a.Detail),
		CreatedAt:   parseTime(a.CreatedAt),
	}
}

func AuditEntriesFromDB(as []dbstore.AuditLog) []domain.AuditEntry {
	out := make([]domain.AuditEntry, len(as))
	for i, a := range as {
		out[i] = *AuditEntryFromDB(a)
	}
	return out
}

func AuditEntryToInsertParams(e *domain.AuditEntry) dbstore.InsertAuditLogParams {
	return dbstore.InsertAuditLogParams{
		PrincipalID: e.PrincipalID,
		Action:      e.Action,
		Status:      e.Status,
		GroupID:     nullInt(e.GroupID),
		Detail:      nullStr(e.Detail),
	}
}
