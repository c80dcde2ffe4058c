// Package auditutil records group-management decisions in the audit trail.
package auditutil

import (
	"context"

	"group-manager/internal/domain"
	"group-manager/internal/logging"
)

// Audited actions.
const (
	ActionCreateGroup     = "CREATE_GROUP"
	ActionAddMember       = "ADD_MEMBER"
	ActionRemoveMember    = "REMOVE_MEMBER"
	ActionDeleteGroup     = "DELETE_GROUP"
	ActionDeleteAllGroups = "DELETE_ALL_GROUPS"
)

// LogAllowed records a permitted action. groupID 0 means no group.
func LogAllowed(ctx context.Context, audit domain.AuditRepository, principalID int64, action string, groupID int64, detail string) {
	logDecision(ctx, audit, principalID, action, domain.AuditAllowed, groupID, detail)
}

// LogDenied records an action refused for lack of standing or a broken rule.
func LogDenied(ctx context.Context, audit domain.AuditRepository, principalID int64, action string, groupID int64, detail string) {
	logDecision(ctx, audit, principalID, action, domain.AuditDenied, groupID, detail)
}

// LogError records an action that failed in the store.
func LogError(ctx context.Context, audit domain.AuditRepository, principalID int64, action string, groupID int64, detail string) {
	logDecision(ctx, audit, principalID, action, domain.AuditError, groupID, detail)
}

// logDecision is best-effort: a failed insert is logged and otherwise ignored.
func logDecision(ctx context.Context, audit domain.AuditRepository, principalID int64, action, status string, groupID int64, detail string) {
	if audit == nil {
		return
	}
	entry := &domain.AuditEntry{
		PrincipalID: principalID,
		Action:      action,
		Status:      status,
	}
	if groupID > 0 {
		entry.GroupID = &groupID
	}
	if detail != "" {
		entry.Detail = &detail
	}
	if err := audit.Insert(ctx, entry); err != nil {
		logging.From(ctx).Warn("audit insert failed",
			"action", action,
			"status", status,
			"error", err,
		)
	}
}
