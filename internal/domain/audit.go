package domain

import "time"

// Audit statuses.
const (
	AuditAllowed = "ALLOWED"
	AuditDenied  = "DENIED"
	AuditError   = "ERROR"
)

// AuditEntry represents a single audit log record.
type AuditEntry struct {
	ID          int64
	PrincipalID int64
	Action      string
	Status      string // "ALLOWED", "DENIED", "ERROR"
	GroupID     *int64
	Detail      *string
	CreatedAt   time.Time
}
