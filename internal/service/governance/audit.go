// Package governance implements audit trail services.
package governance

import (
	"context"

	"group-manager/internal/domain"
)

// AuditService provides audit log operations.
type AuditService struct {
	repo domain.AuditRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(repo domain.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// List returns the caller's own audit entries, newest first. The principal
// filter is always pinned to the caller.
func (s *AuditService) List(ctx context.Context, callerID int64, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	if callerID <= 0 {
		return nil, 0, domain.ErrUnauthenticated("authentication required")
	}
	filter.PrincipalID = &callerID
	return s.repo.List(ctx, filter)
}
