// Package app provides application-level wiring and dependency injection
// for the group manager.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"group-manager/internal/config"
	"group-manager/internal/db/repository"
	"group-manager/internal/middleware"
	"group-manager/internal/service/governance"
	"group-manager/internal/service/security"
)

// Deps holds the external dependencies that main() must provide.
// These are things the app package cannot (or should not) create itself:
// database handles, config and the root logger.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// Services groups all service pointers that the API handler and router need.
type Services struct {
	Group *security.GroupService
	Audit *governance.AuditService
}

// App holds the fully-wired application: services, the token validator
// for the auth middleware and the audit pruning job.
type App struct {
	Services  Services
	Validator middleware.JWTValidator
	Pruner    *governance.AuditPruner
}

// New wires all repositories, services and the token validator from the
// provided deps.
func New(ctx context.Context, deps Deps) (*App, error) {
	cfg := deps.Cfg

	// === Repositories ===
	groupRepo := repository.NewGroupRepo(deps.WriteDB, deps.ReadDB)
	auditRepo := repository.NewAuditRepo(deps.WriteDB)

	// === Services ===
	groupSvc := security.NewGroupService(groupRepo, auditRepo)
	auditSvc := governance.NewAuditService(auditRepo)
	pruner := governance.NewAuditPruner(
		auditRepo, cfg.AuditRetentionDays, cfg.AuditPruneSchedule,
		deps.Logger.With("component", "audit-pruner"),
	)

	validator, err := NewValidator(ctx, cfg.Auth, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}

	return &App{
		Services:  Services{Group: groupSvc, Audit: auditSvc},
		Validator: validator,
		Pruner:    pruner,
	}, nil
}

// NewValidator picks the bearer-token validator for the configured identity
// provider: OIDC discovery, a bare JWKS endpoint, or a shared HS256 secret.
func NewValidator(ctx context.Context, auth config.AuthConfig, logger *slog.Logger) (middleware.JWTValidator, error) {
	switch {
	case auth.JWKSURL != "":
		logger.Info("auth: verifying tokens against JWKS", "jwks_url", auth.JWKSURL, "issuer", auth.IssuerURL)
		return middleware.NewOIDCValidatorFromJWKS(ctx, auth.JWKSURL, auth.IssuerURL, auth.Audience, auth.AllowedIssuers), nil
	case auth.IssuerURL != "":
		logger.Info("auth: verifying tokens with OIDC discovery", "issuer", auth.IssuerURL)
		return middleware.NewOIDCValidator(ctx, auth.IssuerURL, auth.Audience, auth.AllowedIssuers)
	default:
		logger.Info("auth: verifying HS256 tokens with shared secret")
		return middleware.NewHS256Validator(auth.JWTSecret)
	}
}
