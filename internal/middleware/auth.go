package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"group-manager/internal/domain"
	"group-manager/internal/logging"
)

// Claim names used by ASP.NET identity tokens.
const (
	ClaimNameIdentifier = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"
	ClaimEmailAddress   = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"
)

// IdentityConfig names the claims carrying the subject id and email. Empty
// fields fall back to "sub"/"email" and then to the ASP.NET claim URIs.
type IdentityConfig struct {
	SubjectClaim string
	EmailClaim   string
}

func (c IdentityConfig) subjectClaims() []string {
	if c.SubjectClaim != "" {
		return []string{c.SubjectClaim}
	}
	return []string{"sub", ClaimNameIdentifier}
}

func (c IdentityConfig) emailClaims() []string {
	if c.EmailClaim != "" {
		return []string{c.EmailClaim}
	}
	return []string{"email", ClaimEmailAddress}
}

// ResolveIdentity converts validated claims into a caller identity. The
// subject must be a positive integer.
func ResolveIdentity(claims *JWTClaims, cfg IdentityConfig) (domain.Identity, error) {
	var subject string
	for _, name := range cfg.subjectClaims() {
		if name == "sub" && claims.Subject != "" {
			subject = claims.Subject
			break
		}
		if s := claimString(claims.Raw, name); s != "" {
			subject = s
			break
		}
	}
	if subject == "" {
		return domain.Identity{}, fmt.Errorf("token has no subject claim")
	}

	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || id <= 0 {
		return domain.Identity{}, fmt.Errorf("subject %q is not a user id", subject)
	}

	ident := domain.Identity{SubjectID: id}
	for _, name := range cfg.emailClaims() {
		if s := claimString(claims.Raw, name); s != "" {
			ident.Email = s
			break
		}
	}
	return ident, nil
}

// claimString reads a string or numeric claim as a string.
func claimString(raw map[string]interface{}, name string) string {
	switch v := raw[name].(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
	case json.Number:
		return v.String()
	}
	return ""
}

// Authenticator resolves the bearer token on every request into a
// domain.Identity stored in the request context. Requests without a usable
// token are rejected with 401.
func Authenticator(validator JWTValidator, cfg IdentityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				writeUnauthorized(w, "unauthorized: provide a valid JWT Bearer token")
				return
			}

			claims, err := validator.Validate(ctx, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				logging.From(ctx).Debug("bearer token rejected", "error", err)
				writeUnauthorized(w, "unauthorized: invalid token")
				return
			}

			ident, err := ResolveIdentity(claims, cfg)
			if err != nil {
				logging.From(ctx).Debug("bearer token has no usable identity", "error", err)
				writeUnauthorized(w, "unauthorized: invalid token subject")
				return
			}

			ctx = domain.WithIdentity(ctx, ident)
			ctx = logging.WithAttrs(ctx, "caller_id", ident.SubjectID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    http.StatusUnauthorized,
		"message": msg,
	})
}
