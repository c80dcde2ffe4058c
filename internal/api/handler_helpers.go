package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"group-manager/internal/domain"
)

// Group is the wire form of a group.
type Group struct {
	ID      int64  `json:"id"`
	AdminID int64  `json:"adminId"`
	Name    string `json:"name"`
}

// Membership is the wire form of a membership.
type Membership struct {
	GroupID int64 `json:"groupId"`
	UserID  int64 `json:"userId"`
}

// CreateGroupBody is the request body for POST /v1/groups.
type CreateGroupBody struct {
	Name string `json:"name"`
}

// Message is a plain confirmation body.
type Message struct {
	Message string `json:"message"`
}

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AuditEntry is the wire form of an audit log record.
type AuditEntry struct {
	ID          int64     `json:"id"`
	PrincipalID int64     `json:"principalId"`
	Action      string    `json:"action"`
	Status      string    `json:"status"`
	GroupID     *int64    `json:"groupId,omitempty"`
	Detail      *string   `json:"detail,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AuditPage is one page of audit entries.
type AuditPage struct {
	Entries       []AuditEntry `json:"entries"`
	NextPageToken string       `json:"nextPageToken,omitempty"`
}

// === Mapping helpers ===

func groupToAPI(g domain.Group) Group {
	return Group{ID: g.ID, AdminID: g.AdminID, Name: g.Name}
}

func groupsToAPI(gs []domain.Group) []Group {
	out := make([]Group, len(gs))
	for i, g := range gs {
		out[i] = groupToAPI(g)
	}
	return out
}

func membershipToAPI(m domain.Membership) Membership {
	return Membership{GroupID: m.GroupID, UserID: m.UserID}
}

func auditEntryToAPI(e domain.AuditEntry) AuditEntry {
	return AuditEntry{
		ID:          e.ID,
		PrincipalID: e.PrincipalID,
		Action:      e.Action,
		Status:      e.Status,
		GroupID:     e.GroupID,
		Detail:      e.Detail,
		CreatedAt:   e.CreatedAt,
	}
}

// --- helpers ---

// pageFromQuery extracts a PageRequest from the max_results/page_token
// query parameters. A malformed max_results falls back to the default.
func pageFromQuery(r *http.Request) domain.PageRequest {
	q := r.URL.Query()
	p := domain.PageRequest{PageToken: q.Get("page_token")}
	if v, err := strconv.Atoi(q.Get("max_results")); err == nil {
		p.MaxResults = v
	}
	return p
}

// optionalQuery returns a pointer to the query value, or nil when absent.
func optionalQuery(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}

// pathID parses a positive integer path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidation("invalid %s %q", name, raw)
	}
	return id, nil
}

// callerID returns the authenticated subject, or 0 when the request carries
// no identity. Services reject 0 as unauthenticated.
func callerID(r *http.Request) int64 {
	ident, _ := domain.IdentityFromContext(r.Context())
	return ident.SubjectID
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Error{Code: status, Message: msg})
}

func writeMessage(w http.ResponseWriter, format string, args ...interface{}) {
	writeJSON(w, http.StatusOK, Message{Message: fmt.Sprintf(format, args...)})
}
