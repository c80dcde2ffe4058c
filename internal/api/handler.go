// Package api provides the HTTP handlers for the group manager REST API.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"group-manager/internal/domain"
	"group-manager/internal/service/governance"
	"group-manager/internal/service/security"
)

// APIHandler serves the /v1 group and audit endpoints.
type APIHandler struct {
	groups *security.GroupService
	audit  *governance.AuditService
}

// NewHandler creates a new APIHandler with all required service dependencies.
func NewHandler(groups *security.GroupService, audit *governance.AuditService) *APIHandler {
	return &APIHandler{groups: groups, audit: audit}
}

// Routes mounts the authenticated /v1 endpoints on r.
func (h *APIHandler) Routes(r chi.Router) {
	r.Route("/groups", func(r chi.Router) {
		r.Post("/", h.CreateGroup)
		r.Get("/", h.GetGroupByName)
		r.Delete("/", h.DeleteMyGroups)

		r.Route("/{groupId}", func(r chi.Router) {
			r.Get("/", h.GetGroup)
			r.Delete("/", h.DeleteGroup)
			r.Get("/users", h.ListGroupMembers)
			r.Get("/users/{userId}", h.GetGroupMember)
			r.Post("/users/{userId}", h.AddGroupMember)
			r.Delete("/users/{userId}", h.RemoveGroupMember)
		})
	})
	r.Get("/users/{userId}/groups", h.ListGroupsForUser)
	r.Get("/admins/{adminId}/groups", h.ListGroupsOwnedBy)
	r.Get("/audit", h.ListAuditLogs)
}

// === Groups ===

func (h *APIHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var body CreateGroupBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid Data")
		return
	}
	g, err := h.groups.Create(r.Context(), callerID(r), domain.CreateGroupRequest{Name: body.Name})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, groupToAPI(*g))
}

func (h *APIHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	g, err := h.groups.GetByID(r.Context(), callerID(r), groupID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groupToAPI(*g))
}

func (h *APIHandler) GetGroupByName(w http.ResponseWriter, r *http.Request) {
	g, err := h.groups.GetByName(r.Context(), callerID(r), r.URL.Query().Get("name"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groupToAPI(*g))
}

func (h *APIHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	g, err := h.groups.Delete(r.Context(), callerID(r), groupID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groupToAPI(*g))
}

// DeleteMyGroups removes every group the caller administers.
func (h *APIHandler) DeleteMyGroups(w http.ResponseWriter, r *http.Request) {
	caller := callerID(r)
	if err := h.groups.DeleteAllOwnedBy(r.Context(), caller, caller); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeMessage(w, "Admin %d groups removed!", caller)
}

func (h *APIHandler) ListGroupsForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	groups, err := h.groups.ListGroupsForUser(r.Context(), callerID(r), userID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groupsToAPI(groups))
}

func (h *APIHandler) ListGroupsOwnedBy(w http.ResponseWriter, r *http.Request) {
	adminID, err := pathID(r, "adminId")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	groups, err := h.groups.ListGroupsOwnedBy(r.Context(), callerID(r), adminID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groupsToAPI(groups))
}

// === Members ===

func (h *APIHandler) ListGroupMembers(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	ids, err := h.groups.ListMembers(r.Context(), callerID(r), groupID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

func (h *APIHandler) GetGroupMember(w http.ResponseWriter, r *http.Request) {
	groupID, userID, ok := h.memberPath(w, r)
	if !ok {
		return
	}
	m, err := h.groups.GetMemberInGroup(r.Context(), callerID(r), groupID, userID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, membershipToAPI(*m))
}

func (h *APIHandler) AddGroupMember(w http.ResponseWriter, r *http.Request) {
	groupID, userID, ok := h.memberPath(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	if err := h.groups.AddMember(ctx, callerID(r), groupID, userID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	// The group was resolved by AddMember; a failure here only costs the name.
	name := ""
	if g, err := h.groups.GetByID(ctx, callerID(r), groupID); err == nil {
		name = g.Name
	}
	writeMessage(w, "User %d added to group '%s'", userID, name)
}

func (h *APIHandler) RemoveGroupMember(w http.ResponseWriter, r *http.Request) {
	groupID, userID, ok := h.memberPath(w, r)
	if !ok {
		return
	}
	if err := h.groups.RemoveMember(r.Context(), callerID(r), groupID, userID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeMessage(w, "User %d deleted!", userID)
}

func (h *APIHandler) memberPath(w http.ResponseWriter, r *http.Request) (groupID, userID int64, ok bool) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		writeDomainError(w, r, err)
		return 0, 0, false
	}
	userID, err = pathID(r, "userId")
	if err != nil {
		writeDomainError(w, r, err)
		return 0, 0, false
	}
	return groupID, userID, true
}

// === Audit ===

func (h *APIHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	filter := domain.AuditFilter{
		Action: optionalQuery(r, "action"),
		Status: optionalQuery(r, "status"),
		Page:   pageFromQuery(r),
	}
	entries, total, err := h.audit.List(r.Context(), callerID(r), filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	page := AuditPage{Entries: make([]AuditEntry, len(entries))}
	for i, e := range entries {
		page.Entries[i] = auditEntryToAPI(e)
	}
	page.NextPageToken = filter.Page.NextPageToken(total)
	writeJSON(w, http.StatusOK, page)
}

// Healthz reports liveness. It is mounted outside authentication.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
