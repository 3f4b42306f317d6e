package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/xetrr/catalog-admin/internal/model"
	"github.com/xetrr/catalog-admin/internal/store"
)

// MembersHandler handles member administration endpoints. Accounts come in
// through registration, so there is no create endpoint here.
type MembersHandler struct {
	DB *sql.DB
}

// List handles GET /api/members.
func (h *MembersHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := store.ListMembers(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list members")
		return
	}
	if members == nil {
		members = []model.Member{}
	}
	jsonResponse(w, http.StatusOK, members)
}

// Get handles GET /api/members/{id}.
func (h *MembersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	member, err := store.GetMember(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get member")
		return
	}
	if member == nil {
		jsonError(w, http.StatusNotFound, "member not found")
		return
	}
	jsonResponse(w, http.StatusOK, member)
}

// Approve handles PUT /api/members/{id}/approve.
func (h *MembersHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	member, err := store.GetMember(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if member == nil {
		jsonError(w, http.StatusNotFound, "member not found")
		return
	}
	if member.Status == model.StatusApproved {
		jsonError(w, http.StatusConflict, "member already approved")
		return
	}

	if err := store.ApproveMember(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to approve member")
		return
	}

	slog.Info("member approved", "member", member.Username)
	updated, _ := store.GetMember(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/members/{id}. Members that still own items are
// refused, as is deleting your own account.
func (h *MembersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	claims := GetClaims(r.Context())
	if claims != nil && claims.MemberID == id {
		jsonError(w, http.StatusConflict, "you can't delete your own account")
		return
	}

	n, err := store.Exists(r.Context(), h.DB, store.MemberByID, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if n == 0 {
		jsonError(w, http.StatusNotFound, "member not found")
		return
	}

	items, err := store.Exists(r.Context(), h.DB, store.ItemsByMember, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items > 0 {
		jsonError(w, http.StatusConflict, "member still owns items")
		return
	}

	if err := store.DeleteMember(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete member")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "member deleted"})
}
