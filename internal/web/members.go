package web

import (
	"log/slog"
	"net/http"

	"github.com/xetrr/catalog-admin/internal/model"
	"github.com/xetrr/catalog-admin/internal/store"
)

// Members dispatches /members?do=... to exactly one handler.
func (s *Server) Members(w http.ResponseWriter, r *http.Request) {
	action, err := ParseAction(r.URL.Query().Get("do"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	switch action {
	case ActionManage:
		s.membersList(w, r)
	case ActionApprove:
		s.memberApprove(w, r)
	case ActionDelete:
		s.memberDelete(w, r)
	case ActionAdd, ActionInsert, ActionEdit, ActionUpdate, ActionPhoto:
		// Members come in through self-registration, not admin forms.
		http.NotFound(w, r)
	}
}

func (s *Server) membersList(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	members, err := store.ListMembers(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list members", "error", err)
	}

	s.Templates.Render(w, "members.html", &struct {
		PageData
		Members []model.Member
	}{
		PageData: PageData{Title: "Members", User: claims, Flash: PopFlash(w, r)},
		Members:  members,
	})
}

func (s *Server) memberApprove(w http.ResponseWriter, r *http.Request) {
	if !s.requirePost(w, r, "/members") {
		return
	}

	id := targetID(r, "userid")
	member, err := store.GetMember(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get member", "error", err)
	}
	if member == nil {
		SetFlash(w, "No member with this ID was found.")
		http.Redirect(w, r, "/members", http.StatusSeeOther)
		return
	}
	if member.Status == model.StatusApproved {
		SetFlash(w, "This member is already approved.")
		http.Redirect(w, r, "/members", http.StatusSeeOther)
		return
	}

	if err := store.ApproveMember(r.Context(), s.DB, id); err != nil {
		slog.Error("failed to approve member", "error", err)
		SetFlash(w, "Approving the member failed, try again.")
		http.Redirect(w, r, "/members", http.StatusSeeOther)
		return
	}

	claims := GetWebClaims(r.Context())
	slog.Info("member approved", "user", claims.Username, "member", member.Username)
	SetFlash(w, "Member approved.")
	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

func (s *Server) memberDelete(w http.ResponseWriter, r *http.Request) {
	id := targetID(r, "userid")
	claims := GetWebClaims(r.Context())

	if id == claims.MemberID {
		SetFlash(w, "You can't delete your own account.")
		http.Redirect(w, r, "/members", http.StatusSeeOther)
		return
	}

	count, err := store.Exists(r.Context(), s.DB, store.MemberByID, id)
	if err != nil {
		slog.Error("failed to check member", "error", err)
		SetFlash(w, "Deleting the member failed, try again.")
		http.Redirect(w, r, "/members", http.StatusSeeOther)
		return
	}
	if count == 0 {
		SetFlash(w, "No member with this ID was found.")
		http.Redirect(w, r, "/members", http.StatusSeeOther)
		return
	}

	// Refuse while items still reference the member.
	referenced, err := store.Exists(r.Context(), s.DB, store.ItemsByMember, id)
	if err != nil {
		slog.Error("failed to check member references", "error", err)
		SetFlash(w, "Deleting the member failed, try again.")
		http.Redirect(w, r, "/members", http.StatusSeeOther)
		return
	}
	if referenced > 0 {
		SetFlash(w, "This member still owns items and can't be deleted.")
		http.Redirect(w, r, "/members", http.StatusSeeOther)
		return
	}

	if err := store.DeleteMember(r.Context(), s.DB, id); err != nil {
		slog.Error("failed to delete member", "error", err)
		SetFlash(w, "Deleting the member failed, try again.")
		http.Redirect(w, r, "/members", http.StatusSeeOther)
		return
	}

	slog.Info("member deleted", "user", claims.Username, "id", id)
	SetFlash(w, "Member deleted.")
	http.Redirect(w, r, "/members", http.StatusSeeOther)
}
