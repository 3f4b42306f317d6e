package api

import (
	"database/sql"
	"net/http"

	"github.com/xetrr/catalog-admin/internal/model"
	"github.com/xetrr/catalog-admin/internal/store"
)

// DashboardHandler serves the aggregate numbers the back-office landing page
// shows.
type DashboardHandler struct {
	DB *sql.DB
}

type dashboardResponse struct {
	Items          int            `json:"items"`
	Categories     int            `json:"categories"`
	Members        int            `json:"members"`
	PendingMembers int            `json:"pending_members"`
	LatestItems    []model.Item   `json:"latest_items"`
	LatestMembers  []model.Member `json:"latest_members"`
}

// Get handles GET /api/dashboard.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	var (
		resp dashboardResponse
		err  error
	)

	if resp.Items, err = store.Count(r.Context(), h.DB, store.TableItems); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to count items")
		return
	}
	if resp.Categories, err = store.Count(r.Context(), h.DB, store.TableCategories); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to count categories")
		return
	}
	if resp.Members, err = store.Count(r.Context(), h.DB, store.TableMembers); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to count members")
		return
	}
	if resp.PendingMembers, err = store.CountPendingMembers(r.Context(), h.DB); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to count pending members")
		return
	}

	if resp.LatestItems, err = store.LatestItems(r.Context(), h.DB, 5); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list latest items")
		return
	}
	if resp.LatestMembers, err = store.LatestMembers(r.Context(), h.DB, 5); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list latest members")
		return
	}

	if resp.LatestItems == nil {
		resp.LatestItems = []model.Item{}
	}
	if resp.LatestMembers == nil {
		resp.LatestMembers = []model.Member{}
	}

	jsonResponse(w, http.StatusOK, resp)
}
