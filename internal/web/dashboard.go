package web

import (
	"log/slog"
	"net/http"

	"github.com/xetrr/catalog-admin/internal/model"
	"github.com/xetrr/catalog-admin/internal/store"
)

// Dashboard handles GET /.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	ctx := r.Context()

	itemCount, err := store.Count(ctx, s.DB, store.TableItems)
	if err != nil {
		slog.Error("failed to count items", "error", err)
	}
	categoryCount, err := store.Count(ctx, s.DB, store.TableCategories)
	if err != nil {
		slog.Error("failed to count categories", "error", err)
	}
	memberCount, err := store.Count(ctx, s.DB, store.TableMembers)
	if err != nil {
		slog.Error("failed to count members", "error", err)
	}
	pendingCount, err := store.CountPendingMembers(ctx, s.DB)
	if err != nil {
		slog.Error("failed to count pending members", "error", err)
	}

	latestItems, err := store.LatestItems(ctx, s.DB, 5)
	if err != nil {
		slog.Error("failed to list latest items", "error", err)
	}
	latestMembers, err := store.LatestMembers(ctx, s.DB, 5)
	if err != nil {
		slog.Error("failed to list latest members", "error", err)
	}

	s.Templates.Render(w, "dashboard.html", &struct {
		PageData
		Items          int
		Categories     int
		Members        int
		PendingMembers int
		LatestItems    []model.Item
		LatestMembers  []model.Member
	}{
		PageData:       PageData{Title: "Dashboard", User: claims, Flash: PopFlash(w, r)},
		Items:          itemCount,
		Categories:     categoryCount,
		Members:        memberCount,
		PendingMembers: pendingCount,
		LatestItems:    latestItems,
		LatestMembers:  latestMembers,
	})
}
