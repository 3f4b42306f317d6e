package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/xetrr/catalog-admin/internal/model"
	"github.com/xetrr/catalog-admin/internal/store"
)

// CategoriesHandler handles category CRUD endpoints.
type CategoriesHandler struct {
	DB *sql.DB
}

type categoryRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Ordering      int    `json:"ordering"`
	Visibility    int    `json:"visibility"`
	AllowComments int    `json:"allow_comments"`
	AllowAds      int    `json:"allow_ads"`
}

func (req *categoryRequest) validate() string {
	switch {
	case req.Name == "":
		return "name required"
	case req.Description == "":
		return "description required"
	case req.Visibility != 0 && req.Visibility != 1:
		return "invalid visibility"
	case req.AllowComments != 0 && req.AllowComments != 1:
		return "invalid allow_comments"
	case req.AllowAds != 0 && req.AllowAds != 1:
		return "invalid allow_ads"
	}
	return ""
}

func (req *categoryRequest) toCategory() *model.Category {
	return &model.Category{
		Name:          req.Name,
		Description:   req.Description,
		Ordering:      req.Ordering,
		Visibility:    model.Visibility(req.Visibility),
		AllowComments: model.Toggle(req.AllowComments),
		AllowAds:      model.Toggle(req.AllowAds),
	}
}

// List handles GET /api/categories.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := store.ListCategories(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	jsonResponse(w, http.StatusOK, categories)
}

// Create handles POST /api/categories.
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The duplicate-name check runs before field validation so a taken name
	// is reported even when other fields are missing.
	if req.Name != "" {
		n, err := store.Exists(r.Context(), h.DB, store.CategoryByName, req.Name)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if n > 0 {
			jsonError(w, http.StatusConflict, "a category with this name already exists")
			return
		}
	}

	if msg := req.validate(); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	category, err := store.CreateCategory(r.Context(), h.DB, req.toCategory())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	jsonResponse(w, http.StatusCreated, category)
}

// Get handles GET /api/categories/{id}.
func (h *CategoriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := store.GetCategory(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get category")
		return
	}
	if category == nil {
		jsonError(w, http.StatusNotFound, "category not found")
		return
	}
	jsonResponse(w, http.StatusOK, category)
}

// Update handles PUT /api/categories/{id}.
func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	current, err := store.GetCategory(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if current == nil {
		jsonError(w, http.StatusNotFound, "category not found")
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name != "" && req.Name != current.Name {
		n, err := store.Exists(r.Context(), h.DB, store.CategoryByName, req.Name)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if n > 0 {
			jsonError(w, http.StatusConflict, "a category with this name already exists")
			return
		}
	}

	if msg := req.validate(); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	category := req.toCategory()
	category.ID = id
	if err := store.UpdateCategory(r.Context(), h.DB, category); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update category")
		return
	}

	updated, _ := store.GetCategory(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/categories/{id}. Categories that still contain
// items are refused.
func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	n, err := store.Exists(r.Context(), h.DB, store.CategoryByID, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if n == 0 {
		jsonError(w, http.StatusNotFound, "category not found")
		return
	}

	items, err := store.Exists(r.Context(), h.DB, store.ItemsByCategory, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items > 0 {
		jsonError(w, http.StatusConflict, "category still has items")
		return
	}

	if err := store.DeleteCategory(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
