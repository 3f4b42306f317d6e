package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/xetrr/catalog-admin/internal/forms"
	"github.com/xetrr/catalog-admin/internal/model"
	"github.com/xetrr/catalog-admin/internal/store"
)

// Categories dispatches /categories?do=... to exactly one handler.
func (s *Server) Categories(w http.ResponseWriter, r *http.Request) {
	action, err := ParseAction(r.URL.Query().Get("do"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	switch action {
	case ActionManage:
		s.categoriesList(w, r)
	case ActionAdd:
		s.categoryAddForm(w, r, nil)
	case ActionInsert:
		s.categoryInsert(w, r)
	case ActionEdit:
		s.categoryEditForm(w, r, nil)
	case ActionUpdate:
		s.categoryUpdate(w, r)
	case ActionDelete:
		s.categoryDelete(w, r)
	case ActionApprove, ActionPhoto:
		http.NotFound(w, r)
	}
}

func categoryRules() []forms.Rule {
	return []forms.Rule{
		forms.Required("name", "Name"),
		forms.Required("desc", "Description"),
		forms.Numeric("ordering", "Ordering"),
		forms.Choice("visibility", "Visibility"),
		forms.Choice("comment", "Comments setting"),
		forms.Choice("ads", "Ads setting"),
	}
}

func categoryFromForm(r *http.Request) *model.Category {
	ordering, _ := strconv.Atoi(r.FormValue("ordering"))
	visibility, _ := strconv.Atoi(r.FormValue("visibility"))
	comment, _ := strconv.Atoi(r.FormValue("comment"))
	ads, _ := strconv.Atoi(r.FormValue("ads"))

	return &model.Category{
		Name:          r.FormValue("name"),
		Description:   r.FormValue("desc"),
		Ordering:      ordering,
		Visibility:    model.Visibility(visibility),
		AllowComments: model.Toggle(comment),
		AllowAds:      model.Toggle(ads),
	}
}

func (s *Server) categoriesList(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	categories, err := store.ListCategories(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list categories", "error", err)
	}

	s.Templates.Render(w, "categories.html", &struct {
		PageData
		Categories []model.Category
	}{
		PageData:   PageData{Title: "Categories", User: claims, Flash: PopFlash(w, r)},
		Categories: categories,
	})
}

type categoryFormData struct {
	PageData
	Category *model.Category
}

func (s *Server) renderCategoryForm(w http.ResponseWriter, r *http.Request, category *model.Category, errs []string) {
	claims := GetWebClaims(r.Context())
	title := "Add Category"
	if category != nil {
		title = "Edit Category"
	}

	s.Templates.Render(w, "category_form.html", &categoryFormData{
		PageData: PageData{Title: title, User: claims, Flash: PopFlash(w, r), Errors: errs},
		Category: category,
	})
}

func (s *Server) categoryAddForm(w http.ResponseWriter, r *http.Request, errs []string) {
	s.renderCategoryForm(w, r, nil, errs)
}

// nameTaken reports whether a category with this name already exists.
func (s *Server) nameTaken(r *http.Request, name string) (bool, error) {
	count, err := store.Exists(r.Context(), s.DB, store.CategoryByName, name)
	return count > 0, err
}

func (s *Server) categoryInsert(w http.ResponseWriter, r *http.Request) {
	if !s.requirePost(w, r, "/categories") {
		return
	}
	r.ParseForm()

	// Duplicate names are checked ahead of field validation and abort
	// immediately.
	if name := r.FormValue("name"); name != "" {
		taken, err := s.nameTaken(r, name)
		if err != nil {
			slog.Error("failed to check category name", "error", err)
			s.categoryAddForm(w, r, []string{"Something went wrong, try again."})
			return
		}
		if taken {
			s.categoryAddForm(w, r, []string{"A category with this name already exists."})
			return
		}
	}

	errs := forms.Validate(r.Form, categoryRules())
	if len(errs) > 0 {
		s.categoryAddForm(w, r, errs)
		return
	}

	category, err := store.CreateCategory(r.Context(), s.DB, categoryFromForm(r))
	if err != nil {
		slog.Error("failed to create category", "error", err)
		s.categoryAddForm(w, r, []string{"Saving the category failed, try again."})
		return
	}

	claims := GetWebClaims(r.Context())
	slog.Info("category created", "user", claims.Username, "category", category.Name, "id", category.ID)
	SetFlash(w, "Category added.")
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

func (s *Server) categoryEditForm(w http.ResponseWriter, r *http.Request, errs []string) {
	id := targetID(r, "catid")

	category, err := store.GetCategory(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get category", "error", err)
	}
	if category == nil {
		SetFlash(w, "No category with this ID was found.")
		http.Redirect(w, r, "/categories", http.StatusSeeOther)
		return
	}

	s.renderCategoryForm(w, r, category, errs)
}

func (s *Server) categoryUpdate(w http.ResponseWriter, r *http.Request) {
	if !s.requirePost(w, r, "/categories") {
		return
	}

	id := targetID(r, "catid")
	current, err := store.GetCategory(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get category", "error", err)
	}
	if current == nil {
		SetFlash(w, "No category with this ID was found.")
		http.Redirect(w, r, "/categories", http.StatusSeeOther)
		return
	}

	// Renaming onto another category's name is a duplicate.
	if name := r.FormValue("name"); name != "" && name != current.Name {
		taken, err := s.nameTaken(r, name)
		if err != nil {
			slog.Error("failed to check category name", "error", err)
			s.renderCategoryForm(w, r, current, []string{"Something went wrong, try again."})
			return
		}
		if taken {
			s.renderCategoryForm(w, r, current, []string{"A category with this name already exists."})
			return
		}
	}

	errs := forms.Validate(r.Form, categoryRules())
	if len(errs) > 0 {
		s.renderCategoryForm(w, r, current, errs)
		return
	}

	category := categoryFromForm(r)
	category.ID = id
	if err := store.UpdateCategory(r.Context(), s.DB, category); err != nil {
		slog.Error("failed to update category", "error", err)
		s.renderCategoryForm(w, r, current, []string{"Saving the category failed, try again."})
		return
	}

	claims := GetWebClaims(r.Context())
	slog.Info("category updated", "user", claims.Username, "category", category.Name, "id", id)
	SetFlash(w, "Category updated.")
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

func (s *Server) categoryDelete(w http.ResponseWriter, r *http.Request) {
	id := targetID(r, "catid")

	count, err := store.Exists(r.Context(), s.DB, store.CategoryByID, id)
	if err != nil {
		slog.Error("failed to check category", "error", err)
		SetFlash(w, "Deleting the category failed, try again.")
		http.Redirect(w, r, "/categories", http.StatusSeeOther)
		return
	}
	if count == 0 {
		SetFlash(w, "No category with this ID was found.")
		http.Redirect(w, r, "/categories", http.StatusSeeOther)
		return
	}

	// Refuse while items still reference the category.
	referenced, err := store.Exists(r.Context(), s.DB, store.ItemsByCategory, id)
	if err != nil {
		slog.Error("failed to check category references", "error", err)
		SetFlash(w, "Deleting the category failed, try again.")
		http.Redirect(w, r, "/categories", http.StatusSeeOther)
		return
	}
	if referenced > 0 {
		SetFlash(w, "This category still has items and can't be deleted.")
		http.Redirect(w, r, "/categories", http.StatusSeeOther)
		return
	}

	if err := store.DeleteCategory(r.Context(), s.DB, id); err != nil {
		slog.Error("failed to delete category", "error", err)
		SetFlash(w, "Deleting the category failed, try again.")
		http.Redirect(w, r, "/categories", http.StatusSeeOther)
		return
	}

	claims := GetWebClaims(r.Context())
	slog.Info("category deleted", "user", claims.Username, "id", id)
	SetFlash(w, "Category deleted.")
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}
