package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/xetrr/catalog-admin/internal/forms"
	"github.com/xetrr/catalog-admin/internal/imaging"
	"github.com/xetrr/catalog-admin/internal/model"
	"github.com/xetrr/catalog-admin/internal/store"
)

// Items dispatches /items?do=... to exactly one handler.
func (s *Server) Items(w http.ResponseWriter, r *http.Request) {
	action, err := ParseAction(r.URL.Query().Get("do"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	switch action {
	case ActionManage:
		s.itemsList(w, r)
	case ActionAdd:
		s.itemAddForm(w, r, nil)
	case ActionInsert:
		s.itemInsert(w, r)
	case ActionEdit:
		s.itemEditForm(w, r, nil)
	case ActionUpdate:
		s.itemUpdate(w, r)
	case ActionDelete:
		s.itemDelete(w, r)
	case ActionPhoto:
		s.itemPhoto(w, r)
	case ActionApprove:
		// Members-only action.
		http.NotFound(w, r)
	}
}

// requirePost fails a write action closed when hit with the wrong method.
func (s *Server) requirePost(w http.ResponseWriter, r *http.Request, listURL string) bool {
	if r.Method != http.MethodPost {
		SetFlash(w, "Invalid request method.")
		http.Redirect(w, r, listURL, http.StatusSeeOther)
		return false
	}
	return true
}

func itemRules() []forms.Rule {
	return []forms.Rule{
		forms.Required("name", "Name"),
		forms.Required("desc", "Description"),
		forms.Numeric("price", "Price"),
		forms.Required("country", "Country"),
		forms.Selected("status", "Status"),
		forms.Selected("member", "Member"),
		forms.Selected("category", "Category"),
	}
}

// itemFromForm builds an item from validated form values.
func itemFromForm(r *http.Request) *model.Item {
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	status, _ := strconv.Atoi(r.FormValue("status"))
	memberID, _ := strconv.ParseInt(r.FormValue("member"), 10, 64)
	categoryID, _ := strconv.ParseInt(r.FormValue("category"), 10, 64)

	return &model.Item{
		Name:        r.FormValue("name"),
		Description: r.FormValue("desc"),
		Price:       price,
		Country:     r.FormValue("country"),
		Status:      model.ItemStatus(status),
		MemberID:    memberID,
		CategoryID:  categoryID,
	}
}

// validateItemForm runs field validation plus reference checks: status must be
// a known condition, member and category must resolve to existing rows.
func (s *Server) validateItemForm(r *http.Request) ([]string, *model.Item) {
	r.ParseForm()
	errs := forms.Validate(r.Form, itemRules())
	if len(errs) > 0 {
		return errs, nil
	}

	item := itemFromForm(r)
	if !item.Status.Valid() {
		errs = append(errs, "You must choose a Status")
	}

	count, err := store.Exists(r.Context(), s.DB, store.MemberByID, item.MemberID)
	if err != nil {
		slog.Error("failed to check member", "error", err)
		errs = append(errs, "Something went wrong, try again.")
	} else if count == 0 {
		errs = append(errs, "You must choose a Member")
	}

	count, err = store.Exists(r.Context(), s.DB, store.CategoryByID, item.CategoryID)
	if err != nil {
		slog.Error("failed to check category", "error", err)
		errs = append(errs, "Something went wrong, try again.")
	} else if count == 0 {
		errs = append(errs, "You must choose a Category")
	}

	if len(errs) > 0 {
		return errs, nil
	}
	return nil, item
}

func (s *Server) itemsList(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	items, err := store.ListItems(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list items", "error", err)
	}

	s.Templates.Render(w, "items.html", &struct {
		PageData
		Items []model.Item
	}{
		PageData: PageData{Title: "Items", User: claims, Flash: PopFlash(w, r)},
		Items:    items,
	})
}

// itemFormData loads the reference data the item form's selects need.
type itemFormData struct {
	PageData
	Item       *model.Item
	Members    []model.Member
	Categories []model.Category
	Statuses   []model.ItemStatus
}

func (s *Server) renderItemForm(w http.ResponseWriter, r *http.Request, item *model.Item, errs []string) {
	claims := GetWebClaims(r.Context())

	members, err := store.ListMembers(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list members", "error", err)
	}
	categories, err := store.ListCategories(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list categories", "error", err)
	}

	title := "Add Item"
	if item != nil {
		title = "Edit Item"
	}

	s.Templates.Render(w, "item_form.html", &itemFormData{
		PageData:   PageData{Title: title, User: claims, Flash: PopFlash(w, r), Errors: errs},
		Item:       item,
		Members:    members,
		Categories: categories,
		Statuses:   []model.ItemStatus{model.ItemStatusNew, model.ItemStatusLikeNew, model.ItemStatusUsed},
	})
}

func (s *Server) itemAddForm(w http.ResponseWriter, r *http.Request, errs []string) {
	s.renderItemForm(w, r, nil, errs)
}

func (s *Server) itemInsert(w http.ResponseWriter, r *http.Request) {
	if !s.requirePost(w, r, "/items") {
		return
	}

	errs, item := s.validateItemForm(r)
	if errs != nil {
		s.itemAddForm(w, r, errs)
		return
	}

	claims := GetWebClaims(r.Context())
	created, err := store.CreateItem(r.Context(), s.DB, item)
	if err != nil {
		slog.Error("failed to create item", "error", err)
		s.itemAddForm(w, r, []string{"Saving the item failed, try again."})
		return
	}

	slog.Info("item created", "user", claims.Username, "item", created.Name, "id", created.ID)
	SetFlash(w, "Item added.")
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

func (s *Server) itemEditForm(w http.ResponseWriter, r *http.Request, errs []string) {
	id := targetID(r, "itemid")

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
	}
	if item == nil {
		SetFlash(w, "No item with this ID was found.")
		http.Redirect(w, r, "/items", http.StatusSeeOther)
		return
	}

	s.renderItemForm(w, r, item, errs)
}

func (s *Server) itemUpdate(w http.ResponseWriter, r *http.Request) {
	if !s.requirePost(w, r, "/items") {
		return
	}

	id := targetID(r, "itemid")
	count, err := store.Exists(r.Context(), s.DB, store.ItemByID, id)
	if err != nil {
		slog.Error("failed to check item", "error", err)
	}
	if count == 0 {
		SetFlash(w, "No item with this ID was found.")
		http.Redirect(w, r, "/items", http.StatusSeeOther)
		return
	}

	errs, item := s.validateItemForm(r)
	if errs != nil {
		s.itemEditForm(w, r, errs)
		return
	}
	item.ID = id

	if err := store.UpdateItem(r.Context(), s.DB, item); err != nil {
		slog.Error("failed to update item", "error", err)
		s.itemEditForm(w, r, []string{"Saving the item failed, try again."})
		return
	}

	claims := GetWebClaims(r.Context())
	slog.Info("item updated", "user", claims.Username, "item", item.Name, "id", id)
	SetFlash(w, "Item updated.")
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

func (s *Server) itemDelete(w http.ResponseWriter, r *http.Request) {
	id := targetID(r, "itemid")

	count, err := store.Exists(r.Context(), s.DB, store.ItemByID, id)
	if err != nil {
		slog.Error("failed to check item", "error", err)
		SetFlash(w, "Deleting the item failed, try again.")
		http.Redirect(w, r, "/items", http.StatusSeeOther)
		return
	}
	if count == 0 {
		SetFlash(w, "No item with this ID was found.")
		http.Redirect(w, r, "/items", http.StatusSeeOther)
		return
	}

	if err := store.DeleteItem(r.Context(), s.DB, id); err != nil {
		slog.Error("failed to delete item", "error", err)
		SetFlash(w, "Deleting the item failed, try again.")
		http.Redirect(w, r, "/items", http.StatusSeeOther)
		return
	}

	claims := GetWebClaims(r.Context())
	slog.Info("item deleted", "user", claims.Username, "id", id)
	SetFlash(w, "Item deleted.")
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

// itemPhoto serves an item's photo on GET and replaces it on POST.
func (s *Server) itemPhoto(w http.ResponseWriter, r *http.Request) {
	id := targetID(r, "itemid")

	if r.Method != http.MethodPost {
		data, mime, err := store.GetItemPhoto(r.Context(), s.DB, id)
		if err != nil {
			slog.Error("failed to get item photo", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if data == nil {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", mime)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		if _, err := w.Write(data); err != nil {
			slog.Error("failed to write photo response", "error", err)
		}
		return
	}

	editURL := fmt.Sprintf("/items?do=edit&itemid=%d", id)

	count, err := store.Exists(r.Context(), s.DB, store.ItemByID, id)
	if err != nil || count == 0 {
		SetFlash(w, "No item with this ID was found.")
		http.Redirect(w, r, "/items", http.StatusSeeOther)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		SetFlash(w, "The photo is too large.")
		http.Redirect(w, r, editURL, http.StatusSeeOther)
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		SetFlash(w, "Choose a photo to upload.")
		http.Redirect(w, r, editURL, http.StatusSeeOther)
		return
	}
	defer file.Close()

	photo, err := imaging.Normalize(file)
	if err != nil {
		SetFlash(w, err.Error())
		http.Redirect(w, r, editURL, http.StatusSeeOther)
		return
	}

	if err := store.SetItemPhoto(r.Context(), s.DB, id, photo.Data, photo.MIME); err != nil {
		slog.Error("failed to save item photo", "error", err)
		SetFlash(w, "Saving the photo failed, try again.")
		http.Redirect(w, r, editURL, http.StatusSeeOther)
		return
	}

	claims := GetWebClaims(r.Context())
	slog.Info("item photo uploaded", "user", claims.Username, "id", id)
	SetFlash(w, "Photo updated.")
	http.Redirect(w, r, editURL, http.StatusSeeOther)
}
