package store

import (
	"context"
	"testing"

	"github.com/xetrr/catalog-admin/internal/db"
	"github.com/xetrr/catalog-admin/internal/model"
)

func TestCreateAndGetCategory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	category, err := CreateCategory(ctx, database, &model.Category{
		Name:          "Electronics",
		Description:   "Gadgets and devices",
		Ordering:      2,
		Visibility:    model.VisibilityVisible,
		AllowComments: model.ToggleYes,
		AllowAds:      model.ToggleNo,
	})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if category.Name != "Electronics" || category.AllowAds != model.ToggleNo {
		t.Errorf("unexpected category %+v", category)
	}
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateCategory(ctx, database, &model.Category{Name: "Books"}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if _, err := CreateCategory(ctx, database, &model.Category{Name: "Books"}); err == nil {
		t.Error("expected unique index to reject duplicate category name")
	}
}

func TestListCategoriesOrdering(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateCategory(ctx, database, &model.Category{Name: "Zebra Supplies", Ordering: 1})
	CreateCategory(ctx, database, &model.Category{Name: "Apparel", Ordering: 2})

	categories, err := ListCategories(ctx, database)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	// Sorted by ordering key, not name.
	if categories[0].Name != "Zebra Supplies" {
		t.Errorf("expected ordering sort, got %q first", categories[0].Name)
	}
}

func TestListCategoriesItemCount(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	memberID, categoryID := seedRefs(t, database)

	CreateItem(ctx, database, &model.Item{
		Name: "Desk", Description: "d", Price: 100, Country: "US",
		Status: model.ItemStatusNew, MemberID: memberID, CategoryID: categoryID,
	})

	categories, _ := ListCategories(ctx, database)
	if len(categories) != 1 || categories[0].ItemCount != 1 {
		t.Errorf("expected item count 1, got %+v", categories)
	}
}

func TestUpdateCategory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	category, _ := CreateCategory(ctx, database, &model.Category{Name: "Old Name"})
	category.Name = "New Name"
	category.Visibility = model.VisibilityHidden
	if err := UpdateCategory(ctx, database, category); err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}

	got, _ := GetCategory(ctx, database, category.ID)
	if got.Name != "New Name" || got.Visibility != model.VisibilityHidden {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestDeleteCategory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	category, _ := CreateCategory(ctx, database, &model.Category{Name: "Ephemeral"})
	if err := DeleteCategory(ctx, database, category.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	got, _ := GetCategory(ctx, database, category.ID)
	if got != nil {
		t.Errorf("expected category to be gone, got %+v", got)
	}
}
