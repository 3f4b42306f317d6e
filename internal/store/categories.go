package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xetrr/catalog-admin/internal/model"
)

// CreateCategory creates a new category. The duplicate-name pre-check belongs
// to the caller; the unique index still rejects a race that slips past it.
func CreateCategory(ctx context.Context, db *sql.DB, c *model.Category) (*model.Category, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO categories (name, description, ordering, visibility, allow_comments, allow_ads)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.Name, c.Description, c.Ordering, c.Visibility, c.AllowComments, c.AllowAds,
	)
	if err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting category id: %w", err)
	}

	return GetCategory(ctx, db, id)
}

// GetCategory returns a category by ID.
func GetCategory(ctx context.Context, db *sql.DB, id int64) (*model.Category, error) {
	c := &model.Category{}
	var description sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, description, ordering, visibility, allow_comments, allow_ads
		 FROM categories WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &description, &c.Ordering, &c.Visibility, &c.AllowComments, &c.AllowAds)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting category: %w", err)
	}
	c.Description = description.String
	return c, nil
}

// ListCategories returns all categories ordered by their display sort key,
// including how many items each one holds.
func ListCategories(ctx context.Context, db *sql.DB) ([]model.Category, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT c.id, c.name, c.description, c.ordering, c.visibility, c.allow_comments, c.allow_ads,
		        COUNT(i.id) AS item_count
		 FROM categories c
		 LEFT JOIN items i ON i.category_id = c.id
		 GROUP BY c.id
		 ORDER BY c.ordering, c.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		var description sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &description, &c.Ordering, &c.Visibility, &c.AllowComments, &c.AllowAds, &c.ItemCount); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		c.Description = description.String
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateCategory replaces a category's mutable fields.
func UpdateCategory(ctx context.Context, db *sql.DB, c *model.Category) error {
	_, err := db.ExecContext(ctx,
		`UPDATE categories SET name = ?, description = ?, ordering = ?, visibility = ?,
		        allow_comments = ?, allow_ads = ?
		 WHERE id = ?`,
		c.Name, c.Description, c.Ordering, c.Visibility, c.AllowComments, c.AllowAds, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}
	return nil
}

// DeleteCategory removes a category. Callers must refuse the delete while
// items still reference the category.
func DeleteCategory(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	return nil
}
