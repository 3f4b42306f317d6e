package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xetrr/catalog-admin/internal/model"
)

const itemColumns = `i.id, i.name, i.description, i.price, i.country, i.status,
	        i.member_id, i.category_id, i.photo_mime, i.created_at,
	        u.username AS member_name, c.name AS category_name`

const itemJoins = `FROM items i
	 JOIN users u ON u.id = i.member_id
	 JOIN categories c ON c.id = i.category_id`

// CreateItem creates a new item and returns it with joined names.
func CreateItem(ctx context.Context, db *sql.DB, item *model.Item) (*model.Item, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (name, description, price, country, status, member_id, category_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.Name, item.Description, item.Price, item.Country, item.Status, item.MemberID, item.CategoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID with its member and category names joined.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	var photoMime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` `+itemJoins+` WHERE i.id = ?`, id,
	).Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Country, &item.Status,
		&item.MemberID, &item.CategoryID, &photoMime, &item.CreatedAt,
		&item.MemberName, &item.CategoryName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.PhotoMime = photoMime.String
	return item, nil
}

// ListItems returns all items with member and category names joined.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` `+itemJoins+` ORDER BY i.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// LatestItems returns the most recently created items.
func LatestItems(ctx context.Context, db *sql.DB, limit int) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` `+itemJoins+` ORDER BY i.id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing latest items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		var item model.Item
		var photoMime sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Country, &item.Status,
			&item.MemberID, &item.CategoryID, &photoMime, &item.CreatedAt,
			&item.MemberName, &item.CategoryName); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.PhotoMime = photoMime.String
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItem replaces an item's mutable fields. The identifier and creation
// timestamp never change.
func UpdateItem(ctx context.Context, db *sql.DB, item *model.Item) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, price = ?, country = ?, status = ?,
		        member_id = ?, category_id = ?
		 WHERE id = ?`,
		item.Name, item.Description, item.Price, item.Country, item.Status,
		item.MemberID, item.CategoryID, item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// DeleteItem removes an item.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// SetItemPhoto sets an item's photo data.
func SetItemPhoto(ctx context.Context, db *sql.DB, id int64, photo []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET photo = ?, photo_mime = ? WHERE id = ?`,
		photo, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting item photo: %w", err)
	}
	return nil
}

// GetItemPhoto returns an item's photo data and MIME type.
func GetItemPhoto(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM items WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item photo: %w", err)
	}
	return photo, mime.String, nil
}
