package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xetrr/catalog-admin/internal/model"
)

// CreateMember creates a new member account.
func CreateMember(ctx context.Context, db *sql.DB, username, email, passwordHash string, status model.RegStatus, group model.Group) (*model.Member, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, status, user_group) VALUES (?, ?, ?, ?, ?)`,
		username, email, passwordHash, status, group,
	)
	if err != nil {
		return nil, fmt.Errorf("creating member: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting member id: %w", err)
	}

	return GetMember(ctx, db, id)
}

// GetMember returns a member by ID.
func GetMember(ctx context.Context, db *sql.DB, id int64) (*model.Member, error) {
	m := &model.Member{}
	err := db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, status, user_group, created_at
		 FROM users WHERE id = ?`, id,
	).Scan(&m.ID, &m.Username, &m.Email, &m.PasswordHash, &m.Status, &m.Group, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting member: %w", err)
	}
	return m, nil
}

// GetMemberByUsername returns a member by username.
func GetMemberByUsername(ctx context.Context, db *sql.DB, username string) (*model.Member, error) {
	m := &model.Member{}
	err := db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, status, user_group, created_at
		 FROM users WHERE username = ?`, username,
	).Scan(&m.ID, &m.Username, &m.Email, &m.PasswordHash, &m.Status, &m.Group, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting member by username: %w", err)
	}
	return m, nil
}

// ListMembers returns all members.
func ListMembers(ctx context.Context, db *sql.DB) ([]model.Member, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, username, email, password_hash, status, user_group, created_at
		 FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.ID, &m.Username, &m.Email, &m.PasswordHash, &m.Status, &m.Group, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// ApproveMember transitions a pending member to approved.
func ApproveMember(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET status = ? WHERE id = ?`,
		model.StatusApproved, id,
	)
	if err != nil {
		return fmt.Errorf("approving member: %w", err)
	}
	return nil
}

// UpdateMemberPassword updates a member's password hash.
func UpdateMemberPassword(ctx context.Context, db *sql.DB, id int64, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating member password: %w", err)
	}
	return nil
}

// DeleteMember removes a member. Callers must refuse the delete while items
// still reference the member.
func DeleteMember(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}
	return nil
}

// LatestMembers returns the most recently registered members.
func LatestMembers(ctx context.Context, db *sql.DB, limit int) ([]model.Member, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, username, email, password_hash, status, user_group, created_at
		 FROM users ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing latest members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.ID, &m.Username, &m.Email, &m.PasswordHash, &m.Status, &m.Group, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
