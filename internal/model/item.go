package model

import (
	"fmt"
	"time"
)

// Item represents a catalog item owned by a member.
type Item struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Country     string     `json:"country"`
	Status      ItemStatus `json:"status"`
	MemberID    int64      `json:"member_id"`
	CategoryID  int64      `json:"category_id"`
	PhotoMime   string     `json:"photo_mime,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	// Joined fields (not always populated).
	MemberName   string `json:"member_name,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
}

// ItemStatus is an item's condition. Zero is the unselected form sentinel and
// never persists.
type ItemStatus int

// Item statuses.
const (
	ItemStatusUnset   ItemStatus = 0
	ItemStatusNew     ItemStatus = 1
	ItemStatusLikeNew ItemStatus = 2
	ItemStatusUsed    ItemStatus = 3
)

// Valid reports whether the status is one of the persistable conditions.
func (s ItemStatus) Valid() bool {
	return s == ItemStatusNew || s == ItemStatusLikeNew || s == ItemStatusUsed
}

// StatusName returns the display name for an item status.
func (s ItemStatus) StatusName() string {
	switch s {
	case ItemStatusNew:
		return "New"
	case ItemStatusLikeNew:
		return "Like New"
	case ItemStatusUsed:
		return "Used"
	default:
		return fmt.Sprintf("Unknown (%d)", int(s))
	}
}
