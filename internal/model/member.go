package model

import (
	"fmt"
	"time"
)

// Member represents a registered account (admin or regular member).
type Member struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Status       RegStatus `json:"status"`
	Group        Group     `json:"group"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegStatus is a member's registration status.
type RegStatus int

// Registration statuses.
const (
	StatusPending  RegStatus = 0
	StatusApproved RegStatus = 1
)

// Group is a member's permission group.
type Group int

// Groups.
const (
	GroupMember Group = 0
	GroupAdmin  Group = 1
)

// IsAdmin reports whether the group grants back-office access.
func (g Group) IsAdmin() bool {
	return g == GroupAdmin
}

// StatusName returns the display name for a registration status.
func (s RegStatus) StatusName() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusApproved:
		return "Approved"
	default:
		return fmt.Sprintf("Unknown (%d)", int(s))
	}
}

// GroupName returns the display name for a group.
func (g Group) GroupName() string {
	switch g {
	case GroupMember:
		return "Member"
	case GroupAdmin:
		return "Admin"
	default:
		return fmt.Sprintf("Unknown (%d)", int(g))
	}
}

// ValidatePassword checks password requirements for new accounts.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}
