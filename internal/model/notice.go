package model

import (
	"errors"
	"strings"
	"time"
)

// UserNotice is a server-delivered async notice (for example "shared calendar
// removed"). Immutable except for the read timestamp.
type UserNotice struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}

func (n UserNotice) Validate() error {
	if strings.TrimSpace(n.ID) == "" {
		return errors.New("model: notice id is required")
	}
	if strings.TrimSpace(n.UserID) == "" {
		return errors.New("model: notice user id is required")
	}
	if strings.TrimSpace(n.Title) == "" {
		return errors.New("model: notice title is required")
	}
	return nil
}

func (n UserNotice) IsRead() bool {
	return n.ReadAt != nil
}

func (n *UserNotice) MarkRead(at time.Time) {
	if n.ReadAt == nil {
		n.ReadAt = &at
	}
}
