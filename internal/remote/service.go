package remote

import (
	"context"
	"errors"

	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
)

var (
	// ErrInvalidOwnershipMode is raised client-side, before any network
	// call, when the account-deletion mode is not one of the two literals
	// the backend accepts.
	ErrInvalidOwnershipMode = errors.New("remote: ownership mode must be \"transfer\" or \"delete\"")

	// ErrUnauthenticated marks calls the backend rejected for a missing or
	// expired session. The client treats it as a generic remote failure.
	ErrUnauthenticated = errors.New("remote: unauthenticated")
)

type OwnershipMode string

const (
	OwnershipTransfer OwnershipMode = "transfer"
	OwnershipDelete   OwnershipMode = "delete"
)

func (m OwnershipMode) IsValid() bool {
	switch m {
	case OwnershipTransfer, OwnershipDelete:
		return true
	default:
		return false
	}
}

// DeleteAccountResult mirrors the backend's delete_my_account return row.
type DeleteAccountResult struct {
	DeletedUserID            string `json:"deleted_user_id"`
	TransferredCalendarCount int    `json:"transferred_calendar_count"`
	DeletedCalendarCount     int    `json:"deleted_calendar_count"`
	NoticesCreatedCount      int    `json:"notices_created_count"`
}

// Service is the remote data-service contract the client consumes. The
// backend's SQL and row-level security live behind it and are not
// reimplemented here.
type Service interface {
	ListEvents(ctx context.Context) ([]model.WeekendEvent, error)
	UpsertEvent(ctx context.Context, event model.WeekendEvent) error
	DeleteEvent(ctx context.Context, id string) error

	ListCalendars(ctx context.Context) ([]model.PlannerCalendar, error)
	ListNotices(ctx context.Context) ([]model.UserNotice, error)
	// MarkNoticeRead reports whether a row was actually updated.
	MarkNoticeRead(ctx context.Context, noticeID string) (bool, error)

	ListGoals(ctx context.Context) ([]model.MonthlyGoal, error)
	UpsertGoal(ctx context.Context, goal model.MonthlyGoal) error

	DeleteMyAccount(ctx context.Context, mode OwnershipMode) (DeleteAccountResult, error)

	// RequestPasswordReset asks the auth service to email a reset link.
	RequestPasswordReset(ctx context.Context, email string) error
}
