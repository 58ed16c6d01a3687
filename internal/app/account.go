package app

import (
	"context"
	"errors"
	"strings"

	"github.com/MazharElstub/The-Weekend-sub002/internal/log"
	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
	"github.com/MazharElstub/The-Weekend-sub002/internal/remote"
)

// Fixed user-facing messages for account flows.
const (
	AccountDeletedMessage     = "Your account has been deleted."
	InvalidOwnershipMessage   = "Choose what happens to your shared calendars before deleting your account."
	AccountDeleteFailedPrefix = "Account deletion failed: "
	EmptyEmailMessage         = "Enter your email address first."
	PasswordResetSentMessage  = "Password reset email sent."
)

var ErrEmptyEmail = errors.New("app: email is required")

// RequestPasswordReset validates the email before any remote call. An empty
// address gets the fixed message and no network traffic.
func (a *AppState) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		a.mu.Lock()
		a.statusMessage = EmptyEmailMessage
		a.mu.Unlock()
		return ErrEmptyEmail
	}
	if err := a.remote.RequestPasswordReset(ctx, email); err != nil {
		return err
	}
	a.mu.Lock()
	a.statusMessage = PasswordResetSentMessage
	a.mu.Unlock()
	return nil
}

// DeleteAccount runs the remote deletion and, only on success, wipes every
// session-scoped collection and signs out. On failure nothing local changes;
// the failure message carries the underlying error description.
func (a *AppState) DeleteAccount(ctx context.Context, mode remote.OwnershipMode) (remote.DeleteAccountResult, error) {
	if !mode.IsValid() {
		a.mu.Lock()
		a.statusMessage = InvalidOwnershipMessage
		a.mu.Unlock()
		return remote.DeleteAccountResult{}, remote.ErrInvalidOwnershipMode
	}

	result, err := a.remote.DeleteMyAccount(ctx, mode)
	if err != nil {
		a.mu.Lock()
		a.statusMessage = AccountDeleteFailedPrefix + err.Error()
		a.mu.Unlock()
		return remote.DeleteAccountResult{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.events = nil
	a.calendars = nil
	a.notices = nil
	a.goals = make(map[string]model.MonthlyGoal)
	a.leaveDays = make(map[string]model.AnnualLeaveDay)
	a.reminders = nil
	a.protections = make(map[string]model.WeekendProtection)
	a.configuration = nil
	a.selectedCalendarID = ""
	a.stagedPrefill = nil
	a.signedIn = false
	a.userID = ""
	a.statusMessage = AccountDeletedMessage

	if err := a.queue.Clear(); err != nil {
		log.Error("app: clear pending queue after account deletion", err)
	}
	if err := a.store.Clear(); err != nil {
		log.Error("app: clear cache after account deletion", err)
	}

	a.notifyLocked(ChangeSession)
	a.notifyLocked(ChangeEvents)
	a.notifyLocked(ChangeCalendars)
	a.notifyLocked(ChangeNotices)
	log.Info("app: account deleted",
		"transferred_calendars", result.TransferredCalendarCount,
		"deleted_calendars", result.DeletedCalendarCount)
	return result, nil
}
