package app

import (
	"context"
	"errors"
	"time"

	"github.com/MazharElstub/The-Weekend-sub002/internal/log"
	"github.com/MazharElstub/The-Weekend-sub002/internal/share"
)

// HandleShare stages an incoming share. Signed in, the payload is consumed
// immediately into an add-plan prefill; signed out, its id is remembered for
// replay on the next sign-in.
func (a *AppState) HandleShare(ctx context.Context, text, url string, now time.Time) (string, error) {
	payload := share.NewPayload(text, url, now)
	if err := a.inbox.Stage(ctx, payload); err != nil {
		return "", err
	}

	if a.IsSignedIn() {
		return payload.ID, a.consumeShare(ctx, payload.ID, now)
	}
	if err := a.inbox.RememberReplay(ctx, payload.ID, now); err != nil {
		return "", err
	}
	return payload.ID, nil
}

// HandleShareCallback resolves a theweekend://share?id= deep link. Unknown
// or expired ids are ignored without navigation.
func (a *AppState) HandleShareCallback(ctx context.Context, payloadID string, now time.Time) {
	if !a.IsSignedIn() {
		if err := a.inbox.RememberReplay(ctx, payloadID, now); err != nil {
			log.Error("app: remember share for replay", err, "payload", payloadID)
		}
		return
	}
	if err := a.consumeShare(ctx, payloadID, now); err != nil &&
		!errors.Is(err, share.ErrNotFound) && !errors.Is(err, share.ErrExpired) {
		log.Error("app: consume shared payload", err, "payload", payloadID)
	}
}

// StagedPrefill hands out the staged add-plan prefill at most once.
func (a *AppState) StagedPrefill() (AddPlanPrefill, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stagedPrefill == nil {
		return AddPlanPrefill{}, false
	}
	prefill := *a.stagedPrefill
	a.stagedPrefill = nil
	return prefill, true
}

func (a *AppState) consumeShare(ctx context.Context, payloadID string, now time.Time) error {
	payload, err := a.inbox.Consume(ctx, payloadID, now)
	if err != nil {
		return err
	}
	key := a.NextUpcomingWeekendKey(now)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stagedPrefill = &AddPlanPrefill{
		Title:      payload.Title,
		Details:    payload.Details,
		WeekendKey: key,
	}
	a.notifyLocked(ChangePrefill)
	return nil
}

// replayRememberedShares consumes every payload id remembered while signed
// out. Expired or missing payloads are dropped silently; the most recent
// surviving payload becomes the staged prefill.
func (a *AppState) replayRememberedShares() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ids, err := a.inbox.TakeReplays(ctx)
	if err != nil {
		log.Error("app: take share replays", err)
		return
	}
	now := time.Now()
	for _, id := range ids {
		if err := a.consumeShare(ctx, id, now); err != nil {
			if errors.Is(err, share.ErrExpired) || errors.Is(err, share.ErrNotFound) {
				log.Debug("app: dropped stale share replay", "payload", id)
				continue
			}
			log.Error("app: replay shared payload", err, "payload", id)
		}
	}
}
