package model

import (
	"errors"
	"regexp"
	"strings"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// MonthlyGoal holds per-user planned/completed targets for one month.
// Unique per (user, month); Month is formatted YYYY-MM.
type MonthlyGoal struct {
	UserID          string `json:"user_id"`
	Month           string `json:"month"`
	PlannedTarget   int    `json:"planned_target"`
	CompletedTarget int    `json:"completed_target"`
}

func (g MonthlyGoal) Validate() error {
	if strings.TrimSpace(g.UserID) == "" {
		return errors.New("model: goal user id is required")
	}
	if !monthPattern.MatchString(g.Month) {
		return errors.New("model: goal month must be formatted YYYY-MM")
	}
	if g.PlannedTarget < 0 || g.CompletedTarget < 0 {
		return errors.New("model: goal targets must not be negative")
	}
	return nil
}

// Key identifies the goal's uniqueness scope.
func (g MonthlyGoal) Key() string {
	return g.UserID + "/" + g.Month
}
