package commands

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd       Type = "add"
	TypeIdea      Type = "idea"
	TypeComplete  Type = "complete"
	TypeCancel    Type = "cancel"
	TypeReopen    Type = "reopen"
	TypeDelete    Type = "delete"
	TypeProtect   Type = "protect"
	TypeUnprotect Type = "unprotect"
	TypeLeave     Type = "leave"
	TypeUnleave   Type = "unleave"
	TypeGoal      Type = "goal"
	TypeRetry     Type = "retry"
	TypeOpen      Type = "open"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

type AddArgs struct {
	Title string
}

type TargetArgs struct {
	ID string
}

type WeekendArgs struct {
	WeekendKey string
}

type LeaveArgs struct {
	Date string
	Note string
}

type GoalArgs struct {
	Month           string
	PlannedTarget   int
	CompletedTarget int
}

type Command struct {
	Type    Type
	Raw     string
	Add     *AddArgs
	Target  *TargetArgs
	Weekend *WeekendArgs
	Leave   *LeaveArgs
	Goal    *GoalArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd, TypeIdea:
		return parseTitled(Type(head), input, args)
	case TypeComplete, TypeCancel, TypeReopen, TypeDelete:
		return parseTargeted(Type(head), input, args)
	case TypeProtect, TypeUnprotect, TypeOpen:
		return parseWeekend(Type(head), input, args)
	case TypeLeave, TypeUnleave:
		return parseLeave(Type(head), input, args)
	case TypeGoal:
		return parseGoal(input, args)
	case TypeRetry:
		return Command{Type: TypeRetry, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseTitled(t Type, raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: string(t) + " requires a title"}
	}
	return Command{Type: t, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func parseTargeted(t Type, raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: string(t) + " requires an event id"}
	}
	return Command{Type: t, Raw: raw, Target: &TargetArgs{ID: args[0]}}, nil
}

func parseWeekend(t Type, raw string, args []string) (Command, error) {
	if len(args) != 1 || !datePattern.MatchString(args[0]) {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: string(t) + " requires a weekend key (YYYY-MM-DD)"}
	}
	return Command{Type: t, Raw: raw, Weekend: &WeekendArgs{WeekendKey: args[0]}}, nil
}

func parseLeave(t Type, raw string, args []string) (Command, error) {
	if len(args) == 0 || !datePattern.MatchString(args[0]) {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: string(t) + " requires a date (YYYY-MM-DD)"}
	}
	note := ""
	if t == TypeLeave && len(args) > 1 {
		note = strings.Join(args[1:], " ")
	}
	return Command{Type: t, Raw: raw, Leave: &LeaveArgs{Date: args[0], Note: note}}, nil
}

func parseGoal(raw string, args []string) (Command, error) {
	if len(args) != 3 || !monthPattern.MatchString(args[0]) {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goal requires a month (YYYY-MM), a planned target, and a completed target"}
	}
	planned, err := strconv.Atoi(args[1])
	if err != nil || planned < 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "planned target must be a non-negative number"}
	}
	completed, err := strconv.Atoi(args[2])
	if err != nil || completed < 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "completed target must be a non-negative number"}
	}
	return Command{Type: TypeGoal, Raw: raw, Goal: &GoalArgs{Month: args[0], PlannedTarget: planned, CompletedTarget: completed}}, nil
}
