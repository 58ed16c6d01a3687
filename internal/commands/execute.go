package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add       func(AddArgs) (Result, error)
	Idea      func(AddArgs) (Result, error)
	Complete  func(TargetArgs) (Result, error)
	Cancel    func(TargetArgs) (Result, error)
	Reopen    func(TargetArgs) (Result, error)
	Delete    func(TargetArgs) (Result, error)
	Protect   func(WeekendArgs) (Result, error)
	Unprotect func(WeekendArgs) (Result, error)
	Leave     func(LeaveArgs) (Result, error)
	Unleave   func(LeaveArgs) (Result, error)
	Goal      func(GoalArgs) (Result, error)
	Retry     func() (Result, error)
	Open      func(WeekendArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		return runTitled(handlers.Add, cmd, "add")
	case TypeIdea:
		return runTitled(handlers.Idea, cmd, "idea")
	case TypeComplete:
		return runTargeted(handlers.Complete, cmd, "complete")
	case TypeCancel:
		return runTargeted(handlers.Cancel, cmd, "cancel")
	case TypeReopen:
		return runTargeted(handlers.Reopen, cmd, "reopen")
	case TypeDelete:
		return runTargeted(handlers.Delete, cmd, "delete")
	case TypeProtect:
		return runWeekend(handlers.Protect, cmd, "protect")
	case TypeUnprotect:
		return runWeekend(handlers.Unprotect, cmd, "unprotect")
	case TypeLeave:
		return runLeave(handlers.Leave, cmd, "leave")
	case TypeUnleave:
		return runLeave(handlers.Unleave, cmd, "unleave")
	case TypeGoal:
		if handlers.Goal == nil {
			return Result{}, missingHandler("goal")
		}
		return handlers.Goal(*cmd.Goal)
	case TypeRetry:
		if handlers.Retry == nil {
			return Result{}, missingHandler("retry")
		}
		return handlers.Retry()
	case TypeOpen:
		return runWeekend(handlers.Open, cmd, "open")
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func runTitled(h func(AddArgs) (Result, error), cmd Command, name string) (Result, error) {
	if h == nil {
		return Result{}, missingHandler(name)
	}
	return h(*cmd.Add)
}

func runTargeted(h func(TargetArgs) (Result, error), cmd Command, name string) (Result, error) {
	if h == nil {
		return Result{}, missingHandler(name)
	}
	return h(*cmd.Target)
}

func runWeekend(h func(WeekendArgs) (Result, error), cmd Command, name string) (Result, error) {
	if h == nil {
		return Result{}, missingHandler(name)
	}
	return h(*cmd.Weekend)
}

func runLeave(h func(LeaveArgs) (Result, error), cmd Command, name string) (Result, error) {
	if h == nil {
		return Result{}, missingHandler(name)
	}
	return h(*cmd.Leave)
}

func missingHandler(name string) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: name + " handler not configured"}
}
