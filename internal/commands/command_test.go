package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add picnic at the lake", TypeAdd},
		{"idea night market", TypeIdea},
		{"complete e1", TypeComplete},
		{"cancel e1", TypeCancel},
		{"reopen e1", TypeReopen},
		{"delete e1", TypeDelete},
		{"protect 2026-02-21", TypeProtect},
		{"unprotect 2026-02-21", TypeUnprotect},
		{"leave 2026-02-16 long weekend", TypeLeave},
		{"unleave 2026-02-16", TypeUnleave},
		{"goal 2026-02 4 2", TypeGoal},
		{"retry", TypeRetry},
		{"open 2026-02-21", TypeOpen},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseRejectsMalformedArguments(t *testing.T) {
	cases := []string{
		"add",
		"complete",
		"complete e1 e2",
		"protect not-a-date",
		"leave 16-02-2026",
		"goal 2026-02 4",
		"goal 2026-02 -1 2",
		"goal february 4 2",
	}
	for _, in := range cases {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument error, got %v", in, err)
		}
	}
}

func TestParseGoalArguments(t *testing.T) {
	cmd, err := Parse("goal 2026-02 4 2")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Goal.Month != "2026-02" || cmd.Goal.PlannedTarget != 4 || cmd.Goal.CompletedTarget != 2 {
		t.Fatalf("unexpected goal args: %+v", cmd.Goal)
	}
}

func TestParseLeaveNote(t *testing.T) {
	cmd, err := Parse("leave 2026-02-16 around the long weekend")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Leave.Date != "2026-02-16" || cmd.Leave.Note != "around the long weekend" {
		t.Fatalf("unexpected leave args: %+v", cmd.Leave)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add picnic at the lake")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Title != "picnic at the lake" {
				t.Fatalf("unexpected title: %q", a.Title)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("execute result = %+v, called = %v", res, called)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("retry")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected handler missing error, got %v", err)
	}
}
