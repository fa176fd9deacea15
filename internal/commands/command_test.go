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
		{"/add wed buy milk", TypeAdd},
		{"goto 2024-01-10", TypeGoto},
		{"next", TypeNext},
		{"/prev", TypePrev},
		{"today", TypeToday},
		{"move wed 1 thu 1", TypeMove},
		{"clear today", TypeClear},
		{"STATS", TypeStats},
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

func TestParseAddKeepsText(t *testing.T) {
	cmd, err := Parse("/add Wed   call the   bank ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Day != "wed" || cmd.Add.Text != "call the bank" {
		t.Fatalf("unexpected add args: %+v", cmd.Add)
	}
}

func TestParseMovePositions(t *testing.T) {
	cmd, err := Parse("move 2024-01-10 2 thu 1")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := MoveArgs{FromDay: "2024-01-10", FromPos: 2, ToDay: "thu", ToPos: 1}
	if *cmd.Move != want {
		t.Fatalf("move args = %+v, want %+v", *cmd.Move, want)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	for _, in := range []string{"add wed", "goto", "move wed 0 thu 1", "move wed x thu 1", "move wed 1", "clear", "next week"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseEmptyAndUnknown(t *testing.T) {
	_, err := Parse("  / ")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}

	_, err = Parse("/unknown do x")
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add fri write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Day != "fri" || a.Text != "write docs" {
				t.Fatalf("unexpected args: %+v", a)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteNoArgCommands(t *testing.T) {
	var got []Type
	h := Handlers{
		Next:  func() (Result, error) { got = append(got, TypeNext); return Result{}, nil },
		Prev:  func() (Result, error) { got = append(got, TypePrev); return Result{}, nil },
		Today: func() (Result, error) { got = append(got, TypeToday); return Result{}, nil },
		Stats: func() (Result, error) { got = append(got, TypeStats); return Result{}, nil },
	}
	for _, in := range []string{"next", "prev", "today", "stats"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if _, err := Execute(cmd, h); err != nil {
			t.Fatalf("execute %q: %v", in, err)
		}
	}
	if len(got) != 4 || got[0] != TypeNext || got[3] != TypeStats {
		t.Fatalf("unexpected dispatch order: %v", got)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("stats")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
