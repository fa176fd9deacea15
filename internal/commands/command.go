package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd   Type = "add"
	TypeGoto  Type = "goto"
	TypeNext  Type = "next"
	TypePrev  Type = "prev"
	TypeToday Type = "today"
	TypeMove  Type = "move"
	TypeClear Type = "clear"
	TypeStats Type = "stats"
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

// Day arguments are kept raw ("2024-01-10", "today", "wed"); the caller
// resolves them against the displayed week.
type AddArgs struct {
	Day  string
	Text string
}

type GotoArgs struct {
	Date string
}

// MoveArgs positions are 1-based as typed by the user.
type MoveArgs struct {
	FromDay string
	FromPos int
	ToDay   string
	ToPos   int
}

type ClearArgs struct {
	Day string
}

type Command struct {
	Type  Type
	Raw   string
	Add   *AddArgs
	Goto  *GotoArgs
	Move  *MoveArgs
	Clear *ClearArgs
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
	case TypeAdd:
		return parseAdd(input, args)
	case TypeGoto:
		return parseGoto(input, args)
	case TypeNext, TypePrev, TypeToday, TypeStats:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	case TypeMove:
		return parseMove(input, args)
	case TypeClear:
		return parseClear(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a day and text"}
	}
	text := strings.TrimSpace(strings.Join(args[1:], " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Day: strings.ToLower(args[0]), Text: text}}, nil
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goto requires a date (YYYY-MM-DD)"}
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Date: args[0]}}, nil
}

func parseMove(raw string, args []string) (Command, error) {
	if len(args) != 4 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "move requires <day> <pos> <day> <pos>"}
	}
	from, err := parsePosition(args[1])
	if err != nil {
		return Command{}, err
	}
	to, err := parsePosition(args[3])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeMove, Raw: raw, Move: &MoveArgs{
		FromDay: strings.ToLower(args[0]),
		FromPos: from,
		ToDay:   strings.ToLower(args[2]),
		ToPos:   to,
	}}, nil
}

func parseClear(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "clear requires a day"}
	}
	return Command{Type: TypeClear, Raw: raw, Clear: &ClearArgs{Day: strings.ToLower(args[0])}}, nil
}

func parsePosition(raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("position must be a number >= 1, got %q", raw)}
	}
	return v, nil
}
