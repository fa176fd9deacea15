package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add   func(AddArgs) (Result, error)
	Goto  func(GotoArgs) (Result, error)
	Next  func() (Result, error)
	Prev  func() (Result, error)
	Today func() (Result, error)
	Move  func(MoveArgs) (Result, error)
	Clear func(ClearArgs) (Result, error)
	Stats func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeGoto:
		if handlers.Goto == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Goto(*cmd.Goto)
	case TypeNext:
		return callNoArgs(cmd.Type, handlers.Next)
	case TypePrev:
		return callNoArgs(cmd.Type, handlers.Prev)
	case TypeToday:
		return callNoArgs(cmd.Type, handlers.Today)
	case TypeMove:
		if handlers.Move == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Move(*cmd.Move)
	case TypeClear:
		if handlers.Clear == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Clear(*cmd.Clear)
	case TypeStats:
		return callNoArgs(cmd.Type, handlers.Stats)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func callNoArgs(t Type, fn func() (Result, error)) (Result, error) {
	if fn == nil {
		return Result{}, missing(t)
	}
	return fn()
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
