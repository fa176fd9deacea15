package model

import (
	"errors"
	"strings"
)

var ErrEmptyText = errors.New("model: task text is required")

// Task is one entry in a day's list. Position in the list is significant.
type Task struct {
	Text      string
	Completed bool
}

func NewTask(text string) (Task, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Task{}, false
	}
	return Task{Text: trimmed}, true
}

func (t Task) Toggled() Task {
	t.Completed = !t.Completed
	return t
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	return nil
}
