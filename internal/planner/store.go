package planner

import (
	"sort"

	"github.com/sandeepkv93/weekly/internal/model"
)

// Store maps a day to its ordered tasks. It is a value: every operation
// returns a new Store and leaves the receiver untouched. Index arguments that
// fall outside a day's list make the operation a no-op.
type Store struct {
	days map[model.DateKey][]model.Task
}

func NewStore() Store {
	return Store{days: make(map[model.DateKey][]model.Task)}
}

func (s Store) EnsureDay(key model.DateKey) Store {
	if s.Has(key) {
		return s
	}
	return s.with(key, []model.Task{})
}

func (s Store) EnsureDays(keys ...model.DateKey) Store {
	for _, key := range keys {
		s = s.EnsureDay(key)
	}
	return s
}

func (s Store) AddTask(key model.DateKey, text string) Store {
	task, ok := model.NewTask(text)
	if !ok {
		return s
	}
	cur := s.days[key]
	next := make([]model.Task, len(cur), len(cur)+1)
	copy(next, cur)
	return s.with(key, append(next, task))
}

func (s Store) ToggleCompletion(key model.DateKey, index int) Store {
	cur := s.days[key]
	if !validIndex(cur, index) {
		return s
	}
	next := cloneTasks(cur)
	next[index] = next[index].Toggled()
	return s.with(key, next)
}

func (s Store) DeleteTask(key model.DateKey, index int) Store {
	cur := s.days[key]
	if !validIndex(cur, index) {
		return s
	}
	return s.with(key, removeAt(cur, index))
}

// MoveTask relocates one task. The destination index is read against the
// destination list after the task has been removed; indexes past its end
// append. A negative destination index is a no-op.
func (s Store) MoveTask(srcKey model.DateKey, srcIndex int, dstKey model.DateKey, dstIndex int) Store {
	src := s.days[srcKey]
	if !validIndex(src, srcIndex) || dstIndex < 0 {
		return s
	}
	moved := src[srcIndex]
	remaining := removeAt(src, srcIndex)

	if srcKey == dstKey {
		return s.with(srcKey, insertAt(remaining, dstIndex, moved))
	}
	out := s.with(srcKey, remaining)
	return out.with(dstKey, insertAt(s.days[dstKey], dstIndex, moved))
}

// ClearCompleted drops every completed task of a day, keeping order.
func (s Store) ClearCompleted(key model.DateKey) (Store, int) {
	cur := s.days[key]
	next := make([]model.Task, 0, len(cur))
	for _, task := range cur {
		if !task.Completed {
			next = append(next, task)
		}
	}
	removed := len(cur) - len(next)
	if removed == 0 {
		return s, 0
	}
	return s.with(key, next), removed
}

func (s Store) Has(key model.DateKey) bool {
	_, ok := s.days[key]
	return ok
}

// Day returns a copy of the day's tasks.
func (s Store) Day(key model.DateKey) []model.Task {
	return cloneTasks(s.days[key])
}

func (s Store) Task(key model.DateKey, index int) (model.Task, bool) {
	cur := s.days[key]
	if !validIndex(cur, index) {
		return model.Task{}, false
	}
	return cur[index], true
}

func (s Store) Len(key model.DateKey) int {
	return len(s.days[key])
}

func (s Store) Total() int {
	n := 0
	for _, tasks := range s.days {
		n += len(tasks)
	}
	return n
}

func (s Store) Completed() int {
	n := 0
	for _, tasks := range s.days {
		for _, task := range tasks {
			if task.Completed {
				n++
			}
		}
	}
	return n
}

func (s Store) Keys() []model.DateKey {
	out := make([]model.DateKey, 0, len(s.days))
	for key := range s.days {
		out = append(out, key)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s Store) with(key model.DateKey, tasks []model.Task) Store {
	next := make(map[model.DateKey][]model.Task, len(s.days)+1)
	for k, v := range s.days {
		next[k] = v
	}
	next[key] = tasks
	return Store{days: next}
}

func validIndex(tasks []model.Task, index int) bool {
	return index >= 0 && index < len(tasks)
}

func cloneTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	return out
}

func removeAt(tasks []model.Task, index int) []model.Task {
	out := make([]model.Task, 0, len(tasks)-1)
	out = append(out, tasks[:index]...)
	return append(out, tasks[index+1:]...)
}

func insertAt(tasks []model.Task, index int, task model.Task) []model.Task {
	if index > len(tasks) {
		index = len(tasks)
	}
	out := make([]model.Task, 0, len(tasks)+1)
	out = append(out, tasks[:index]...)
	out = append(out, task)
	return append(out, tasks[index:]...)
}
