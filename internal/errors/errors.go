//nolint:revive // Package name intentionally matches stdlib for domain clarity
package errors

import "fmt"

// NotInitializedError indicates the project directory doesn't exist.
type NotInitializedError struct {
	Path string
}

func (e NotInitializedError) Error() string {
	return fmt.Sprintf("obra not initialized at %s: run 'obra init' first", e.Path)
}

// AlreadyInitializedError indicates the project directory already exists.
type AlreadyInitializedError struct {
	Path string
}

func (e AlreadyInitializedError) Error() string {
	return fmt.Sprintf("obra already initialized at %s", e.Path)
}

// TaskNotFoundError indicates the task ID doesn't match any file.
type TaskNotFoundError struct {
	ID string
}

func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.ID)
}

// BaselineNotFoundError indicates no snapshot matches the requested ID.
type BaselineNotFoundError struct {
	ID string
}

func (e BaselineNotFoundError) Error() string {
	if e.ID == "" {
		return "no baseline captured yet: run 'obra baseline capture' first"
	}
	return fmt.Sprintf("baseline not found: %s", e.ID)
}

// InvalidDateError indicates a date field is not a YYYY-MM-DD calendar date.
type InvalidDateError struct {
	Field string
	Value string
}

func (e InvalidDateError) Error() string {
	return fmt.Sprintf("invalid %s: %q (expected YYYY-MM-DD)", e.Field, e.Value)
}

// InvalidWindowError indicates a window whose end precedes its start.
type InvalidWindowError struct {
	ID    string
	Start string
	End   string
	Kind  string
}

func (e InvalidWindowError) Error() string {
	return fmt.Sprintf("task %s has %s window ending %s before it starts %s", e.ID, e.Kind, e.End, e.Start)
}

// InvalidProgressError indicates a progress value outside 0-100.
type InvalidProgressError struct {
	ID    string
	Value int
}

func (e InvalidProgressError) Error() string {
	return fmt.Sprintf("task %s has progress %d (valid: 0-100)", e.ID, e.Value)
}

// InvalidStatusError indicates an unknown task status.
type InvalidStatusError struct {
	ID    string
	Value string
}

func (e InvalidStatusError) Error() string {
	return fmt.Sprintf("task %s has invalid status '%s' (valid: todo, in_progress, completed)", e.ID, e.Value)
}

// InvalidViewError indicates an unknown War Room view name.
type InvalidViewError struct {
	Value string
}

func (e InvalidViewError) Error() string {
	return fmt.Sprintf("invalid view: %s (valid: curve, timeline, summary)", e.Value)
}

// InvalidIDError indicates an ID that cannot name a file in the project
// directory, such as one containing a path separator.
type InvalidIDError struct {
	Value string
}

func (e InvalidIDError) Error() string {
	return fmt.Sprintf("invalid id: %q", e.Value)
}
