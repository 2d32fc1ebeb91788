package tasks

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrEmptyTitle      = errors.New("title must not be empty")
)

// Priority levels, highest first.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ValidPriority reports whether p is one of the known levels.
func ValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Task is one to-do item. Order is the user's manual sort position; lists
// are always returned in ascending order. DueDate is an optional
// "YYYY-MM-DD" date; empty means no deadline.
type Task struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Priority  string `json:"priority"`
	DueDate   string `json:"dueDate,omitempty"`
	Completed bool   `json:"completed"`
	Order     int    `json:"order"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}
