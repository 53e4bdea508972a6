package ports

import "context"

// Task is a fire-and-forget unit of work. Tasks sharing a Key run in the
// order they were enqueued.
type Task struct {
	Key  string
	Name string
	Run  func(ctx context.Context) error
}

// TaskQueue accepts background work without blocking. Enqueue reports
// false when the task was dropped.
type TaskQueue interface {
	Enqueue(t Task) bool
}
