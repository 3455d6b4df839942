package port

import (
	"context"
	"errors"
	"time"
)

// ErrSkipRetry marks a handler failure that retrying cannot fix, such as a
// malformed payload. Wrap it with %w to archive the task immediately.
var ErrSkipRetry = errors.New("queue: skip retry")

// Task is a background job: a stable type name plus opaque payload bytes.
// Payload encoding is up to the producer and its handler.
type Task struct {
	Type    string
	Payload []byte
}

// Handler processes a Task. A non-nil error asks the adapter to retry per its policy,
// so handlers must be idempotent.
type Handler func(ctx context.Context, task Task) error

// EnqueueOption controls enqueue behavior. Adapters map supported fields to the
// backend best-effort; zero values mean "unspecified".
type EnqueueOption struct {
	Queue     string        // logical queue name
	ProcessIn time.Duration // delay before processing
	MaxRetry  int           // max retries for the task
	Timeout   time.Duration // per-attempt processing budget
	Deadline  time.Time     // drop the task if not processed by then
}

// Client enqueues tasks for background processing.
type Client interface {
	Enqueue(ctx context.Context, t Task, opts ...EnqueueOption) (id string, err error)
	Close() error
}

// Server runs workers for registered task types.
// Run blocks until ctx is canceled, then shuts down gracefully.
type Server interface {
	Register(taskType string, h Handler)
	Run(ctx context.Context) error
}
