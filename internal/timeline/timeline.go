// Package timeline runs an ordered queue of timed tasks against a frame clock.
//
// Only the head of the queue is active. Each Tick starts the head if needed,
// advances it by the frame delta, and pops it once its duration has elapsed.
// Tasks chain by enqueuing follow-ups from their Finish callbacks, so a whole
// turn can be expressed without any goroutines or blocking calls.
package timeline

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Skip is returned from Task.Start to drop the task without running Finish.
const Skip time.Duration = -1

// Task is a named, timed, cancelable step.
type Task struct {
	Name string

	// Start runs when the task reaches the head of the queue and returns how
	// long the task lasts. A negative duration skips the task; zero finishes
	// it immediately. A nil Start is treated as zero.
	Start func() time.Duration

	// Update runs on every tick while the task is active.
	Update func(dt time.Duration)

	// Finish runs after the task is popped once its duration has elapsed.
	Finish func()

	// Cancel runs if the task is discarded by Clear before completing.
	Cancel func()

	started   bool
	remaining time.Duration
}

// Timeline is a single-lane queue of tasks. It is not safe for concurrent use.
type Timeline struct {
	queue  []*Task
	logger *log.Logger
}

// New creates an empty timeline. A nil logger disables logging.
func New(logger *log.Logger) *Timeline {
	return &Timeline{logger: logger}
}

// Len returns the number of pending tasks, including the active one.
func (tl *Timeline) Len() int {
	return len(tl.queue)
}

// Head returns the name of the task at the front of the queue.
func (tl *Timeline) Head() (string, bool) {
	if len(tl.queue) == 0 {
		return "", false
	}
	return tl.queue[0].Name, true
}

// Names returns the names of all pending tasks in queue order.
func (tl *Timeline) Names() []string {
	names := make([]string, len(tl.queue))
	for i, t := range tl.queue {
		names[i] = t.Name
	}
	return names
}

// Enqueue appends tasks to the tail in order.
func (tl *Timeline) Enqueue(tasks ...Task) {
	for i := range tasks {
		t := tasks[i]
		t.started = false
		t.remaining = 0
		tl.queue = append(tl.queue, &t)
	}
	tl.trace("queue")
}

// Tick advances the head task by dt. At most one task's Update or Finish
// runs per call.
func (tl *Timeline) Tick(dt time.Duration) {
	if len(tl.queue) == 0 {
		return
	}
	task := tl.queue[0]

	if !task.started {
		task.started = true
		d := time.Duration(0)
		if task.Start != nil {
			d = task.Start()
		}
		if len(tl.queue) == 0 || tl.queue[0] != task {
			// Start cleared the queue; the task was cancelled.
			return
		}
		switch {
		case d < 0:
			tl.pop(task)
			tl.trace("skip")
			return
		case d == 0:
			tl.pop(task)
			tl.trace("finish")
			if task.Finish != nil {
				task.Finish()
			}
			return
		}
		task.remaining = d
	}

	if task.Update != nil {
		task.Update(dt)
	}
	task.remaining -= dt

	if task.remaining <= 0 {
		tl.pop(task)
		tl.trace("finish")
		if task.Finish != nil {
			task.Finish()
		}
	}
}

// pop removes task from the head, unless a callback already cleared it.
func (tl *Timeline) pop(task *Task) {
	if len(tl.queue) > 0 && tl.queue[0] == task {
		tl.queue[0] = nil
		tl.queue = tl.queue[1:]
	}
}

// Clear discards every pending task, newest first, running each Cancel.
// Clearing an empty timeline does nothing.
func (tl *Timeline) Clear() {
	if len(tl.queue) == 0 {
		return
	}
	pending := tl.queue
	tl.queue = nil
	for i := len(pending) - 1; i >= 0; i-- {
		if pending[i].Cancel != nil {
			pending[i].Cancel()
		}
	}
	tl.trace("clear")
}

// trace logs a queue transition with the pending task names.
func (tl *Timeline) trace(event string) {
	if tl.logger == nil {
		return
	}
	tl.logger.Debug("timeline", "event", event, "pending", strings.Join(tl.Names(), ", "))
}
