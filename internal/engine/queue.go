package engine

import (
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// Policy decides what happens to an action dispatched while others wait.
type Policy string

const (
	// PolicyFIFO runs every accepted action in arrival order.
	PolicyFIFO Policy = "fifo"

	// PolicyCoalesce lets a new move replace a move waiting at the tail
	// of the queue. Init and Reset are never replaced and never reordered.
	PolicyCoalesce Policy = "coalesce"
)

// ParsePolicy validates a policy name. Empty means PolicyFIFO.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "":
		return PolicyFIFO, nil
	case PolicyFIFO, PolicyCoalesce:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("engine: unknown queue policy %q", s)
	}
}

// queued is an accepted action waiting for its turn.
type queued struct {
	seq    uint64
	action core.Action
}

// actionQueue is a bounded FIFO of pending actions. Not safe for
// concurrent use; the engine guards it with its mutex.
type actionQueue struct {
	items  []queued
	limit  int
	policy Policy
}

func newActionQueue(limit int, policy Policy) *actionQueue {
	return &actionQueue{
		items:  make([]queued, 0, limit),
		limit:  limit,
		policy: policy,
	}
}

// push appends an action. Returns coalesced == true if it replaced the tail.
func (q *actionQueue) push(item queued) (coalesced bool, err error) {
	if q.policy == PolicyCoalesce && item.action.IsMove() && len(q.items) > 0 {
		tail := &q.items[len(q.items)-1]
		if tail.action.IsMove() {
			tail.action = item.action
			tail.seq = item.seq
			return true, nil
		}
	}

	if len(q.items) >= q.limit {
		return false, ErrQueueFull
	}
	q.items = append(q.items, item)
	return false, nil
}

// pop removes the oldest action.
func (q *actionQueue) pop() (queued, bool) {
	if len(q.items) == 0 {
		return queued{}, false
	}
	item := q.items[0]
	q.items[0] = queued{}
	q.items = q.items[1:]
	return item, true
}

// len returns the number of waiting actions.
func (q *actionQueue) len() int {
	return len(q.items)
}

// drain empties the queue and returns what was waiting.
func (q *actionQueue) drain() []queued {
	items := q.items
	q.items = nil
	return items
}
