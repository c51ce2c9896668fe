package search

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"github.com/matzehuels/flipstack/pkg/core/stack"
)

// Record is what a search knows about one discovered stack.
type Record struct {
	Stack       stack.Stack
	Distance    int
	Predecessor stack.Key // empty for the start stack
}

// IsStart reports whether r is the record of the start stack.
func (r Record) IsStart() bool { return r.Predecessor == "" }

// Visited maps every discovered stack to its record.
type Visited map[stack.Key]Record

// frontier is the FIFO of stacks awaiting expansion.
type frontier struct {
	q *linkedlistqueue.Queue
}

func newFrontier() *frontier {
	return &frontier{q: linkedlistqueue.New()}
}

func (f *frontier) push(k stack.Key) { f.q.Enqueue(k) }

func (f *frontier) pop() (stack.Key, bool) {
	v, ok := f.q.Dequeue()
	if !ok {
		return "", false
	}
	return v.(stack.Key), true
}

func (f *frontier) empty() bool { return f.q.Empty() }
