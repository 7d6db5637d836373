package results

import (
	"fmt"
	"sync"
)

// ChangeKind tells subscribers what happened to a collection.
type ChangeKind int

const (
	// ChangeReset means any row may have changed; no diff is carried.
	ChangeReset ChangeKind = iota
	// ChangeAdded means Row entered the collection.
	ChangeAdded
	// ChangeRemoved means Row left the collection.
	ChangeRemoved
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeReset:
		return "reset"
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Change is a single notification. Row is -1 for resets.
type Change struct {
	Kind ChangeKind
	Row  int
}

type Handler func(Change)

type subscription struct {
	id int
	fn Handler
}

// Events is an ordered handler registry. The zero value is ready to use.
// Handlers run synchronously on the publishing goroutine, in subscription
// order, and never while the registry lock is held.
type Events struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

// Subscribe registers fn and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (e *Events) Subscribe(fn Handler) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, subscription{id: id, fn: fn})
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { e.unsubscribe(id) })
	}
}

func (e *Events) unsubscribe(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, s := range e.subs {
		if s.id == id {
			e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers c to every current subscriber.
func (e *Events) Publish(c Change) {
	e.mu.Lock()
	subs := make([]subscription, len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()

	for _, s := range subs {
		s.fn(c)
	}
}

// Len reports the number of live subscriptions.
func (e *Events) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs)
}
