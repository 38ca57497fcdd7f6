package catalog

import (
	"fmt"
	"sync"
)

// List holds the items of one run behind a mutex. Updates are applied as
// atomic per-item replacements so the scheduler loop and a manual regenerate
// targeting different ids never clobber each other.
type List struct {
	mu    sync.RWMutex
	items []Item
}

// NewList builds one Item per input category, preserving order. Items seeded
// with a non-empty URL start out succeeded and are never enqueued.
func NewList(inputs []InputCategory) *List {
	items := make([]Item, 0, len(inputs))
	for _, in := range inputs {
		item := Item{
			ID:     in.ID,
			Name:   in.Name,
			Prompt: DefaultPrompt(in.Name),
			Status: StatusPending,
		}
		if in.URL != "" {
			item.URL = in.URL
			item.Status = StatusSucceeded
		}
		items = append(items, item)
	}
	return &List{items: items}
}

// Snapshot returns a copy of all items in list order.
func (l *List) Snapshot() []Item {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Get returns the item with the given id.
func (l *List) Get(id int) (Item, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, item := range l.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Len returns the number of items.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Update replaces the item with the given id by applying fn to its current
// value. Returns an error if the id is unknown.
func (l *List) Update(id int, fn func(Item) Item) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, item := range l.items {
		if item.ID == id {
			l.items[i] = fn(item)
			return nil
		}
	}
	return fmt.Errorf("no item with id %d", id)
}

// SetPrompt updates the prompt of the item with the given id.
func (l *List) SetPrompt(id int, prompt string) error {
	return l.Update(id, func(item Item) Item {
		item.Prompt = prompt
		return item
	})
}

// FirstPending returns the first pending item in list order. Selection by
// list position is what makes retried items interleave in their original
// order rather than retry order.
func (l *List) FirstPending() (Item, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, item := range l.items {
		if item.Status == StatusPending {
			return item, true
		}
	}
	return Item{}, false
}

// ResetFailed transitions every failed item back to pending and clears its
// error. Returns how many items were reset.
func (l *List) ResetFailed() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for i, item := range l.items {
		if item.Status == StatusFailed {
			item.Status = StatusPending
			item.Error = ""
			l.items[i] = item
			n++
		}
	}
	return n
}

// Counts summarizes the list by status.
type Counts struct {
	Total     int
	Pending   int
	InFlight  int
	Succeeded int
	Failed    int
}

// Done returns how many items have reached a terminal state.
func (c Counts) Done() int {
	return c.Succeeded + c.Failed
}

// Counts tallies items per status.
func (l *List) Counts() Counts {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c := Counts{Total: len(l.items)}
	for _, item := range l.items {
		switch item.Status {
		case StatusPending:
			c.Pending++
		case StatusInFlight:
			c.InFlight++
		case StatusSucceeded:
			c.Succeeded++
		case StatusFailed:
			c.Failed++
		}
	}
	return c
}
