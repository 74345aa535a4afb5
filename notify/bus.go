// Package notify carries transient success/error messages from the
// client components to whatever surface displays them.
package notify

import (
	"sync"

	"traveldest/client/models"
)

// Bus holds a single current message. A new Show replaces any prior
// unconsumed message; there is no queue and no dismissal protocol.
type Bus struct {
	mu      sync.Mutex
	current *models.Message
	subs    map[int]func(models.Message)
	nextID  int
}

func NewBus() *Bus {
	return &Bus{
		subs: make(map[int]func(models.Message)),
	}
}

// Show replaces the current message and notifies subscribers
// synchronously, in subscription order.
func (b *Bus) Show(text string, success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	msg := models.Message{Text: text, Success: success}
	b.current = &msg
	for id := 0; id < b.nextID; id++ {
		if fn, ok := b.subs[id]; ok {
			fn(msg)
		}
	}
}

// Subscribe registers fn for every future message. The returned func
// removes the subscription.
func (b *Bus) Subscribe(fn func(models.Message)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Current returns the last shown message, or nil if none.
func (b *Bus) Current() *models.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Clear drops the current message without notifying anyone.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = nil
}
