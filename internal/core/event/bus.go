package event

import (
	"github.com/mixecs/mix/internal/core/pool"
	"github.com/mixecs/mix/internal/core/typeid"
)

// Channel holds one queue per event type. Events emitted during a frame stay
// readable until Clear, which the World calls once per Apply.
type Channel struct {
	registry *typeid.Registry
	queues   []queue
}

type queue interface {
	pool.Base
	deliver()
}

type typedQueue[T any] struct {
	*pool.Pool[T]
	handlers []func(T)
}

func (q *typedQueue[T]) deliver() {
	if len(q.handlers) == 0 {
		return
	}
	// Handlers may emit more events of the same type; those are delivered too.
	for i := 0; i < q.Len(); i++ {
		ev := *q.Get(i)
		for _, h := range q.handlers {
			h(ev)
		}
	}
}

func NewChannel() *Channel {
	return &Channel{
		registry: typeid.NewRegistry("event", 0),
		queues:   make([]queue, 0, 16),
	}
}

func queueFor[T any](c *Channel) *typedQueue[T] {
	id := typeid.Of[T](c.registry)
	for int(id) >= len(c.queues) {
		c.queues = append(c.queues, nil)
	}
	if c.queues[id] == nil {
		c.queues[id] = &typedQueue[T]{Pool: pool.New[T](0)}
	}
	return c.queues[id].(*typedQueue[T])
}

// Emit appends event to the queue for T.
func Emit[T any](c *Channel, event T) {
	queueFor[T](c).Add(event)
}

// Events returns a copy of the events of type T emitted since the last Clear.
func Events[T any](c *Channel) []T {
	id, ok := typeid.Lookup[T](c.registry)
	if !ok || c.queues[id] == nil {
		return nil
	}
	return c.queues[id].(*typedQueue[T]).Values()
}

// Subscribe registers fn to receive every event of type T on Dispatch.
func Subscribe[T any](c *Channel, fn func(T)) {
	q := queueFor[T](c)
	q.handlers = append(q.handlers, fn)
}

// Dispatch delivers the queued events to subscribers in event type order.
// Queues are left intact; Clear empties them.
func (c *Channel) Dispatch() {
	for _, q := range c.queues {
		if q != nil {
			q.deliver()
		}
	}
}

// Clear empties every queue. Subscriptions are kept.
func (c *Channel) Clear() {
	for _, q := range c.queues {
		if q != nil {
			q.Clear()
		}
	}
}

// Len returns the number of queued events across all types.
func (c *Channel) Len() int {
	n := 0
	for _, q := range c.queues {
		if q != nil {
			n += q.Len()
		}
	}
	return n
}
