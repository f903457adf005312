package usecase

import (
	"context"
	"sync"
)

type MutationKind string

const (
	MutationCreated MutationKind = "created"
	MutationUpdated MutationKind = "updated"
	MutationDeleted MutationKind = "deleted"
)

// Mutation describes a change the catalog API acknowledged.
type Mutation struct {
	Kind      MutationKind
	ProductID int
}

type MutationHandler func(ctx context.Context, m Mutation)

// MutationNotifier delivers committed mutations to subscribed views, in subscription order.
type MutationNotifier struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]MutationHandler
	order    []int
}

func NewMutationNotifier() *MutationNotifier {
	return &MutationNotifier{handlers: make(map[int]MutationHandler)}
}

// Subscribe registers h and returns a function that removes it.
func (n *MutationNotifier) Subscribe(h MutationHandler) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.handlers[id] = h
	n.order = append(n.order, id)

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.handlers, id)
		for i, v := range n.order {
			if v == id {
				n.order = append(n.order[:i], n.order[i+1:]...)
				break
			}
		}
	}
}

// Publish calls every handler synchronously; it returns once all of them returned.
func (n *MutationNotifier) Publish(ctx context.Context, m Mutation) {
	n.mu.Lock()
	handlers := make([]MutationHandler, 0, len(n.order))
	for _, id := range n.order {
		handlers = append(handlers, n.handlers[id])
	}
	n.mu.Unlock()

	for _, h := range handlers {
		h(ctx, m)
	}
}
