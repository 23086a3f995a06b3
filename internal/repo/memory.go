package repo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SergeyBogomolovv/escrow-service/internal/entities"
)

type memoryRepo struct {
	mu          sync.RWMutex
	orders      map[string]entities.Order
	escrows     map[string]entities.Escrow
	transitions map[string][]entities.Transition
}

// NewMemoryRepo returns a process-local store with the same version
// semantics as the postgres one.
func NewMemoryRepo() *memoryRepo {
	return &memoryRepo{
		orders:      make(map[string]entities.Order),
		escrows:     make(map[string]entities.Escrow),
		transitions: make(map[string][]entities.Transition),
	}
}

func (r *memoryRepo) CreateOrder(ctx context.Context, o entities.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[o.ID]; ok {
		return fmt.Errorf("order %s already exists: %w", o.ID, entities.ErrInvalidOrder)
	}
	r.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *memoryRepo) LoadOrderWithEscrow(ctx context.Context, orderID string) (entities.Order, *entities.Escrow, error) {
	if err := ctx.Err(); err != nil {
		return entities.Order{}, nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return entities.Order{}, nil, entities.ErrOrderNotFound
	}
	return copyOrder(order), r.escrowOf(orderID), nil
}

func (r *memoryRepo) SaveTransition(ctx context.Context, rec entities.TransitionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.orders[rec.Order.ID]
	if !ok {
		return entities.ErrOrderNotFound
	}
	if current.Version != rec.ExpectedVersion {
		return fmt.Errorf("order %s at version %d: %w", rec.Order.ID, rec.ExpectedVersion, entities.ErrConflict)
	}

	order := copyOrder(rec.Order)
	order.Version = rec.ExpectedVersion + 1
	r.orders[order.ID] = order

	if rec.Escrow != nil {
		r.escrows[order.ID] = copyEscrow(*rec.Escrow)
	}
	r.transitions[order.ID] = append(r.transitions[order.ID], rec.Log)
	return nil
}

func (r *memoryRepo) ListTransitions(ctx context.Context, orderID string) ([]entities.Transition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	log := r.transitions[orderID]
	result := make([]entities.Transition, len(log))
	copy(result, log)
	return result, nil
}

func (r *memoryRepo) LatestOrderStatuses(ctx context.Context, count int) ([]entities.OrderStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]entities.OrderStatus, 0, len(r.orders))
	for id, order := range r.orders {
		result = append(result, entities.OrderStatus{Order: copyOrder(order), Escrow: r.escrowOf(id)})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Order.LastTransitionAt.After(result[j].Order.LastTransitionAt)
	})
	if len(result) > count {
		result = result[:count]
	}
	return result, nil
}

// escrowOf must be called with r.mu held.
func (r *memoryRepo) escrowOf(orderID string) *entities.Escrow {
	escrow, ok := r.escrows[orderID]
	if !ok {
		return nil
	}
	e := copyEscrow(escrow)
	return &e
}

func copyOrder(o entities.Order) entities.Order {
	if o.Deadline != nil {
		d := *o.Deadline
		o.Deadline = &d
	}
	if o.Dispute != nil {
		d := *o.Dispute
		if d.ResolvedAt != nil {
			t := *d.ResolvedAt
			d.ResolvedAt = &t
		}
		o.Dispute = &d
	}
	return o
}

func copyEscrow(e entities.Escrow) entities.Escrow {
	if e.ReleasedAt != nil {
		t := *e.ReleasedAt
		e.ReleasedAt = &t
	}
	if e.RefundedAt != nil {
		t := *e.RefundedAt
		e.RefundedAt = &t
	}
	return e
}
