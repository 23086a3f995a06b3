package lifecycle

import (
	"fmt"
	"time"

	"github.com/SergeyBogomolovv/escrow-service/internal/entities"
)

// OpenDispute moves a delivered order into the disputed holding state.
// Only the buyer of the order may open it.
func OpenDispute(order entities.Order, escrow *entities.Escrow, buyer entities.Actor, reason string, at time.Time) (entities.TransitionResult, error) {
	return openDispute(order, escrow, entities.TransitionRequest{
		OrderID: order.ID,
		Action:  entities.ActionOpenDispute,
		Actor:   buyer,
		Reason:  reason,
	}, at)
}

func openDispute(order entities.Order, escrow *entities.Escrow, req entities.TransitionRequest, at time.Time) (entities.TransitionResult, error) {
	if err := CanRequest(req.Actor, order, escrow, req.Action); err != nil {
		return entities.TransitionResult{}, err
	}
	return Transition(order, escrow, req, at)
}

// ResolveDispute applies the operator's verdict to a disputed order.
// Resolving twice is a no-op that returns the already terminal pair.
func ResolveDispute(order entities.Order, escrow *entities.Escrow, operator entities.Actor, verdict entities.Verdict, at time.Time) (entities.TransitionResult, error) {
	return resolveDispute(order, escrow, entities.TransitionRequest{
		OrderID: order.ID,
		Action:  entities.ActionResolveDispute,
		Actor:   operator,
		Verdict: verdict,
	}, at)
}

func resolveDispute(order entities.Order, escrow *entities.Escrow, req entities.TransitionRequest, at time.Time) (entities.TransitionResult, error) {
	if err := CanRequest(req.Actor, order, escrow, req.Action); err != nil {
		return entities.TransitionResult{}, err
	}

	if entities.StateOf(escrow) == entities.EscrowDisputed {
		if order.Dispute == nil || order.Dispute.OpenedBy != order.BuyerID {
			return entities.TransitionResult{}, fmt.Errorf("%w: order %s: %w", entities.ErrInvariantViolation, order.ID, entities.ErrDisputeNotFromBuyer)
		}
	}

	return Transition(order, escrow, req, at)
}
