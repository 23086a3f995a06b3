// Package lifecycle holds the order/escrow state machine: the
// authorization guard, the transition table and the dispute resolver.
// Nothing in this package performs I/O.
package lifecycle

import (
	"time"

	"github.com/SergeyBogomolovv/escrow-service/internal/entities"
)

// Decide authorizes req and computes its outcome against (order, escrow).
// It is the single decision point used by the order service.
func Decide(order entities.Order, escrow *entities.Escrow, req entities.TransitionRequest, at time.Time) (entities.TransitionResult, error) {
	switch req.Action {
	case entities.ActionOpenDispute, entities.ActionRequestRefund:
		return openDispute(order, escrow, req, at)
	case entities.ActionResolveDispute:
		return resolveDispute(order, escrow, req, at)
	}

	if err := CanRequest(req.Actor, order, escrow, req.Action); err != nil {
		return entities.TransitionResult{}, err
	}
	return Transition(order, escrow, req, at)
}
