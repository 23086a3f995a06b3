package lifecycle

import (
	"fmt"
	"time"

	"github.com/SergeyBogomolovv/escrow-service/internal/entities"
)

// Transition computes the state pair that results from applying req to
// (order, escrow). It performs no I/O and never modifies its arguments.
// Authorization is not checked here, see CanRequest and Decide.
func Transition(order entities.Order, escrow *entities.Escrow, req entities.TransitionRequest, at time.Time) (entities.TransitionResult, error) {
	from := Pair{Order: order.State, Escrow: entities.StateOf(escrow)}
	if err := checkPair(order, escrow); err != nil {
		return entities.TransitionResult{}, err
	}

	if req.Action == entities.ActionResolveDispute &&
		req.Verdict != entities.VerdictRelease && req.Verdict != entities.VerdictRefund {
		return entities.TransitionResult{}, entities.Reject(entities.ErrInvalidTransition, "unknown dispute verdict")
	}

	r, ok := lookup(from, req.Action, req.Verdict)
	if !ok {
		return entities.TransitionResult{}, entities.Reject(entities.ErrInvalidTransition, rejectionMessage(from, req.Action))
	}

	if req.Action == entities.ActionCapturePayment {
		if err := checkCapture(order, escrow, req.Capture, r.kind); err != nil {
			return entities.TransitionResult{}, err
		}
	}

	switch r.kind {
	case replay:
		return entities.TransitionResult{
			Order:  cloneOrder(order),
			Escrow: cloneEscrow(escrow),
			Effect: entities.EffectNone,
			NoOp:   true,
		}, nil
	case acknowledge:
		next := cloneOrder(order)
		next.LastTransitionAt = at
		return entities.TransitionResult{
			Order:  next,
			Escrow: cloneEscrow(escrow),
			Effect: entities.EffectNone,
		}, nil
	}

	nextOrder := cloneOrder(order)
	nextOrder.State = r.next.Order
	nextOrder.LastTransitionAt = at

	nextEscrow, err := moveEscrow(order, escrow, req, r, at)
	if err != nil {
		return entities.TransitionResult{}, err
	}

	switch req.Action {
	case entities.ActionOpenDispute, entities.ActionRequestRefund:
		nextOrder.Dispute = &entities.Dispute{
			OpenedBy: req.Actor.ID,
			Reason:   req.Reason,
			OpenedAt: at,
		}
	case entities.ActionResolveDispute:
		if nextOrder.Dispute == nil {
			return entities.TransitionResult{}, fmt.Errorf("%w: disputed order %s has no dispute record", entities.ErrInvariantViolation, order.ID)
		}
		resolvedAt := at
		nextOrder.Dispute.ResolvedBy = req.Actor.ID
		nextOrder.Dispute.Verdict = req.Verdict
		nextOrder.Dispute.ResolvedAt = &resolvedAt
	}

	if err := checkPair(nextOrder, nextEscrow); err != nil {
		return entities.TransitionResult{}, err
	}

	return entities.TransitionResult{
		Order:  nextOrder,
		Escrow: nextEscrow,
		Effect: r.effect,
	}, nil
}

func moveEscrow(order entities.Order, escrow *entities.Escrow, req entities.TransitionRequest, r rule, at time.Time) (*entities.Escrow, error) {
	if r.next.Escrow == entities.EscrowNone {
		return nil, nil
	}

	if escrow == nil {
		// only a capture creates an escrow
		return &entities.Escrow{
			ID:        req.Capture.EscrowID,
			OrderID:   order.ID,
			PaymentID: req.Capture.PaymentID,
			Amount:    order.Price,
			State:     r.next.Escrow,
			HeldAt:    at,
		}, nil
	}

	next := cloneEscrow(escrow)
	next.State = r.next.Escrow

	switch r.effect {
	case entities.EffectRelease:
		if next.ReleasedAt != nil || next.RefundedAt != nil {
			return nil, fmt.Errorf("%w: escrow %s already settled", entities.ErrInvariantViolation, escrow.ID)
		}
		releasedAt := at
		next.ReleasedAt = &releasedAt
	case entities.EffectRefund:
		if next.ReleasedAt != nil || next.RefundedAt != nil {
			return nil, fmt.Errorf("%w: escrow %s already settled", entities.ErrInvariantViolation, escrow.ID)
		}
		refundedAt := at
		next.RefundedAt = &refundedAt
	}

	return next, nil
}

func checkCapture(order entities.Order, escrow *entities.Escrow, capture *entities.Capture, k kind) error {
	if capture == nil {
		return entities.Reject(entities.ErrInvalidTransition, "capture details are missing")
	}

	if k == replay {
		if escrow.PaymentID != capture.PaymentID || !escrow.Amount.Equal(capture.Amount) {
			return entities.Reject(entities.ErrInvalidTransition, "order is already paid by another payment")
		}
		return nil
	}

	if !order.Price.Equal(capture.Amount) {
		return entities.Reject(entities.ErrInvalidTransition, "captured amount does not match order price")
	}
	if capture.EscrowID == "" {
		return entities.Reject(entities.ErrInvalidTransition, "escrow id is missing")
	}
	return nil
}

// checkPair fails when order and escrow are not in one of LegalPairs.
func checkPair(order entities.Order, escrow *entities.Escrow) error {
	p := Pair{Order: order.State, Escrow: entities.StateOf(escrow)}
	if !IsLegal(p) {
		return fmt.Errorf("%w: order %s is in %s", entities.ErrInvariantViolation, order.ID, p)
	}
	if escrow == nil {
		return nil
	}
	if escrow.OrderID != order.ID {
		return fmt.Errorf("%w: escrow %s belongs to order %s, not %s", entities.ErrInvariantViolation, escrow.ID, escrow.OrderID, order.ID)
	}
	if escrow.ReleasedAt != nil && escrow.RefundedAt != nil {
		return fmt.Errorf("%w: escrow %s is both released and refunded", entities.ErrInvariantViolation, escrow.ID)
	}
	return nil
}

func rejectionMessage(from Pair, action entities.Action) string {
	if IsTerminal(from) && action != entities.ActionCancelOrder {
		return "this order is closed"
	}

	switch action {
	case entities.ActionCancelOrder:
		return "this order can no longer be cancelled"
	case entities.ActionMarkDelivered:
		return "this order cannot be marked as delivered now"
	case entities.ActionValidateDelivery:
		return "there is no delivery to validate"
	case entities.ActionOpenDispute, entities.ActionRequestRefund:
		return "a dispute can only be opened on a delivered order"
	case entities.ActionResolveDispute:
		return "this order has no open dispute"
	case entities.ActionAcceptOrder:
		return "this order can no longer be accepted"
	case entities.ActionCapturePayment:
		return "this order cannot take a payment"
	default:
		return "unknown action"
	}
}

func cloneOrder(o entities.Order) entities.Order {
	if o.Deadline != nil {
		deadline := *o.Deadline
		o.Deadline = &deadline
	}
	if o.Dispute != nil {
		d := *o.Dispute
		if d.ResolvedAt != nil {
			resolvedAt := *d.ResolvedAt
			d.ResolvedAt = &resolvedAt
		}
		o.Dispute = &d
	}
	return o
}

func cloneEscrow(e *entities.Escrow) *entities.Escrow {
	if e == nil {
		return nil
	}
	c := *e
	if e.ReleasedAt != nil {
		releasedAt := *e.ReleasedAt
		c.ReleasedAt = &releasedAt
	}
	if e.RefundedAt != nil {
		refundedAt := *e.RefundedAt
		c.RefundedAt = &refundedAt
	}
	return &c
}
