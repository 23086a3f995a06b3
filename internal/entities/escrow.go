package entities

import "time"

type EscrowState string

const (
	// EscrowNone marks the absence of an escrow record (before capture).
	EscrowNone EscrowState = ""

	EscrowPending  EscrowState = "pending"
	EscrowHeld     EscrowState = "held"
	EscrowReleased EscrowState = "released"
	EscrowRefunded EscrowState = "refunded"
	EscrowDisputed EscrowState = "disputed"
)

func (s EscrowState) Terminal() bool {
	return s == EscrowReleased || s == EscrowRefunded
}

// Escrow holds the captured payment of exactly one order.
type Escrow struct {
	ID        string
	OrderID   string
	PaymentID string

	// Amount is fixed at capture and never changes afterwards.
	Amount Money
	State  EscrowState

	HeldAt     time.Time
	ReleasedAt *time.Time
	RefundedAt *time.Time
}

// StateOf returns the state of e, or EscrowNone when e is nil.
func StateOf(e *Escrow) EscrowState {
	if e == nil {
		return EscrowNone
	}
	return e.State
}
