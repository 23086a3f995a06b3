package entities

import "time"

type Action string

const (
	ActionCapturePayment   Action = "capture_payment"
	ActionAcceptOrder      Action = "accept_order"
	ActionMarkDelivered    Action = "mark_delivered"
	ActionValidateDelivery Action = "validate_delivery"
	ActionRequestRefund    Action = "request_refund"
	ActionOpenDispute      Action = "open_dispute"
	ActionResolveDispute   Action = "resolve_dispute"
	ActionCancelOrder      Action = "cancel_order"
)

var Actions = []Action{
	ActionCapturePayment,
	ActionAcceptOrder,
	ActionMarkDelivered,
	ActionValidateDelivery,
	ActionRequestRefund,
	ActionOpenDispute,
	ActionResolveDispute,
	ActionCancelOrder,
}

type Role string

const (
	RoleBuyer    Role = "buyer"
	RoleSeller   Role = "seller"
	RoleOperator Role = "operator"
	// RolePlatform is used by the payment capture collaborator.
	RolePlatform Role = "platform"
)

type Verdict string

const (
	VerdictNone    Verdict = ""
	VerdictRelease Verdict = "release"
	VerdictRefund  Verdict = "refund"
)

// Effect is the fund movement caused by a transition.
type Effect string

const (
	EffectNone    Effect = "none"
	EffectHold    Effect = "hold"
	EffectRelease Effect = "release"
	EffectRefund  Effect = "refund"
)

type Actor struct {
	ID   string
	Role Role
}

// Capture describes an authenticated "funds captured" event.
type Capture struct {
	PaymentID string
	Amount    Money

	// EscrowID identifies the escrow created if the capture is applied.
	EscrowID string
}

type TransitionRequest struct {
	OrderID string
	Action  Action
	Actor   Actor

	// Verdict is only meaningful for ActionResolveDispute.
	Verdict Verdict
	Reason  string

	// Capture is only meaningful for ActionCapturePayment.
	Capture *Capture
}

// TransitionResult is the state pair after a request was applied.
type TransitionResult struct {
	Order  Order
	Escrow *Escrow
	Effect Effect

	// NoOp is set when the request was already satisfied; nothing was persisted.
	NoOp bool
}

// Transition is one audit trail entry.
type Transition struct {
	ID         string
	OrderID    string
	Action     Action
	ActorID    string
	ActorRole  Role
	Verdict    Verdict
	FromOrder  OrderState
	ToOrder    OrderState
	FromEscrow EscrowState
	ToEscrow   EscrowState
	Effect     Effect
	CreatedAt  time.Time
}

// TransitionRecord is what gets persisted atomically for one transition.
type TransitionRecord struct {
	ExpectedVersion int64
	Order           Order
	Escrow          *Escrow
	Log             Transition
}
