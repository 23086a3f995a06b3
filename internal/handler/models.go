package handler

import (
	"time"

	"github.com/SergeyBogomolovv/escrow-service/internal/entities"
	"github.com/SergeyBogomolovv/escrow-service/internal/lifecycle"
	"github.com/shopspring/decimal"
)

// PlaceOrderRequest is the body of POST /orders
type PlaceOrderRequest struct {
	SellerID     string     `json:"seller_id" validate:"required,max=64"`
	Amount       string     `json:"amount" validate:"required,numeric"`
	Currency     string     `json:"currency" validate:"required,len=3,alpha"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Requirements string     `json:"requirements,omitempty" validate:"max=10000"`
}

// TransitionRequest is the body of POST /orders/{order_id}/transitions
type TransitionRequest struct {
	Action  string `json:"action" validate:"required,oneof=accept_order mark_delivered validate_delivery request_refund open_dispute resolve_dispute cancel_order"`
	Verdict string `json:"verdict,omitempty" validate:"omitempty,oneof=release refund"`
	Reason  string `json:"reason,omitempty" validate:"max=2000"`
}

// PaymentCaptured is the event consumed from the capture topic.
type PaymentCaptured struct {
	OrderID   string `json:"order_id" validate:"required,uuid"`
	PaymentID string `json:"payment_id" validate:"required"`
	Amount    string `json:"amount" validate:"required,numeric"`
	Currency  string `json:"currency" validate:"required,len=3,alpha"`
}

type Money struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type Dispute struct {
	OpenedBy   string     `json:"opened_by"`
	Reason     string     `json:"reason,omitempty"`
	OpenedAt   time.Time  `json:"opened_at"`
	ResolvedBy string     `json:"resolved_by,omitempty"`
	Verdict    string     `json:"verdict,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

type Order struct {
	ID               string     `json:"id"`
	BuyerID          string     `json:"buyer_id"`
	SellerID         string     `json:"seller_id"`
	Price            Money      `json:"price"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	Requirements     string     `json:"requirements,omitempty"`
	State            string     `json:"state"`
	Dispute          *Dispute   `json:"dispute,omitempty"`
	Version          int64      `json:"version"`
	CreatedAt        time.Time  `json:"created_at"`
	LastTransitionAt time.Time  `json:"last_transition_at"`
}

type Escrow struct {
	ID         string     `json:"id"`
	PaymentID  string     `json:"payment_id"`
	Amount     Money      `json:"amount"`
	State      string     `json:"state"`
	HeldAt     time.Time  `json:"held_at"`
	ReleasedAt *time.Time `json:"released_at,omitempty"`
	RefundedAt *time.Time `json:"refunded_at,omitempty"`
}

// OrderStatus is an order together with its escrow, if funds were captured.
type OrderStatus struct {
	Order  Order   `json:"order"`
	Escrow *Escrow `json:"escrow,omitempty"`
}

type TransitionResult struct {
	OrderStatus
	Effect string `json:"effect"`
	NoOp   bool   `json:"noop"`
}

type Transition struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id"`
	ActorRole string    `json:"actor_role"`
	Verdict   string    `json:"verdict,omitempty"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Effect    string    `json:"effect"`
	CreatedAt time.Time `json:"created_at"`
}

func MoneyEntityToJSON(m entities.Money) Money {
	return Money{Amount: m.Amount.StringFixed(2), Currency: m.Currency}
}

func MoneyJSONToEntity(amount, currency string) (entities.Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return entities.Money{}, err
	}
	return entities.NewMoney(d, currency), nil
}

func OrderEntityToJSON(o entities.Order) Order {
	order := Order{
		ID:               o.ID,
		BuyerID:          o.BuyerID,
		SellerID:         o.SellerID,
		Price:            MoneyEntityToJSON(o.Price),
		Deadline:         o.Deadline,
		Requirements:     o.Requirements,
		State:            string(o.State),
		Version:          o.Version,
		CreatedAt:        o.CreatedAt,
		LastTransitionAt: o.LastTransitionAt,
	}
	if d := o.Dispute; d != nil {
		order.Dispute = &Dispute{
			OpenedBy:   d.OpenedBy,
			Reason:     d.Reason,
			OpenedAt:   d.OpenedAt,
			ResolvedBy: d.ResolvedBy,
			Verdict:    string(d.Verdict),
			ResolvedAt: d.ResolvedAt,
		}
	}
	return order
}

func EscrowEntityToJSON(e *entities.Escrow) *Escrow {
	if e == nil {
		return nil
	}
	return &Escrow{
		ID:         e.ID,
		PaymentID:  e.PaymentID,
		Amount:     MoneyEntityToJSON(e.Amount),
		State:      string(e.State),
		HeldAt:     e.HeldAt,
		ReleasedAt: e.ReleasedAt,
		RefundedAt: e.RefundedAt,
	}
}

func OrderStatusEntityToJSON(s entities.OrderStatus) OrderStatus {
	return OrderStatus{
		Order:  OrderEntityToJSON(s.Order),
		Escrow: EscrowEntityToJSON(s.Escrow),
	}
}

func TransitionResultEntityToJSON(r entities.TransitionResult) TransitionResult {
	return TransitionResult{
		OrderStatus: OrderStatusEntityToJSON(entities.OrderStatus{Order: r.Order, Escrow: r.Escrow}),
		Effect:      string(r.Effect),
		NoOp:        r.NoOp,
	}
}

func TransitionEntityToJSON(t entities.Transition) Transition {
	return Transition{
		ID:        t.ID,
		Action:    string(t.Action),
		ActorID:   t.ActorID,
		ActorRole: string(t.ActorRole),
		Verdict:   string(t.Verdict),
		From:      lifecycle.Pair{Order: t.FromOrder, Escrow: t.FromEscrow}.String(),
		To:        lifecycle.Pair{Order: t.ToOrder, Escrow: t.ToEscrow}.String(),
		Effect:    string(t.Effect),
		CreatedAt: t.CreatedAt,
	}
}
