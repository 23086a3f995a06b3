package repo

import (
	"database/sql"
	"time"

	"github.com/SergeyBogomolovv/escrow-service/internal/entities"
	"github.com/shopspring/decimal"
)

var orderColumns = []string{
	"id", "buyer_id", "seller_id", "price", "currency", "deadline",
	"requirements", "state", "version",
	"dispute_opened_by", "dispute_reason", "dispute_opened_at",
	"dispute_resolved_by", "dispute_verdict", "dispute_resolved_at",
	"created_at", "last_transition_at",
}

type Order struct {
	ID           string          `db:"id"`
	BuyerID      string          `db:"buyer_id"`
	SellerID     string          `db:"seller_id"`
	Price        decimal.Decimal `db:"price"`
	Currency     string          `db:"currency"`
	Deadline     sql.NullTime    `db:"deadline"`
	Requirements string          `db:"requirements"`
	State        string          `db:"state"`
	Version      int64           `db:"version"`

	DisputeOpenedBy   sql.NullString `db:"dispute_opened_by"`
	DisputeReason     sql.NullString `db:"dispute_reason"`
	DisputeOpenedAt   sql.NullTime   `db:"dispute_opened_at"`
	DisputeResolvedBy sql.NullString `db:"dispute_resolved_by"`
	DisputeVerdict    sql.NullString `db:"dispute_verdict"`
	DisputeResolvedAt sql.NullTime   `db:"dispute_resolved_at"`

	CreatedAt        time.Time `db:"created_at"`
	LastTransitionAt time.Time `db:"last_transition_at"`
}

var escrowColumns = []string{
	"id", "order_id", "payment_id", "amount", "currency", "state",
	"held_at", "released_at", "refunded_at",
}

type Escrow struct {
	ID         string          `db:"id"`
	OrderID    string          `db:"order_id"`
	PaymentID  string          `db:"payment_id"`
	Amount     decimal.Decimal `db:"amount"`
	Currency   string          `db:"currency"`
	State      string          `db:"state"`
	HeldAt     time.Time       `db:"held_at"`
	ReleasedAt sql.NullTime    `db:"released_at"`
	RefundedAt sql.NullTime    `db:"refunded_at"`
}

var transitionColumns = []string{
	"id", "order_id", "action", "actor_id", "actor_role", "verdict",
	"from_order_state", "to_order_state", "from_escrow_state", "to_escrow_state",
	"effect", "created_at",
}

type Transition struct {
	ID              string         `db:"id"`
	OrderID         string         `db:"order_id"`
	Action          string         `db:"action"`
	ActorID         string         `db:"actor_id"`
	ActorRole       string         `db:"actor_role"`
	Verdict         sql.NullString `db:"verdict"`
	FromOrderState  string         `db:"from_order_state"`
	ToOrderState    string         `db:"to_order_state"`
	FromEscrowState sql.NullString `db:"from_escrow_state"`
	ToEscrowState   sql.NullString `db:"to_escrow_state"`
	Effect          string         `db:"effect"`
	CreatedAt       time.Time      `db:"created_at"`
}

func OrderToEntity(o Order) entities.Order {
	order := entities.Order{
		ID:               o.ID,
		BuyerID:          o.BuyerID,
		SellerID:         o.SellerID,
		Price:            entities.NewMoney(o.Price, o.Currency),
		Deadline:         nullTimeToPtr(o.Deadline),
		Requirements:     o.Requirements,
		State:            entities.OrderState(o.State),
		Version:          o.Version,
		CreatedAt:        o.CreatedAt.UTC(),
		LastTransitionAt: o.LastTransitionAt.UTC(),
	}

	if o.DisputeOpenedBy.Valid {
		order.Dispute = &entities.Dispute{
			OpenedBy:   o.DisputeOpenedBy.String,
			Reason:     nullStringToString(o.DisputeReason),
			OpenedAt:   o.DisputeOpenedAt.Time.UTC(),
			ResolvedBy: nullStringToString(o.DisputeResolvedBy),
			Verdict:    entities.Verdict(nullStringToString(o.DisputeVerdict)),
			ResolvedAt: nullTimeToPtr(o.DisputeResolvedAt),
		}
	}

	return order
}

func EscrowToEntity(e Escrow) *entities.Escrow {
	return &entities.Escrow{
		ID:         e.ID,
		OrderID:    e.OrderID,
		PaymentID:  e.PaymentID,
		Amount:     entities.NewMoney(e.Amount, e.Currency),
		State:      entities.EscrowState(e.State),
		HeldAt:     e.HeldAt.UTC(),
		ReleasedAt: nullTimeToPtr(e.ReleasedAt),
		RefundedAt: nullTimeToPtr(e.RefundedAt),
	}
}

func TransitionToEntity(t Transition) entities.Transition {
	return entities.Transition{
		ID:         t.ID,
		OrderID:    t.OrderID,
		Action:     entities.Action(t.Action),
		ActorID:    t.ActorID,
		ActorRole:  entities.Role(t.ActorRole),
		Verdict:    entities.Verdict(nullStringToString(t.Verdict)),
		FromOrder:  entities.OrderState(t.FromOrderState),
		ToOrder:    entities.OrderState(t.ToOrderState),
		FromEscrow: entities.EscrowState(nullStringToString(t.FromEscrowState)),
		ToEscrow:   entities.EscrowState(nullStringToString(t.ToEscrowState)),
		Effect:     entities.Effect(t.Effect),
		CreatedAt:  t.CreatedAt.UTC(),
	}
}

func disputeValues(d *entities.Dispute) (openedBy, reason sql.NullString, openedAt sql.NullTime, resolvedBy, verdict sql.NullString, resolvedAt sql.NullTime) {
	if d == nil {
		return
	}
	return sql.NullString{String: d.OpenedBy, Valid: true},
		nullString(d.Reason),
		sql.NullTime{Time: d.OpenedAt, Valid: true},
		nullString(d.ResolvedBy),
		nullString(string(d.Verdict)),
		ptrToNullTime(d.ResolvedAt)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func ptrToNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullTimeToPtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}
