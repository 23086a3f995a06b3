package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderState string

const (
	OrderPending    OrderState = "pending"
	OrderInProgress OrderState = "in_progress"
	OrderDelivered  OrderState = "delivered"
	OrderCompleted  OrderState = "completed"
	OrderCancelled  OrderState = "cancelled"
	OrderDisputed   OrderState = "disputed"
)

func (s OrderState) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// Money is a fixed-point amount in a single currency.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

func (m Money) String() string {
	return m.Amount.StringFixed(2) + " " + m.Currency
}

// Dispute is the buyer's contest of a delivery and its adjudication.
type Dispute struct {
	OpenedBy   string
	Reason     string
	OpenedAt   time.Time
	ResolvedBy string
	Verdict    Verdict
	ResolvedAt *time.Time
}

type Order struct {
	ID           string
	BuyerID      string
	SellerID     string
	Price        Money
	Deadline     *time.Time
	Requirements string
	State        OrderState

	// nil until the buyer opens a dispute
	Dispute *Dispute

	// Version is bumped on every persisted transition.
	Version          int64
	CreatedAt        time.Time
	LastTransitionAt time.Time
}

// IsParty reports whether userID is the buyer or the seller of the order.
func (o Order) IsParty(userID string) bool {
	return userID != "" && (userID == o.BuyerID || userID == o.SellerID)
}

// OrderDraft is what a buyer submits to place an order.
type OrderDraft struct {
	SellerID     string
	Price        Money
	Deadline     *time.Time
	Requirements string
}
