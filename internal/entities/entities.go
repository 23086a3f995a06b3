package entities

import (
	"bytes"
	"encoding/gob"
)

// OrderStatus is the read-only projection of an order and its escrow.
type OrderStatus struct {
	Order  Order
	Escrow *Escrow
}

func (s *OrderStatus) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *OrderStatus) Unmarshal(data []byte) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	return dec.Decode(s)
}

// Notification is published to collaborators after a transition.
type Notification struct {
	Type      string
	OrderID   string
	BuyerID   string
	SellerID  string
	Action    Action
	Actor     Actor
	Order     OrderState
	Escrow    EscrowState
	Effect    Effect
	Amount    Money
	PaymentID string

	// CompensationRequired asks the payment collaborator to return funds
	// it captured for an order that can no longer take them.
	CompensationRequired bool
}

const (
	NotificationTransition      = "order_transition"
	NotificationCaptureRejected = "capture_rejected"
)

func init() {
	gob.Register(OrderStatus{})
	gob.Register(Order{})
	gob.Register(Escrow{})
}
