package lifecycle_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/escrow-service/internal/entities"
	"github.com/SergeyBogomolovv/escrow-service/internal/lifecycle"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	buyer    = entities.Actor{ID: "B", Role: entities.RoleBuyer}
	seller   = entities.Actor{ID: "S", Role: entities.RoleSeller}
	operator = entities.Actor{ID: "OP", Role: entities.RoleOperator}
	platform = entities.Actor{ID: "payments", Role: entities.RolePlatform}

	price = entities.NewMoney(decimal.NewFromInt(50000), "RUB")

	createdAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now       = time.Date(2026, 3, 5, 12, 30, 0, 0, time.UTC)
)

func pair(order entities.OrderState, escrow entities.EscrowState) lifecycle.Pair {
	return lifecycle.Pair{Order: order, Escrow: escrow}
}

// fixture builds an order/escrow pair that is consistent with p.
func fixture(p lifecycle.Pair) (entities.Order, *entities.Escrow) {
	order := entities.Order{
		ID:               "1",
		BuyerID:          buyer.ID,
		SellerID:         seller.ID,
		Price:            price,
		Requirements:     "logo in three colours",
		State:            p.Order,
		Version:          3,
		CreatedAt:        createdAt,
		LastTransitionAt: createdAt,
	}
	if p.Escrow == entities.EscrowNone {
		return order, nil
	}

	escrow := &entities.Escrow{
		ID:        "esc-1",
		OrderID:   order.ID,
		PaymentID: "pay-1",
		Amount:    price,
		State:     p.Escrow,
		HeldAt:    createdAt,
	}

	settledAt := createdAt.Add(time.Hour)
	switch p.Escrow {
	case entities.EscrowReleased:
		escrow.ReleasedAt = &settledAt
	case entities.EscrowRefunded:
		escrow.RefundedAt = &settledAt
	}

	if p.Escrow == entities.EscrowDisputed || p.Escrow == entities.EscrowRefunded {
		order.Dispute = &entities.Dispute{OpenedBy: buyer.ID, Reason: "wrong colours", OpenedAt: createdAt}
	}
	if p.Escrow == entities.EscrowRefunded {
		order.Dispute.ResolvedBy = operator.ID
		order.Dispute.Verdict = entities.VerdictRefund
		order.Dispute.ResolvedAt = &settledAt
	}
	return order, escrow
}

func actorFor(action entities.Action) entities.Actor {
	switch action {
	case entities.ActionCapturePayment:
		return platform
	case entities.ActionAcceptOrder, entities.ActionMarkDelivered:
		return seller
	case entities.ActionResolveDispute:
		return operator
	default:
		return buyer
	}
}

func request(action entities.Action, verdict entities.Verdict) entities.TransitionRequest {
	req := entities.TransitionRequest{
		OrderID: "1",
		Action:  action,
		Actor:   actorFor(action),
		Verdict: verdict,
	}
	if action == entities.ActionCapturePayment {
		req.Capture = &entities.Capture{PaymentID: "pay-1", Amount: price, EscrowID: "esc-1"}
	}
	return req
}

type attempt struct {
	action  entities.Action
	verdict entities.Verdict
}

func (a attempt) String() string {
	if a.verdict == entities.VerdictNone {
		return string(a.action)
	}
	return string(a.action) + "(" + string(a.verdict) + ")"
}

func allAttempts() []attempt {
	var out []attempt
	for _, action := range entities.Actions {
		if action == entities.ActionResolveDispute {
			out = append(out,
				attempt{action, entities.VerdictRelease},
				attempt{action, entities.VerdictRefund},
			)
			continue
		}
		out = append(out, attempt{action, entities.VerdictNone})
	}
	return out
}

type expectation struct {
	next   lifecycle.Pair
	effect entities.Effect
	noop   bool
}

// legal mirrors the documented transition table.
var legal = map[string]expectation{
	"pending/-|capture_payment": {pair(entities.OrderInProgress, entities.EscrowHeld), entities.EffectHold, false},
	"pending/-|accept_order":    {pair(entities.OrderPending, entities.EscrowNone), entities.EffectNone, false},
	"pending/-|cancel_order":    {pair(entities.OrderCancelled, entities.EscrowNone), entities.EffectNone, false},

	"in_progress/held|mark_delivered": {pair(entities.OrderDelivered, entities.EscrowHeld), entities.EffectNone, false},

	"delivered/held|validate_delivery": {pair(entities.OrderCompleted, entities.EscrowReleased), entities.EffectRelease, false},
	"delivered/held|open_dispute":      {pair(entities.OrderDisputed, entities.EscrowDisputed), entities.EffectNone, false},
	"delivered/held|request_refund":    {pair(entities.OrderDisputed, entities.EscrowDisputed), entities.EffectNone, false},

	"disputed/disputed|resolve_dispute(release)": {pair(entities.OrderCompleted, entities.EscrowReleased), entities.EffectRelease, false},
	"disputed/disputed|resolve_dispute(refund)":  {pair(entities.OrderCancelled, entities.EscrowRefunded), entities.EffectRefund, false},

	"completed/released|validate_delivery":        {pair(entities.OrderCompleted, entities.EscrowReleased), entities.EffectNone, true},
	"completed/released|resolve_dispute(release)": {pair(entities.OrderCompleted, entities.EscrowReleased), entities.EffectNone, true},
	"completed/released|resolve_dispute(refund)":  {pair(entities.OrderCompleted, entities.EscrowReleased), entities.EffectNone, true},
	"cancelled/refunded|resolve_dispute(release)": {pair(entities.OrderCancelled, entities.EscrowRefunded), entities.EffectNone, true},
	"cancelled/refunded|resolve_dispute(refund)":  {pair(entities.OrderCancelled, entities.EscrowRefunded), entities.EffectNone, true},

	"in_progress/held|capture_payment":   {pair(entities.OrderInProgress, entities.EscrowHeld), entities.EffectNone, true},
	"delivered/held|capture_payment":     {pair(entities.OrderDelivered, entities.EscrowHeld), entities.EffectNone, true},
	"disputed/disputed|capture_payment":  {pair(entities.OrderDisputed, entities.EscrowDisputed), entities.EffectNone, true},
	"completed/released|capture_payment": {pair(entities.OrderCompleted, entities.EscrowReleased), entities.EffectNone, true},
	"cancelled/refunded|capture_payment": {pair(entities.OrderCancelled, entities.EscrowRefunded), entities.EffectNone, true},
}

func TestTransition_Table(t *testing.T) {
	for _, from := range lifecycle.LegalPairs {
		for _, a := range allAttempts() {
			name := fmt.Sprintf("%s|%s", from, a)
			t.Run(name, func(t *testing.T) {
				order, escrow := fixture(from)
				orderBefore, escrowBefore := fixture(from)

				res, err := lifecycle.Transition(order, escrow, request(a.action, a.verdict), now)

				assert.Equal(t, orderBefore, order, "input order must not be mutated")
				assert.Equal(t, escrowBefore, escrow, "input escrow must not be mutated")

				want, ok := legal[name]
				if !ok {
					require.Error(t, err)
					assert.ErrorIs(t, err, entities.ErrInvalidTransition)
					assert.NotEmpty(t, entities.UserMessage(err))
					return
				}

				require.NoError(t, err)
				got := lifecycle.Pair{Order: res.Order.State, Escrow: entities.StateOf(res.Escrow)}
				assert.Equal(t, want.next, got)
				assert.Equal(t, want.effect, res.Effect)
				assert.Equal(t, want.noop, res.NoOp)
				assert.True(t, lifecycle.IsLegal(got))
			})
		}
	}
}

func TestTransition_Effects(t *testing.T) {
	t.Run("capture creates escrow with order price", func(t *testing.T) {
		order, escrow := fixture(pair(entities.OrderPending, entities.EscrowNone))

		res, err := lifecycle.Transition(order, escrow, request(entities.ActionCapturePayment, entities.VerdictNone), now)
		require.NoError(t, err)
		require.NotNil(t, res.Escrow)

		assert.Equal(t, "esc-1", res.Escrow.ID)
		assert.Equal(t, order.ID, res.Escrow.OrderID)
		assert.Equal(t, "pay-1", res.Escrow.PaymentID)
		assert.True(t, res.Escrow.Amount.Equal(price))
		assert.Equal(t, now, res.Escrow.HeldAt)
		assert.Nil(t, res.Escrow.ReleasedAt)
		assert.Nil(t, res.Escrow.RefundedAt)
		assert.Equal(t, now, res.Order.LastTransitionAt)
	})

	t.Run("capture with a different amount is rejected", func(t *testing.T) {
		order, escrow := fixture(pair(entities.OrderPending, entities.EscrowNone))
		req := request(entities.ActionCapturePayment, entities.VerdictNone)
		req.Capture.Amount = entities.NewMoney(decimal.RequireFromString("49999.99"), "RUB")

		_, err := lifecycle.Transition(order, escrow, req, now)
		assert.ErrorIs(t, err, entities.ErrInvalidTransition)
	})

	t.Run("capture in another currency is rejected", func(t *testing.T) {
		order, escrow := fixture(pair(entities.OrderPending, entities.EscrowNone))
		req := request(entities.ActionCapturePayment, entities.VerdictNone)
		req.Capture.Amount = entities.NewMoney(decimal.NewFromInt(50000), "USD")

		_, err := lifecycle.Transition(order, escrow, req, now)
		assert.ErrorIs(t, err, entities.ErrInvalidTransition)
	})

	t.Run("amount compares exactly regardless of scale", func(t *testing.T) {
		order, escrow := fixture(pair(entities.OrderPending, entities.EscrowNone))
		req := request(entities.ActionCapturePayment, entities.VerdictNone)
		req.Capture.Amount = entities.NewMoney(decimal.RequireFromString("50000.00"), "RUB")

		_, err := lifecycle.Transition(order, escrow, req, now)
		assert.NoError(t, err)
	})

	t.Run("second payment on a captured order is rejected", func(t *testing.T) {
		order, escrow := fixture(pair(entities.OrderInProgress, entities.EscrowHeld))
		req := request(entities.ActionCapturePayment, entities.VerdictNone)
		req.Capture.PaymentID = "pay-2"

		_, err := lifecycle.Transition(order, escrow, req, now)
		assert.ErrorIs(t, err, entities.ErrInvalidTransition)
	})

	t.Run("capture on cancelled order is rejected", func(t *testing.T) {
		order, escrow := fixture(pair(entities.OrderCancelled, entities.EscrowNone))

		_, err := lifecycle.Transition(order, escrow, request(entities.ActionCapturePayment, entities.VerdictNone), now)
		assert.ErrorIs(t, err, entities.ErrInvalidTransition)
	})

	t.Run("validate delivery releases once", func(t *testing.T) {
		order, escrow := fixture(pair(entities.OrderDelivered, entities.EscrowHeld))

		res, err := lifecycle.Transition(order, escrow, request(entities.ActionValidateDelivery, entities.VerdictNone), now)
		require.NoError(t, err)
		require.NotNil(t, res.Escrow.ReleasedAt)
		assert.Equal(t, now, *res.Escrow.ReleasedAt)
		assert.Nil(t, res.Escrow.RefundedAt)

		again, err := lifecycle.Transition(res.Order, res.Escrow, request(entities.ActionValidateDelivery, entities.VerdictNone), now.Add(time.Minute))
		require.NoError(t, err)
		assert.True(t, again.NoOp)
		assert.Equal(t, entities.EffectNone, again.Effect)
		assert.Equal(t, now, *again.Escrow.ReleasedAt)
	})

	t.Run("cancel before capture leaves no escrow", func(t *testing.T) {
		order, escrow := fixture(pair(entities.OrderPending, entities.EscrowNone))

		res, err := lifecycle.Transition(order, escrow, request(entities.ActionCancelOrder, entities.VerdictNone), now)
		require.NoError(t, err)
		assert.Nil(t, res.Escrow)
		assert.Equal(t, entities.OrderCancelled, res.Order.State)
	})

	t.Run("cancel after capture has a user facing message", func(t *testing.T) {
		order, escrow := fixture(pair(entities.OrderInProgress, entities.EscrowHeld))

		_, err := lifecycle.Transition(order, escrow, request(entities.ActionCancelOrder, entities.VerdictNone), now)
		assert.ErrorIs(t, err, entities.ErrInvalidTransition)
		assert.Equal(t, "this order can no longer be cancelled", entities.UserMessage(err))
	})

	t.Run("unknown verdict is rejected", func(t *testing.T) {
		order, escrow := fixture(pair(entities.OrderDisputed, entities.EscrowDisputed))

		_, err := lifecycle.Transition(order, escrow, request(entities.ActionResolveDispute, "split"), now)
		assert.ErrorIs(t, err, entities.ErrInvalidTransition)
	})
}

func TestTransition_IllegalPairFailsLoudly(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(o *entities.Order, e *entities.Escrow)
	}{
		{
			name:   "completed order with held escrow",
			mutate: func(o *entities.Order, e *entities.Escrow) { o.State = entities.OrderCompleted },
		},
		{
			name:   "escrow of another order",
			mutate: func(o *entities.Order, e *entities.Escrow) { e.OrderID = "2" },
		},
		{
			name: "escrow both released and refunded",
			mutate: func(o *entities.Order, e *entities.Escrow) {
				ts := now
				o.State = entities.OrderCompleted
				e.State = entities.EscrowReleased
				e.ReleasedAt = &ts
				e.RefundedAt = &ts
			},
		},
		{
			name:   "escrow still pending",
			mutate: func(o *entities.Order, e *entities.Escrow) { e.State = entities.EscrowPending },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			order, escrow := fixture(pair(entities.OrderInProgress, entities.EscrowHeld))
			tc.mutate(&order, escrow)

			_, err := lifecycle.Transition(order, escrow, request(entities.ActionMarkDelivered, entities.VerdictNone), now)
			assert.ErrorIs(t, err, entities.ErrInvariantViolation)
			assert.NotErrorIs(t, err, entities.ErrInvalidTransition)
		})
	}
}

func TestTransition_TerminalPairsAreImmutable(t *testing.T) {
	terminal := []lifecycle.Pair{
		pair(entities.OrderCompleted, entities.EscrowReleased),
		pair(entities.OrderCancelled, entities.EscrowRefunded),
		pair(entities.OrderCancelled, entities.EscrowNone),
	}

	for _, from := range terminal {
		for _, a := range allAttempts() {
			t.Run(fmt.Sprintf("%s|%s", from, a), func(t *testing.T) {
				order, escrow := fixture(from)

				res, err := lifecycle.Decide(order, escrow, request(a.action, a.verdict), now)
				if err != nil {
					assert.True(t, errorsIsAny(err, entities.ErrInvalidTransition, entities.ErrUnauthorized), "unexpected error %v", err)
					return
				}
				assert.True(t, res.NoOp)
				assert.Equal(t, from, lifecycle.Pair{Order: res.Order.State, Escrow: entities.StateOf(res.Escrow)})
			})
		}
	}
}
