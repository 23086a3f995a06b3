package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/escrow-service/internal/entities"
	"github.com/SergeyBogomolovv/escrow-service/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newOrder(at time.Time) entities.Order {
	return entities.Order{
		ID:               uuid.NewString(),
		BuyerID:          "buyer-" + uuid.NewString()[:8],
		SellerID:         "seller-" + uuid.NewString()[:8],
		Price:            entities.NewMoney(decimal.RequireFromString("500.50"), "RUB"),
		Requirements:     "landing page",
		State:            entities.OrderPending,
		Version:          1,
		CreatedAt:        at,
		LastTransitionAt: at,
	}
}

func captureRecord(o entities.Order, at time.Time) entities.TransitionRecord {
	next := o
	next.LastTransitionAt = at
	escrow := &entities.Escrow{
		ID:        uuid.NewString(),
		OrderID:   o.ID,
		PaymentID: "pay-" + o.ID[:8],
		Amount:    o.Price,
		State:     entities.EscrowHeld,
		HeldAt:    at,
	}
	return entities.TransitionRecord{
		ExpectedVersion: o.Version,
		Order:           next,
		Escrow:          escrow,
		Log: entities.Transition{
			ID:         uuid.NewString(),
			OrderID:    o.ID,
			Action:     entities.ActionCapturePayment,
			ActorID:    service.PlatformActorID,
			ActorRole:  entities.RolePlatform,
			FromOrder:  entities.OrderPending,
			ToOrder:    entities.OrderPending,
			FromEscrow: entities.EscrowNone,
			ToEscrow:   entities.EscrowHeld,
			Effect:     entities.EffectHold,
			CreatedAt:  at,
		},
	}
}

// testOrderRepo checks the behavior every OrderRepo implementation shares.
func testOrderRepo(t *testing.T, repo service.OrderRepo) {
	ctx := context.Background()

	t.Run("create and load", func(t *testing.T) {
		order := newOrder(base)
		require.NoError(t, repo.CreateOrder(ctx, order))

		got, escrow, err := repo.LoadOrderWithEscrow(ctx, order.ID)
		require.NoError(t, err)
		assert.Nil(t, escrow)
		assert.Equal(t, order.ID, got.ID)
		assert.Equal(t, order.BuyerID, got.BuyerID)
		assert.Equal(t, order.SellerID, got.SellerID)
		assert.True(t, order.Price.Amount.Equal(got.Price.Amount))
		assert.Equal(t, "RUB", got.Price.Currency)
		assert.Equal(t, entities.OrderPending, got.State)
		assert.Equal(t, int64(1), got.Version)
		assert.Nil(t, got.Dispute)
		assert.True(t, base.Equal(got.CreatedAt))
	})

	t.Run("load unknown order", func(t *testing.T) {
		_, _, err := repo.LoadOrderWithEscrow(ctx, uuid.NewString())
		assert.ErrorIs(t, err, entities.ErrOrderNotFound)
	})

	t.Run("save transition bumps version", func(t *testing.T) {
		order := newOrder(base)
		require.NoError(t, repo.CreateOrder(ctx, order))

		rec := captureRecord(order, base.Add(time.Minute))
		require.NoError(t, repo.SaveTransition(ctx, rec))

		got, escrow, err := repo.LoadOrderWithEscrow(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.Version)
		assert.True(t, base.Add(time.Minute).Equal(got.LastTransitionAt))
		require.NotNil(t, escrow)
		assert.Equal(t, entities.EscrowHeld, escrow.State)
		assert.Equal(t, rec.Escrow.PaymentID, escrow.PaymentID)
		assert.True(t, order.Price.Amount.Equal(escrow.Amount.Amount))

		log, err := repo.ListTransitions(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, log, 1)
		assert.Equal(t, entities.ActionCapturePayment, log[0].Action)
		assert.Equal(t, entities.EscrowNone, log[0].FromEscrow)
		assert.Equal(t, entities.EscrowHeld, log[0].ToEscrow)
		assert.Equal(t, entities.EffectHold, log[0].Effect)
	})

	t.Run("stale version conflicts and writes nothing", func(t *testing.T) {
		order := newOrder(base)
		require.NoError(t, repo.CreateOrder(ctx, order))
		require.NoError(t, repo.SaveTransition(ctx, captureRecord(order, base.Add(time.Minute))))

		// second writer read version 1 as well
		stale := captureRecord(order, base.Add(2*time.Minute))
		err := repo.SaveTransition(ctx, stale)
		assert.ErrorIs(t, err, entities.ErrConflict)

		got, escrow, err := repo.LoadOrderWithEscrow(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.Version)
		require.NotNil(t, escrow)
		assert.NotEqual(t, stale.Escrow.ID, escrow.ID)

		log, err := repo.ListTransitions(ctx, order.ID)
		require.NoError(t, err)
		assert.Len(t, log, 1)
	})

	t.Run("dispute and settlement round trip", func(t *testing.T) {
		order := newOrder(base)
		require.NoError(t, repo.CreateOrder(ctx, order))
		rec := captureRecord(order, base.Add(time.Minute))
		require.NoError(t, repo.SaveTransition(ctx, rec))

		resolvedAt := base.Add(time.Hour)
		disputed := rec.Order
		disputed.State = entities.OrderCancelled
		disputed.LastTransitionAt = resolvedAt
		disputed.Dispute = &entities.Dispute{
			OpenedBy:   order.BuyerID,
			Reason:     "never delivered",
			OpenedAt:   base.Add(30 * time.Minute),
			ResolvedBy: "ops-1",
			Verdict:    entities.VerdictRefund,
			ResolvedAt: &resolvedAt,
		}
		escrow := *rec.Escrow
		escrow.State = entities.EscrowRefunded
		escrow.RefundedAt = &resolvedAt

		require.NoError(t, repo.SaveTransition(ctx, entities.TransitionRecord{
			ExpectedVersion: 2,
			Order:           disputed,
			Escrow:          &escrow,
			Log: entities.Transition{
				ID:         uuid.NewString(),
				OrderID:    order.ID,
				Action:     entities.ActionResolveDispute,
				ActorID:    "ops-1",
				ActorRole:  entities.RoleOperator,
				Verdict:    entities.VerdictRefund,
				FromOrder:  entities.OrderDisputed,
				ToOrder:    entities.OrderCancelled,
				FromEscrow: entities.EscrowDisputed,
				ToEscrow:   entities.EscrowRefunded,
				Effect:     entities.EffectRefund,
				CreatedAt:  resolvedAt,
			},
		}))

		got, gotEscrow, err := repo.LoadOrderWithEscrow(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.OrderCancelled, got.State)
		require.NotNil(t, got.Dispute)
		assert.Equal(t, order.BuyerID, got.Dispute.OpenedBy)
		assert.Equal(t, entities.VerdictRefund, got.Dispute.Verdict)
		require.NotNil(t, got.Dispute.ResolvedAt)
		assert.True(t, resolvedAt.Equal(*got.Dispute.ResolvedAt))

		require.NotNil(t, gotEscrow)
		assert.Equal(t, entities.EscrowRefunded, gotEscrow.State)
		require.NotNil(t, gotEscrow.RefundedAt)
		assert.Nil(t, gotEscrow.ReleasedAt)

		log, err := repo.ListTransitions(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, log, 2)
		assert.Equal(t, entities.ActionCapturePayment, log[0].Action)
		assert.Equal(t, entities.ActionResolveDispute, log[1].Action)
		assert.Equal(t, entities.VerdictRefund, log[1].Verdict)
	})

	t.Run("latest statuses", func(t *testing.T) {
		// far in the future so these two are always on top
		future := base.AddDate(10, 0, 0)
		older := newOrder(future)
		newer := newOrder(future.Add(time.Hour))
		require.NoError(t, repo.CreateOrder(ctx, older))
		require.NoError(t, repo.CreateOrder(ctx, newer))
		require.NoError(t, repo.SaveTransition(ctx, captureRecord(newer, future.Add(2*time.Hour))))

		statuses, err := repo.LatestOrderStatuses(ctx, 2)
		require.NoError(t, err)
		require.Len(t, statuses, 2)
		assert.Equal(t, newer.ID, statuses[0].Order.ID)
		require.NotNil(t, statuses[0].Escrow)
		assert.Equal(t, entities.EscrowHeld, statuses[0].Escrow.State)
		assert.Equal(t, older.ID, statuses[1].Order.ID)
		assert.Nil(t, statuses[1].Escrow)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, _, err := repo.LoadOrderWithEscrow(cctx, uuid.NewString())
		assert.ErrorIs(t, err, context.Canceled)
	})
}
