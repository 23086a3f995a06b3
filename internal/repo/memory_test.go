package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/escrow-service/internal/entities"
	"github.com/SergeyBogomolovv/escrow-service/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepo(t *testing.T) {
	testOrderRepo(t, repo.NewMemoryRepo())
}

func TestMemoryRepo_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := repo.NewMemoryRepo()

	order := newOrder(base)
	require.NoError(t, r.CreateOrder(ctx, order))
	require.NoError(t, r.SaveTransition(ctx, captureRecord(order, base.Add(time.Minute))))

	got, escrow, err := r.LoadOrderWithEscrow(ctx, order.ID)
	require.NoError(t, err)
	got.State = entities.OrderCompleted
	escrow.State = entities.EscrowReleased

	again, escrowAgain, err := r.LoadOrderWithEscrow(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderPending, again.State)
	assert.Equal(t, entities.EscrowHeld, escrowAgain.State)
}

func TestMemoryRepo_DuplicateOrder(t *testing.T) {
	ctx := context.Background()
	r := repo.NewMemoryRepo()

	order := newOrder(base)
	require.NoError(t, r.CreateOrder(ctx, order))
	assert.ErrorIs(t, r.CreateOrder(ctx, order), entities.ErrInvalidOrder)
}
