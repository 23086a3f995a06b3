package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SergeyBogomolovv/escrow-service/internal/entities"
	"github.com/SergeyBogomolovv/escrow-service/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// invalid_text_representation, returned for malformed uuids
const pqInvalidTextRepresentation = "22P02"

type postgresRepo struct {
	db *sqlx.DB
	tm trm.Manager
	qb sq.StatementBuilderType
}

func NewPostgresRepo(db *sqlx.DB, tm trm.Manager) *postgresRepo {
	return &postgresRepo{
		db: db,
		tm: tm,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *postgresRepo) CreateOrder(ctx context.Context, o entities.Order) error {
	openedBy, reason, openedAt, resolvedBy, verdict, resolvedAt := disputeValues(o.Dispute)

	query, args := r.qb.Insert("orders").
		Columns(orderColumns...).
		Values(
			o.ID, o.BuyerID, o.SellerID, o.Price.Amount, o.Price.Currency, ptrToNullTime(o.Deadline),
			o.Requirements, string(o.State), o.Version,
			openedBy, reason, openedAt,
			resolvedBy, verdict, resolvedAt,
			o.CreatedAt, o.LastTransitionAt,
		).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return storageErr("failed to create order", err)
	}
	return nil
}

func (r *postgresRepo) LoadOrderWithEscrow(ctx context.Context, orderID string) (entities.Order, *entities.Escrow, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": orderID}).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
		return entities.Order{}, nil, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, nil, storageErr("failed to get order", err)
	}

	query, args = r.qb.Select(escrowColumns...).
		From("escrows").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	var escrow Escrow
	err = r.getContext(ctx, &escrow, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderToEntity(order), nil, nil
	}
	if err != nil {
		return entities.Order{}, nil, storageErr("failed to get escrow", err)
	}

	return OrderToEntity(order), EscrowToEntity(escrow), nil
}

// SaveTransition writes the new state pair and its audit entry in one
// transaction. The order row is only updated while its version still equals
// rec.ExpectedVersion, otherwise entities.ErrConflict is returned.
func (r *postgresRepo) SaveTransition(ctx context.Context, rec entities.TransitionRecord) error {
	err := r.tm.Do(ctx, func(ctx context.Context) error {
		if err := r.updateOrder(ctx, rec.Order, rec.ExpectedVersion); err != nil {
			return err
		}
		if rec.Escrow != nil {
			if err := r.upsertEscrow(ctx, *rec.Escrow); err != nil {
				return err
			}
		}
		return r.insertTransition(ctx, rec.Log)
	})
	// begin and commit failures come back from the manager unclassified
	if err != nil && !errors.Is(err, entities.ErrConflict) && !errors.Is(err, entities.ErrStorageUnavailable) {
		return storageErr("failed to save transition", err)
	}
	return err
}

func (r *postgresRepo) updateOrder(ctx context.Context, o entities.Order, expectedVersion int64) error {
	openedBy, reason, openedAt, resolvedBy, verdict, resolvedAt := disputeValues(o.Dispute)

	query, args := r.qb.Update("orders").
		SetMap(map[string]any{
			"state":               string(o.State),
			"version":             expectedVersion + 1,
			"last_transition_at":  o.LastTransitionAt,
			"dispute_opened_by":   openedBy,
			"dispute_reason":      reason,
			"dispute_opened_at":   openedAt,
			"dispute_resolved_by": resolvedBy,
			"dispute_verdict":     verdict,
			"dispute_resolved_at": resolvedAt,
		}).
		Where(sq.Eq{"id": o.ID, "version": expectedVersion}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return storageErr("failed to update order", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("failed to update order", err)
	}
	if n == 0 {
		return fmt.Errorf("order %s at version %d: %w", o.ID, expectedVersion, entities.ErrConflict)
	}
	return nil
}

func (r *postgresRepo) upsertEscrow(ctx context.Context, e entities.Escrow) error {
	query, args := r.qb.Insert("escrows").
		Columns(escrowColumns...).
		Values(
			e.ID, e.OrderID, e.PaymentID, e.Amount.Amount, e.Amount.Currency, string(e.State),
			e.HeldAt, ptrToNullTime(e.ReleasedAt), ptrToNullTime(e.RefundedAt),
		).
		// amount and payment are fixed at capture
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			state = EXCLUDED.state,
			released_at = EXCLUDED.released_at,
			refunded_at = EXCLUDED.refunded_at`).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return storageErr("failed to save escrow", err)
	}
	return nil
}

func (r *postgresRepo) insertTransition(ctx context.Context, t entities.Transition) error {
	query, args := r.qb.Insert("order_transitions").
		Columns(transitionColumns...).
		Values(
			t.ID, t.OrderID, string(t.Action), t.ActorID, string(t.ActorRole), nullString(string(t.Verdict)),
			string(t.FromOrder), string(t.ToOrder), nullString(string(t.FromEscrow)), nullString(string(t.ToEscrow)),
			string(t.Effect), t.CreatedAt,
		).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return storageErr("failed to save transition", err)
	}
	return nil
}

func (r *postgresRepo) ListTransitions(ctx context.Context, orderID string) ([]entities.Transition, error) {
	query, args := r.qb.Select(transitionColumns...).
		From("order_transitions").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("created_at ASC", "id ASC").
		MustSql()

	var rows []Transition
	err := r.selectContext(ctx, &rows, query, args...)
	if isInvalidText(err) {
		return nil, entities.ErrOrderNotFound
	}
	if err != nil {
		return nil, storageErr("failed to select transitions", err)
	}

	result := make([]entities.Transition, 0, len(rows))
	for _, row := range rows {
		result = append(result, TransitionToEntity(row))
	}
	return result, nil
}

// LatestOrderStatuses returns the count most recently transitioned orders
// with their escrows.
func (r *postgresRepo) LatestOrderStatuses(ctx context.Context, count int) ([]entities.OrderStatus, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		OrderBy("last_transition_at DESC").
		Limit(uint64(count)).
		MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, storageErr("failed to select orders", err)
	}

	if len(orders) == 0 {
		return []entities.OrderStatus{}, nil
	}

	ids := make([]string, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
	}

	query, args = r.qb.Select(escrowColumns...).
		From("escrows").
		Where(sq.Eq{"order_id": ids}).
		MustSql()

	var escrows []Escrow
	if err := r.selectContext(ctx, &escrows, query, args...); err != nil {
		return nil, storageErr("failed to select escrows", err)
	}
	escrowMap := make(map[string]Escrow, len(escrows))
	for _, escrow := range escrows {
		escrowMap[escrow.OrderID] = escrow
	}

	result := make([]entities.OrderStatus, 0, len(orders))
	for _, order := range orders {
		status := entities.OrderStatus{Order: OrderToEntity(order)}
		if escrow, ok := escrowMap[order.ID]; ok {
			status.Escrow = EscrowToEntity(escrow)
		}
		result = append(result, status)
	}

	return result, nil
}

func storageErr(msg string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return fmt.Errorf("%s: %w: %w", msg, entities.ErrStorageUnavailable, err)
}

func isInvalidText(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqInvalidTextRepresentation
}

func (r *postgresRepo) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return r.db.ExecContext(ctx, query, args...)
}

func (r *postgresRepo) getContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return r.db.GetContext(ctx, dest, query, args...)
}

func (r *postgresRepo) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return r.db.SelectContext(ctx, dest, query, args...)
}
