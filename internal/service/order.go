package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/SergeyBogomolovv/escrow-service/internal/clock"
	"github.com/SergeyBogomolovv/escrow-service/internal/entities"
	"github.com/SergeyBogomolovv/escrow-service/internal/lifecycle"
	"github.com/SergeyBogomolovv/escrow-service/pkg/utils"

	"github.com/google/uuid"
)

// PlatformActorID is the identity under which payment captures are applied.
const PlatformActorID = "payment-gateway"

type OrderRepo interface {
	CreateOrder(ctx context.Context, o entities.Order) error
	LoadOrderWithEscrow(ctx context.Context, orderID string) (entities.Order, *entities.Escrow, error)

	// SaveTransition persists rec atomically, or returns entities.ErrConflict
	// when the stored version differs from rec.ExpectedVersion.
	SaveTransition(ctx context.Context, rec entities.TransitionRecord) error

	ListTransitions(ctx context.Context, orderID string) ([]entities.Transition, error)
	LatestOrderStatuses(ctx context.Context, count int) ([]entities.OrderStatus, error)
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

type Notifier interface {
	Notify(ctx context.Context, n entities.Notification) error
}

type orderService struct {
	logger   *slog.Logger
	repo     OrderRepo
	cache    Cache
	notifier Notifier
	clock    clock.Clock
	retry    utils.RetryConfig

	// serializes the version check and write in cacheStatus
	cacheMu sync.Mutex
}

func NewOrderService(logger *slog.Logger, repo OrderRepo, cache Cache, notifier Notifier, clk clock.Clock, retry utils.RetryConfig) *orderService {
	return &orderService{
		logger:   logger.With(slog.String("service", "order")),
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		clock:    clk,
		retry:    retry,
	}
}

func (s *orderService) PlaceOrder(ctx context.Context, buyer entities.Actor, draft entities.OrderDraft) (entities.Order, error) {
	if buyer.Role != entities.RoleBuyer || buyer.ID == "" {
		return entities.Order{}, entities.Reject(entities.ErrUnauthorized, "only buyers can place orders")
	}
	if err := validateDraft(buyer.ID, draft); err != nil {
		return entities.Order{}, err
	}

	now := s.clock.Now()
	order := entities.Order{
		ID:               uuid.NewString(),
		BuyerID:          buyer.ID,
		SellerID:         draft.SellerID,
		Price:            entities.NewMoney(draft.Price.Amount, strings.ToUpper(draft.Price.Currency)),
		Deadline:         draft.Deadline,
		Requirements:     draft.Requirements,
		State:            entities.OrderPending,
		Version:          1,
		CreatedAt:        now,
		LastTransitionAt: now,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return entities.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	s.cacheStatus(entities.OrderStatus{Order: order})
	s.logger.Info("order placed",
		slog.String("order_id", order.ID),
		slog.String("buyer_id", order.BuyerID),
		slog.String("seller_id", order.SellerID),
		slog.String("price", order.Price.String()),
	)
	return order, nil
}

func validateDraft(buyerID string, d entities.OrderDraft) error {
	switch {
	case d.SellerID == "":
		return entities.Reject(entities.ErrInvalidOrder, "seller is required")
	case d.SellerID == buyerID:
		return entities.Reject(entities.ErrInvalidOrder, "buyer and seller must differ")
	case d.SellerID == PlatformActorID || buyerID == PlatformActorID:
		// the platform captures payments and can never be a party
		return entities.Reject(entities.ErrInvalidOrder, "reserved user id")
	case !d.Price.Amount.IsPositive():
		return entities.Reject(entities.ErrInvalidOrder, "price must be positive")
	case len(d.Price.Currency) != 3:
		return entities.Reject(entities.ErrInvalidOrder, "currency must be a 3-letter code")
	}
	return nil
}

// RequestTransition applies req, re-reading and retrying when another
// writer got to the order first.
func (s *orderService) RequestTransition(ctx context.Context, req entities.TransitionRequest) (entities.TransitionResult, error) {
	cfg := s.retry
	cfg.ShouldRetry = func(err error) bool {
		return errors.Is(err, entities.ErrConflict)
	}

	var res entities.TransitionResult
	err := utils.Retry(ctx, cfg, func() error {
		var err error
		res, err = s.TryTransition(ctx, req)
		return err
	})
	return res, err
}

// TryTransition makes exactly one attempt at req against the current
// stored state.
func (s *orderService) TryTransition(ctx context.Context, req entities.TransitionRequest) (entities.TransitionResult, error) {
	log := s.logger.With(
		slog.String("order_id", req.OrderID),
		slog.String("action", string(req.Action)),
		slog.String("actor_id", req.Actor.ID),
		slog.String("actor_role", string(req.Actor.Role)),
	)

	order, escrow, err := s.repo.LoadOrderWithEscrow(ctx, req.OrderID)
	if err != nil {
		s.countOutcome(req.Action, err)
		return entities.TransitionResult{}, fmt.Errorf("failed to load order: %w", err)
	}

	res, err := lifecycle.Decide(order, escrow, req, s.clock.Now())
	if err != nil {
		s.countOutcome(req.Action, err)
		if errors.Is(err, entities.ErrInvariantViolation) {
			invariantViolations.Inc()
			log.Error("stored order breaks lifecycle invariant", slog.Any("error", err))
		} else {
			log.Debug("transition refused", slog.Any("error", err))
		}
		return entities.TransitionResult{}, err
	}

	if res.NoOp {
		transitionsTotal.WithLabelValues(string(req.Action), outcomeNoOp).Inc()
		log.Debug("transition already applied")
		return res, nil
	}

	res.Order.Version = order.Version + 1
	rec := entities.TransitionRecord{
		ExpectedVersion: order.Version,
		Order:           res.Order,
		Escrow:          res.Escrow,
		Log: entities.Transition{
			ID:         uuid.NewString(),
			OrderID:    order.ID,
			Action:     req.Action,
			ActorID:    req.Actor.ID,
			ActorRole:  req.Actor.Role,
			Verdict:    req.Verdict,
			FromOrder:  order.State,
			ToOrder:    res.Order.State,
			FromEscrow: entities.StateOf(escrow),
			ToEscrow:   entities.StateOf(res.Escrow),
			Effect:     res.Effect,
			CreatedAt:  res.Order.LastTransitionAt,
		},
	}

	if err := s.repo.SaveTransition(ctx, rec); err != nil {
		s.countOutcome(req.Action, err)
		if errors.Is(err, entities.ErrConflict) {
			log.Debug("concurrent modification", slog.Int64("version", order.Version))
		} else {
			log.Error("failed to save transition", slog.Any("error", err))
		}
		return entities.TransitionResult{}, fmt.Errorf("failed to save transition: %w", err)
	}

	transitionsTotal.WithLabelValues(string(req.Action), outcomeApplied).Inc()
	if res.Effect != entities.EffectNone {
		fundMovementsTotal.WithLabelValues(string(res.Effect)).Inc()
	}
	log.Info("transition applied",
		slog.String("from", lifecycle.Pair{Order: rec.Log.FromOrder, Escrow: rec.Log.FromEscrow}.String()),
		slog.String("to", lifecycle.Pair{Order: rec.Log.ToOrder, Escrow: rec.Log.ToEscrow}.String()),
		slog.String("effect", string(res.Effect)),
	)

	s.cacheStatus(entities.OrderStatus{Order: res.Order, Escrow: res.Escrow})
	s.notify(ctx, transitionNotification(req, res))

	return res, nil
}

// CapturePayment feeds a captured payment into the lifecycle as the
// platform actor. A capture the order cannot take, or one the guard
// denies, is announced as capture_rejected so the payment side can return
// the funds.
func (s *orderService) CapturePayment(ctx context.Context, orderID string, capture entities.Capture) (entities.TransitionResult, error) {
	if capture.EscrowID == "" {
		capture.EscrowID = uuid.NewString()
	}
	req := entities.TransitionRequest{
		OrderID: orderID,
		Action:  entities.ActionCapturePayment,
		Actor:   entities.Actor{ID: PlatformActorID, Role: entities.RolePlatform},
		Capture: &capture,
	}

	res, err := s.RequestTransition(ctx, req)
	if err == nil || !(errors.Is(err, entities.ErrInvalidTransition) || errors.Is(err, entities.ErrUnauthorized)) {
		return res, err
	}

	capturesRejected.Inc()
	n := entities.Notification{
		Type:                 entities.NotificationCaptureRejected,
		OrderID:              orderID,
		Action:               entities.ActionCapturePayment,
		Actor:                req.Actor,
		Effect:               entities.EffectNone,
		Amount:               capture.Amount,
		PaymentID:            capture.PaymentID,
		CompensationRequired: true,
	}
	if order, escrow, loadErr := s.repo.LoadOrderWithEscrow(ctx, orderID); loadErr == nil {
		n.BuyerID, n.SellerID = order.BuyerID, order.SellerID
		n.Order, n.Escrow = order.State, entities.StateOf(escrow)
	}

	s.logger.Warn("captured payment rejected",
		slog.String("order_id", orderID),
		slog.String("payment_id", capture.PaymentID),
		slog.String("amount", capture.Amount.String()),
		slog.String("order_state", string(n.Order)),
		slog.Bool("compensation_required", true),
		slog.Any("error", err),
	)
	s.notify(ctx, n)

	return res, err
}

func (s *orderService) GetOrderStatus(ctx context.Context, orderID string) (entities.OrderStatus, error) {
	if data, ok := s.cache.Get(orderID); ok {
		var status entities.OrderStatus
		err := status.Unmarshal(data)
		if err == nil {
			statusCacheRequests.WithLabelValues("hit").Inc()
			return status, nil
		}
		s.logger.Error("failed to unmarshal cached status", slog.String("order_id", orderID), slog.Any("error", err))
	}
	statusCacheRequests.WithLabelValues("miss").Inc()

	var status entities.OrderStatus
	cfg := s.retry
	cfg.ShouldRetry = func(err error) bool {
		return errors.Is(err, entities.ErrStorageUnavailable)
	}
	err := utils.Retry(ctx, cfg, func() error {
		order, escrow, err := s.repo.LoadOrderWithEscrow(ctx, orderID)
		if err != nil {
			return err
		}
		status = entities.OrderStatus{Order: order, Escrow: escrow}
		return nil
	}, entities.ErrOrderNotFound)
	if err != nil {
		return entities.OrderStatus{}, err
	}

	s.cacheStatus(status)
	return status, nil
}

// History returns the audit trail of an order, oldest first.
func (s *orderService) History(ctx context.Context, orderID string) ([]entities.Transition, error) {
	if _, err := s.GetOrderStatus(ctx, orderID); err != nil {
		return nil, err
	}
	transitions, err := s.repo.ListTransitions(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transitions: %w", err)
	}
	return transitions, nil
}

// WarmUpCache loads the count most recently active orders into the cache.
func (s *orderService) WarmUpCache(ctx context.Context, count int) error {
	statuses, err := s.repo.LatestOrderStatuses(ctx, count)
	if err != nil {
		return fmt.Errorf("failed to load latest orders: %w", err)
	}
	for _, status := range statuses {
		s.cacheStatus(status)
	}
	s.logger.Info("cache warmed up", slog.Int("orders", len(statuses)))
	return nil
}

// cacheStatus stores status unless the cache already holds a newer version
// of the same order. Saves and reads finish in any order, so an older
// projection may arrive last.
func (s *orderService) cacheStatus(status entities.OrderStatus) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if cached, ok := s.cache.Get(status.Order.ID); ok {
		var current entities.OrderStatus
		if err := current.Unmarshal(cached); err == nil && current.Order.Version > status.Order.Version {
			staleCacheWrites.Inc()
			return
		}
	}

	data, err := status.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal status", slog.String("order_id", status.Order.ID), slog.Any("error", err))
		return
	}
	s.cache.Set(status.Order.ID, data)
}

func (s *orderService) notify(ctx context.Context, n entities.Notification) {
	if err := s.notifier.Notify(ctx, n); err != nil {
		notifyFailures.Inc()
		s.logger.Warn("failed to publish notification",
			slog.String("order_id", n.OrderID),
			slog.String("type", n.Type),
			slog.Any("error", err),
		)
	}
}

func (s *orderService) countOutcome(action entities.Action, err error) {
	outcome := outcomeError
	switch {
	case errors.Is(err, entities.ErrUnauthorized):
		outcome = outcomeUnauthorized
	case errors.Is(err, entities.ErrInvalidTransition):
		outcome = outcomeRejected
	case errors.Is(err, entities.ErrConflict):
		outcome = outcomeConflict
	}
	transitionsTotal.WithLabelValues(string(action), outcome).Inc()
}

func transitionNotification(req entities.TransitionRequest, res entities.TransitionResult) entities.Notification {
	n := entities.Notification{
		Type:     entities.NotificationTransition,
		OrderID:  res.Order.ID,
		BuyerID:  res.Order.BuyerID,
		SellerID: res.Order.SellerID,
		Action:   req.Action,
		Actor:    req.Actor,
		Order:    res.Order.State,
		Escrow:   entities.StateOf(res.Escrow),
		Effect:   res.Effect,
		Amount:   res.Order.Price,
	}
	if res.Escrow != nil {
		n.PaymentID = res.Escrow.PaymentID
	}
	return n
}
