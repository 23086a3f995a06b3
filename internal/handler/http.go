package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/escrow-service/internal/entities"
	"github.com/SergeyBogomolovv/escrow-service/internal/middleware"
	"github.com/SergeyBogomolovv/escrow-service/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, buyer entities.Actor, draft entities.OrderDraft) (entities.Order, error)
	RequestTransition(ctx context.Context, req entities.TransitionRequest) (entities.TransitionResult, error)
	GetOrderStatus(ctx context.Context, orderID string) (entities.OrderStatus, error)
	History(ctx context.Context, orderID string) ([]entities.Transition, error)
}

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      OrderService
}

func NewHTTPHandler(logger *slog.Logger, svc OrderService) *HTTPHandler {
	return &HTTPHandler{
		logger:   logger.With(slog.String("handler", "http")),
		validate: newValidator(),
		svc:      svc,
	}
}

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Use(middleware.Actor)

		r.Post("/", h.PlaceOrder)
		r.Get("/{order_id}", h.GetOrderStatus)
		r.Post("/{order_id}/transitions", h.RequestTransition)
		r.Get("/{order_id}/transitions", h.History)
	})
}

// PlaceOrder creates a pending order on behalf of the calling buyer.
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-Actor-ID    header    string             true  "Caller id"
// @Param        X-Actor-Role  header    string             true  "Caller role" Enums(buyer, seller, operator)
// @Param        order         body      PlaceOrderRequest  true  "Order"
// @Success      201  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Failure      401  {object}  utils.ErrorResponse
// @Failure      403  {object}  utils.ErrorResponse
// @Failure      503  {object}  utils.ErrorResponse
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /orders [post]
func (h *HTTPHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := middleware.ActorFrom(ctx)

	var body PlaceOrderRequest
	if err := utils.DecodeBody(w, r, &body); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	price, err := MoneyJSONToEntity(body.Amount, body.Currency)
	if err != nil {
		utils.WriteError(w, "invalid amount", http.StatusBadRequest)
		return
	}

	order, err := h.svc.PlaceOrder(ctx, actor, entities.OrderDraft{
		SellerID:     body.SellerID,
		Price:        price,
		Deadline:     body.Deadline,
		Requirements: body.Requirements,
	})
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusCreated)
}

// GetOrderStatus returns the order and its escrow.
// @Summary      Get order status
// @Tags         orders
// @Produce      json
// @Param        X-Actor-ID    header    string  true  "Caller id"
// @Param        X-Actor-Role  header    string  true  "Caller role" Enums(buyer, seller, operator)
// @Param        order_id      path      string  true  "Order id"
// @Success      200  {object}  OrderStatus
// @Failure      401  {object}  utils.ErrorResponse
// @Failure      403  {object}  utils.ErrorResponse
// @Failure      404  {object}  utils.ErrorResponse
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /orders/{order_id} [get]
func (h *HTTPHandler) GetOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	orderRequestsInProgress.Inc()
	defer orderRequestsInProgress.Dec()
	start := time.Now()
	defer func() { orderRequestDuration.Observe(time.Since(start).Seconds()) }()

	status, err := h.svc.GetOrderStatus(ctx, orderID)
	if err == nil {
		err = canView(ctx, status.Order)
	}
	if err != nil {
		orderRequestTotal.WithLabelValues("error").Inc()
		h.writeServiceError(ctx, w, err)
		return
	}

	orderRequestTotal.WithLabelValues("ok").Inc()
	utils.WriteJSON(w, OrderStatusEntityToJSON(status), http.StatusOK)
}

// RequestTransition applies a lifecycle action to the order.
// @Summary      Request a transition
// @Description  Actions: accept_order, mark_delivered, validate_delivery, request_refund, open_dispute, resolve_dispute, cancel_order.
// @Description  Repeating an already applied terminal action returns 200 with noop=true.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-Actor-ID    header    string             true  "Caller id"
// @Param        X-Actor-Role  header    string             true  "Caller role" Enums(buyer, seller, operator)
// @Param        order_id      path      string             true  "Order id"
// @Param        transition    body      TransitionRequest  true  "Transition"
// @Success      200  {object}  TransitionResult
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Failure      401  {object}  utils.ErrorResponse
// @Failure      403  {object}  utils.ErrorResponse
// @Failure      404  {object}  utils.ErrorResponse
// @Failure      409  {object}  utils.ErrorResponse
// @Failure      422  {object}  utils.ErrorResponse
// @Failure      503  {object}  utils.ErrorResponse
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /orders/{order_id}/transitions [post]
func (h *HTTPHandler) RequestTransition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := middleware.ActorFrom(ctx)

	var body TransitionRequest
	if err := utils.DecodeBody(w, r, &body); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	res, err := h.svc.RequestTransition(ctx, entities.TransitionRequest{
		OrderID: chi.URLParam(r, "order_id"),
		Action:  entities.Action(body.Action),
		Actor:   actor,
		Verdict: entities.Verdict(body.Verdict),
		Reason:  body.Reason,
	})
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	utils.WriteJSON(w, TransitionResultEntityToJSON(res), http.StatusOK)
}

// History returns the transition audit trail of the order.
// @Summary      Get order history
// @Tags         orders
// @Produce      json
// @Param        X-Actor-ID    header    string  true  "Caller id"
// @Param        X-Actor-Role  header    string  true  "Caller role" Enums(buyer, seller, operator)
// @Param        order_id      path      string  true  "Order id"
// @Success      200  {array}   Transition
// @Failure      401  {object}  utils.ErrorResponse
// @Failure      403  {object}  utils.ErrorResponse
// @Failure      404  {object}  utils.ErrorResponse
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /orders/{order_id}/transitions [get]
func (h *HTTPHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	status, err := h.svc.GetOrderStatus(ctx, orderID)
	if err == nil {
		err = canView(ctx, status.Order)
	}
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	transitions, err := h.svc.History(ctx, orderID)
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	res := make([]Transition, 0, len(transitions))
	for _, t := range transitions {
		res = append(res, TransitionEntityToJSON(t))
	}
	utils.WriteJSON(w, res, http.StatusOK)
}

// canView lets parties and operators read an order.
func canView(ctx context.Context, o entities.Order) error {
	actor, _ := middleware.ActorFrom(ctx)
	if actor.Role == entities.RoleOperator || o.IsParty(actor.ID) {
		return nil
	}
	return entities.ErrUnauthorized
}

func (h *HTTPHandler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entities.ErrUnauthorized):
		utils.WriteError(w, messageOr(err, "action not allowed"), http.StatusForbidden)
	case errors.Is(err, entities.ErrOrderNotFound):
		utils.WriteError(w, "order not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrInvalidOrder):
		utils.WriteError(w, messageOr(err, "invalid order"), http.StatusBadRequest)
	case errors.Is(err, entities.ErrInvalidTransition):
		utils.WriteError(w, messageOr(err, "action is not possible now"), http.StatusUnprocessableEntity)
	case errors.Is(err, entities.ErrConflict):
		utils.WriteError(w, "order was modified concurrently, retry", http.StatusConflict)
	case errors.Is(err, entities.ErrStorageUnavailable):
		h.logger.ErrorContext(ctx, "storage unavailable", slog.Any("error", err))
		utils.WriteError(w, "service temporarily unavailable", http.StatusServiceUnavailable)
	default:
		h.logger.ErrorContext(ctx, "request failed", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}

func messageOr(err error, fallback string) string {
	if msg := entities.UserMessage(err); msg != "" {
		return msg
	}
	return fallback
}
