package handler_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/escrow-service/internal/entities"
	"github.com/SergeyBogomolovv/escrow-service/internal/handler"
	mocks "github.com/SergeyBogomolovv/escrow-service/internal/handler/mocks"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	buyer    = entities.Actor{ID: "buyer-1", Role: entities.RoleBuyer}
	seller   = entities.Actor{ID: "seller-1", Role: entities.RoleSeller}
	operator = entities.Actor{ID: "operator-1", Role: entities.RoleOperator}
	stranger = entities.Actor{ID: "buyer-2", Role: entities.RoleBuyer}

	createdAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	validOrder = entities.Order{
		ID:               "order-1",
		BuyerID:          buyer.ID,
		SellerID:         seller.ID,
		Price:            entities.NewMoney(decimal.NewFromInt(500), "RUB"),
		State:            entities.OrderInProgress,
		Version:          2,
		CreatedAt:        createdAt,
		LastTransitionAt: createdAt,
	}
	validEscrow = &entities.Escrow{
		ID:        "escrow-1",
		OrderID:   "order-1",
		PaymentID: "pay-1",
		Amount:    validOrder.Price,
		State:     entities.EscrowHeld,
		HeldAt:    createdAt,
	}
)

func serve(t *testing.T, svc *mocks.MockOrderService, method, target string, actor *entities.Actor, body string) (int, string) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.NewHTTPHandler(logger, svc)

	r := chi.NewRouter()
	h.Init(r)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if actor != nil {
		req.Header.Set("X-Actor-ID", actor.ID)
		req.Header.Set("X-Actor-Role", string(actor.Role))
	}
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)

	res := rr.Result()
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(data)
}

func TestHTTPHandler_GetOrderStatus(t *testing.T) {
	testCases := []struct {
		name         string
		actor        *entities.Actor
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name:  "buyer sees order",
			actor: &buyer,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().GetOrderStatus(mock.Anything, "order-1").
					Return(entities.OrderStatus{Order: validOrder, Escrow: validEscrow}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"state":"held"`,
		},
		{
			name:  "operator sees order",
			actor: &operator,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().GetOrderStatus(mock.Anything, "order-1").
					Return(entities.OrderStatus{Order: validOrder}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"id":"order-1"`,
		},
		{
			name:  "stranger is forbidden",
			actor: &stranger,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().GetOrderStatus(mock.Anything, "order-1").
					Return(entities.OrderStatus{Order: validOrder}, nil).Once()
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:         "missing actor",
			mockBehavior: func(*mocks.MockOrderService) {},
			wantStatus:   http.StatusUnauthorized,
			wantBody:     `"missing actor identity"`,
		},
		{
			name:  "not found",
			actor: &buyer,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().GetOrderStatus(mock.Anything, "order-1").
					Return(entities.OrderStatus{}, entities.ErrOrderNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"order not found"`,
		},
		{
			name:  "storage unavailable",
			actor: &buyer,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().GetOrderStatus(mock.Anything, "order-1").
					Return(entities.OrderStatus{}, entities.ErrStorageUnavailable).Once()
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:  "internal error",
			actor: &buyer,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().GetOrderStatus(mock.Anything, "order-1").
					Return(entities.OrderStatus{}, errors.New("boom")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"internal server error"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := mocks.NewMockOrderService(t)
			tc.mockBehavior(svc)

			status, body := serve(t, svc, http.MethodGet, "/orders/order-1", tc.actor, "")

			assert.Equal(t, tc.wantStatus, status)
			assert.Contains(t, body, tc.wantBody)

			if tc.wantStatus == http.StatusOK {
				var resp handler.OrderStatus
				require.NoError(t, json.Unmarshal([]byte(body), &resp))
				assert.Equal(t, "order-1", resp.Order.ID)
				assert.Equal(t, "500.00", resp.Order.Price.Amount)
			}
		})
	}
}

func TestHTTPHandler_RequestTransition(t *testing.T) {
	completed := validOrder
	completed.State = entities.OrderCompleted
	released := *validEscrow
	released.State = entities.EscrowReleased
	released.ReleasedAt = &createdAt

	testCases := []struct {
		name         string
		actor        *entities.Actor
		body         string
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name:  "validate delivery",
			actor: &buyer,
			body:  `{"action":"validate_delivery"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().RequestTransition(mock.Anything, entities.TransitionRequest{
					OrderID: "order-1",
					Action:  entities.ActionValidateDelivery,
					Actor:   buyer,
				}).Return(entities.TransitionResult{
					Order: completed, Escrow: &released, Effect: entities.EffectRelease,
				}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"effect":"release"`,
		},
		{
			name:  "resolve with verdict",
			actor: &operator,
			body:  `{"action":"resolve_dispute","verdict":"refund"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().RequestTransition(mock.Anything, mock.MatchedBy(func(req entities.TransitionRequest) bool {
					return req.Verdict == entities.VerdictRefund && req.Actor == operator
				})).Return(entities.TransitionResult{Order: validOrder, Effect: entities.EffectRefund}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:         "capture is not exposed",
			actor:        &buyer,
			body:         `{"action":"capture_payment"}`,
			mockBehavior: func(*mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"action":"oneof=accept_order mark_delivered validate_delivery request_refund open_dispute resolve_dispute cancel_order"`,
		},
		{
			name:         "unknown verdict",
			actor:        &operator,
			body:         `{"action":"resolve_dispute","verdict":"split"}`,
			mockBehavior: func(*mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
		},
		{
			name:         "unknown field",
			actor:        &buyer,
			body:         `{"action":"cancel_order","amount":"10"}`,
			mockBehavior: func(*mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"invalid request body"`,
		},
		{
			name:         "broken body",
			actor:        &buyer,
			body:         `{`,
			mockBehavior: func(*mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"invalid request body"`,
		},
		{
			name:  "unauthorized",
			actor: &seller,
			body:  `{"action":"cancel_order"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().RequestTransition(mock.Anything, mock.Anything).
					Return(entities.TransitionResult{}, entities.ErrUnauthorized).Once()
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:  "invalid transition carries message",
			actor: &buyer,
			body:  `{"action":"cancel_order"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().RequestTransition(mock.Anything, mock.Anything).
					Return(entities.TransitionResult{}, entities.Reject(entities.ErrInvalidTransition, "this order can no longer be cancelled")).Once()
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `"this order can no longer be cancelled"`,
		},
		{
			name:  "conflict",
			actor: &buyer,
			body:  `{"action":"open_dispute","reason":"late"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().RequestTransition(mock.Anything, mock.Anything).
					Return(entities.TransitionResult{}, entities.ErrConflict).Once()
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := mocks.NewMockOrderService(t)
			tc.mockBehavior(svc)

			status, body := serve(t, svc, http.MethodPost, "/orders/order-1/transitions", tc.actor, tc.body)

			assert.Equal(t, tc.wantStatus, status)
			assert.Contains(t, body, tc.wantBody)
		})
	}
}

func TestHTTPHandler_PlaceOrder(t *testing.T) {
	testCases := []struct {
		name         string
		actor        *entities.Actor
		body         string
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name:  "created",
			actor: &buyer,
			body:  `{"seller_id":"seller-1","amount":"500.00","currency":"RUB","requirements":"logo"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().PlaceOrder(mock.Anything, buyer, mock.MatchedBy(func(d entities.OrderDraft) bool {
					return d.SellerID == "seller-1" &&
						d.Price.Amount.Equal(decimal.NewFromInt(500)) &&
						d.Requirements == "logo"
				})).Return(validOrder, nil).Once()
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"id":"order-1"`,
		},
		{
			name:  "fractional price",
			actor: &buyer,
			body:  `{"seller_id":"seller-1","amount":"49.99","currency":"usd"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().PlaceOrder(mock.Anything, buyer, mock.MatchedBy(func(d entities.OrderDraft) bool {
					return d.Price.Amount.Equal(decimal.RequireFromString("49.99"))
				})).Return(validOrder, nil).Once()
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"id":"order-1"`,
		},
		{
			name:         "amount is not a number",
			actor:        &buyer,
			body:         `{"seller_id":"seller-1","amount":"12,5","currency":"RUB"}`,
			mockBehavior: func(*mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"amount":"numeric"`,
		},
		{
			name:         "validation error",
			actor:        &buyer,
			body:         `{"amount":"abc","currency":"RUB"}`,
			mockBehavior: func(*mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"seller_id":"required"`,
		},
		{
			name:  "invalid order",
			actor: &buyer,
			body:  `{"seller_id":"buyer-1","amount":"1","currency":"RUB"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().PlaceOrder(mock.Anything, buyer, mock.Anything).
					Return(entities.Order{}, entities.Reject(entities.ErrInvalidOrder, "buyer and seller must differ")).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"buyer and seller must differ"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := mocks.NewMockOrderService(t)
			tc.mockBehavior(svc)

			status, body := serve(t, svc, http.MethodPost, "/orders", tc.actor, tc.body)

			assert.Equal(t, tc.wantStatus, status)
			assert.Contains(t, body, tc.wantBody)
		})
	}
}

func TestHTTPHandler_History(t *testing.T) {
	svc := mocks.NewMockOrderService(t)
	svc.EXPECT().GetOrderStatus(mock.Anything, "order-1").
		Return(entities.OrderStatus{Order: validOrder}, nil).Once()
	svc.EXPECT().History(mock.Anything, "order-1").Return([]entities.Transition{
		{
			ID:        "t-1",
			OrderID:   "order-1",
			Action:    entities.ActionCapturePayment,
			ActorID:   "payment-gateway",
			ActorRole: entities.RolePlatform,
			FromOrder: entities.OrderPending,
			ToOrder:   entities.OrderInProgress,
			ToEscrow:  entities.EscrowHeld,
			Effect:    entities.EffectHold,
			CreatedAt: createdAt,
		},
	}, nil).Once()

	status, body := serve(t, svc, http.MethodGet, "/orders/order-1/transitions", &seller, "")
	require.Equal(t, http.StatusOK, status)

	var resp []handler.Transition
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "pending/-", resp[0].From)
	assert.Equal(t, "in_progress/held", resp[0].To)
}
