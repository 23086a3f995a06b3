package middleware

import (
	"context"
	"net/http"

	"github.com/SergeyBogomolovv/escrow-service/internal/entities"
	"github.com/SergeyBogomolovv/escrow-service/pkg/utils"
)

// Identity is resolved upstream by the gateway and forwarded in these
// headers. The role is trusted; order membership is checked per request.
const (
	ActorIDHeader   = "X-Actor-ID"
	ActorRoleHeader = "X-Actor-Role"
)

type actorKey struct{}

// Actor rejects requests without a known actor and stores it in the context.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := entities.Actor{
			ID:   r.Header.Get(ActorIDHeader),
			Role: entities.Role(r.Header.Get(ActorRoleHeader)),
		}

		if actor.ID == "" {
			utils.WriteError(w, "missing actor identity", http.StatusUnauthorized)
			return
		}
		switch actor.Role {
		case entities.RoleBuyer, entities.RoleSeller, entities.RoleOperator:
		default:
			utils.WriteError(w, "unknown actor role", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

func WithActor(ctx context.Context, actor entities.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFrom(ctx context.Context) (entities.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(entities.Actor)
	return actor, ok
}
