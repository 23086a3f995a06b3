package lifecycle

import (
	"github.com/SergeyBogomolovv/escrow-service/internal/entities"
)

// permissions maps each role to the actions it may request.
var permissions = map[entities.Role]map[entities.Action]bool{
	entities.RoleBuyer: {
		entities.ActionValidateDelivery: true,
		entities.ActionRequestRefund:    true,
		entities.ActionOpenDispute:      true,
		entities.ActionCancelOrder:      true,
	},
	entities.RoleSeller: {
		entities.ActionAcceptOrder:   true,
		entities.ActionMarkDelivered: true,
	},
	entities.RoleOperator: {
		entities.ActionResolveDispute: true,
	},
	entities.RolePlatform: {
		entities.ActionCapturePayment: true,
	},
}

// CanRequest reports whether actor may request action on the order.
// Only the actor, the role and the order parties are inspected, so a
// denial never depends on (or reveals) the current state pair. State
// preconditions are enforced by Transition.
func CanRequest(actor entities.Actor, order entities.Order, _ *entities.Escrow, action entities.Action) error {
	if actor.ID == "" || !permissions[actor.Role][action] {
		return entities.Reject(entities.ErrUnauthorized, "")
	}

	switch actor.Role {
	case entities.RoleBuyer:
		if actor.ID != order.BuyerID {
			return entities.Reject(entities.ErrUnauthorized, "")
		}
	case entities.RoleSeller:
		if actor.ID != order.SellerID {
			return entities.Reject(entities.ErrUnauthorized, "")
		}
	case entities.RoleOperator, entities.RolePlatform:
		// operators and the payment platform are never parties
		if order.IsParty(actor.ID) {
			return entities.Reject(entities.ErrUnauthorized, "")
		}
	}

	return nil
}
