package lifecycle

import (
	"github.com/SergeyBogomolovv/escrow-service/internal/entities"
)

// Pair is the combined state of an order and its escrow.
type Pair struct {
	Order  entities.OrderState
	Escrow entities.EscrowState
}

func (p Pair) String() string {
	escrow := string(p.Escrow)
	if p.Escrow == entities.EscrowNone {
		escrow = "-"
	}
	return string(p.Order) + "/" + escrow
}

var (
	pairPending    = Pair{entities.OrderPending, entities.EscrowNone}
	pairInProgress = Pair{entities.OrderInProgress, entities.EscrowHeld}
	pairDelivered  = Pair{entities.OrderDelivered, entities.EscrowHeld}
	pairDisputed   = Pair{entities.OrderDisputed, entities.EscrowDisputed}
	pairCompleted  = Pair{entities.OrderCompleted, entities.EscrowReleased}
	pairCancelled  = Pair{entities.OrderCancelled, entities.EscrowNone}
	pairRefunded   = Pair{entities.OrderCancelled, entities.EscrowRefunded}
)

// LegalPairs lists every pairing an order and its escrow may be persisted in.
var LegalPairs = []Pair{
	pairPending,
	pairInProgress,
	pairDelivered,
	pairDisputed,
	pairCompleted,
	pairCancelled,
	pairRefunded,
}

func IsLegal(p Pair) bool {
	for _, legal := range LegalPairs {
		if p == legal {
			return true
		}
	}
	return false
}

func IsTerminal(p Pair) bool {
	return p == pairCompleted || p == pairCancelled || p == pairRefunded
}

type kind int

const (
	// apply moves the pair to next.
	apply kind = iota
	// acknowledge records the request without changing the pair.
	acknowledge
	// replay answers an already satisfied request; nothing is persisted.
	replay
)

type key struct {
	from    Pair
	action  entities.Action
	verdict entities.Verdict
}

type rule struct {
	next   Pair
	effect entities.Effect
	kind   kind
}

// table is the complete set of legal (pair, action) combinations.
// Anything missing here is an invalid transition.
var table = map[key]rule{
	{pairPending, entities.ActionCapturePayment, entities.VerdictNone}: {pairInProgress, entities.EffectHold, apply},
	{pairPending, entities.ActionAcceptOrder, entities.VerdictNone}:    {pairPending, entities.EffectNone, acknowledge},
	{pairPending, entities.ActionCancelOrder, entities.VerdictNone}:    {pairCancelled, entities.EffectNone, apply},

	{pairInProgress, entities.ActionMarkDelivered, entities.VerdictNone}: {pairDelivered, entities.EffectNone, apply},

	{pairDelivered, entities.ActionValidateDelivery, entities.VerdictNone}: {pairCompleted, entities.EffectRelease, apply},
	{pairDelivered, entities.ActionOpenDispute, entities.VerdictNone}:      {pairDisputed, entities.EffectNone, apply},
	{pairDelivered, entities.ActionRequestRefund, entities.VerdictNone}:    {pairDisputed, entities.EffectNone, apply},

	{pairDisputed, entities.ActionResolveDispute, entities.VerdictRelease}: {pairCompleted, entities.EffectRelease, apply},
	{pairDisputed, entities.ActionResolveDispute, entities.VerdictRefund}:  {pairRefunded, entities.EffectRefund, apply},

	{pairCompleted, entities.ActionValidateDelivery, entities.VerdictNone}:  {pairCompleted, entities.EffectNone, replay},
	{pairCompleted, entities.ActionResolveDispute, entities.VerdictRelease}: {pairCompleted, entities.EffectNone, replay},
	{pairCompleted, entities.ActionResolveDispute, entities.VerdictRefund}:  {pairCompleted, entities.EffectNone, replay},
	{pairRefunded, entities.ActionResolveDispute, entities.VerdictRelease}:  {pairRefunded, entities.EffectNone, replay},
	{pairRefunded, entities.ActionResolveDispute, entities.VerdictRefund}:   {pairRefunded, entities.EffectNone, replay},

	// at-least-once delivery of the capture event
	{pairInProgress, entities.ActionCapturePayment, entities.VerdictNone}: {pairInProgress, entities.EffectNone, replay},
	{pairDelivered, entities.ActionCapturePayment, entities.VerdictNone}:  {pairDelivered, entities.EffectNone, replay},
	{pairDisputed, entities.ActionCapturePayment, entities.VerdictNone}:   {pairDisputed, entities.EffectNone, replay},
	{pairCompleted, entities.ActionCapturePayment, entities.VerdictNone}:  {pairCompleted, entities.EffectNone, replay},
	{pairRefunded, entities.ActionCapturePayment, entities.VerdictNone}:   {pairRefunded, entities.EffectNone, replay},
}

func lookup(from Pair, action entities.Action, verdict entities.Verdict) (rule, bool) {
	if action != entities.ActionResolveDispute {
		verdict = entities.VerdictNone
	}
	r, ok := table[key{from: from, action: action, verdict: verdict}]
	return r, ok
}
