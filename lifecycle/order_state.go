package lifecycle

import (
	"errors"

	"marketplace-api/models"
)

// Actors that may request a transition. The client enforces eligibility,
// the backend enforces authority; both consult the same table.
const (
	ActorCustomer   = "customer"
	ActorRestaurant = "restaurant"
	ActorSystem     = "system"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Restaurant confirms the order
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: ActorRestaurant},
	// Restaurant starts preparation
	{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: ActorRestaurant},
	// Restaurant hands the order to delivery
	{From: models.StatusPreparing, To: models.StatusDelivering, Actor: ActorRestaurant},
	// Delivery confirmed, by the restaurant surface or the system
	{From: models.StatusDelivering, To: models.StatusCompleted, Actor: ActorRestaurant},
	{From: models.StatusDelivering, To: models.StatusCompleted, Actor: ActorSystem},
	// Either side may cancel until the delivery is in motion
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorRestaurant},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorCustomer},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: ActorRestaurant},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: ActorCustomer},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: ActorRestaurant},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: ActorCustomer},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// CanCancel is the single source of truth for cancellation eligibility.
// Once a delivery is in motion the order can no longer be unilaterally
// cancelled, and terminal orders stay where they are.
func CanCancel(status models.OrderStatus) bool {
	switch status {
	case models.StatusDelivering, models.StatusCompleted, models.StatusCancelled:
		return false
	}
	return true
}

// IsTerminal reports whether no transition leaves the given status
func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusCompleted || status == models.StatusCancelled
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " → " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
