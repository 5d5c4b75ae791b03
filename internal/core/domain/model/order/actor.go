package order

import (
	"fmt"

	"shop/internal/pkg/errs"
)

// Actor identifies who initiated a status change. Every ledger entry records
// its actor so the history shows whether a step was taken by the customer,
// an administrator, or the auto-progression sweep.
type Actor int

const (
	// ActorUnknown represents an invalid or undefined actor.
	ActorUnknown Actor = iota

	// ActorCustomer is the order's owner acting through the storefront.
	ActorCustomer

	// ActorAdmin is a back-office administrator.
	ActorAdmin

	// ActorSystem is the scheduled auto-progression sweep.
	ActorSystem
)

func getActorStrings() map[Actor]string {
	return map[Actor]string{
		ActorUnknown:  "unknown",
		ActorCustomer: "customer",
		ActorAdmin:    "admin",
		ActorSystem:   "system",
	}
}

func getValidActorStrings() map[Actor]string {
	//nolint:exhaustive // ActorUnknown is intentionally excluded as it's invalid
	return map[Actor]string{
		ActorCustomer: "customer",
		ActorAdmin:    "admin",
		ActorSystem:   "system",
	}
}

// ActorFromString parses the wire representation of an actor role.
func ActorFromString(s string) (Actor, error) {
	for actor, str := range getValidActorStrings() {
		if str == s {
			return actor, nil
		}
	}
	return ActorUnknown, errs.NewValueIsInvalidErrorWithCause("actor is invalid",
		fmt.Errorf("%q is not a valid actor", s))
}

// Validate checks if the Actor value is valid.
func (a Actor) Validate() error {
	if _, ok := getValidActorStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("actor is invalid",
			fmt.Errorf("%d is not a valid actor", a))
	}
	return nil
}

// String returns the wire name of the actor ("customer", "admin", "system").
// Invalid values render as "unknown". Implements fmt.Stringer.
func (a Actor) String() string {
	if str, ok := getActorStrings()[a]; ok {
		return str
	}
	return "unknown"
}
