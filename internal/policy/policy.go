// Package policy holds the ownership rules deciding who may edit or
// delete which entity. Decisions are pure: they look only at the actor
// and the target, never at storage or transport. Expected denials are
// values, not errors.
package policy

import (
	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"

	"github.com/google/uuid"
)

// Action is the kind of mutation an actor wants to perform.
type Action string

const (
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID   uuid.UUID
	Role entity.Role
}

// Decision is the outcome of a policy check. Reason is user-facing and
// only set on denial.
type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}
