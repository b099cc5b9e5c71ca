package kernel

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// ActorRole is the caller role supplied by the identity provider.
type ActorRole string

const (
	// ActorRoleAdmin may dispatch trucks and crew of any store.
	ActorRoleAdmin   ActorRole = "admin"
	ActorRoleManager ActorRole = "manager"
	ActorRoleClerk   ActorRole = "clerk"
)

func (r ActorRole) IsValid() bool {
	switch r {
	case ActorRoleAdmin, ActorRoleManager, ActorRoleClerk:
		return true
	}
	return false
}

// ParseActorRole is case-insensitive.
func ParseActorRole(value string) (ActorRole, error) {
	role := ActorRole(strings.ToLower(strings.TrimSpace(value)))
	if !role.IsValid() {
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", value))
	}
	return role, nil
}

// Actor is the identity context of a request: who calls, with which role, on behalf
// of which home store. Admins are not bound to a store.
type Actor struct {
	subject string
	role    ActorRole
	storeID *UUID
	guard   guard.ConstructorGuard
}

// NewActor requires a home store for every role except admin.
func NewActor(subject string, role ActorRole, storeID *UUID) (Actor, error) {
	if !role.IsValid() {
		return Actor{}, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", role))
	}
	if role != ActorRoleAdmin {
		if storeID == nil {
			return Actor{}, errs.NewValueIsRequiredError("store_id")
		}
		if err := storeID.Validate(); err != nil {
			return Actor{}, err
		}
	}
	return Actor{
		subject: subject,
		role:    role,
		storeID: storeID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) Subject() string {
	return a.subject
}

func (a Actor) Role() ActorRole {
	return a.role
}

// StoreID is nil for admins without a home store.
func (a Actor) StoreID() *UUID {
	return a.storeID
}

// IsCrossStore reports the elevated privilege that lifts home-store restrictions.
func (a Actor) IsCrossStore() bool {
	return a.role == ActorRoleAdmin
}

// CanActFor returns AccessDenied when a store-bound actor targets another store.
func (a Actor) CanActFor(storeID UUID) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.IsCrossStore() {
		return nil
	}
	if a.storeID == nil || !a.storeID.IsEqual(storeID) {
		return errs.NewAccessDeniedError("store", storeID.String())
	}
	return nil
}
