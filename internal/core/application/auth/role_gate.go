// Package auth provides the role gate: an explicit authorization call invoked
// at the start of each protected operation. It replaces hidden decorator-style
// role checks with a visible precondition that returns a capability value the
// operation consumes.
package auth

import (
	"context"
	"errors"
	"log/slog"

	"buffet/internal/core/domain/model/order"
	"buffet/internal/core/domain/model/profile"
	"buffet/internal/core/ports"
)

// ErrDenied is the only authorization failure the gate ever returns. It is
// deliberately generic: a denial must not reveal whether the actor exists,
// what role they hold, or why the check failed. The cause is logged instead.
var ErrDenied = errors.New("access denied")

// Capability names an ability an operation requires of its actor.
type Capability int

const (
	// CapabilityCustomer allows building carts, checking out, and viewing
	// one's own orders.
	CapabilityCustomer Capability = iota + 1

	// CapabilityOperator allows station-scoped order handling. A grant of
	// this capability always carries the operator's station.
	CapabilityOperator
)

// Grant is the capability value returned by a successful authorization.
// Station-scoped operations consume the Station carried by the grant; an
// operator for the left station holds a grant that never matches the right.
type Grant struct {
	actorID int64
	role    profile.Role
	station order.Station
}

// ActorID returns the authorized actor's chat identity.
func (g Grant) ActorID() int64 {
	return g.actorID
}

// Role returns the role the grant was issued for.
func (g Grant) Role() profile.Role {
	return g.role
}

// Station returns the station an operator grant is scoped to,
// or NoStation for customer grants.
func (g Grant) Station() order.Station {
	return g.station
}

// RoleGate authorizes actors against their stored profiles.
type RoleGate struct {
	profiles ports.ProfileRepository
	logger   *slog.Logger
}

// NewRoleGate creates a role gate over the given profile repository.
func NewRoleGate(profiles ports.ProfileRepository, logger *slog.Logger) *RoleGate {
	return &RoleGate{
		profiles: profiles,
		logger:   logger.With("component", "role_gate"),
	}
}

// Authorize looks up the actor's role and checks it against the required
// capability. On success it returns a Grant carrying the actor's station for
// operator roles. Every failure mode returns ErrDenied; lookup errors and
// missing profiles are logged but never distinguished to the caller.
func (rg *RoleGate) Authorize(ctx context.Context, actorID int64, required Capability) (Grant, error) {
	p, err := rg.profiles.Get(ctx, actorID)
	if err != nil {
		rg.logger.WarnContext(ctx, "authorization lookup failed", "actor_id", actorID, "error", err)
		return Grant{}, ErrDenied
	}

	switch required {
	case CapabilityCustomer:
		if p.Role() != profile.RoleCustomer {
			return Grant{}, ErrDenied
		}
	case CapabilityOperator:
		if !p.Role().IsOperator() {
			return Grant{}, ErrDenied
		}
	default:
		return Grant{}, ErrDenied
	}

	return Grant{
		actorID: actorID,
		role:    p.Role(),
		station: p.Role().Station(),
	}, nil
}
