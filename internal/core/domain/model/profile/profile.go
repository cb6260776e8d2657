// Package profile contains actor identity: who a chat user is and what role
// they hold. Roles are stored externally; this model only interprets them.
package profile

import (
	"errors"

	"buffet/internal/core/domain/model/order"
	"buffet/internal/pkg/errs"
)

// ErrProfileIsNotConstructed is returned when a Profile instance was not
// created through the NewProfile factory method.
var ErrProfileIsNotConstructed = errors.New("Profile must be created via NewProfile constructor")

// Role is the stored authorization role of an actor.
type Role string

const (
	// RoleCustomer can build carts, check out, and view their own orders.
	RoleCustomer Role = "customer"

	// RoleOperatorLeft operates the left fulfillment station.
	RoleOperatorLeft Role = "operator_left"

	// RoleOperatorRight operates the right fulfillment station.
	RoleOperatorRight Role = "operator_right"
)

// RoleForStation returns the operator role scoped to the given station.
func RoleForStation(station order.Station) (Role, error) {
	switch station {
	case order.StationLeft:
		return RoleOperatorLeft, nil
	case order.StationRight:
		return RoleOperatorRight, nil
	default:
		return "", errs.NewValueIsInvalidError("station")
	}
}

// Validate checks that the role is a member of the enumeration.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleOperatorLeft, RoleOperatorRight:
		return nil
	default:
		return errs.NewValueIsInvalidError("role")
	}
}

// IsOperator reports whether the role is scoped to a station.
func (r Role) IsOperator() bool {
	return r == RoleOperatorLeft || r == RoleOperatorRight
}

// Station returns the station an operator role is scoped to,
// or NoStation for non-operator roles.
func (r Role) Station() order.Station {
	switch r {
	case RoleOperatorLeft:
		return order.StationLeft
	case RoleOperatorRight:
		return order.StationRight
	default:
		return order.NoStation
	}
}

// Profile is an actor known to the system: a chat identity with a role.
// The user ID doubles as the chat address for notifications.
type Profile struct {
	userID   int64
	username string
	fullName string
	role     Role

	isConstructed bool
}

// NewProfile creates a validated profile. Username may be empty (not every
// chat user has one); the user ID and role are mandatory.
func NewProfile(userID int64, username, fullName string, role Role) (Profile, error) {
	if userID <= 0 {
		return Profile{}, errs.NewValueIsRequiredError("userId")
	}
	if err := role.Validate(); err != nil {
		return Profile{}, err
	}

	return Profile{
		userID:        userID,
		username:      username,
		fullName:      fullName,
		role:          role,
		isConstructed: true,
	}, nil
}

// Validate ensures the Profile instance was properly constructed.
func (p Profile) Validate() error {
	if !p.isConstructed {
		return ErrProfileIsNotConstructed
	}
	return nil
}

// UserID returns the actor's chat identity.
func (p Profile) UserID() int64 {
	return p.userID
}

// Username returns the actor's chat username, possibly empty.
func (p Profile) Username() string {
	return p.username
}

// FullName returns the actor's display name.
func (p Profile) FullName() string {
	return p.fullName
}

// Role returns the actor's stored role.
func (p Profile) Role() Role {
	return p.role
}
