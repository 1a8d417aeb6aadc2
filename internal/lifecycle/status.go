// Package lifecycle models the finite set of statuses an order can occupy and
// the roles permitted to advance it.
package lifecycle

import "fmt"

// Status represents the current status of an order in its lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCooking   Status = "cooking"
	StatusReady     Status = "ready"
	StatusServed    Status = "served"
	StatusCancelled Status = "cancelled"
)

// Role identifies the actor requesting a transition.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleKitchen  Role = "kitchen"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// TransitionError reports an illegal transition or a role not permitted to
// perform an otherwise legal one.
type TransitionError struct {
	From Status
	To   Status
	Role Role
	// Forbidden is true when the transition itself is legal but the role is not
	// allowed to perform it.
	Forbidden bool
}

func (e *TransitionError) Error() string {
	if e.Forbidden {
		return fmt.Sprintf("role %s may not transition order from %s to %s", e.Role, e.From, e.To)
	}
	return fmt.Sprintf("illegal order transition from %s to %s", e.From, e.To)
}

// allowed maps each status to its legal successors and the roles permitted to
// take them. served and cancelled are terminal. Cancellation is the only
// transition reachable from more than one state.
var allowed = map[Status]map[Status][]Role{
	StatusPending: {
		StatusCooking:   {RoleKitchen, RoleStaff, RoleAdmin},
		StatusCancelled: {RoleStaff, RoleAdmin},
	},
	StatusCooking: {
		StatusReady:     {RoleKitchen, RoleStaff, RoleAdmin},
		StatusCancelled: {RoleStaff, RoleAdmin},
	},
	StatusReady: {
		StatusServed:    {RoleStaff, RoleAdmin},
		StatusCancelled: {RoleStaff, RoleAdmin},
	},
	StatusServed:    {},
	StatusCancelled: {},
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	_, ok := allowed[s]
	return ok
}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleKitchen, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible from s.
func (s Status) IsTerminal() bool {
	return s == StatusServed || s == StatusCancelled
}

// CanTransition checks if from->to is allowed for any role.
func CanTransition(from, to Status) bool {
	_, ok := allowed[from][to]
	return ok
}

// Transition validates that the given role may move an order from one status
// to another. It never mutates anything; callers apply the change only when
// the returned error is nil.
func Transition(from, to Status, role Role) error {
	roles, ok := allowed[from][to]
	if !ok {
		return &TransitionError{From: from, To: to, Role: role}
	}
	for _, r := range roles {
		if r == role {
			return nil
		}
	}
	return &TransitionError{From: from, To: to, Role: role, Forbidden: true}
}

// Next returns the single forward successor for an active status, mirroring
// the one-button flow on the staff and kitchen boards. ok is false for
// terminal states.
func Next(from Status) (Status, bool) {
	switch from {
	case StatusPending:
		return StatusCooking, true
	case StatusCooking:
		return StatusReady, true
	case StatusReady:
		return StatusServed, true
	default:
		return "", false
	}
}
