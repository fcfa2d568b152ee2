package workflow

import (
	"fmt"

	"roofing_crm/internal/domain/entities"
)

// CanTransition decides whether current may move to target.
//
// candidate is the deal with the incoming update merged in; required fields
// are evaluated on it so a single call may both supply the data and move
// the status. Checks run in a fixed order: unknown status, backward move,
// role, required fields. Moving to the current status is a no-op.
//
// The role rule covers every status entered on the way, so a non-admin
// cannot jump past an admin-only entry point.
func CanTransition(current, candidate entities.Deal, target entities.DealStatus, actor entities.Role, confirmBackward bool) error {
	if _, ok := Lookup(target); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, target)
	}
	if target == current.Status {
		return nil
	}

	if IndexOf(target) < IndexOf(current.Status) {
		admin := actor == entities.RoleAdmin
		if !admin || !confirmBackward {
			return &BackwardTransitionError{From: current.Status, To: target, ConfirmationRequired: admin}
		}
	}

	if actor != entities.RoleAdmin {
		if gate, ok := firstAdminOnly(current.Status, target); ok {
			return &RoleNotPermittedError{Role: actor, Operation: "enter status " + string(gate)}
		}
	}

	if field, ok := FirstUnmetRequirement(candidate, target); !ok {
		return &MissingRequiredFieldError{Status: target, Field: field}
	}
	return nil
}

// FirstUnmetRequirement returns the first requirement of target that d does
// not satisfy, in declaration order. ok is true when all are met.
func FirstUnmetRequirement(d entities.Deal, target entities.DealStatus) (field string, ok bool) {
	def, _ := Lookup(target)
	for _, req := range def.Requires {
		if !req.Satisfied(d) {
			return req.Field, false
		}
	}
	return "", true
}

// firstAdminOnly returns the first admin-only status after from, up to and
// including to.
func firstAdminOnly(from, to entities.DealStatus) (entities.DealStatus, bool) {
	end := IndexOf(to)
	for i := IndexOf(from) + 1; i <= end; i++ {
		if i >= 0 && catalog[i].AdminOnly {
			return catalog[i].Status, true
		}
	}
	return "", false
}
