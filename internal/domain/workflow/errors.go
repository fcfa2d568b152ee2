package workflow

import (
	"errors"
	"fmt"
	"strings"

	"roofing_crm/internal/domain/entities"
)

var (
	ErrUnknownStatus              = errors.New("unknown deal status")
	ErrBackwardTransitionRejected = errors.New("backward transition rejected")
	ErrMissingRequiredField       = errors.New("missing required field")
	ErrRoleNotPermitted           = errors.New("role not permitted")
	ErrFinancialsLocked           = errors.New("financials locked")
	ErrIncompleteApprovalSnapshot = errors.New("incomplete approval snapshot")
	ErrInvalidOverride            = errors.New("invalid commission override")
	ErrCommissionNotPayable       = errors.New("commission not payable in current status")
	ErrSideEffectPartialFailure   = errors.New("side effect partial failure")
	ErrInvalidApprovalType        = errors.New("invalid approval type")
	ErrInvalidSignature           = errors.New("invalid signature")
	ErrUnlockReasonRequired       = errors.New("unlock reason required")
)

// BackwardTransitionError is returned when a move lowers the status index
// without an admin confirming it.
type BackwardTransitionError struct {
	From entities.DealStatus
	To   entities.DealStatus
	// ConfirmationRequired is true when the actor may retry with confirmation.
	ConfirmationRequired bool
}

func (e *BackwardTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrBackwardTransitionRejected, e.From, e.To)
}

func (e *BackwardTransitionError) Unwrap() error { return ErrBackwardTransitionRejected }

// MissingRequiredFieldError names the first unmet requirement of the target status.
type MissingRequiredFieldError struct {
	Status entities.DealStatus
	Field  string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("%s: %s (entering %s)", ErrMissingRequiredField, e.Field, e.Status)
}

func (e *MissingRequiredFieldError) Unwrap() error { return ErrMissingRequiredField }

type RoleNotPermittedError struct {
	Role      entities.Role
	Operation string
}

func (e *RoleNotPermittedError) Error() string {
	return fmt.Sprintf("%s: role %q cannot %s", ErrRoleNotPermitted, e.Role, e.Operation)
}

func (e *RoleNotPermittedError) Unwrap() error { return ErrRoleNotPermitted }

type FinancialsLockedError struct {
	Fields []string
}

func (e *FinancialsLockedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrFinancialsLocked, strings.Join(e.Fields, ", "))
}

func (e *FinancialsLockedError) Unwrap() error { return ErrFinancialsLocked }

type IncompleteApprovalSnapshotError struct {
	Missing []string
}

func (e *IncompleteApprovalSnapshotError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrIncompleteApprovalSnapshot, strings.Join(e.Missing, ", "))
}

func (e *IncompleteApprovalSnapshotError) Unwrap() error { return ErrIncompleteApprovalSnapshot }

type InvalidOverrideError struct {
	Reason string
}

func (e *InvalidOverrideError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidOverride, e.Reason)
}

func (e *InvalidOverrideError) Unwrap() error { return ErrInvalidOverride }

// SideEffectPartialFailure lists pins whose sync failed after a successful
// deal write. It is informational: the deal update stands.
type SideEffectPartialFailure struct {
	FailedPinIDs []string
	Causes       []error
}

func (e *SideEffectPartialFailure) Error() string {
	return fmt.Sprintf("%s: pins [%s]", ErrSideEffectPartialFailure, strings.Join(e.FailedPinIDs, ", "))
}

func (e *SideEffectPartialFailure) Unwrap() error { return ErrSideEffectPartialFailure }

// Add records one failed pin.
func (e *SideEffectPartialFailure) Add(pinID string, cause error) {
	e.FailedPinIDs = append(e.FailedPinIDs, pinID)
	e.Causes = append(e.Causes, cause)
}

func (e *SideEffectPartialFailure) Empty() bool {
	return e == nil || (len(e.FailedPinIDs) == 0 && len(e.Causes) == 0)
}
