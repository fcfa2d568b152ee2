package workflow

import (
	"time"

	"roofing_crm/internal/domain/entities"
)

// GateState is the financial approval sub-state of a deal.
type GateState string

const (
	GateOpen    GateState = "open"
	GatePending GateState = "pending"
)

// GateStateOf returns open until an approval type and date are recorded.
func GateStateOf(d entities.Deal) GateState {
	if IsLocked(d) {
		return GatePending
	}
	return GateOpen
}

// IsLocked is the derived "locked" predicate: approval type and approved
// date are both set.
func IsLocked(d entities.Deal) bool {
	return d.ApprovalType != nil && d.ApprovedDate != nil
}

// CheckFinancialUpdate guards the locked financial fields.
//
// On a locked deal any of rcv/acv/deductible/depreciation carried with a
// different value is rejected. Resending the stored value is not a change.
// When the update locks the deal, the candidate must hold all four values.
func CheckFinancialUpdate(current entities.Deal, u DealUpdate, candidate entities.Deal) error {
	if u.ApprovalType != nil && !u.ApprovalType.Valid() {
		return ErrInvalidApprovalType
	}

	if IsLocked(current) {
		var touched []string
		for _, f := range lockedFinancials {
			v := f.update(u)
			if v == nil {
				continue
			}
			stored := f.stored(current)
			if stored == nil || !stored.Equal(*v) {
				touched = append(touched, f.name)
			}
		}
		if len(touched) > 0 {
			return &FinancialsLockedError{Fields: touched}
		}
		return nil
	}

	if IsLocked(candidate) {
		var missing []string
		for _, f := range lockedFinancials {
			if f.stored(candidate) == nil {
				missing = append(missing, f.name)
			}
		}
		if len(missing) > 0 {
			return &IncompleteApprovalSnapshotError{Missing: missing}
		}
	}
	return nil
}

// ApplyFinancialUpdate merges u into d after the gate accepts it.
func ApplyFinancialUpdate(d entities.Deal, u DealUpdate, now time.Time) (entities.Deal, error) {
	candidate := Merge(d, u, now)
	if err := CheckFinancialUpdate(d, u, candidate); err != nil {
		return d, err
	}
	return candidate, nil
}

// Unlock clears the approval so financial fields can be corrected. reason
// is mandatory and recorded in the audit log.
func Unlock(d entities.Deal, actor entities.Actor, reason string, now time.Time) (entities.Deal, error) {
	if !actor.IsAdmin() {
		return d, &RoleNotPermittedError{Role: actor.Role, Operation: "unlock financials"}
	}
	if trimmed(reason) == "" {
		return d, ErrUnlockReasonRequired
	}
	out := d.Clone()
	if !IsLocked(out) && out.ApprovalType == nil {
		return out, nil
	}
	detail := reason
	if out.ApprovalType != nil {
		detail = string(*out.ApprovalType) + ": " + reason
	}
	out.ApprovalType = nil
	out.ApprovedDate = nil
	out.UpdatedAt = now
	out.AuditLog = append(out.AuditLog, entities.AuditEntry{At: now, ActorID: actor.ID, Action: AuditFinancialsUnlocked, Detail: detail})
	return out, nil
}
