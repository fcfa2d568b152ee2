package workflow

import (
	"strings"
	"time"

	"roofing_crm/internal/domain/entities"
)

type assignmentChange struct {
	field    string
	from, to string
}

// assignmentChanges lists the rep and commission percent fields u changes
// on d. Resending the stored value is not a change.
func assignmentChanges(d entities.Deal, u DealUpdate) []assignmentChange {
	var out []assignmentChange
	if u.RepID != nil && *u.RepID != d.RepID {
		out = append(out, assignmentChange{field: "rep_id", from: d.RepID, to: *u.RepID})
	}
	if u.RepName != nil && *u.RepName != d.RepName {
		out = append(out, assignmentChange{field: "rep_name", from: d.RepName, to: *u.RepName})
	}
	if u.CommissionPercent != nil {
		current := "0"
		if d.Commission != nil {
			current = d.Commission.Percent.String()
		}
		if d.Commission == nil || !d.Commission.Percent.Equal(*u.CommissionPercent) {
			out = append(out, assignmentChange{field: "commission_percent", from: current, to: u.CommissionPercent.String()})
		}
	}
	return out
}

// CheckAssignmentUpdate rejects a non-admin update that reassigns the rep or
// changes the commission percent.
func CheckAssignmentUpdate(d entities.Deal, u DealUpdate, actor entities.Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	changes := assignmentChanges(d, u)
	if len(changes) == 0 {
		return nil
	}
	fields := make([]string, 0, len(changes))
	for _, c := range changes {
		fields = append(fields, c.field)
	}
	return &RoleNotPermittedError{Role: actor.Role, Operation: "change " + strings.Join(fields, ", ")}
}

// AuditAssignment returns one audit entry per assignment field u changes.
func AuditAssignment(d entities.Deal, u DealUpdate, actor entities.Actor, now time.Time) []entities.AuditEntry {
	changes := assignmentChanges(d, u)
	if len(changes) == 0 {
		return nil
	}
	out := make([]entities.AuditEntry, 0, len(changes))
	for _, c := range changes {
		out = append(out, entities.AuditEntry{
			At: now, ActorID: actor.ID, Action: AuditAssignmentChanged, Detail: c.field + ": " + c.from + " -> " + c.to,
		})
	}
	return out
}
