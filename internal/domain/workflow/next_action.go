package workflow

import "roofing_crm/internal/domain/entities"

// NextAction is the single "next step" a client renders for a deal.
type NextAction struct {
	Label        string              `json:"label"`
	TargetStatus entities.DealStatus `json:"target_status"`
	// AwaitingAdmin is set when the next status is an admin-only entry and
	// the viewer is not an admin: the client shows a waiting state instead
	// of a button.
	AwaitingAdmin bool `json:"awaiting_admin"`
}

// NextRequiredAction returns the next step from status for role, or nil when
// status is terminal or unknown. It is informational only.
func NextRequiredAction(status entities.DealStatus, role entities.Role) *NextAction {
	i := IndexOf(status)
	if i < 0 || IsTerminal(status) {
		return nil
	}
	next := catalog[i+1]
	if next.AdminOnly && role != entities.RoleAdmin {
		return &NextAction{Label: "Awaiting admin: " + next.Label, TargetStatus: next.Status, AwaitingAdmin: true}
	}
	return &NextAction{Label: next.ActionText, TargetStatus: next.Status}
}
