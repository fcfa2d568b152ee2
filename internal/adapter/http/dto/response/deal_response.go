package response

import (
	"roofing_crm/internal/domain/entities"
	"roofing_crm/internal/domain/workflow"
	"roofing_crm/internal/usecase"
)

// DealResponse is the deal plus the derived fields the pipeline board needs.
type DealResponse struct {
	entities.Deal
	StatusLabel      string             `json:"status_label"`
	Phase            workflow.Phase     `json:"phase"`
	Bucket           workflow.Bucket    `json:"bucket"`
	GateState        workflow.GateState `json:"gate_state"`
	FinancialsLocked bool               `json:"financials_locked"`
}

func FromDeal(d entities.Deal) DealResponse {
	return DealResponse{
		Deal:             d,
		StatusLabel:      workflow.Label(d.Status),
		Phase:            workflow.PhaseOf(d.Status),
		Bucket:           workflow.BucketOf(d.Status),
		GateState:        workflow.GateStateOf(d),
		FinancialsLocked: workflow.IsLocked(d),
	}
}

// WarningResponse reports a partial failure next to a successful result.
type WarningResponse struct {
	Code         string   `json:"code"`
	Message      string   `json:"message"`
	FailedPinIDs []string `json:"failed_pin_ids,omitempty"`
}

func FromPartialFailure(w *workflow.SideEffectPartialFailure) *WarningResponse {
	if w.Empty() {
		return nil
	}
	return &WarningResponse{
		Code:         "SIDE_EFFECT_PARTIAL_FAILURE",
		Message:      "Deal saved but some pins could not be synced",
		FailedPinIDs: append([]string(nil), w.FailedPinIDs...),
	}
}

type DealResultResponse struct {
	Deal    DealResponse     `json:"deal"`
	Warning *WarningResponse `json:"warning,omitempty"`
}

func FromApplyResult(r usecase.ApplyResult) DealResultResponse {
	return DealResultResponse{
		Deal:    FromDeal(r.Deal),
		Warning: FromPartialFailure(r.Warning),
	}
}

// NextActionResponse holds a null next_action for terminal deals.
type NextActionResponse struct {
	DealID     string               `json:"deal_id"`
	NextAction *workflow.NextAction `json:"next_action"`
}

type StatusResponse struct {
	Status     entities.DealStatus `json:"status"`
	Index      int                 `json:"index"`
	Label      string              `json:"label"`
	ActionText string              `json:"action_text"`
	Phase      workflow.Phase      `json:"phase"`
	Bucket     workflow.Bucket     `json:"bucket"`
	AdminOnly  bool                `json:"admin_only"`
	Requires   []string            `json:"requires"`
}

// FromCatalog lists the statuses in pipeline order.
func FromCatalog(defs []workflow.StatusDef) []StatusResponse {
	out := make([]StatusResponse, 0, len(defs))
	for i, d := range defs {
		req := make([]string, 0, len(d.Requires))
		for _, r := range d.Requires {
			req = append(req, r.Field)
		}
		out = append(out, StatusResponse{
			Status:     d.Status,
			Index:      i,
			Label:      d.Label,
			ActionText: d.ActionText,
			Phase:      d.Phase,
			Bucket:     d.Bucket,
			AdminOnly:  d.AdminOnly,
			Requires:   req,
		})
	}
	return out
}
