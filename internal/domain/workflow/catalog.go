// Package workflow holds the deal progression rules: the status catalog,
// transition validation, the financial approval gate, commission
// calculation and the side effects of a status change.
//
// Everything here is a pure function of its inputs. Persistence and pin
// updates are performed by the usecase layer.
package workflow

import (
	"strings"

	"roofing_crm/internal/domain/entities"
)

// Phase is a coarse grouping of statuses used for display.
type Phase string

const (
	PhaseSign       Phase = "sign"
	PhaseBuild      Phase = "build"
	PhaseFinalizing Phase = "finalizing"
	PhaseComplete   Phase = "complete"
)

// Bucket is the short administrative projection of the catalog used by
// progress bars. It must never drive validation.
type Bucket string

const (
	BucketLead       Bucket = "lead"
	BucketInsurance  Bucket = "insurance"
	BucketApproved   Bucket = "approved"
	BucketProduction Bucket = "production"
	BucketInstalled  Bucket = "installed"
	BucketFinalizing Bucket = "finalizing"
	BucketPaid       Bucket = "paid"
)

// Requirement is a precondition for entering a status, evaluated against
// the merged deal snapshot.
type Requirement struct {
	Field     string
	Satisfied func(d entities.Deal) bool
}

// StatusDef describes one entry of the catalog.
type StatusDef struct {
	Status     entities.DealStatus
	Phase      Phase
	Bucket     Bucket
	Label      string
	ActionText string
	AdminOnly  bool
	Requires   []Requirement
}

var catalog = []StatusDef{
	{Status: entities.DealStatusLead, Phase: PhaseSign, Bucket: BucketLead, Label: "Lead", ActionText: "Create Lead"},
	{Status: entities.DealStatusInspectionScheduled, Phase: PhaseSign, Bucket: BucketLead, Label: "Inspection Scheduled", ActionText: "Schedule Inspection",
		Requires: []Requirement{{Field: "inspection_date", Satisfied: func(d entities.Deal) bool { return d.InspectionDate != nil }}}},
	{Status: entities.DealStatusClaimFiled, Phase: PhaseSign, Bucket: BucketInsurance, Label: "Claim Filed", ActionText: "File Claim",
		Requires: []Requirement{
			{Field: "claim_number", Satisfied: func(d entities.Deal) bool { return strings.TrimSpace(d.ClaimNumber) != "" }},
			{Field: "insurance_company", Satisfied: func(d entities.Deal) bool { return strings.TrimSpace(d.InsuranceCompany) != "" }},
		}},
	{Status: entities.DealStatusAdjusterScheduled, Phase: PhaseSign, Bucket: BucketInsurance, Label: "Adjuster Scheduled", ActionText: "Schedule Adjuster",
		Requires: []Requirement{{Field: "adjuster_meeting_date", Satisfied: func(d entities.Deal) bool { return d.AdjusterMeetingDate != nil }}}},
	{Status: entities.DealStatusAdjusterMet, Phase: PhaseSign, Bucket: BucketInsurance, Label: "Adjuster Met", ActionText: "Mark Adjuster Met"},
	{Status: entities.DealStatusAwaitingApproval, Phase: PhaseSign, Bucket: BucketInsurance, Label: "Awaiting Approval", ActionText: "Submit For Approval"},
	{Status: entities.DealStatusApproved, Phase: PhaseSign, Bucket: BucketApproved, Label: "Approved", ActionText: "Record Approval", AdminOnly: true,
		Requires: []Requirement{{Field: "approval_type", Satisfied: func(d entities.Deal) bool { return d.ApprovalType != nil }}}},
	{Status: entities.DealStatusSigned, Phase: PhaseSign, Bucket: BucketApproved, Label: "Contract Signed", ActionText: "Sign Contract",
		Requires: []Requirement{{Field: "signature", Satisfied: entities.Deal.IsSigned}}},
	{Status: entities.DealStatusCollectACV, Phase: PhaseBuild, Bucket: BucketProduction, Label: "Collect ACV", ActionText: "Collect ACV"},
	{Status: entities.DealStatusCollectDeductible, Phase: PhaseBuild, Bucket: BucketProduction, Label: "Collect Deductible", ActionText: "Collect Deductible"},
	{Status: entities.DealStatusMaterialsSelected, Phase: PhaseBuild, Bucket: BucketProduction, Label: "Materials Selected", ActionText: "Select Materials"},
	{Status: entities.DealStatusInstallScheduled, Phase: PhaseBuild, Bucket: BucketProduction, Label: "Install Scheduled", ActionText: "Schedule Install", AdminOnly: true,
		Requires: []Requirement{{Field: "install_date", Satisfied: func(d entities.Deal) bool { return d.InstallDate != nil }}}},
	{Status: entities.DealStatusInstalled, Phase: PhaseBuild, Bucket: BucketInstalled, Label: "Installed", ActionText: "Mark Installed",
		Requires: []Requirement{hasAsset(entities.AssetInstallPhotos)}},
	{Status: entities.DealStatusInvoiceSent, Phase: PhaseFinalizing, Bucket: BucketFinalizing, Label: "Invoice Sent", ActionText: "Send Invoice", AdminOnly: true,
		Requires: []Requirement{hasAsset(entities.AssetInvoices)}},
	{Status: entities.DealStatusDepreciationCollected, Phase: PhaseFinalizing, Bucket: BucketFinalizing, Label: "Depreciation Collected", ActionText: "Collect Depreciation"},
	{Status: entities.DealStatusComplete, Phase: PhaseComplete, Bucket: BucketFinalizing, Label: "Complete", ActionText: "Mark Complete", AdminOnly: true,
		Requires: []Requirement{hasAsset(entities.AssetCompletionPhotos)}},
	{Status: entities.DealStatusPaid, Phase: PhaseComplete, Bucket: BucketPaid, Label: "Paid", ActionText: "Confirm Payout", AdminOnly: true},
}

var catalogIndex = func() map[entities.DealStatus]int {
	m := make(map[entities.DealStatus]int, len(catalog))
	for i, def := range catalog {
		m[def.Status] = i
	}
	return m
}()

// legacyStatuses maps the older short vocabulary still found in stored
// records onto the canonical catalog.
var legacyStatuses = map[string]entities.DealStatus{
	"new":               entities.DealStatusLead,
	"inspection":        entities.DealStatusInspectionScheduled,
	"pending":           entities.DealStatusAwaitingApproval,
	"materials_ordered": entities.DealStatusMaterialsSelected,
	"permit":            entities.DealStatusMaterialsSelected,
	"scheduled":         entities.DealStatusInstallScheduled,
	"invoiced":          entities.DealStatusInvoiceSent,
}

func hasAsset(kind entities.AssetKind) Requirement {
	return Requirement{
		Field:     string(kind),
		Satisfied: func(d entities.Deal) bool { return len(d.AssetsOf(kind)) > 0 },
	}
}

// Statuses returns the catalog in progression order.
func Statuses() []StatusDef {
	out := make([]StatusDef, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the definition of s.
func Lookup(s entities.DealStatus) (StatusDef, bool) {
	i, ok := catalogIndex[s]
	if !ok {
		return StatusDef{}, false
	}
	return catalog[i], true
}

// IndexOf returns the position of s in the progression, or -1 when unknown.
func IndexOf(s entities.DealStatus) int {
	if i, ok := catalogIndex[s]; ok {
		return i
	}
	return -1
}

func PhaseOf(s entities.DealStatus) Phase {
	def, _ := Lookup(s)
	return def.Phase
}

// IsTerminal is true only for the final paid status.
func IsTerminal(s entities.DealStatus) bool {
	return IndexOf(s) == len(catalog)-1
}

func BucketOf(s entities.DealStatus) Bucket {
	def, _ := Lookup(s)
	return def.Bucket
}

func Label(s entities.DealStatus) string {
	def, ok := Lookup(s)
	if !ok {
		return string(s)
	}
	return def.Label
}

func IsKnown(s entities.DealStatus) bool {
	_, ok := catalogIndex[s]
	return ok
}

// PhaseEntry returns the first status of phase p.
func PhaseEntry(p Phase) entities.DealStatus {
	for _, def := range catalog {
		if def.Phase == p {
			return def.Status
		}
	}
	return ""
}

// TranslateLegacyStatus maps a stored or client-supplied status onto the
// canonical catalog. Canonical names pass through unchanged.
func TranslateLegacyStatus(raw string) (entities.DealStatus, bool) {
	s := entities.DealStatus(strings.ToLower(strings.TrimSpace(raw)))
	if IsKnown(s) {
		return s, true
	}
	if canonical, ok := legacyStatuses[string(s)]; ok {
		return canonical, true
	}
	return "", false
}

// ParseStatus is TranslateLegacyStatus with an error for unknown values.
func ParseStatus(raw string) (entities.DealStatus, error) {
	s, ok := TranslateLegacyStatus(raw)
	if !ok {
		return "", ErrUnknownStatus
	}
	return s, nil
}
