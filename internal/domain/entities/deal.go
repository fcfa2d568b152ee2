package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// DealStatus is a position in the canonical deal progression.
// Ordering, phases and gates live in the workflow package.
type DealStatus string

const (
	DealStatusLead                  DealStatus = "lead"
	DealStatusInspectionScheduled   DealStatus = "inspection_scheduled"
	DealStatusClaimFiled            DealStatus = "claim_filed"
	DealStatusAdjusterScheduled     DealStatus = "adjuster_scheduled"
	DealStatusAdjusterMet           DealStatus = "adjuster_met"
	DealStatusAwaitingApproval      DealStatus = "awaiting_approval"
	DealStatusApproved              DealStatus = "approved"
	DealStatusSigned                DealStatus = "signed"
	DealStatusCollectACV            DealStatus = "collect_acv"
	DealStatusCollectDeductible     DealStatus = "collect_deductible"
	DealStatusMaterialsSelected     DealStatus = "materials_selected"
	DealStatusInstallScheduled      DealStatus = "install_scheduled"
	DealStatusInstalled             DealStatus = "installed"
	DealStatusInvoiceSent           DealStatus = "invoice_sent"
	DealStatusDepreciationCollected DealStatus = "depreciation_collected"
	DealStatusComplete              DealStatus = "complete"
	DealStatusPaid                  DealStatus = "paid"
)

// ApprovalType records how the insurance carrier approved the claim.
type ApprovalType string

const (
	ApprovalTypeFull             ApprovalType = "full"
	ApprovalTypePartial          ApprovalType = "partial"
	ApprovalTypeSupplementNeeded ApprovalType = "supplement_needed"
	ApprovalTypeSale             ApprovalType = "sale"
)

func (a ApprovalType) Valid() bool {
	switch a {
	case ApprovalTypeFull, ApprovalTypePartial, ApprovalTypeSupplementNeeded, ApprovalTypeSale:
		return true
	}
	return false
}

// AssetKind names one of the document/photo collections owned by a deal.
type AssetKind string

const (
	AssetInspectionPhotos AssetKind = "inspection_photos"
	AssetInstallPhotos    AssetKind = "install_photos"
	AssetCompletionPhotos AssetKind = "completion_photos"
	AssetPermits          AssetKind = "permit_urls"
	AssetInvoices         AssetKind = "invoice_urls"
	AssetLostStatements   AssetKind = "lost_statement_urls"
	AssetAgreements       AssetKind = "agreement_urls"
)

var AssetKinds = []AssetKind{
	AssetInspectionPhotos,
	AssetInstallPhotos,
	AssetCompletionPhotos,
	AssetPermits,
	AssetInvoices,
	AssetLostStatements,
	AssetAgreements,
}

func (k AssetKind) Valid() bool {
	for _, v := range AssetKinds {
		if v == k {
			return true
		}
	}
	return false
}

// Signature is present only once the homeowner signed the contract.
type Signature struct {
	SignedAt time.Time `json:"signed_at"`
	URL      string    `json:"url"`
}

// CommissionOverride replaces the computed commission. Amount and Reason
// always travel together.
type CommissionOverride struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
	Date   time.Time       `json:"date"`
}

// DealCommission is the per-deal commission record. A nil Amount means the
// amount is not recorded yet and is computed on read.
type DealCommission struct {
	Percent decimal.Decimal  `json:"commission_percent"`
	Amount  *decimal.Decimal `json:"commission_amount,omitempty"`
	Paid    bool             `json:"paid"`
}

// AuditEntry is an append-only record of an administrative action.
type AuditEntry struct {
	At      time.Time `json:"at"`
	ActorID string    `json:"actor_id"`
	Action  string    `json:"action"`
	Detail  string    `json:"detail,omitempty"`
}

// Deal is a roofing job tracked from lead to paid commission.
//
// Storage model (DynamoDB):
//   - PK: id
//   - asset collections are string sets mutated with ADD/DELETE only
type Deal struct {
	ID        string    `json:"id"`
	PinID     string    `json:"pin_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	HomeownerName string `json:"homeowner_name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Notes         string `json:"notes"`

	Status       DealStatus    `json:"status"`
	ApprovalType *ApprovalType `json:"approval_type,omitempty"`
	ApprovedDate *time.Time    `json:"approved_date,omitempty"`

	ClaimNumber         string     `json:"claim_number"`
	InsuranceCompany    string     `json:"insurance_company"`
	InspectionDate      *time.Time `json:"inspection_date,omitempty"`
	AdjusterMeetingDate *time.Time `json:"adjuster_meeting_date,omitempty"`
	InstallDate         *time.Time `json:"install_date,omitempty"`

	RCV          *decimal.Decimal `json:"rcv,omitempty"`
	ACV          *decimal.Decimal `json:"acv,omitempty"`
	Deductible   *decimal.Decimal `json:"deductible,omitempty"`
	Depreciation *decimal.Decimal `json:"depreciation,omitempty"`
	SalesTax     *decimal.Decimal `json:"sales_tax,omitempty"`

	CommissionOverride *CommissionOverride `json:"commission_override,omitempty"`
	CommissionPaid     bool                `json:"commission_paid"`
	CommissionPaidDate *time.Time          `json:"commission_paid_date,omitempty"`
	Commission         *DealCommission     `json:"commission,omitempty"`

	Milestones       map[DealStatus]time.Time `json:"milestones"`
	PaymentRequested bool                     `json:"payment_requested"`
	Signature        *Signature               `json:"signature,omitempty"`

	RepID   string `json:"rep_id"`
	RepName string `json:"rep_name"`

	Assets   map[AssetKind][]string `json:"assets"`
	AuditLog []AuditEntry           `json:"audit_log"`
}

// IsSigned reports whether the contract signature was recorded.
func (d Deal) IsSigned() bool {
	return d.Signature != nil
}

// AssetsOf returns the references of one asset kind.
func (d Deal) AssetsOf(kind AssetKind) []string {
	if d.Assets == nil {
		return nil
	}
	return d.Assets[kind]
}

// Clone returns a deep copy so a candidate can be built without touching the
// snapshot read from the store.
func (d Deal) Clone() Deal {
	out := d
	out.ApprovalType = clonePtr(d.ApprovalType)
	out.ApprovedDate = clonePtr(d.ApprovedDate)
	out.InspectionDate = clonePtr(d.InspectionDate)
	out.AdjusterMeetingDate = clonePtr(d.AdjusterMeetingDate)
	out.InstallDate = clonePtr(d.InstallDate)
	out.RCV = clonePtr(d.RCV)
	out.ACV = clonePtr(d.ACV)
	out.Deductible = clonePtr(d.Deductible)
	out.Depreciation = clonePtr(d.Depreciation)
	out.SalesTax = clonePtr(d.SalesTax)
	out.CommissionOverride = clonePtr(d.CommissionOverride)
	out.CommissionPaidDate = clonePtr(d.CommissionPaidDate)
	out.Signature = clonePtr(d.Signature)
	if d.Commission != nil {
		c := *d.Commission
		c.Amount = clonePtr(d.Commission.Amount)
		out.Commission = &c
	}
	if d.Milestones != nil {
		out.Milestones = make(map[DealStatus]time.Time, len(d.Milestones))
		for k, v := range d.Milestones {
			out.Milestones[k] = v
		}
	}
	if d.Assets != nil {
		out.Assets = make(map[AssetKind][]string, len(d.Assets))
		for k, v := range d.Assets {
			out.Assets[k] = append([]string(nil), v...)
		}
	}
	if d.AuditLog != nil {
		out.AuditLog = append([]AuditEntry(nil), d.AuditLog...)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
