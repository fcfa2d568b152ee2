package request

import (
	"errors"
	"strings"
	"time"

	"roofing_crm/internal/domain/entities"
	"roofing_crm/internal/domain/workflow"
	"roofing_crm/internal/usecase"

	"github.com/shopspring/decimal"
)

var ErrMissingOverride = errors.New("amount is required")

type CreateDealRequest struct {
	HomeownerName string `json:"homeowner_name" binding:"required"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Notes         string `json:"notes"`
	RepID         string `json:"rep_id"`
	RepName       string `json:"rep_name"`
}

func (r CreateDealRequest) ToInput() usecase.CreateDealInput {
	return usecase.CreateDealInput{
		HomeownerName: r.HomeownerName,
		Address:       r.Address,
		Phone:         r.Phone,
		Email:         r.Email,
		Notes:         r.Notes,
		RepID:         r.RepID,
		RepName:       r.RepName,
	}
}

// UpdateDealRequest is the PATCH body. Omitted fields are left untouched;
// status may use either the canonical or the legacy vocabulary.
type UpdateDealRequest struct {
	Status          *string    `json:"status"`
	MilestoneDate   *time.Time `json:"milestone_date"`
	ConfirmBackward bool       `json:"confirm_backward"`

	HomeownerName *string `json:"homeowner_name"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Notes         *string `json:"notes"`

	ApprovalType *string    `json:"approval_type"`
	ApprovedDate *time.Time `json:"approved_date"`

	ClaimNumber         *string    `json:"claim_number"`
	InsuranceCompany    *string    `json:"insurance_company"`
	InspectionDate      *time.Time `json:"inspection_date"`
	AdjusterMeetingDate *time.Time `json:"adjuster_meeting_date"`
	InstallDate         *time.Time `json:"install_date"`

	RCV          *decimal.Decimal `json:"rcv" swaggertype:"string"`
	ACV          *decimal.Decimal `json:"acv" swaggertype:"string"`
	Deductible   *decimal.Decimal `json:"deductible" swaggertype:"string"`
	Depreciation *decimal.Decimal `json:"depreciation" swaggertype:"string"`
	SalesTax     *decimal.Decimal `json:"sales_tax" swaggertype:"string"`

	RepID             *string          `json:"rep_id"`
	RepName           *string          `json:"rep_name"`
	CommissionPercent *decimal.Decimal `json:"commission_percent" swaggertype:"string"`
}

// ToUpdate translates the body into a workflow update, resolving the status.
func (r UpdateDealRequest) ToUpdate() (workflow.DealUpdate, error) {
	u := workflow.DealUpdate{
		MilestoneDate:       r.MilestoneDate,
		HomeownerName:       r.HomeownerName,
		Address:             r.Address,
		Phone:               r.Phone,
		Email:               r.Email,
		Notes:               r.Notes,
		ApprovedDate:        r.ApprovedDate,
		ClaimNumber:         r.ClaimNumber,
		InsuranceCompany:    r.InsuranceCompany,
		InspectionDate:      r.InspectionDate,
		AdjusterMeetingDate: r.AdjusterMeetingDate,
		InstallDate:         r.InstallDate,
		RCV:                 r.RCV,
		ACV:                 r.ACV,
		Deductible:          r.Deductible,
		Depreciation:        r.Depreciation,
		SalesTax:            r.SalesTax,
		RepID:               r.RepID,
		RepName:             r.RepName,
		CommissionPercent:   r.CommissionPercent,
	}
	if r.Status != nil {
		s, err := workflow.ParseStatus(*r.Status)
		if err != nil {
			return workflow.DealUpdate{}, err
		}
		u.Status = &s
	}
	if r.ApprovalType != nil {
		at := entities.ApprovalType(strings.ToLower(strings.TrimSpace(*r.ApprovalType)))
		if !at.Valid() {
			return workflow.DealUpdate{}, workflow.ErrInvalidApprovalType
		}
		u.ApprovalType = &at
	}
	return u, nil
}

type SignatureRequest struct {
	SignedAt *time.Time `json:"signed_at"`
	URL      string     `json:"url" binding:"required"`
}

// ResolveSignedAt defaults the signature date to now.
func (r SignatureRequest) ResolveSignedAt(now time.Time) time.Time {
	if r.SignedAt != nil && !r.SignedAt.IsZero() {
		return r.SignedAt.UTC()
	}
	return now
}

type AssetRequest struct {
	Refs []string `json:"refs" binding:"required,min=1"`
}

type CommissionOverrideRequest struct {
	Amount *decimal.Decimal `json:"amount" swaggertype:"string"`
	Reason string           `json:"reason"`
}

func (r CommissionOverrideRequest) ResolveAmount() (decimal.Decimal, error) {
	if r.Amount == nil {
		return decimal.Zero, ErrMissingOverride
	}
	return *r.Amount, nil
}

// MarkPaidRequest selects the payout steps; both default to true.
type MarkPaidRequest struct {
	MarkPaid      *bool `json:"mark_paid"`
	AdvanceStatus *bool `json:"advance_status"`
}

func (r MarkPaidRequest) ToOptions() usecase.MarkPaidOptions {
	opts := usecase.DefaultMarkPaidOptions()
	if r.MarkPaid != nil {
		opts.MarkPaid = *r.MarkPaid
	}
	if r.AdvanceStatus != nil {
		opts.AdvanceStatus = *r.AdvanceStatus
	}
	return opts
}

type UnlockRequest struct {
	Reason string `json:"reason"`
}

type ConvertPinRequest struct {
	HomeownerName string `json:"homeowner_name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Notes         string `json:"notes"`
}

func (r ConvertPinRequest) ToInput() usecase.ConvertPinInput {
	return usecase.ConvertPinInput{
		HomeownerName: r.HomeownerName,
		Address:       r.Address,
		Phone:         r.Phone,
		Email:         r.Email,
		Notes:         r.Notes,
	}
}
