package workflow

import (
	"time"

	"roofing_crm/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// DealUpdate is a sparse set of field changes. A nil field is absent from the
// update and leaves the stored value untouched.
//
// Assets, the signature, the commission override and the approval unlock
// have dedicated operations and are not part of a routine update.
type DealUpdate struct {
	Status *entities.DealStatus
	// MilestoneDate is the timestamp recorded for Status when it is reached,
	// defaulting to now.
	MilestoneDate *time.Time

	HomeownerName *string
	Address       *string
	Phone         *string
	Email         *string
	Notes         *string

	ApprovalType *entities.ApprovalType
	ApprovedDate *time.Time

	ClaimNumber         *string
	InsuranceCompany    *string
	InspectionDate      *time.Time
	AdjusterMeetingDate *time.Time
	InstallDate         *time.Time

	RCV          *decimal.Decimal
	ACV          *decimal.Decimal
	Deductible   *decimal.Decimal
	Depreciation *decimal.Decimal
	SalesTax     *decimal.Decimal

	RepID             *string
	RepName           *string
	CommissionPercent *decimal.Decimal

	PaymentRequested *bool
}

type financialField struct {
	name   string
	update func(u DealUpdate) *decimal.Decimal
	stored func(d entities.Deal) *decimal.Decimal
}

// lockedFinancials are frozen once the approval is recorded, in reporting order.
var lockedFinancials = []financialField{
	{name: "rcv", update: func(u DealUpdate) *decimal.Decimal { return u.RCV }, stored: func(d entities.Deal) *decimal.Decimal { return d.RCV }},
	{name: "acv", update: func(u DealUpdate) *decimal.Decimal { return u.ACV }, stored: func(d entities.Deal) *decimal.Decimal { return d.ACV }},
	{name: "deductible", update: func(u DealUpdate) *decimal.Decimal { return u.Deductible }, stored: func(d entities.Deal) *decimal.Decimal { return d.Deductible }},
	{name: "depreciation", update: func(u DealUpdate) *decimal.Decimal { return u.Depreciation }, stored: func(d entities.Deal) *decimal.Decimal { return d.Depreciation }},
}

// TouchesFinancials reports whether the update carries any financial or
// approval field, which routes it through the approval gate.
func (u DealUpdate) TouchesFinancials() bool {
	for _, f := range lockedFinancials {
		if f.update(u) != nil {
			return true
		}
	}
	return u.ApprovalType != nil || u.ApprovedDate != nil
}

// Empty reports whether the update changes nothing.
func (u DealUpdate) Empty() bool {
	return u == (DealUpdate{})
}

// Merge applies u onto a copy of current. It does not validate; the
// validator and the approval gate run against the returned candidate.
func Merge(current entities.Deal, u DealUpdate, now time.Time) entities.Deal {
	c := current.Clone()

	if u.Status != nil {
		c.Status = *u.Status
	}
	setString(&c.HomeownerName, u.HomeownerName)
	setString(&c.Address, u.Address)
	setString(&c.Phone, u.Phone)
	setString(&c.Email, u.Email)
	setString(&c.Notes, u.Notes)
	setString(&c.ClaimNumber, u.ClaimNumber)
	setString(&c.InsuranceCompany, u.InsuranceCompany)
	setString(&c.RepID, u.RepID)
	setString(&c.RepName, u.RepName)

	setTime(&c.InspectionDate, u.InspectionDate)
	setTime(&c.AdjusterMeetingDate, u.AdjusterMeetingDate)
	setTime(&c.InstallDate, u.InstallDate)

	setDecimal(&c.RCV, u.RCV)
	setDecimal(&c.ACV, u.ACV)
	setDecimal(&c.Deductible, u.Deductible)
	setDecimal(&c.Depreciation, u.Depreciation)
	setDecimal(&c.SalesTax, u.SalesTax)

	if u.ApprovalType != nil {
		at := *u.ApprovalType
		c.ApprovalType = &at
	}
	setTime(&c.ApprovedDate, u.ApprovedDate)
	if c.ApprovalType != nil && c.ApprovedDate == nil {
		at := now
		c.ApprovedDate = &at
	}

	if u.CommissionPercent != nil {
		if c.Commission == nil {
			c.Commission = &entities.DealCommission{}
		}
		c.Commission.Percent = *u.CommissionPercent
	}
	if u.PaymentRequested != nil {
		c.PaymentRequested = *u.PaymentRequested
	}

	c.UpdatedAt = now
	return c
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setTime(dst **time.Time, v *time.Time) {
	if v != nil {
		t := *v
		*dst = &t
	}
}

func setDecimal(dst **decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		d := *v
		*dst = &d
	}
}
