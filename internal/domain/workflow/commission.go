package workflow

import (
	"strings"
	"time"

	"roofing_crm/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// Audit actions written by administrative operations.
const (
	AuditOverrideSet        = "commission_override_set"
	AuditOverrideCleared    = "commission_override_cleared"
	AuditFinancialsUnlocked = "financials_unlocked"
	AuditBackwardTransition = "backward_transition"
	AuditCommissionPaid     = "commission_paid"
	AuditAssignmentChanged  = "commission_assignment_changed"
)

// CommissionSource reports which path produced a commission amount.
type CommissionSource string

const (
	CommissionSourceOverride CommissionSource = "override"
	CommissionSourceRecord   CommissionSource = "record"
	CommissionSourceComputed CommissionSource = "computed"
)

// CommissionPolicy holds the configurable inputs of the calculation.
type CommissionPolicy struct {
	SalesTaxRate   decimal.Decimal
	DefaultPercent decimal.Decimal
	Tiers          map[entities.CommissionLevel]decimal.Decimal
}

func DefaultCommissionPolicy() CommissionPolicy {
	return CommissionPolicy{
		SalesTaxRate:   decimal.RequireFromString("0.0825"),
		DefaultPercent: decimal.NewFromInt(10),
		Tiers: map[entities.CommissionLevel]decimal.Decimal{
			entities.CommissionLevelJunior:  decimal.NewFromInt(5),
			entities.CommissionLevelSenior:  decimal.NewFromInt(10),
			entities.CommissionLevelManager: decimal.NewFromInt(13),
		},
	}
}

// CommissionBreakdown is the result of ComputeCommission. SalesTax and
// Amount are rounded to cents.
type CommissionBreakdown struct {
	RCV        decimal.Decimal  `json:"rcv"`
	Percent    decimal.Decimal  `json:"percent"`
	SalesTax   decimal.Decimal  `json:"sales_tax"`
	BaseAmount decimal.Decimal  `json:"base_amount"`
	Amount     decimal.Decimal  `json:"amount"`
	Source     CommissionSource `json:"source"`
}

var hundred = decimal.NewFromInt(100)

// ComputeCommission uses the default policy.
func ComputeCommission(d entities.Deal, r entities.Rep) CommissionBreakdown {
	return DefaultCommissionPolicy().ComputeCommission(d, r)
}

// ComputeCommission is a pure function of the deal and the assigned rep.
//
// Amount precedence: override, then a recorded commission amount, then a
// fresh computation from the base amount and the resolved percent.
func (p CommissionPolicy) ComputeCommission(d entities.Deal, r entities.Rep) CommissionBreakdown {
	rcv := ResolveRCV(d)
	percent := p.ResolvePercent(d, r)
	salesTax := rcv.Mul(p.SalesTaxRate).Round(2)
	base := rcv.Sub(salesTax)

	b := CommissionBreakdown{
		RCV:        rcv,
		Percent:    percent,
		SalesTax:   salesTax,
		BaseAmount: base,
	}
	switch {
	case d.CommissionOverride != nil:
		b.Amount = d.CommissionOverride.Amount
		b.Source = CommissionSourceOverride
	case d.Commission != nil && d.Commission.Amount != nil:
		b.Amount = *d.Commission.Amount
		b.Source = CommissionSourceRecord
	default:
		b.Amount = base.Mul(percent).Div(hundred).Round(2)
		b.Source = CommissionSourceComputed
	}
	return b
}

// ResolveRCV returns the stored RCV when positive, otherwise ACV plus
// depreciation (zero when both are missing).
func ResolveRCV(d entities.Deal) decimal.Decimal {
	if d.RCV != nil && d.RCV.IsPositive() {
		return *d.RCV
	}
	return valueOrZero(d.ACV).Add(valueOrZero(d.Depreciation))
}

// ResolvePercent picks the commission percent: the deal's record, the rep's
// default, the rep's tier, then the policy default.
func (p CommissionPolicy) ResolvePercent(d entities.Deal, r entities.Rep) decimal.Decimal {
	if d.Commission != nil && d.Commission.Percent.IsPositive() {
		return d.Commission.Percent
	}
	if r.DefaultCommissionPercent != nil && r.DefaultCommissionPercent.IsPositive() {
		return *r.DefaultCommissionPercent
	}
	if tier, ok := p.Tiers[r.CommissionLevel]; ok {
		return tier
	}
	return p.DefaultPercent
}

// NewOverride validates an override: reason non-empty, amount not negative.
func NewOverride(amount decimal.Decimal, reason string, now time.Time) (entities.CommissionOverride, error) {
	reason = trimmed(reason)
	if reason == "" {
		return entities.CommissionOverride{}, &InvalidOverrideError{Reason: "reason is required"}
	}
	if amount.IsNegative() {
		return entities.CommissionOverride{}, &InvalidOverrideError{Reason: "amount must not be negative"}
	}
	return entities.CommissionOverride{Amount: amount, Reason: reason, Date: now}, nil
}

// SetOverride records an administrator override on a copy of d.
func SetOverride(d entities.Deal, actor entities.Actor, amount decimal.Decimal, reason string, now time.Time) (entities.Deal, error) {
	if !actor.IsAdmin() {
		return d, &RoleNotPermittedError{Role: actor.Role, Operation: "override commission"}
	}
	o, err := NewOverride(amount, reason, now)
	if err != nil {
		return d, err
	}
	out := d.Clone()
	out.CommissionOverride = &o
	out.UpdatedAt = now
	out.AuditLog = append(out.AuditLog, entities.AuditEntry{
		At: now, ActorID: actor.ID, Action: AuditOverrideSet, Detail: amount.StringFixed(2) + ": " + o.Reason,
	})
	return out, nil
}

// ClearOverride removes amount, reason and date together.
func ClearOverride(d entities.Deal, actor entities.Actor, now time.Time) (entities.Deal, error) {
	if !actor.IsAdmin() {
		return d, &RoleNotPermittedError{Role: actor.Role, Operation: "clear commission override"}
	}
	out := d.Clone()
	if out.CommissionOverride == nil {
		return out, nil
	}
	out.CommissionOverride = nil
	out.UpdatedAt = now
	out.AuditLog = append(out.AuditLog, entities.AuditEntry{At: now, ActorID: actor.ID, Action: AuditOverrideCleared})
	return out, nil
}

// CanMarkPaid reports whether the status is at or past the entry of the
// complete phase.
func CanMarkPaid(d entities.Deal) bool {
	return IndexOf(d.Status) >= IndexOf(PhaseEntry(PhaseComplete))
}

// MarkPaid sets the paid flag and freezes the commission record at the
// amount being paid. The status is not changed here.
func MarkPaid(d entities.Deal, actor entities.Actor, b CommissionBreakdown, now time.Time) (entities.Deal, error) {
	if !actor.IsAdmin() {
		return d, &RoleNotPermittedError{Role: actor.Role, Operation: "mark commission paid"}
	}
	if !CanMarkPaid(d) {
		return d, ErrCommissionNotPayable
	}
	if d.CommissionPaid {
		return d.Clone(), nil
	}
	return RecordPayout(d, actor.ID, b, now), nil
}

// RecordPayout flags the commission paid and freezes the record at b.Amount
// on a copy of d. Every payout path goes through it.
func RecordPayout(d entities.Deal, actorID string, b CommissionBreakdown, now time.Time) entities.Deal {
	out := d.Clone()
	amount := b.Amount
	paidAt := now
	out.CommissionPaid = true
	out.CommissionPaidDate = &paidAt
	out.Commission = &entities.DealCommission{Percent: b.Percent, Amount: &amount, Paid: true}
	out.UpdatedAt = now
	out.AuditLog = append(out.AuditLog, entities.AuditEntry{
		At: now, ActorID: actorID, Action: AuditCommissionPaid, Detail: amount.StringFixed(2) + " (" + string(b.Source) + ")",
	})
	return out
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
