package workflow

import (
	"time"

	"roofing_crm/internal/domain/entities"
)

type SideEffectKind string

const (
	EffectSetMilestone       SideEffectKind = "set_milestone"
	EffectSetPinStatus       SideEffectKind = "set_pin_status"
	EffectMarkCommissionPaid SideEffectKind = "mark_commission_paid"
)

// SideEffect is a secondary update triggered by a status change.
// Pin effects apply to every pin linked to the deal.
type SideEffect struct {
	Kind      SideEffectKind
	Status    entities.DealStatus
	At        time.Time
	PinStatus entities.PinStatus
}

// IsDealLocal reports whether the effect mutates the deal itself.
func (e SideEffect) IsDealLocal() bool {
	return e.Kind != EffectSetPinStatus
}

// OnStatusChanged lists the effects of moving d from one status to another.
//
// The milestone of the reached status is set only when still empty, to
// explicitDate when given and now otherwise. Reaching installed syncs the
// linked pins. Commission is never computed here; it is derived on read.
func OnStatusChanged(d entities.Deal, from, to entities.DealStatus, explicitDate *time.Time, now time.Time) []SideEffect {
	if from == to {
		return nil
	}
	var effects []SideEffect

	if _, reached := d.Milestones[to]; !reached {
		at := now
		if explicitDate != nil {
			at = *explicitDate
		}
		effects = append(effects, SideEffect{Kind: EffectSetMilestone, Status: to, At: at})
	}

	switch to {
	case entities.DealStatusInstalled:
		effects = append(effects, SideEffect{Kind: EffectSetPinStatus, Status: to, PinStatus: entities.PinStatusInstalled})
	case entities.DealStatusPaid:
		if !d.CommissionPaid {
			effects = append(effects, SideEffect{Kind: EffectMarkCommissionPaid, Status: to, At: now})
		}
	}
	return effects
}

// ApplyDealEffects applies the deal-local effects onto a copy of d.
func ApplyDealEffects(d entities.Deal, effects []SideEffect) entities.Deal {
	out := d.Clone()
	for _, e := range effects {
		switch e.Kind {
		case EffectSetMilestone:
			if out.Milestones == nil {
				out.Milestones = map[entities.DealStatus]time.Time{}
			}
			if _, ok := out.Milestones[e.Status]; !ok {
				out.Milestones[e.Status] = e.At
			}
		case EffectMarkCommissionPaid:
			if !out.CommissionPaid {
				at := e.At
				out.CommissionPaid = true
				out.CommissionPaidDate = &at
				if out.Commission != nil {
					out.Commission.Paid = true
				}
			}
		}
	}
	return out
}

// PinEffects filters the effects that target linked pins.
func PinEffects(effects []SideEffect) []SideEffect {
	var out []SideEffect
	for _, e := range effects {
		if !e.IsDealLocal() {
			out = append(out, e)
		}
	}
	return out
}
