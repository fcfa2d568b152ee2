package response

import (
	"time"

	"roofing_crm/internal/domain/entities"
	"roofing_crm/internal/domain/workflow"
	"roofing_crm/internal/usecase"

	"github.com/shopspring/decimal"
)

type CommissionResponse struct {
	DealID     string                       `json:"deal_id"`
	RCV        decimal.Decimal              `json:"rcv" swaggertype:"string"`
	Percent    decimal.Decimal              `json:"percent" swaggertype:"string"`
	SalesTax   decimal.Decimal              `json:"sales_tax" swaggertype:"string"`
	BaseAmount decimal.Decimal              `json:"base_amount" swaggertype:"string"`
	Amount     decimal.Decimal              `json:"amount" swaggertype:"string"`
	Source     workflow.CommissionSource    `json:"source"`
	Override   *entities.CommissionOverride `json:"override,omitempty"`
	Paid       bool                         `json:"paid"`
	PaidDate   *time.Time                   `json:"paid_date,omitempty"`
}

func FromCommission(r usecase.CommissionResult) CommissionResponse {
	return CommissionResponse{
		DealID:     r.DealID,
		RCV:        r.Breakdown.RCV,
		Percent:    r.Breakdown.Percent,
		SalesTax:   r.Breakdown.SalesTax,
		BaseAmount: r.Breakdown.BaseAmount,
		Amount:     r.Breakdown.Amount,
		Source:     r.Breakdown.Source,
		Override:   r.Override,
		Paid:       r.Paid,
		PaidDate:   r.PaidDate,
	}
}
