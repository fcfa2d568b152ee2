package entities

import "github.com/shopspring/decimal"

type CommissionLevel string

const (
	CommissionLevelJunior  CommissionLevel = "junior"
	CommissionLevelSenior  CommissionLevel = "senior"
	CommissionLevelManager CommissionLevel = "manager"
)

// Rep is a sales representative holding a commission tier.
type Rep struct {
	ID                       string           `json:"id"`
	FullName                 string           `json:"full_name"`
	CommissionLevel          CommissionLevel  `json:"commission_level"`
	DefaultCommissionPercent *decimal.Decimal `json:"default_commission_percent,omitempty"`
}
