package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

// InvoicePayment is a homeowner payment requested against a deal's invoice.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (deal_id-index): deal_id
//
// ProviderPayloadRaw keeps the provider response body for audit; ProviderPayload
// is the parsed copy used for querying.
type InvoicePayment struct {
	ID     string          `json:"id"`
	DealID string          `json:"deal_id"`
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Status PaymentStatus   `json:"status"`

	ProviderPayloadRaw json.RawMessage        `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}
