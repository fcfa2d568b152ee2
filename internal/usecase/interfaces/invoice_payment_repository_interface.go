package interfaces

import (
	"context"

	"roofing_crm/internal/domain/entities"
)

// IInvoicePaymentRepository abstracts DynamoDB persistence for InvoicePayment.
type IInvoicePaymentRepository interface {
	Create(ctx context.Context, p entities.InvoicePayment) (entities.InvoicePayment, error)
	ListByDealID(ctx context.Context, dealID string) ([]entities.InvoicePayment, error)
}
