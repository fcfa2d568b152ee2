package interfaces

import (
	"context"

	"roofing_crm/internal/domain/entities"
)

// IPinRepository abstracts DynamoDB persistence for map pins.
type IPinRepository interface {
	GetByID(ctx context.Context, id string) (entities.Pin, error)
	ListByDealID(ctx context.Context, dealID string) ([]entities.Pin, error)
	UpdateStatus(ctx context.Context, id string, status entities.PinStatus) (entities.Pin, error)
	LinkDeal(ctx context.Context, id string, dealID string) (entities.Pin, error)
}
