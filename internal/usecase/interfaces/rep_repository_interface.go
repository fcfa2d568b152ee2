package interfaces

import (
	"context"

	"roofing_crm/internal/domain/entities"
)

type IRepRepository interface {
	GetByID(ctx context.Context, id string) (entities.Rep, error)
}
