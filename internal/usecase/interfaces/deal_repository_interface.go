package interfaces

import (
	"context"

	"roofing_crm/internal/domain/entities"
)

// IDealRepository abstracts DynamoDB persistence for Deal.
//
// GetByID returns a zero Deal (empty ID) when the record does not exist.
// Save writes every field except the asset collections, which are only
// changed through AddAsset/RemoveAsset so concurrent uploads never clobber
// each other.
type IDealRepository interface {
	Create(ctx context.Context, d entities.Deal) (entities.Deal, error)
	GetByID(ctx context.Context, id string) (entities.Deal, error)
	Save(ctx context.Context, d entities.Deal) (entities.Deal, error)
	AddAsset(ctx context.Context, id string, kind entities.AssetKind, refs []string) (entities.Deal, error)
	RemoveAsset(ctx context.Context, id string, kind entities.AssetKind, refs []string) (entities.Deal, error)
}
