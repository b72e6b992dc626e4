package acl

import (
	"context"

	"github.com/google/uuid"
)

// Option is a read-only projection of a purchasable option from the catalog
// collaborator. Price is the unit sale price; DiscountedPrice is the unit
// price after the catalog's own base discount, before membership and coupon.
type Option struct {
	ID              uuid.UUID
	ProductID       uuid.UUID
	SubCategoryID   uuid.UUID
	ProductName     string
	Price           int64
	DiscountedPrice int64
}

// CatalogReader is the read-only contract against the catalog collaborator.
type CatalogReader interface {
	FindOption(ctx context.Context, id uuid.UUID) (*Option, error)
	// FindOptions returns the options for the given ids keyed by id. Missing
	// ids are simply absent from the map.
	FindOptions(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Option, error)
}
