package acl

import (
	"context"

	"github.com/google/uuid"
)

// ShippingAddress is the shipping address collaborator's aggregate as the
// order context sees it.
type ShippingAddress struct {
	ID        uuid.UUID
	ShopperID uuid.UUID
	Recipient string
	Phone     string
	Address1  string
	Address2  string
	ZipCode   string
}

// AddressStore is the contract against the shipping-address collaborator.
type AddressStore interface {
	// FindOrCreate persists the address, reusing an existing record of the
	// shopper with identical fields when one exists, and returns its id.
	FindOrCreate(ctx context.Context, addr *ShippingAddress) (uuid.UUID, error)
}
