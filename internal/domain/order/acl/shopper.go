package acl

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Shopper is a read-only projection of the shopper account collaborator.
// Only the fields the order context settles against are exposed here.
type Shopper struct {
	ID                     uuid.UUID
	Point                  int64
	MembershipDiscountRate int64 // percent, applied uniformly per membership tier
}

// PointLedgerEntry is one recorded point movement with its audit note.
type PointLedgerEntry struct {
	Delta     int64
	Note      string
	CreatedAt time.Time
}

// ShopperStore is the contract against the shopper account collaborator.
// Reads are free; the only write the order context performs is the point
// adjustment that accompanies an order commit or a cancellation.
type ShopperStore interface {
	Find(ctx context.Context, id uuid.UUID) (*Shopper, error)
	// AdjustPoint moves the shopper's point balance by delta (negative for a
	// debit) and records an audit note alongside the movement.
	AdjustPoint(ctx context.Context, shopperID uuid.UUID, delta int64, note string) error
	// ListPointLedger returns the shopper's point movements, newest first.
	ListPointLedger(ctx context.Context, shopperID uuid.UUID) ([]PointLedgerEntry, error)
}
