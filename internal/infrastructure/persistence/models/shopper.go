package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/order/acl"
)

// ShopperModel is the persistence model for the shopper account projection.
type ShopperModel struct {
	BaseModel
	Point                  int64 `gorm:"not null;default:0"`
	MembershipDiscountRate int64 `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ShopperModel) TableName() string {
	return "shoppers"
}

// ToDomain converts the persistence model to the ACL Shopper projection.
func (m *ShopperModel) ToDomain() *acl.Shopper {
	return &acl.Shopper{
		ID:                     m.ID,
		Point:                  m.Point,
		MembershipDiscountRate: m.MembershipDiscountRate,
	}
}

// PointLedgerModel is one append-only row per point movement. Balance on the
// shopper row is the running total; the ledger is the audit trail.
type PointLedgerModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ShopperID uuid.UUID `gorm:"type:uuid;not null;index"`
	Delta     int64     `gorm:"not null"`
	Note      string    `gorm:"type:varchar(500)"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PointLedgerModel) TableName() string {
	return "shopper_point_ledgers"
}

// AddressModel is the persistence model for a shipping address.
type AddressModel struct {
	BaseModel
	ShopperID uuid.UUID `gorm:"type:uuid;not null;index"`
	Recipient string    `gorm:"type:varchar(100);not null"`
	Phone     string    `gorm:"type:varchar(30);not null"`
	Address1  string    `gorm:"type:varchar(200);not null"`
	Address2  string    `gorm:"type:varchar(200)"`
	ZipCode   string    `gorm:"type:varchar(10);not null"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "shipping_addresses"
}

// ToDomain converts the persistence model to the ACL ShippingAddress projection.
func (m *AddressModel) ToDomain() *acl.ShippingAddress {
	return &acl.ShippingAddress{
		ID:        m.ID,
		ShopperID: m.ShopperID,
		Recipient: m.Recipient,
		Phone:     m.Phone,
		Address1:  m.Address1,
		Address2:  m.Address2,
		ZipCode:   m.ZipCode,
	}
}

// AddressModelFromDomain creates a new persistence model from an ACL ShippingAddress.
func AddressModelFromDomain(a *acl.ShippingAddress) *AddressModel {
	m := &AddressModel{}
	m.ID = a.ID
	m.ShopperID = a.ShopperID
	m.Recipient = a.Recipient
	m.Phone = a.Phone
	m.Address1 = a.Address1
	m.Address2 = a.Address2
	m.ZipCode = a.ZipCode
	return m
}
