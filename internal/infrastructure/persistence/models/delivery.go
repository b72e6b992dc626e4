package models

import (
	"github.com/shopline/backend/internal/domain/order"
)

// DeliveryModel is the persistence model for a delivery group.
type DeliveryModel struct {
	BaseModel
	CompanyCode   string `gorm:"type:varchar(30);not null;index:idx_delivery_invoice,priority:1"`
	InvoiceNumber string `gorm:"type:varchar(50);not null;index:idx_delivery_invoice,priority:2"`
	BatchFlag     string `gorm:"type:varchar(30);not null;index"`
}

// TableName returns the table name for GORM
func (DeliveryModel) TableName() string {
	return "deliveries"
}

// ToDomain converts the persistence model to a domain Delivery entity.
func (m *DeliveryModel) ToDomain() *order.Delivery {
	return &order.Delivery{
		BaseEntity:    m.BaseModel.ToDomain(),
		CompanyCode:   m.CompanyCode,
		InvoiceNumber: m.InvoiceNumber,
		BatchFlag:     m.BatchFlag,
	}
}

// DeliveryModelFromDomain creates a new persistence model from a domain Delivery entity.
func DeliveryModelFromDomain(d *order.Delivery) *DeliveryModel {
	m := &DeliveryModel{}
	m.FromDomainBaseEntity(d.BaseEntity)
	m.CompanyCode = d.CompanyCode
	m.InvoiceNumber = d.InvoiceNumber
	m.BatchFlag = d.BatchFlag
	return m
}
