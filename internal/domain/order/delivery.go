package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopline/backend/internal/domain/shared"
)

// Delivery groups a shipping company and invoice number. One row is created
// per distinct (company, invoice) of a delivery-assignment batch; rows of
// the same batch share one BatchFlag so the freshly created group can be
// re-selected afterwards.
type Delivery struct {
	shared.BaseEntity
	CompanyCode   string
	InvoiceNumber string
	BatchFlag     string
}

// NewDelivery creates a delivery for the given company and invoice.
func NewDelivery(companyCode, invoiceNumber, batchFlag string) (*Delivery, error) {
	if companyCode == "" {
		return nil, shared.NewValidationError("company is required")
	}
	if invoiceNumber == "" {
		return nil, shared.NewValidationError("invoice_number is required")
	}
	if batchFlag == "" {
		return nil, shared.NewValidationError("delivery batch flag is required")
	}
	return &Delivery{
		BaseEntity:    shared.NewBaseEntity(),
		CompanyCode:   companyCode,
		InvoiceNumber: invoiceNumber,
		BatchFlag:     batchFlag,
	}, nil
}

// NewBatchFlag builds a flag for one delivery-assignment batch: the creation
// time to the second plus a random suffix distinguishing concurrent batches
// sharing a timestamp.
func NewBatchFlag(t time.Time) string {
	return fmt.Sprintf("%s-%s", t.Format("20060102150405"), uuid.NewString()[:8])
}

// DeliveryDedupSince returns the start of the business window within which a
// (company, invoice_number) pair must not repeat.
func DeliveryDedupSince(now time.Time) time.Time {
	return now.AddDate(0, -3, 0)
}
