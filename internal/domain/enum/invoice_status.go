package enum

// InvoiceStatus is the workflow state of a laundry invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft      InvoiceStatus = "draft"
	InvoiceStatusPending    InvoiceStatus = "pending"
	InvoiceStatusProcessing InvoiceStatus = "processing"
	InvoiceStatusReady      InvoiceStatus = "ready"
	InvoiceStatusDelivered  InvoiceStatus = "delivered"
	InvoiceStatusPaid       InvoiceStatus = "paid"
	InvoiceStatusCancelled  InvoiceStatus = "cancelled"
)

// IsValid reports whether s is one of the known invoice statuses.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusProcessing,
		InvoiceStatusReady, InvoiceStatusDelivered, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus tracks whether an invoice has been paid.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// DeliveryStatus tracks the courier leg of a delivery invoice.
type DeliveryStatus string

const (
	DeliveryStatusNone       DeliveryStatus = "none"
	DeliveryStatusPending    DeliveryStatus = "pending"
	DeliveryStatusProcessing DeliveryStatus = "processing"
	DeliveryStatusReady      DeliveryStatus = "ready"
	DeliveryStatusDelivered  DeliveryStatus = "delivered"
	DeliveryStatusCancelled  DeliveryStatus = "cancelled"
)
