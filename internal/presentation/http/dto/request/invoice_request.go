package request

// InvoiceItemRequest is a single catalog line on a new invoice
type InvoiceItemRequest struct {
	ServiceID string  `json:"service_id" binding:"required,uuid"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
	Notes     *string `json:"notes"`
}

// CreateInvoiceRequest represents a new sale rung up at the counter
type CreateInvoiceRequest struct {
	CustomerID      *string              `json:"customer_id" binding:"omitempty,uuid"`
	Items           []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	DiscountPercent float64              `json:"discount_percent" binding:"gte=0,lte=100"`
	DeliveryFee     float64              `json:"delivery_fee" binding:"gte=0"`
	Notes           *string              `json:"notes"`
}

// ApplyDiscountRequest updates the discount on an existing invoice
type ApplyDiscountRequest struct {
	DiscountPercent float64 `json:"discount_percent" binding:"gte=0,lte=100"`
}

// RecordPaymentRequest marks an invoice as paid
type RecordPaymentRequest struct {
	Method string `json:"method" binding:"required"`
}

// CancelInvoiceRequest voids an invoice
type CancelInvoiceRequest struct {
	Reason string `json:"reason" binding:"required,min=3"`
}

// UpdateInvoiceStatusRequest moves an invoice through the workflow
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
