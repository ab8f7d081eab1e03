package entity

// ReceiptHeader holds the laundry header printed at the top of a receipt.
type ReceiptHeader struct {
	LaundryName string `json:"laundry_name"`
	BranchName  string `json:"branch_name,omitempty"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	TaxNumber   string `json:"tax_number,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// Receipt is a value object representing a printable receipt.
// It is not a database entity; it is composed from invoice data at print time.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	InvoiceNo     string        `json:"invoice_no"`
	Date          string        `json:"date"`
	Cashier       string        `json:"cashier,omitempty"`
	Customer      string        `json:"customer,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Items         []ReceiptItem `json:"items"`
	SubTotal      float64       `json:"sub_total"`
	Discount      float64       `json:"discount"`
	DeliveryFee   float64       `json:"delivery_fee"`
	VAT           float64       `json:"vat"`
	Total         float64       `json:"total"`
	QRPayload     string        `json:"qr_payload,omitempty"`
	Footer        string        `json:"footer,omitempty"`
}
