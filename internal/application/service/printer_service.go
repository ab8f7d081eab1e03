package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	"github.com/maghsala/maghsala-api/internal/domain/repository"
	"github.com/maghsala/maghsala-api/internal/domain/zatca"
	"github.com/maghsala/maghsala-api/pkg/apperror"
	"github.com/maghsala/maghsala-api/pkg/printer"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	invoiceRepo repository.InvoiceRepository
	laundryRepo repository.LaundryRepository
	branchRepo  repository.BranchRepository
	printerType string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	invoiceRepo repository.InvoiceRepository,
	laundryRepo repository.LaundryRepository,
	branchRepo repository.BranchRepository,
	printerType string,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		invoiceRepo: invoiceRepo,
		laundryRepo: laundryRepo,
		branchRepo:  branchRepo,
		printerType: printerType,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			LaundryName: "PRINTER TEST",
			Address:     "Test Address",
			Phone:       "+966 00 000 0000",
		},
		InvoiceNo: "TEST-001",
		Date:      "Test Date",
		Cashier:   "System",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 10.00, Total: 10.00},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 5.00, Total: 10.00},
		},
		SubTotal: 20.00,
		Total:    20.00,
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// PrintInvoiceReceipt fetches an invoice (with items) and prints its receipt,
// including the TLV QR code required on simplified tax invoices.
func (s *PrinterService) PrintInvoiceReceipt(ctx context.Context, laundryID, invoiceID uuid.UUID) (*entity.Receipt, error) {
	invoice, err := s.invoiceRepo.GetWithDetails(ctx, laundryID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	laundry, err := s.laundryRepo.GetByID(ctx, laundryID)
	if err != nil {
		return nil, err
	}
	if laundry == nil {
		return nil, apperror.NewNotFoundError("Laundry")
	}

	tags := zatca.Encode(invoice.FiscalData(), laundry.Settings.SellerProfile())

	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			LaundryName: laundry.Settings.DisplayName,
			Address:     laundry.Settings.Address,
			Phone:       laundry.Settings.Phone,
			TaxNumber:   laundry.Settings.TaxNumber,
		},
		InvoiceNo:   invoice.InvoiceNumber,
		Date:        invoice.CreatedAt.Format("2006-01-02 15:04"),
		SubTotal:    invoice.Subtotal,
		Discount:    invoice.DiscountAmount,
		DeliveryFee: invoice.DeliveryFee,
		VAT:         invoice.TaxAmount,
		Total:       invoice.Total,
		QRPayload:   tags.TLVBase64,
		Footer:      laundry.Settings.Footer,
	}
	if receipt.Header.LaundryName == "" {
		receipt.Header.LaundryName = laundry.Name
	}

	if branch, err := s.branchRepo.GetByID(ctx, laundryID, invoice.BranchID); err == nil && branch != nil {
		receipt.Header.BranchName = branch.Name
	}
	if invoice.Customer != nil {
		receipt.Customer = invoice.Customer.Name
	}
	if invoice.PaymentMethod != nil {
		receipt.PaymentMethod = string(*invoice.PaymentMethod)
	}

	for _, it := range invoice.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.LineTotal,
		})
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (invoice %s): %v", invoiceID, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.LaundryName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.BranchName != "" {
		doc.Text(r.Header.BranchName)
	}
	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxNumber != "" {
		doc.TextF("VAT: %s", r.Header.TaxNumber)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Invoice info
	doc.KeyValue("Invoice:", r.InvoiceNo).
		KeyValue("Date:", r.Date)

	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	if r.PaymentMethod != "" {
		doc.KeyValue("Payment:", r.PaymentMethod)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %.2f each", item.UnitPrice)
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", fmt.Sprintf("%.2f", r.SubTotal))
	if r.Discount > 0 {
		doc.KeyValue("Discount:", fmt.Sprintf("-%.2f", r.Discount))
	}
	if r.DeliveryFee > 0 {
		doc.KeyValue("Delivery:", fmt.Sprintf("%.2f", r.DeliveryFee))
	}
	if r.VAT > 0 {
		doc.KeyValue("VAT:", fmt.Sprintf("%.2f", r.VAT))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.Total)).
		SetBold(false)

	doc.Separator('-')

	// Fiscal QR
	if r.QRPayload != "" {
		doc.SetAlign(printer.AlignCenter).
			QRCode(r.QRPayload, 4)
	}

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed()
	if r.Footer != "" {
		doc.Text(r.Footer)
	} else {
		doc.Text("Thank you!")
	}
	doc.LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
