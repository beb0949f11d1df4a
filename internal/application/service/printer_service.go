package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmuthomi/tillpoint-api/internal/domain/entity"
	"github.com/jmuthomi/tillpoint-api/internal/domain/repository"
	"github.com/jmuthomi/tillpoint-api/pkg/apperror"
	"github.com/jmuthomi/tillpoint-api/pkg/email"
	"github.com/jmuthomi/tillpoint-api/pkg/printer"
	"go.uber.org/zap"
)

// PrinterService handles receipt composition, thermal printing and
// emailed receipt copies.
type PrinterService struct {
	chain        *printer.ChainPrinter
	saleRepo     repository.SaleRepository
	settingsRepo repository.SettingsRepository
	emailService *email.Service
	log          *zap.Logger
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	chain *printer.ChainPrinter,
	saleRepo repository.SaleRepository,
	settingsRepo repository.SettingsRepository,
	emailService *email.Service,
	log *zap.Logger,
) *PrinterService {
	return &PrinterService{
		chain:        chain,
		saleRepo:     saleRepo,
		settingsRepo: settingsRepo,
		emailService: emailService,
		log:          log,
	}
}

// PrinterStatus reports the state of the configured print chain
type PrinterStatus struct {
	Strategies []string          `json:"strategies"`
	Connected  bool              `json:"connected"`
	History    []printer.Attempt `json:"history"`
}

// GetStatus returns the chain's strategies, connectivity and recent
// print attempts.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Strategies: s.chain.Strategies(),
		Connected:  s.chain.IsConnected(),
		History:    s.chain.History(),
	}
}

// TestPrint sends a test page through the chain. The receipt is
// returned either way so the caller can render it as JSON.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: settings.StoreName,
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
		Paid:     20.00,
		Footer:   settings.ReceiptFooter,
	}

	if err := s.chain.Print(FormatReceipt(receipt)); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// PrintSaleReceipt composes a sale's receipt and sends it through the
// print chain.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, error) {
	receipt, _, err := s.buildSaleReceipt(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if err := s.chain.Print(FormatReceipt(receipt)); err != nil {
		s.log.Warn("receipt print failed",
			zap.String("sale_id", saleID.String()),
			zap.Error(err))
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// EmailSaleReceipt emails a copy of the sale's receipt to the customer
// on record. The sale must have a customer with an email address.
func (s *PrinterService) EmailSaleReceipt(ctx context.Context, saleID uuid.UUID) error {
	if !s.emailService.Enabled() {
		return apperror.NewBadRequestError("Email delivery is not configured")
	}

	receipt, sale, err := s.buildSaleReceipt(ctx, saleID)
	if err != nil {
		return err
	}

	if sale.Customer == nil || sale.Customer.Email == nil || *sale.Customer.Email == "" {
		return apperror.NewBadRequestError("Sale has no customer email on record")
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return err
	}

	money := func(v float64) string {
		return fmt.Sprintf("%s %.2f", settings.Currency, v)
	}

	lines := make([]email.ReceiptLine, 0, len(receipt.Items))
	for _, item := range receipt.Items {
		lines = append(lines, email.ReceiptLine{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: money(item.UnitPrice),
			Total:     money(item.Total),
		})
	}

	data := email.ReceiptEmail{
		StoreName: receipt.Header.StoreName,
		InvoiceNo: receipt.InvoiceNo,
		Date:      receipt.Date,
		Customer:  receipt.Customer,
		Lines:     lines,
		SubTotal:  money(receipt.SubTotal),
		Discount:  money(receipt.Discount),
		Tax:       money(receipt.Tax),
		Total:     money(receipt.Total),
		Paid:      money(receipt.Paid),
		Change:    money(receipt.Change),
		Footer:    receipt.Footer,
	}
	if receipt.BalanceDue > 0 {
		data.BalanceDue = money(receipt.BalanceDue)
	}

	if err := s.emailService.SendReceipt(*sale.Customer.Email, data); err != nil {
		s.log.Warn("receipt email failed",
			zap.String("sale_id", saleID.String()),
			zap.Error(err))
		return err
	}

	return nil
}

func (s *PrinterService) buildSaleReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, *entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil {
		return nil, nil, apperror.NewNotFoundError("Sale")
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, nil, err
	}

	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: settings.StoreName,
		},
		InvoiceNo:     sale.InvoiceNo,
		Date:          sale.SaleDate.Format("2006-01-02 15:04"),
		PaymentMethod: sale.PaymentMethod.String(),
		SubTotal:      float64(sale.SubTotal) / 100,
		Discount:      float64(sale.Discount) / 100,
		Tax:           float64(sale.Tax) / 100,
		Shipping:      float64(sale.Shipping) / 100,
		Total:         float64(sale.Total) / 100,
		Paid:          float64(sale.AmountPaid) / 100,
		Footer:        settings.ReceiptFooter,
	}

	if settings.Address != nil {
		receipt.Header.Address = *settings.Address
	}
	if settings.Phone != nil {
		receipt.Header.Phone = *settings.Phone
	}
	if settings.TaxID != nil {
		receipt.Header.TaxID = *settings.TaxID
	}

	if sale.Change >= 0 {
		receipt.Change = float64(sale.Change) / 100
	} else {
		receipt.BalanceDue = float64(-sale.Change) / 100
	}
	if sale.IsRefund() {
		receipt.RefundDue = float64(-sale.Total) / 100
	}

	if sale.Cashier.ID != uuid.Nil {
		receipt.Cashier = sale.Cashier.FullName()
	}
	if sale.Customer != nil {
		receipt.Customer = sale.Customer.Name
	}

	for _, item := range sale.Items {
		line := entity.ReceiptItem{
			Quantity:  item.Quantity,
			UnitPrice: float64(item.UnitPrice) / 100,
			Total:     float64(item.Total) / 100,
		}
		if item.Product.Name != "" {
			line.Name = item.Product.Name
		} else {
			line.Name = "Product"
		}
		receipt.Items = append(receipt.Items, line)
	}

	return receipt, sale, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("Tax ID: %s", r.Header.TaxID)
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

	// Items; negative quantities are return lines
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Total))
		if item.Quantity > 1 || item.Quantity < -1 {
			doc.TextF("  @ %.2f each", item.UnitPrice)
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", fmt.Sprintf("%.2f", r.SubTotal))
	if r.Discount > 0 {
		doc.KeyValue("Discount:", fmt.Sprintf("-%.2f", r.Discount))
	}
	if r.Tax > 0 {
		doc.KeyValue("Tax:", fmt.Sprintf("%.2f", r.Tax))
	}
	if r.Shipping > 0 {
		doc.KeyValue("Shipping:", fmt.Sprintf("%.2f", r.Shipping))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.Total)).
		SetBold(false)

	if r.Paid > 0 {
		doc.KeyValue("Paid:", fmt.Sprintf("%.2f", r.Paid))
	}
	if r.Change > 0 {
		doc.KeyValue("Change:", fmt.Sprintf("%.2f", r.Change))
	}
	if r.BalanceDue > 0 {
		doc.KeyValue("Due:", fmt.Sprintf("%.2f", r.BalanceDue))
	}
	if r.RefundDue > 0 {
		doc.KeyValue("Refund due:", fmt.Sprintf("%.2f", r.RefundDue))
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text(r.Footer).
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
