package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// Config holds SMTP configuration
type Config struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// Service sends transactional email over SMTP
type Service struct {
	config Config
}

// NewService creates a new email service
func NewService(config Config) *Service {
	return &Service{config: config}
}

// Enabled reports whether SMTP is configured. When it is not, callers
// skip sending instead of failing the surrounding operation.
func (s *Service) Enabled() bool {
	return s.config.SMTPHost != ""
}

// ReceiptLine is one row of the emailed receipt
type ReceiptLine struct {
	Name      string
	Quantity  int
	UnitPrice string
	Total     string
}

// ReceiptEmail carries the rendered values for a receipt email. Amounts
// arrive pre-formatted with the store currency.
type ReceiptEmail struct {
	StoreName  string
	InvoiceNo  string
	Date       string
	Customer   string
	Lines      []ReceiptLine
	SubTotal   string
	Discount   string
	Tax        string
	Total      string
	Paid       string
	Change     string
	BalanceDue string
	Footer     string
}

// SendReceipt emails a copy of the receipt to the customer
func (s *Service) SendReceipt(toEmail string, data ReceiptEmail) error {
	htmlContent, err := s.renderReceipt(data)
	if err != nil {
		return fmt.Errorf("failed to render receipt email: %w", err)
	}

	subject := fmt.Sprintf("Your receipt %s - %s", data.InvoiceNo, data.StoreName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *Service) sendEmail(to string, message []byte) error {
	addr := s.config.SMTPHost + ":" + s.config.SMTPPort

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *Service) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

func (s *Service) renderReceipt(data ReceiptEmail) (string, error) {
	tmpl, err := template.New("receipt").Parse(receiptTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// receiptTemplate is the HTML template for receipt emails
const receiptTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Receipt {{.InvoiceNo}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 560px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);">
                    <tr>
                        <td style="background-color: #1a1a2e; padding: 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 24px; font-weight: 600;">{{.StoreName}}</h1>
                            <p style="color: #a0aec0; margin: 8px 0 0 0; font-size: 14px;">{{.InvoiceNo}} &middot; {{.Date}}</p>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 30px;">
                            {{if .Customer}}
                            <p style="color: #4a5568; font-size: 15px; margin: 0 0 20px 0;">Billed to: <strong>{{.Customer}}</strong></p>
                            {{end}}
                            <table style="width: 100%; border-collapse: collapse; font-size: 14px;">
                                <tr style="border-bottom: 2px solid #e2e8f0; color: #718096; text-align: left;">
                                    <th style="padding: 8px 0;">Item</th>
                                    <th style="padding: 8px 0; text-align: right;">Qty</th>
                                    <th style="padding: 8px 0; text-align: right;">Price</th>
                                    <th style="padding: 8px 0; text-align: right;">Total</th>
                                </tr>
                                {{range .Lines}}
                                <tr style="border-bottom: 1px solid #edf2f7; color: #2d3748;">
                                    <td style="padding: 8px 0;">{{.Name}}</td>
                                    <td style="padding: 8px 0; text-align: right;">{{.Quantity}}</td>
                                    <td style="padding: 8px 0; text-align: right;">{{.UnitPrice}}</td>
                                    <td style="padding: 8px 0; text-align: right;">{{.Total}}</td>
                                </tr>
                                {{end}}
                            </table>
                            <table style="width: 100%; border-collapse: collapse; font-size: 14px; margin-top: 20px; color: #2d3748;">
                                <tr><td style="padding: 4px 0;">Subtotal</td><td style="padding: 4px 0; text-align: right;">{{.SubTotal}}</td></tr>
                                <tr><td style="padding: 4px 0;">Discount</td><td style="padding: 4px 0; text-align: right;">{{.Discount}}</td></tr>
                                <tr><td style="padding: 4px 0;">Tax</td><td style="padding: 4px 0; text-align: right;">{{.Tax}}</td></tr>
                                <tr style="font-weight: 700; font-size: 16px; border-top: 2px solid #e2e8f0;">
                                    <td style="padding: 8px 0;">Total</td><td style="padding: 8px 0; text-align: right;">{{.Total}}</td>
                                </tr>
                                <tr><td style="padding: 4px 0;">Paid</td><td style="padding: 4px 0; text-align: right;">{{.Paid}}</td></tr>
                                <tr><td style="padding: 4px 0;">Change</td><td style="padding: 4px 0; text-align: right;">{{.Change}}</td></tr>
                                {{if .BalanceDue}}
                                <tr style="color: #c53030;"><td style="padding: 4px 0;">Balance due</td><td style="padding: 4px 0; text-align: right;">{{.BalanceDue}}</td></tr>
                                {{end}}
                            </table>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8fafc; padding: 24px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 13px; margin: 0;">{{.Footer}}</p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
