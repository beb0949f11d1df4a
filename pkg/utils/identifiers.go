package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// Slugify converts a string to a URL-friendly slug
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")

	// Remove non-alphanumeric characters except hyphens
	reg := regexp.MustCompile("[^a-z0-9-]")
	s = reg.ReplaceAllString(s, "")

	// Collapse consecutive hyphens
	reg = regexp.MustCompile("-+")
	s = reg.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// InvoiceDayKey returns the calendar-day key the invoice counter is
// partitioned by, e.g. "20260828".
func InvoiceDayKey(t time.Time) string {
	return t.Format("20060102")
}

// FormatInvoiceNo builds an invoice number from the sale date and the
// day's sequence: INV-20260828-0042. Sequences past 9999 widen rather
// than wrap, so the number stays unique on very busy days.
func FormatInvoiceNo(t time.Time, seq int64) string {
	return fmt.Sprintf("INV-%s-%04d", InvoiceDayKey(t), seq)
}

// GeneratePurchaseNo generates a unique purchase reference number
func GeneratePurchaseNo() string {
	return "PUR-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateProductCode generates a unique product code
func GenerateProductCode() string {
	return "PROD-" + strings.ToUpper(uuid.New().String()[:8])
}
