package request

// UpdateSettingsRequest represents a store settings update request
type UpdateSettingsRequest struct {
	StoreName     *string `json:"store_name" binding:"omitempty,min=2,max=255"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	TaxID         *string `json:"tax_id" binding:"omitempty,max=50"`
	Currency      *string `json:"currency" binding:"omitempty,min=2,max=10"`
	ReceiptFooter *string `json:"receipt_footer" binding:"omitempty,max=255"`
}
