package request

// CreateSupplierRequest represents a supplier creation request
type CreateSupplierRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Address  *string `json:"address"`
	ShopName *string `json:"shop_name" binding:"omitempty,max=255"`
	TaxPin   *string `json:"tax_pin" binding:"omitempty,max=50"`
	Type     string  `json:"type" binding:"omitempty,oneof=distributor wholesaler producer"`
}

// UpdateSupplierRequest represents a supplier update request
type UpdateSupplierRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Address  *string `json:"address"`
	ShopName *string `json:"shop_name" binding:"omitempty,max=255"`
	TaxPin   *string `json:"tax_pin" binding:"omitempty,max=50"`
	Type     *string `json:"type" binding:"omitempty,oneof=distributor wholesaler producer"`
}
