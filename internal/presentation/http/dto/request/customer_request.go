package request

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name         string  `json:"name" binding:"required,min=2,max=255"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone" binding:"omitempty,max=50"`
	Address      *string `json:"address"`
	CustomerType string  `json:"customer_type" binding:"omitempty,oneof=regular vip wholesale"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=255"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone" binding:"omitempty,max=50"`
	Address      *string `json:"address"`
	CustomerType *string `json:"customer_type" binding:"omitempty,oneof=regular vip wholesale"`
}

// LoyaltyPointsRequest represents a manual loyalty adjustment
type LoyaltyPointsRequest struct {
	Points int64 `json:"points" binding:"required,min=1"`
}
