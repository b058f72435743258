package dto

type AddCartItemRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	ItemId    int64  `json:"item_id" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	BranchId  int    `json:"branch_id"`
}

type CartItemResponse struct {
	ItemId      int64   `json:"item_id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

type CartResponse struct {
	SessionId string             `json:"session_id"`
	Status    string             `json:"status"`
	Items     []CartItemResponse `json:"items"`
	Total     float64            `json:"total"`
}
