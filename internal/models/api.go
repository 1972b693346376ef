package models

// ScanRequest submits one barcode scan on behalf of a user.
type ScanRequest struct {
	Barcode string `json:"barcode"`
	Email   string `json:"email"`
}

// RedeemRequest spends confirmed points on a shop item.
type RedeemRequest struct {
	Email  string `json:"email"`
	ItemId string `json:"itemId"`
}

// MonthlyCheckRequest triggers a monthly bonus evaluation.
type MonthlyCheckRequest struct {
	Email string `json:"email"`
}
