package request

// OpenShiftRequest starts a cash drawer session
type OpenShiftRequest struct {
	OpeningCash float64 `json:"opening_cash" binding:"gte=0"`
	Notes       *string `json:"notes"`
}

// CloseShiftRequest reconciles and closes the open session
type CloseShiftRequest struct {
	CountedCash     float64 `json:"counted_cash" binding:"gte=0"`
	CountedCard     float64 `json:"counted_card" binding:"gte=0"`
	CountedTransfer float64 `json:"counted_transfer" binding:"gte=0"`
	Notes           *string `json:"notes"`
}
