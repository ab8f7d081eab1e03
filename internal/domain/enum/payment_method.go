package enum

import "strings"

// PaymentMethod is the settlement channel of a paid invoice. Expected totals
// at shift close are bucketed by this value.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	// PaymentMethodOther absorbs anything that is not cash/card/transfer.
	// There is no counted drawer bucket for it, so it never participates in
	// variance totals.
	PaymentMethodOther PaymentMethod = "other"
)

// NormalizePaymentMethod lowercases free-form method strings and folds
// unrecognized values into the "other" bucket.
func NormalizePaymentMethod(raw string) PaymentMethod {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(raw))) {
	case PaymentMethodCash:
		return PaymentMethodCash
	case PaymentMethodCard:
		return PaymentMethodCard
	case PaymentMethodTransfer:
		return PaymentMethodTransfer
	default:
		return PaymentMethodOther
	}
}
