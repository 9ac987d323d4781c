package models

import "time"

type PaymentType string

const (
	PaymentCreditCard PaymentType = "CREDIT_CARD"
	PaymentPaypal     PaymentType = "PAYPAL"
)

// PaymentMethod is a tokenized payment instrument. No charging happens
// anywhere in the system; validation is mock-only.
type PaymentMethod struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	PaymentType PaymentType `json:"payment_type"`
	Display     string      `json:"display"`
	Token       string      `json:"token"`
	IsDefault   bool        `json:"is_default"`
	CreatedAt   time.Time   `json:"created_at"`
}
