package dto

import "time"

type StatementFormat string

const (
	FormatPhonePe   StatementFormat = "PhonePe"
	FormatGooglePay StatementFormat = "GooglePay"
)

type TransactionType string

const (
	TypeDebit  TransactionType = "Debit"
	TypeCredit TransactionType = "Credit"
)

// Transaction is a single parsed statement entry. Time and Account may be
// empty depending on the source format (Google Pay statements carry no
// account suffix).
type Transaction struct {
	Date          time.Time       `json:"date"`
	Time          string          `json:"time,omitempty"`
	Merchant      string          `json:"merchant"`
	Type          TransactionType `json:"type"`
	Amount        float64         `json:"amount"`
	TransactionID string          `json:"transaction_id"`
	Account       string          `json:"account,omitempty"`
}
