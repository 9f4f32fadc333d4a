package models

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
)

// Transaction is a deposit request. It is created pending; moving it to
// completed is an operator concern, not handled here.
type Transaction struct {
	ID            string            `json:"id"`
	UserID        string            `json:"userId"`
	Amount        int               `json:"amount"`
	TransactionID string            `json:"transactionId"`
	Timestamp     string            `json:"timestamp"`
	Status        TransactionStatus `json:"status"`
}
