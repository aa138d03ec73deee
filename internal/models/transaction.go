package models

const (
	TransactionKindIncome   = "income"
	TransactionKindExpense  = "expense"
	TransactionKindTransfer = "transfer"
)

type Transaction struct {
	ID             int64   `json:"id"`
	TxCode         string  `json:"tx_code"`
	AccountingCode string  `json:"accounting_code"`
	Kind           string  `json:"kind"`
	Amount         int64   `json:"amount"`
	Label          string  `json:"label"`
	Note           *string `json:"note"`
	Category       *string `json:"category"`
	TxDate         int64   `json:"tx_date"`
	CreatedAt      int64   `json:"created_at"`
	UpdatedAt      int64   `json:"updated_at"`
	DeletedAt      *int64  `json:"deleted_at,omitempty"`
}

func ValidTransactionKind(k string) bool {
	return k == TransactionKindIncome || k == TransactionKindExpense || k == TransactionKindTransfer
}
