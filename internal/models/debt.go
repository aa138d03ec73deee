package models

const (
	DebtTypeDebt   = "debt"
	DebtTypeCredit = "credit"
)

type Debt struct {
	ID              int64   `json:"id"`
	Type            string  `json:"type"`
	Name            string  `json:"name"`
	Lender          *string `json:"lender"`
	Note            *string `json:"note"`
	PrincipalAmount int64   `json:"principal_amount"`
	RemainingAmount int64   `json:"remaining_amount"`
	DueDate         *int64  `json:"due_date"`
	Closed          int64   `json:"closed"`
	CreatedAt       int64   `json:"created_at"`
	UpdatedAt       int64   `json:"updated_at"`
	DeletedAt       *int64  `json:"deleted_at,omitempty"`
}

func ValidDebtType(t string) bool {
	return t == DebtTypeDebt || t == DebtTypeCredit
}
