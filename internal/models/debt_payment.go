package models

type DebtPayment struct {
	ID         int64   `json:"id"`
	DebtID     int64   `json:"debt_id"`
	Amount     int64   `json:"amount"`
	Note       *string `json:"note"`
	OccurredAt int64   `json:"occurred_at"`
	CreatedAt  int64   `json:"created_at"`
	UpdatedAt  *int64  `json:"updated_at,omitempty"`
	DeletedAt  *int64  `json:"deleted_at,omitempty"`
}
