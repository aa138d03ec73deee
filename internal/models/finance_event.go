package models

type FinanceEvent struct {
	ID         int64   `json:"id"`
	Type       string  `json:"type"`
	RefID      *int64  `json:"ref_id"`
	Title      string  `json:"title"`
	Amount     *int64  `json:"amount"`
	Meta       *string `json:"meta"`
	OccurredAt int64   `json:"occurred_at"`
	CreatedAt  int64   `json:"created_at"`
	UpdatedAt  *int64  `json:"updated_at,omitempty"`
	DeletedAt  *int64  `json:"deleted_at,omitempty"`
}
