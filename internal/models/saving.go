package models

type Saving struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Note           *string `json:"note"`
	AccountingCode *string `json:"accounting_code"`
	Archived       int64   `json:"archived"`
	CreatedAt      int64   `json:"created_at"`
	UpdatedAt      int64   `json:"updated_at"`
	DeletedAt      *int64  `json:"deleted_at,omitempty"`
}
