package models

const (
	AccountingTypeLinked     = "linked"
	AccountingTypeStandalone = "standalone"
	AccountingTypeMaster     = "master"
)

type Accounting struct {
	ID             int64   `json:"id"`
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	ParentCode     *string `json:"parent_code"`
	Currency       string  `json:"currency"`
	OpeningBalance int64   `json:"opening_balance"`
	CreatedAt      int64   `json:"created_at"`
	UpdatedAt      int64   `json:"updated_at"`
	DeletedAt      *int64  `json:"deleted_at,omitempty"`
}

func ValidAccountingType(t string) bool {
	return t == AccountingTypeLinked || t == AccountingTypeStandalone || t == AccountingTypeMaster
}
