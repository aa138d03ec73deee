package models

const (
	CadenceDaily   = "daily"
	CadenceWeekly  = "weekly"
	CadenceMonthly = "monthly"
)

type AutoSave struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Note           *string `json:"note"`
	Amount         int64   `json:"amount"`
	Cadence        string  `json:"cadence"`
	Enabled        int64   `json:"enabled"`
	StartAt        *int64  `json:"start_at"`
	LastRunAt      *int64  `json:"last_run_at"`
	AccountingCode *string `json:"accounting_code"`
	CreatedAt      int64   `json:"created_at"`
	UpdatedAt      int64   `json:"updated_at"`
	DeletedAt      *int64  `json:"deleted_at,omitempty"`
}

func ValidCadence(c string) bool {
	return c == CadenceDaily || c == CadenceWeekly || c == CadenceMonthly
}
