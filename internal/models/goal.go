package models

type Goal struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Note         *string `json:"note"`
	StartAmount  int64   `json:"start_amount"`
	TargetAmount int64   `json:"target_amount"`
	Deadline     *int64  `json:"deadline"`
	Archived     int64   `json:"archived"`
	CreatedAt    int64   `json:"created_at"`
	UpdatedAt    int64   `json:"updated_at"`
	DeletedAt    *int64  `json:"deleted_at,omitempty"`
}
