package models

const (
	SavingMoveIn  = "in"
	SavingMoveOut = "out"
)

type SavingMove struct {
	ID         int64   `json:"id"`
	SavingID   int64   `json:"saving_id"`
	Direction  string  `json:"direction"`
	Amount     int64   `json:"amount"`
	Note       *string `json:"note"`
	OccurredAt int64   `json:"occurred_at"`
	CreatedAt  int64   `json:"created_at"`
	UpdatedAt  *int64  `json:"updated_at,omitempty"`
	DeletedAt  *int64  `json:"deleted_at,omitempty"`
}

func ValidSavingMoveDirection(d string) bool {
	return d == SavingMoveIn || d == SavingMoveOut
}
