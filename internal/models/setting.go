package models

type Setting struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	CreatedAt *int64 `json:"created_at,omitempty"`
	UpdatedAt int64  `json:"updated_at"`
	DeletedAt *int64 `json:"deleted_at,omitempty"`
}
