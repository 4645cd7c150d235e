package models

// Pagination carries list paging metadata in response envelopes.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}
