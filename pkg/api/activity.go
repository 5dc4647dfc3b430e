package api

import "github.com/shopspring/decimal"

// Activity is an entry of the recent-activity feed.
type Activity struct {
	ID          string          `json:"id"`
	Timestamp   string          `json:"timestamp"`
	Type        string          `json:"type"` // payment, new_debt or settled
	From        string          `json:"from"`
	FromName    string          `json:"from_name"`
	To          string          `json:"to"`
	ToName      string          `json:"to_name"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type AddActivityRequest struct {
	Type        string          `json:"type"`
	From        string          `json:"from"`
	FromName    string          `json:"from_name"`
	To          string          `json:"to"`
	ToName      string          `json:"to_name"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type AddActivityResponse struct {
	Activity Activity `json:"activity"`
}

// ListActivitiesRequest pages the feed; a zero Limit means the default of 10.
type ListActivitiesRequest struct {
	Limit int `json:"limit,omitempty"`
}

type ListUserActivitiesRequest struct {
	UserID string `json:"user_id"`
	Limit  int    `json:"limit,omitempty"`
}

type ListActivitiesResponse struct {
	Activities []Activity `json:"activities"`
}

type ClearActivitiesRequest struct{}

type ClearActivitiesResponse struct {
	OK bool `json:"ok"`
}
