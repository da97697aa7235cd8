package domain

import "time"

type Review struct {
	ID        int64        `json:"id"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	UserID    int64        `json:"userId"`
	ProductID int64        `json:"productId"`
	User      *UserSummary `json:"user,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}
