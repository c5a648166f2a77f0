package model

import "time"

type Comment struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	ItemID     int64     `json:"itemId"`
	AuthorID   int64     `json:"-"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// CreateCommentReq represents a comment payload
// swagger:model CreateCommentReq
type CreateCommentReq struct {
	Text string `json:"text" validate:"required"`
}
