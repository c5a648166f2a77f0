package model

import "time"

// ItemRequest is a user's wish for an item not yet listed. Items created later
// may point back at it via their requestId.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"-"`
	Created     time.Time `json:"created"`
}

// CreateRequestReq represents an item-request payload
// swagger:model CreateRequestReq
type CreateRequestReq struct {
	Description string `json:"description" validate:"required"`
}
