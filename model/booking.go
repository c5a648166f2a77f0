// model/booking.go
package model

import (
	"errors"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingWaiting  BookingStatus = "WAITING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
	BookingCanceled BookingStatus = "CANCELED"
)

type Booking struct {
	ID       int64         `json:"id"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Status   BookingStatus `json:"status"`
	ItemID   int64         `json:"-"`
	BookerID int64         `json:"-"`
}

// BookingState is the listing filter keyword, not a persisted status.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ErrUnknownState carries the exact message existing clients match on.
var ErrUnknownState = errors.New("Unknown state: UNSUPPORTED_STATUS")

// ParseState resolves a case-insensitive state token; empty input means ALL.
func ParseState(s string) (BookingState, error) {
	if s == "" {
		return StateAll, nil
	}
	switch st := BookingState(strings.ToUpper(s)); st {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return st, nil
	default:
		return "", ErrUnknownState
	}
}

// CreateBookingReq represents a booking request payload
// swagger:model CreateBookingReq
type CreateBookingReq struct {
	ItemID int64      `json:"itemId" validate:"required,gt=0"`
	Start  *time.Time `json:"start" validate:"required"`
	End    *time.Time `json:"end" validate:"required"`
}
