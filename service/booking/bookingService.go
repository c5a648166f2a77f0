package bookingsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shareit/model"
	bookingrepo "shareit/repository/booking"

	"github.com/jackc/pgx/v5"
)

// errors used by controllers

type ErrCode string

const (
	ErrUserNotFound    ErrCode = "USER_NOT_FOUND"
	ErrItemNotFound    ErrCode = "ITEM_NOT_FOUND"
	ErrBookingNotFound ErrCode = "BOOKING_NOT_FOUND"
	ErrBadDates        ErrCode = "BAD_DATES"
	ErrItemUnavailable ErrCode = "ITEM_UNAVAILABLE"
	ErrOwnItem         ErrCode = "OWN_ITEM"
	ErrNotOwner        ErrCode = "NOT_OWNER"
	ErrNotViewer       ErrCode = "NOT_VIEWER"
	ErrAlreadyDecided  ErrCode = "ALREADY_DECIDED"
	ErrNoItems         ErrCode = "NO_ITEMS"
	ErrUnknownState    ErrCode = "UNKNOWN_STATE"
	ErrBadPagination   ErrCode = "BAD_PAGINATION"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode, format string, args ...any) error {
	return codedError{code: c, msg: fmt.Sprintf(format, args...)}
}

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Row = repository shape
type Row = bookingrepo.Row

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Items interface {
	ByID(ctx context.Context, id int64) (*model.Item, error)
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)
}

type Bookings interface {
	Create(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*Row, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error
	ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, limit, offset int) ([]Row, error)
	ListByItemOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, limit, offset int) ([]Row, error)
}

type Service interface {
	// Create: place a WAITING booking of an available item owned by someone else.
	Create(ctx context.Context, userID int64, req model.CreateBookingReq) (*Row, error)

	// SetApproval: owner approves or rejects a booking; same-status resubmission conflicts.
	SetApproval(ctx context.Context, ownerID, bookingID int64, approved bool) (*Row, error)

	// ByID: single lookup, visible to the booker and the item owner only.
	ByID(ctx context.Context, userID, bookingID int64) (*Row, error)

	// ListByBooker / ListByOwner: state-filtered listings ordered by start desc.
	ListByBooker(ctx context.Context, userID int64, state string, from, size int) ([]Row, error)
	ListByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]Row, error)
}

// ----- Service implementation -----

type service struct {
	users    Users
	items    Items
	bookings Bookings
	now      func() time.Time
}

func New(u Users, i Items, b Bookings) Service {
	return &service{users: u, items: i, bookings: b, now: time.Now}
}

// NewWithClock pins "now" for the time-dependent listing predicates.
func NewWithClock(u Users, i Items, b Bookings, now func() time.Time) Service {
	return &service{users: u, items: i, bookings: b, now: now}
}

func (s *service) Create(ctx context.Context, userID int64, req model.CreateBookingReq) (*Row, error) {
	if _, err := s.user(ctx, userID); err != nil {
		return nil, err
	}
	item, err := s.item(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !req.End.After(*req.Start) {
		return nil, makeErr(ErrBadDates, "booking end must be after its start")
	}
	if !item.Available {
		return nil, makeErr(ErrItemUnavailable, "item %d is already booked", item.ID)
	}
	// Booking your own item reads as "not found", a status existing clients rely on.
	if item.OwnerID == userID {
		return nil, makeErr(ErrOwnItem, "cannot book your own item")
	}

	b := &model.Booking{
		Start:    *req.Start,
		End:      *req.End,
		Status:   model.BookingWaiting,
		ItemID:   item.ID,
		BookerID: userID,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return s.bookings.ByID(ctx, b.ID)
}

func (s *service) SetApproval(ctx context.Context, ownerID, bookingID int64, approved bool) (*Row, error) {
	if _, err := s.user(ctx, ownerID); err != nil {
		return nil, err
	}
	b, err := s.booking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.ItemOwnerID != ownerID {
		return nil, makeErr(ErrNotOwner, "only the item owner may approve a booking")
	}
	// Only a same-status resubmission is blocked; a later flip is allowed.
	if approved && b.Status == model.BookingApproved {
		return nil, makeErr(ErrAlreadyDecided, "booking %d is already approved", b.ID)
	}
	if !approved && b.Status == model.BookingRejected {
		return nil, makeErr(ErrAlreadyDecided, "booking %d is already rejected", b.ID)
	}

	status := model.BookingRejected
	if approved {
		status = model.BookingApproved
	}
	if err := s.bookings.UpdateStatus(ctx, b.ID, status); err != nil {
		return nil, err
	}
	b.Status = status
	return b, nil
}

func (s *service) ByID(ctx context.Context, userID, bookingID int64) (*Row, error) {
	if _, err := s.user(ctx, userID); err != nil {
		return nil, err
	}
	b, err := s.booking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if userID != b.BookerID && userID != b.ItemOwnerID {
		return nil, makeErr(ErrNotViewer, "only the item owner or the booker may view a booking")
	}
	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, userID int64, state string, from, size int) ([]Row, error) {
	st, limit, offset, err := s.listArgs(ctx, userID, state, from, size)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByBooker(ctx, userID, st, s.now(), limit, offset)
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]Row, error) {
	st, limit, offset, err := s.listArgs(ctx, ownerID, state, from, size)
	if err != nil {
		return nil, err
	}
	n, err := s.items.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, makeErr(ErrNoItems, "user has no items to book")
	}
	return s.bookings.ListByItemOwner(ctx, ownerID, st, s.now(), limit, offset)
}

// listArgs validates the shared listing inputs and turns from/size into the
// page the original API exposed: page index from/size, page length size.
func (s *service) listArgs(ctx context.Context, userID int64, state string, from, size int) (model.BookingState, int, int, error) {
	if _, err := s.user(ctx, userID); err != nil {
		return "", 0, 0, err
	}
	if from < 0 || size <= 0 {
		return "", 0, 0, makeErr(ErrBadPagination, "from must be >= 0 and size > 0")
	}
	st, err := model.ParseState(state)
	if err != nil {
		return "", 0, 0, makeErr(ErrUnknownState, "%s", err.Error())
	}
	return st, size, (from / size) * size, nil
}

func (s *service) user(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.users.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, makeErr(ErrUserNotFound, "user %d not found", id)
	}
	return u, err
}

func (s *service) item(ctx context.Context, id int64) (*model.Item, error) {
	it, err := s.items.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, makeErr(ErrItemNotFound, "item %d not found", id)
	}
	return it, err
}

func (s *service) booking(ctx context.Context, id int64) (*Row, error) {
	b, err := s.bookings.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, makeErr(ErrBookingNotFound, "booking %d not found", id)
	}
	return b, err
}
