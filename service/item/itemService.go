package itemsvc

import (
	"context"
	"errors"
	"strings"
	"time"

	"shareit/model"
	bookingrepo "shareit/repository/booking"

	"github.com/jackc/pgx/v5"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrItemNotFound  = errors.New("item not found")
	ErrNotOwner      = errors.New("item does not belong to this user")
	ErrNeverBooked   = errors.New("user never booked this item")
	ErrRentalNotOver = errors.New("rental period is not over yet")
)

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Items interface {
	Create(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	Delete(ctx context.Context, id int64) error
	ByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]model.Item, error)
	SearchByText(ctx context.Context, text string, limit, offset int) ([]model.Item, error)
}

type Bookings interface {
	ListByItem(ctx context.Context, itemID int64) ([]bookingrepo.Row, error)
	LastEndingByItemAndBooker(ctx context.Context, itemID, bookerID int64) (*bookingrepo.Row, error)
}

type Comments interface {
	Create(ctx context.Context, c *model.Comment) error
	ByItem(ctx context.Context, itemID int64) ([]model.Comment, error)
	ByItems(ctx context.Context, itemIDs []int64) ([]model.Comment, error)
}

// BookingRef is the short booking form embedded into an owner's item view.
type BookingRef struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// View is an item with its comments and, for the owner, the bookings closest
// to now on either side.
type View struct {
	model.Item
	LastBooking *BookingRef     `json:"lastBooking"`
	NextBooking *BookingRef     `json:"nextBooking"`
	Comments    []model.Comment `json:"comments"`
}

type Service interface {
	Create(ctx context.Context, ownerID int64, req model.CreateItemReq) (*model.Item, error)
	Update(ctx context.Context, ownerID, itemID int64, req model.UpdateItemReq) (*model.Item, error)
	ByID(ctx context.Context, itemID, viewerID int64) (*View, error)
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]View, error)
	Search(ctx context.Context, text string, from, size int) ([]model.Item, error)
	Delete(ctx context.Context, ownerID, itemID int64) error

	// CreateComment: feedback from a booker whose rental of the item has ended.
	CreateComment(ctx context.Context, userID, itemID int64, req model.CreateCommentReq) (*model.Comment, error)
}

type service struct {
	users    Users
	items    Items
	bookings Bookings
	comments Comments
	now      func() time.Time
}

func New(u Users, i Items, b Bookings, c Comments) Service {
	return &service{users: u, items: i, bookings: b, comments: c, now: time.Now}
}

func NewWithClock(u Users, i Items, b Bookings, c Comments, now func() time.Time) Service {
	return &service{users: u, items: i, bookings: b, comments: c, now: now}
}

func (s *service) Create(ctx context.Context, ownerID int64, req model.CreateItemReq) (*model.Item, error) {
	if _, err := s.user(ctx, ownerID); err != nil {
		return nil, err
	}
	it := &model.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.items.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, ownerID, itemID int64, req model.UpdateItemReq) (*model.Item, error) {
	it, err := s.ownedItem(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		it.Name = *req.Name
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) ByID(ctx context.Context, itemID, viewerID int64) (*View, error) {
	if _, err := s.user(ctx, viewerID); err != nil {
		return nil, err
	}
	it, err := s.item(ctx, itemID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	v := &View{Item: *it, Comments: comments}
	if it.OwnerID == viewerID {
		bookings, err := s.bookings.ListByItem(ctx, itemID)
		if err != nil {
			return nil, err
		}
		v.LastBooking, v.NextBooking = nearestBookings(bookings, s.now())
	}
	return v, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]View, error) {
	if _, err := s.user(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.items.ByOwner(ctx, ownerID, size, (from/size)*size)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	comments, err := s.comments.ByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	byItem := make(map[int64][]model.Comment, len(items))
	for _, c := range comments {
		byItem[c.ItemID] = append(byItem[c.ItemID], c)
	}

	now := s.now()
	views := make([]View, 0, len(items))
	for _, it := range items {
		v := View{Item: it, Comments: byItem[it.ID]}
		bookings, err := s.bookings.ListByItem(ctx, it.ID)
		if err != nil {
			return nil, err
		}
		v.LastBooking, v.NextBooking = nearestBookings(bookings, now)
		views = append(views, v)
	}
	return views, nil
}

func (s *service) Search(ctx context.Context, text string, from, size int) ([]model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	return s.items.SearchByText(ctx, strings.ToUpper(text), size, (from/size)*size)
}

func (s *service) Delete(ctx context.Context, ownerID, itemID int64) error {
	if _, err := s.ownedItem(ctx, ownerID, itemID); err != nil {
		return err
	}
	return s.items.Delete(ctx, itemID)
}

func (s *service) CreateComment(ctx context.Context, userID, itemID int64, req model.CreateCommentReq) (*model.Comment, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.item(ctx, itemID); err != nil {
		return nil, err
	}
	booking, err := s.bookings.LastEndingByItemAndBooker(ctx, itemID, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNeverBooked
	}
	if err != nil {
		return nil, err
	}
	now := s.now()
	if booking.End.After(now) {
		return nil, ErrRentalNotOver
	}

	c := &model.Comment{
		Text:       req.Text,
		ItemID:     itemID,
		AuthorID:   userID,
		AuthorName: u.Name,
		Created:    now,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// nearestBookings finds the latest non-rejected booking started before now and
// the earliest one starting after it; rows arrive ordered by start desc.
func nearestBookings(rows []bookingrepo.Row, now time.Time) (last, next *BookingRef) {
	for i := range rows {
		b := rows[i]
		if b.Status == model.BookingRejected {
			continue
		}
		if b.Start.After(now) {
			next = &BookingRef{ID: b.ID, BookerID: b.BookerID}
			continue
		}
		if b.Start.Before(now) && last == nil {
			last = &BookingRef{ID: b.ID, BookerID: b.BookerID}
		}
	}
	return last, next
}

func (s *service) ownedItem(ctx context.Context, ownerID, itemID int64) (*model.Item, error) {
	if _, err := s.user(ctx, ownerID); err != nil {
		return nil, err
	}
	it, err := s.item(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return it, nil
}

func (s *service) user(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.users.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (s *service) item(ctx context.Context, id int64) (*model.Item, error) {
	it, err := s.items.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	return it, err
}
