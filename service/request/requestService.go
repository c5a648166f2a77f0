package requestsvc

import (
	"context"
	"errors"
	"time"

	"shareit/model"

	"github.com/jackc/pgx/v5"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrRequestNotFound = errors.New("item request not found")
)

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Items interface {
	ByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.Item, error)
}

type Requests interface {
	Create(ctx context.Context, rq *model.ItemRequest) error
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ByRequestor(ctx context.Context, requestorID int64) ([]model.ItemRequest, error)
	AllExceptRequestor(ctx context.Context, requestorID int64, limit, offset int) ([]model.ItemRequest, error)
}

// WithItems pairs a request with the items listed in answer to it.
type WithItems struct {
	model.ItemRequest
	Items []model.Item `json:"items"`
}

type Service interface {
	Create(ctx context.Context, userID int64, req model.CreateRequestReq) (*model.ItemRequest, error)
	ListOwn(ctx context.Context, userID int64) ([]WithItems, error)
	ListAll(ctx context.Context, userID int64, from, size int) ([]WithItems, error)
	ByID(ctx context.Context, userID, requestID int64) (*WithItems, error)
}

type service struct {
	users    Users
	items    Items
	requests Requests
	now      func() time.Time
}

func New(u Users, i Items, r Requests) Service {
	return &service{users: u, items: i, requests: r, now: time.Now}
}

func (s *service) Create(ctx context.Context, userID int64, req model.CreateRequestReq) (*model.ItemRequest, error) {
	if _, err := s.user(ctx, userID); err != nil {
		return nil, err
	}
	rq := &model.ItemRequest{
		Description: req.Description,
		RequestorID: userID,
		Created:     s.now(),
	}
	if err := s.requests.Create(ctx, rq); err != nil {
		return nil, err
	}
	return rq, nil
}

func (s *service) ListOwn(ctx context.Context, userID int64) ([]WithItems, error) {
	if _, err := s.user(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.requests.ByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

func (s *service) ListAll(ctx context.Context, userID int64, from, size int) ([]WithItems, error) {
	if _, err := s.user(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.requests.AllExceptRequestor(ctx, userID, size, (from/size)*size)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

func (s *service) ByID(ctx context.Context, userID, requestID int64) (*WithItems, error) {
	if _, err := s.user(ctx, userID); err != nil {
		return nil, err
	}
	rq, err := s.requests.ByID(ctx, requestID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	out, err := s.attachItems(ctx, []model.ItemRequest{*rq})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *service) attachItems(ctx context.Context, requests []model.ItemRequest) ([]WithItems, error) {
	ids := make([]int64, 0, len(requests))
	for _, rq := range requests {
		ids = append(ids, rq.ID)
	}
	var items []model.Item
	if len(ids) > 0 {
		var err error
		items, err = s.items.ByRequestIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}
	byRequest := make(map[int64][]model.Item, len(requests))
	for _, it := range items {
		if it.RequestID != nil {
			byRequest[*it.RequestID] = append(byRequest[*it.RequestID], it)
		}
	}
	out := make([]WithItems, 0, len(requests))
	for _, rq := range requests {
		out = append(out, WithItems{ItemRequest: rq, Items: byRequest[rq.ID]})
	}
	return out, nil
}

func (s *service) user(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.users.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}
