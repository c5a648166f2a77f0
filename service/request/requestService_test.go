package requestsvc

import (
	"context"
	"testing"

	"shareit/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

type usersMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.User, error)
}

func (m *usersMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	if m.byIDFn == nil {
		return &model.User{ID: id}, nil
	}
	return m.byIDFn(ctx, id)
}

type itemsMock struct {
	byRequestIDsFn func(ctx context.Context, requestIDs []int64) ([]model.Item, error)
}

func (m *itemsMock) ByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.Item, error) {
	if m.byRequestIDsFn == nil {
		return nil, nil
	}
	return m.byRequestIDsFn(ctx, requestIDs)
}

type requestsMock struct {
	createFn func(ctx context.Context, rq *model.ItemRequest) error
	byIDFn   func(ctx context.Context, id int64) (*model.ItemRequest, error)
	ownFn    func(ctx context.Context, requestorID int64) ([]model.ItemRequest, error)
	allFn    func(ctx context.Context, requestorID int64, limit, offset int) ([]model.ItemRequest, error)
}

func (m *requestsMock) Create(ctx context.Context, rq *model.ItemRequest) error {
	return m.createFn(ctx, rq)
}
func (m *requestsMock) ByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	return m.byIDFn(ctx, id)
}
func (m *requestsMock) ByRequestor(ctx context.Context, requestorID int64) ([]model.ItemRequest, error) {
	return m.ownFn(ctx, requestorID)
}
func (m *requestsMock) AllExceptRequestor(ctx context.Context, requestorID int64, limit, offset int) ([]model.ItemRequest, error) {
	return m.allFn(ctx, requestorID, limit, offset)
}

func TestCreate_StampsRequestor(t *testing.T) {
	rm := &requestsMock{
		createFn: func(ctx context.Context, rq *model.ItemRequest) error {
			rq.ID = 4
			return nil
		},
	}
	svc := New(&usersMock{}, &itemsMock{}, rm)

	rq, err := svc.Create(context.Background(), 1, model.CreateRequestReq{Description: "need a ladder"})
	require.NoError(t, err)
	require.Equal(t, int64(4), rq.ID)
	require.Equal(t, int64(1), rq.RequestorID)
	require.False(t, rq.Created.IsZero())
}

func TestByID_NotFound(t *testing.T) {
	rm := &requestsMock{
		byIDFn: func(ctx context.Context, id int64) (*model.ItemRequest, error) {
			return nil, pgx.ErrNoRows
		},
	}
	svc := New(&usersMock{}, &itemsMock{}, rm)

	_, err := svc.ByID(context.Background(), 1, 99)
	require.ErrorIs(t, err, ErrRequestNotFound)
}

func TestListOwn_AttachesItems(t *testing.T) {
	rm := &requestsMock{
		ownFn: func(ctx context.Context, requestorID int64) ([]model.ItemRequest, error) {
			return []model.ItemRequest{{ID: 1}, {ID: 2}}, nil
		},
	}
	rid := int64(1)
	im := &itemsMock{
		byRequestIDsFn: func(ctx context.Context, requestIDs []int64) ([]model.Item, error) {
			require.Equal(t, []int64{1, 2}, requestIDs)
			return []model.Item{{ID: 10, RequestID: &rid}}, nil
		},
	}
	svc := New(&usersMock{}, im, rm)

	out, err := svc.ListOwn(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Len(t, out[0].Items, 1)
	require.Empty(t, out[1].Items)
}

func TestListAll_MissingUser(t *testing.T) {
	um := &usersMock{byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
		return nil, pgx.ErrNoRows
	}}
	svc := New(um, &itemsMock{}, &requestsMock{})

	_, err := svc.ListAll(context.Background(), 1, 0, 10)
	require.ErrorIs(t, err, ErrUserNotFound)
}
