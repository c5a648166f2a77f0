package bookingsvc_test

import (
	"context"
	"testing"
	"time"

	"shareit/model"
	bookingsvc "shareit/service/booking"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

type usersMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.User, error)
}

func (m *usersMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	if m.byIDFn == nil {
		return &model.User{ID: id, Name: "user", Email: "user@example.com"}, nil
	}
	return m.byIDFn(ctx, id)
}

type itemsMock struct {
	byIDFn         func(ctx context.Context, id int64) (*model.Item, error)
	countByOwnerFn func(ctx context.Context, ownerID int64) (int64, error)
}

func (m *itemsMock) ByID(ctx context.Context, id int64) (*model.Item, error) {
	return m.byIDFn(ctx, id)
}

func (m *itemsMock) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	if m.countByOwnerFn == nil {
		return 1, nil
	}
	return m.countByOwnerFn(ctx, ownerID)
}

type bookingsMock struct {
	createFn       func(ctx context.Context, b *model.Booking) error
	byIDFn         func(ctx context.Context, id int64) (*bookingsvc.Row, error)
	updateStatusFn func(ctx context.Context, id int64, status model.BookingStatus) error
	listBookerFn   func(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, limit, offset int) ([]bookingsvc.Row, error)
	listOwnerFn    func(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, limit, offset int) ([]bookingsvc.Row, error)
}

func (m *bookingsMock) Create(ctx context.Context, b *model.Booking) error {
	return m.createFn(ctx, b)
}

func (m *bookingsMock) ByID(ctx context.Context, id int64) (*bookingsvc.Row, error) {
	return m.byIDFn(ctx, id)
}

func (m *bookingsMock) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	if m.updateStatusFn == nil {
		return nil
	}
	return m.updateStatusFn(ctx, id, status)
}

func (m *bookingsMock) ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, limit, offset int) ([]bookingsvc.Row, error) {
	return m.listBookerFn(ctx, bookerID, state, now, limit, offset)
}

func (m *bookingsMock) ListByItemOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, limit, offset int) ([]bookingsvc.Row, error) {
	return m.listOwnerFn(ctx, ownerID, state, now, limit, offset)
}

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func availableItem(owner int64) *itemsMock {
	return &itemsMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
			return &model.Item{ID: id, Name: "drill", Available: true, OwnerID: owner}, nil
		},
	}
}

func createReq(start, end time.Time) model.CreateBookingReq {
	return model.CreateBookingReq{ItemID: 10, Start: &start, End: &end}
}

// --- creation ---

func TestCreate_Waiting(t *testing.T) {
	var persisted *model.Booking
	bm := &bookingsMock{
		createFn: func(ctx context.Context, b *model.Booking) error {
			b.ID = 77
			persisted = b
			return nil
		},
		byIDFn: func(ctx context.Context, id int64) (*bookingsvc.Row, error) {
			return &bookingsvc.Row{
				ID: id, Start: persisted.Start, End: persisted.End, Status: persisted.Status,
				ItemID: 10, ItemName: "drill", ItemOwnerID: 2, BookerID: 1, BookerName: "user",
			}, nil
		},
	}
	s := bookingsvc.NewWithClock(&usersMock{}, availableItem(2), bm, clock)

	out, err := s.Create(context.Background(), 1, createReq(fixedNow.Add(time.Hour), fixedNow.Add(48*time.Hour)))
	require.NoError(t, err)
	require.Equal(t, int64(77), out.ID)
	require.Equal(t, model.BookingWaiting, out.Status)
	require.Equal(t, model.BookingWaiting, persisted.Status)
	require.Equal(t, int64(1), persisted.BookerID)
}

func TestCreate_EndNotAfterStart(t *testing.T) {
	s := bookingsvc.NewWithClock(&usersMock{}, availableItem(2), &bookingsMock{}, clock)

	start := fixedNow.Add(time.Hour)
	for _, end := range []time.Time{start, start.Add(-time.Minute)} {
		_, err := s.Create(context.Background(), 1, createReq(start, end))
		require.Error(t, err)
		require.Equal(t, bookingsvc.ErrBadDates, bookingsvc.Code(err))
	}
}

func TestCreate_ItemUnavailable(t *testing.T) {
	im := &itemsMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
			return &model.Item{ID: id, Available: false, OwnerID: 2}, nil
		},
	}
	s := bookingsvc.NewWithClock(&usersMock{}, im, &bookingsMock{}, clock)

	_, err := s.Create(context.Background(), 1, createReq(fixedNow.Add(time.Hour), fixedNow.Add(2*time.Hour)))
	require.Equal(t, bookingsvc.ErrItemUnavailable, bookingsvc.Code(err))
}

func TestCreate_OwnItem(t *testing.T) {
	s := bookingsvc.NewWithClock(&usersMock{}, availableItem(1), &bookingsMock{}, clock)

	_, err := s.Create(context.Background(), 1, createReq(fixedNow.Add(time.Hour), fixedNow.Add(2*time.Hour)))
	require.Equal(t, bookingsvc.ErrOwnItem, bookingsvc.Code(err))
}

func TestCreate_MissingUserAndItem(t *testing.T) {
	um := &usersMock{byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
		return nil, pgx.ErrNoRows
	}}
	s := bookingsvc.NewWithClock(um, availableItem(2), &bookingsMock{}, clock)
	_, err := s.Create(context.Background(), 1, createReq(fixedNow, fixedNow.Add(time.Hour)))
	require.Equal(t, bookingsvc.ErrUserNotFound, bookingsvc.Code(err))

	im := &itemsMock{byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
		return nil, pgx.ErrNoRows
	}}
	s = bookingsvc.NewWithClock(&usersMock{}, im, &bookingsMock{}, clock)
	_, err = s.Create(context.Background(), 1, createReq(fixedNow, fixedNow.Add(time.Hour)))
	require.Equal(t, bookingsvc.ErrItemNotFound, bookingsvc.Code(err))
}

// --- approval workflow ---

func waitingRow(status model.BookingStatus) *bookingsMock {
	row := bookingsvc.Row{
		ID: 5, Start: fixedNow.Add(time.Hour), End: fixedNow.Add(48 * time.Hour),
		Status: status, ItemID: 10, ItemOwnerID: 2, BookerID: 1,
	}
	return &bookingsMock{
		byIDFn: func(ctx context.Context, id int64) (*bookingsvc.Row, error) {
			r := row
			return &r, nil
		},
	}
}

func TestSetApproval_Approve(t *testing.T) {
	bm := waitingRow(model.BookingWaiting)
	var updated model.BookingStatus
	bm.updateStatusFn = func(ctx context.Context, id int64, status model.BookingStatus) error {
		updated = status
		return nil
	}
	s := bookingsvc.NewWithClock(&usersMock{}, availableItem(2), bm, clock)

	out, err := s.SetApproval(context.Background(), 2, 5, true)
	require.NoError(t, err)
	require.Equal(t, model.BookingApproved, out.Status)
	require.Equal(t, model.BookingApproved, updated)
}

func TestSetApproval_SameStatusConflicts(t *testing.T) {
	s := bookingsvc.NewWithClock(&usersMock{}, availableItem(2), waitingRow(model.BookingApproved), clock)
	_, err := s.SetApproval(context.Background(), 2, 5, true)
	require.Equal(t, bookingsvc.ErrAlreadyDecided, bookingsvc.Code(err))

	s = bookingsvc.NewWithClock(&usersMock{}, availableItem(2), waitingRow(model.BookingRejected), clock)
	_, err = s.SetApproval(context.Background(), 2, 5, false)
	require.Equal(t, bookingsvc.ErrAlreadyDecided, bookingsvc.Code(err))
}

func TestSetApproval_CrossStatusFlipAllowed(t *testing.T) {
	// The guard blocks only resubmission of the same decision, not a flip.
	bm := waitingRow(model.BookingApproved)
	s := bookingsvc.NewWithClock(&usersMock{}, availableItem(2), bm, clock)

	out, err := s.SetApproval(context.Background(), 2, 5, false)
	require.NoError(t, err)
	require.Equal(t, model.BookingRejected, out.Status)
}

func TestSetApproval_NotOwnerIsNotFound(t *testing.T) {
	s := bookingsvc.NewWithClock(&usersMock{}, availableItem(2), waitingRow(model.BookingWaiting), clock)

	_, err := s.SetApproval(context.Background(), 3, 5, true)
	require.Equal(t, bookingsvc.ErrNotOwner, bookingsvc.Code(err))
}

func TestSetApproval_MissingBooking(t *testing.T) {
	bm := &bookingsMock{byIDFn: func(ctx context.Context, id int64) (*bookingsvc.Row, error) {
		return nil, pgx.ErrNoRows
	}}
	s := bookingsvc.NewWithClock(&usersMock{}, availableItem(2), bm, clock)

	_, err := s.SetApproval(context.Background(), 2, 404, true)
	require.Equal(t, bookingsvc.ErrBookingNotFound, bookingsvc.Code(err))
}

// --- single lookup ---

func TestByID_VisibleToBookerAndOwnerOnly(t *testing.T) {
	s := bookingsvc.NewWithClock(&usersMock{}, availableItem(2), waitingRow(model.BookingWaiting), clock)

	for _, uid := range []int64{1, 2} {
		out, err := s.ByID(context.Background(), uid, 5)
		require.NoError(t, err)
		require.Equal(t, int64(5), out.ID)
	}

	_, err := s.ByID(context.Background(), 99, 5)
	require.Equal(t, bookingsvc.ErrNotViewer, bookingsvc.Code(err))
}

// --- state-filtered listings ---

func TestListByBooker_StateAndPaging(t *testing.T) {
	var gotState model.BookingState
	var gotNow time.Time
	var gotLimit, gotOffset int
	bm := &bookingsMock{
		listBookerFn: func(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, limit, offset int) ([]bookingsvc.Row, error) {
			gotState, gotNow, gotLimit, gotOffset = state, now, limit, offset
			return []bookingsvc.Row{{ID: 1, BookerID: bookerID}}, nil
		},
	}
	s := bookingsvc.NewWithClock(&usersMock{}, availableItem(2), bm, clock)

	out, err := s.ListByBooker(context.Background(), 1, "current", 25, 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, model.StateCurrent, gotState)
	require.Equal(t, fixedNow, gotNow)
	require.Equal(t, 10, gotLimit)
	// page index 25/10 = 2, so the query skips two full pages
	require.Equal(t, 20, gotOffset)
}

func TestListByBooker_DefaultsToAll(t *testing.T) {
	var gotState model.BookingState
	bm := &bookingsMock{
		listBookerFn: func(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, limit, offset int) ([]bookingsvc.Row, error) {
			gotState = state
			return nil, nil
		},
	}
	s := bookingsvc.NewWithClock(&usersMock{}, availableItem(2), bm, clock)

	out, err := s.ListByBooker(context.Background(), 1, "", 0, 10)
	require.NoError(t, err)
	require.Empty(t, out)
	require.Equal(t, model.StateAll, gotState)
}

func TestList_UnknownState(t *testing.T) {
	s := bookingsvc.NewWithClock(&usersMock{}, availableItem(2), &bookingsMock{}, clock)

	for _, state := range []string{"BOGUS", "UNSUPPORTED_STATUS"} {
		_, err := s.ListByBooker(context.Background(), 1, state, 0, 10)
		require.Equal(t, bookingsvc.ErrUnknownState, bookingsvc.Code(err))
		require.EqualError(t, err, "Unknown state: UNSUPPORTED_STATUS")
	}
}

func TestList_BadPagination(t *testing.T) {
	s := bookingsvc.NewWithClock(&usersMock{}, availableItem(2), &bookingsMock{}, clock)

	for _, tc := range []struct{ from, size int }{{-1, 10}, {0, 0}, {0, -5}} {
		_, err := s.ListByBooker(context.Background(), 1, "ALL", tc.from, tc.size)
		require.Equal(t, bookingsvc.ErrBadPagination, bookingsvc.Code(err))
	}
}

func TestListByOwner_RequiresItems(t *testing.T) {
	im := availableItem(2)
	im.countByOwnerFn = func(ctx context.Context, ownerID int64) (int64, error) { return 0, nil }
	s := bookingsvc.NewWithClock(&usersMock{}, im, &bookingsMock{}, clock)

	_, err := s.ListByOwner(context.Background(), 2, "ALL", 0, 10)
	require.Equal(t, bookingsvc.ErrNoItems, bookingsvc.Code(err))
}

func TestListByOwner_Scoped(t *testing.T) {
	var gotOwner int64
	bm := &bookingsMock{
		listOwnerFn: func(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, limit, offset int) ([]bookingsvc.Row, error) {
			gotOwner = ownerID
			return []bookingsvc.Row{{ID: 3, ItemOwnerID: ownerID}}, nil
		},
	}
	s := bookingsvc.NewWithClock(&usersMock{}, availableItem(2), bm, clock)

	out, err := s.ListByOwner(context.Background(), 2, "waiting", 0, 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, int64(2), gotOwner)
}

// --- end-to-end scenario over mocks ---

func TestScenario_BookApproveViewReapprove(t *testing.T) {
	status := model.BookingWaiting
	var bookingID int64

	bm := &bookingsMock{
		createFn: func(ctx context.Context, b *model.Booking) error {
			b.ID = 100
			bookingID = b.ID
			return nil
		},
		byIDFn: func(ctx context.Context, id int64) (*bookingsvc.Row, error) {
			if id != bookingID {
				return nil, pgx.ErrNoRows
			}
			return &bookingsvc.Row{
				ID: id, Start: fixedNow.Add(time.Hour), End: fixedNow.Add(48 * time.Hour),
				Status: status, ItemID: 10, ItemOwnerID: 1, BookerID: 2,
			}, nil
		},
		updateStatusFn: func(ctx context.Context, id int64, st model.BookingStatus) error {
			status = st
			return nil
		},
	}
	s := bookingsvc.NewWithClock(&usersMock{}, availableItem(1), bm, clock)
	ctx := context.Background()

	// B books A's item
	created, err := s.Create(ctx, 2, createReq(fixedNow.Add(time.Hour), fixedNow.Add(48*time.Hour)))
	require.NoError(t, err)
	require.Equal(t, model.BookingWaiting, created.Status)

	// A approves
	approved, err := s.SetApproval(ctx, 1, created.ID, true)
	require.NoError(t, err)
	require.Equal(t, model.BookingApproved, approved.Status)

	// B sees the approved booking
	seen, err := s.ByID(ctx, 2, created.ID)
	require.NoError(t, err)
	require.Equal(t, model.BookingApproved, seen.Status)

	// a second approve conflicts
	_, err = s.SetApproval(ctx, 1, created.ID, true)
	require.Equal(t, bookingsvc.ErrAlreadyDecided, bookingsvc.Code(err))
}
