package bookingrepo

import (
	"context"
	"time"

	"shareit/model"
	"shareit/util/database"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
)

// errNoRows keeps the not-found signal identical to what pgx itself returns,
// so callers can errors.Is against pgx.ErrNoRows either way.
var errNoRows = pgx.ErrNoRows

// Row is a booking joined with its item and booker, the shape every read
// operation hands back to the service layer.
type Row struct {
	ID          int64               `json:"id"`
	Start       time.Time           `json:"start"`
	End         time.Time           `json:"end"`
	Status      model.BookingStatus `json:"status"`
	ItemID      int64               `json:"item_id"`
	ItemName    string              `json:"item_name"`
	ItemOwnerID int64               `json:"-"`
	BookerID    int64               `json:"booker_id"`
	BookerName  string              `json:"booker_name"`
}

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*Row, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error

	ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, limit, offset int) ([]Row, error)
	ListByItemOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, limit, offset int) ([]Row, error)
	ListByItem(ctx context.Context, itemID int64) ([]Row, error)
	LastEndingByItemAndBooker(ctx context.Context, itemID, bookerID int64) (*Row, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const dialect = "postgres"

var rowColumns = []any{
	goqu.I("b.id"), goqu.I("b.start_date"), goqu.I("b.end_date"), goqu.I("b.status"),
	goqu.I("i.id"), goqu.I("i.name"), goqu.I("i.owner_id"),
	goqu.I("u.id"), goqu.I("u.name"),
}

func baseSelect() *goqu.SelectDataset {
	return goqu.Dialect(dialect).
		From(goqu.T("bookings").As("b")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("b.item_id").Eq(goqu.I("i.id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("b.booker_id").Eq(goqu.I("u.id")))).
		Select(rowColumns...)
}

// stateExpr maps a listing state to its WHERE expression; ALL filters nothing.
func stateExpr(state model.BookingState, now time.Time) goqu.Expression {
	switch state {
	case model.StateCurrent:
		return goqu.And(
			goqu.I("b.start_date").Lt(now),
			goqu.I("b.end_date").Gt(now),
		)
	case model.StatePast:
		return goqu.I("b.end_date").Lt(now)
	case model.StateFuture:
		return goqu.I("b.start_date").Gt(now)
	case model.StateWaiting:
		return goqu.I("b.status").Eq(string(model.BookingWaiting))
	case model.StateRejected:
		return goqu.I("b.status").Eq(string(model.BookingRejected))
	default:
		return nil
	}
}

func (r *repo) Create(ctx context.Context, b *model.Booking) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO bookings(start_date, end_date, status, item_id, booker_id)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id`,
		b.Start, b.End, b.Status, b.ItemID, b.BookerID,
	).Scan(&b.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*Row, error) {
	stmt := baseSelect().Where(goqu.I("b.id").Eq(id))
	rows, err := r.query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errNoRows
	}
	return &rows[0], nil
}

func (r *repo) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE bookings
		SET status = $2
		WHERE id = $1`,
		id, status)
	return err
}

func (r *repo) ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, limit, offset int) ([]Row, error) {
	return r.listScoped(ctx, goqu.I("b.booker_id").Eq(bookerID), state, now, limit, offset)
}

func (r *repo) ListByItemOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, limit, offset int) ([]Row, error) {
	return r.listScoped(ctx, goqu.I("i.owner_id").Eq(ownerID), state, now, limit, offset)
}

func (r *repo) listScoped(ctx context.Context, scope goqu.Expression, state model.BookingState, now time.Time, limit, offset int) ([]Row, error) {
	stmt := baseSelect().Where(scope)
	if expr := stateExpr(state, now); expr != nil {
		stmt = stmt.Where(expr)
	}
	stmt = stmt.
		Order(goqu.I("b.start_date").Desc()).
		Limit(uint(limit)).
		Offset(uint(offset))
	return r.query(ctx, stmt)
}

func (r *repo) ListByItem(ctx context.Context, itemID int64) ([]Row, error) {
	stmt := baseSelect().
		Where(goqu.I("b.item_id").Eq(itemID)).
		Order(goqu.I("b.start_date").Desc())
	return r.query(ctx, stmt)
}

// LastEndingByItemAndBooker picks the latest-ending non-rejected booking of the
// item by the user; the comment gate compares its end against "now".
func (r *repo) LastEndingByItemAndBooker(ctx context.Context, itemID, bookerID int64) (*Row, error) {
	stmt := baseSelect().
		Where(
			goqu.I("b.item_id").Eq(itemID),
			goqu.I("b.booker_id").Eq(bookerID),
			goqu.I("b.status").Neq(string(model.BookingRejected)),
		).
		Order(goqu.I("b.end_date").Desc()).
		Limit(1)
	rows, err := r.query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errNoRows
	}
	return &rows[0], nil
}

func (r *repo) query(ctx context.Context, stmt *goqu.SelectDataset) ([]Row, error) {
	sql, args, err := stmt.Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var b Row
		if err := rows.Scan(
			&b.ID, &b.Start, &b.End, &b.Status,
			&b.ItemID, &b.ItemName, &b.ItemOwnerID,
			&b.BookerID, &b.BookerName,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
