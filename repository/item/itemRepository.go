package itemrepo

import (
	"context"

	"shareit/model"
	"shareit/util/database"
)

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	Delete(ctx context.Context, id int64) error

	ByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]model.Item, error)
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)
	SearchByText(ctx context.Context, text string, limit, offset int) ([]model.Item, error)
	ByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.Item, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, it *model.Item) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO items(name, description, available, owner_id, request_id)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id`,
		it.Name, it.Description, it.Available, it.OwnerID, it.RequestID,
	).Scan(&it.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Item, error) {
	it := &model.Item{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE id = $1`,
		id,
	).Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *repo) Update(ctx context.Context, it *model.Item) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE items
		SET name = $2, description = $3, available = $4
		WHERE id = $1`,
		it.ID, it.Name, it.Description, it.Available)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	return err
}

func (r *repo) ByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]model.Item, error) {
	const q = `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE owner_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3`
	return r.list(ctx, q, ownerID, limit, offset)
}

func (r *repo) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	var n int64
	err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM items WHERE owner_id = $1`, ownerID).Scan(&n)
	return n, err
}

func (r *repo) SearchByText(ctx context.Context, text string, limit, offset int) ([]model.Item, error) {
	// Available items only; match is case-insensitive on name or description.
	const q = `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE available = true
		AND (upper(name) LIKE '%' || $1 || '%' OR upper(description) LIKE '%' || $1 || '%')
		ORDER BY id
		LIMIT $2 OFFSET $3`
	return r.list(ctx, q, text, limit, offset)
}

func (r *repo) ByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.Item, error) {
	const q = `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE request_id = ANY($1)
		ORDER BY id`
	return r.list(ctx, q, requestIDs)
}

func (r *repo) list(ctx context.Context, q string, args ...any) ([]model.Item, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
