package usersvc

import (
	"context"
	"errors"
	"strings"

	"shareit/model"
	userrepo "shareit/repository/user"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("user with this email is already registered")
	ErrBlankName  = errors.New("name must not be blank")
	ErrBlankEmail = errors.New("email must not be blank")
)

type Service interface {
	Create(ctx context.Context, req model.CreateUserReq) (*model.User, error)
	All(ctx context.Context) ([]model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, id int64, req model.UpdateUserReq) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ ur userrepo.Repo }

func New(ur userrepo.Repo) Service { return &service{ur} }

func (s *service) Create(ctx context.Context, req model.CreateUserReq) (*model.User, error) {
	u := &model.User{Name: req.Name, Email: req.Email}
	if err := s.ur.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

func (s *service) All(ctx context.Context) ([]model.User, error) {
	return s.ur.All(ctx)
}

func (s *service) ByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.ur.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

func (s *service) Update(ctx context.Context, id int64, req model.UpdateUserReq) (*model.User, error) {
	u, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrBlankName
		}
		u.Name = *req.Name
	}
	if req.Email != nil {
		if strings.TrimSpace(*req.Email) == "" {
			return nil, ErrBlankEmail
		}
		u.Email = *req.Email
	}
	if err := s.ur.Update(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.ur.Delete(ctx, id)
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)

		if strings.Contains(cn, "uq_user_email") || strings.Contains(msg, "email") {
			return ErrEmailTaken
		}
	}
	return nil
}
