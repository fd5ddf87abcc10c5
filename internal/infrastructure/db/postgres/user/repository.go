package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"user-record-manager/internal/domain/user"
	"user-record-manager/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	u := new(User)
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.PasswordHash,
		&u.Role,
		&u.ProductRefs,

		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return u, nil
}

func (r *Repository) FetchUsers(ctx context.Context, page int) (user.Users, error) {
	rows, err := r.db.Query(ctx, SelectUsers, page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var us Users
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(us)
}

func (r *Repository) FetchUserByID(ctx context.Context, id user.UUID) (*user.User, error) {
	return r.fetchOne(ctx, SelectUserByID, id)
}

func (r *Repository) FetchUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.fetchOne(ctx, SelectUserByEmail, email)
}

func (r *Repository) fetchOne(ctx context.Context, query string, arg any) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u)
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	if req.Password != "" {
		return nil, user.ErrPlaintextPassword
	}

	u, err := scanUser(r.db.QueryRow(
		ctx,
		InsertUser,
		req.Name, req.Email, req.Phone, req.PasswordHash, req.Role.String(), toProductRefs(req.ProductRefs),
	))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, user.ErrEmailAlreadyExists
		}
		return nil, err
	}

	return fromDBModel(u)
}

func (r *Repository) UpdateUser(ctx context.Context, req user.User) (*user.User, error) {
	if req.Password != "" {
		return nil, user.ErrPlaintextPassword
	}

	u, err := scanUser(r.db.QueryRow(ctx, UpdateUserByID,
		req.Name, req.Email, req.Phone, req.PasswordHash, req.Role.String(), toProductRefs(req.ProductRefs), req.ID,
	))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, user.ErrEmailAlreadyExists
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u)
}
