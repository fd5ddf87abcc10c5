package user

import (
	"context"
)

// Repository implementations must refuse records that still carry a
// plaintext Password (ErrPlaintextPassword) and report duplicate emails as
// ErrEmailAlreadyExists. Lookups return (nil, nil) when nothing matches.
type Repository interface {
	FetchUserByID(ctx context.Context, id UUID) (*User, error)
	FetchUserByEmail(ctx context.Context, email string) (*User, error)
	FetchUsers(ctx context.Context, page int) (Users, error)
	CreateUser(ctx context.Context, req User) (*User, error)
	UpdateUser(ctx context.Context, req User) (*User, error)
}
