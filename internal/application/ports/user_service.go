package ports

import (
	"context"

	"user-record-manager/internal/domain/user"
)

type UserService interface {
	FindUserByID(ctx context.Context, id user.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindUsers(ctx context.Context, page int) (user.Users, error)
	Register(ctx context.Context, u user.User) (*user.User, error)
	UpdateUser(ctx context.Context, id user.UUID, patch user.Patch) (*user.User, error)
	ChangePassword(ctx context.Context, id user.UUID, password string) (*user.User, error)
	AttachProduct(ctx context.Context, id user.UUID, productID user.UUID) (*user.User, error)
	DetachProduct(ctx context.Context, id user.UUID, productID user.UUID) (*user.User, error)
}
