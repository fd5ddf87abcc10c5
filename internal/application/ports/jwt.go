package ports

import (
	"time"

	"user-record-manager/internal/domain/user"
)

type Auth interface {
	GenerateToken(u *user.User, requestPassword string) (string, error)
}

type TokenSigner interface {
	GenerateJWT(userID, email, role, secret string, expiresIn time.Duration) (string, error)
}
