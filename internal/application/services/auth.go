package services

import (
	"errors"
	"fmt"

	"user-record-manager/config"
	"user-record-manager/internal/application/ports"
	"user-record-manager/internal/domain/user"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)

type AuthService struct {
	records  *RecordManager
	tokenCfg config.Token
}

func NewAuthService(
	records *RecordManager,
	tokenCfg config.Token,
) ports.Auth {
	return &AuthService{
		records:  records,
		tokenCfg: tokenCfg,
	}
}

func (as *AuthService) GenerateToken(u *user.User, requestPassword string) (string, error) {
	if !as.records.VerifyPassword(u, requestPassword) {
		return "", ErrInvalidCredentials
	}

	token, err := as.records.IssueAccessToken(u, as.tokenCfg)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFailedToGenerateToken, err)
	}

	return token, nil
}
