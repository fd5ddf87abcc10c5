package services

import (
	"errors"
	"fmt"

	"user-record-manager/config"
	"user-record-manager/internal/application/ports"
	"user-record-manager/internal/domain/user"
	"user-record-manager/internal/infrastructure/jwt"
)

var ErrNoUser = errors.New("no user record to issue a token for")

// RecordManager guards password confidentiality of user records and issues
// access tokens for them. It keeps no state between calls.
type RecordManager struct {
	hasher ports.PasswordHasher
	signer ports.TokenSigner
}

func NewRecordManager(hasher ports.PasswordHasher, signer ports.TokenSigner) *RecordManager {
	return &RecordManager{
		hasher: hasher,
		signer: signer,
	}
}

// BeforePersist must run right before a record is written. When the
// password is part of the write, the plaintext is replaced by its hash; on
// failure the record is left as it was and the write must not happen.
func (rm *RecordManager) BeforePersist(u *user.User, passwordChanged bool) error {
	if !passwordChanged {
		return nil
	}
	if u.Password == "" {
		return &user.ValidationError{Fields: map[string]string{"password": "password is required"}}
	}

	hash, err := rm.hasher.Hash(u.Password)
	if err != nil {
		return fmt.Errorf("%w: %w", user.ErrHashingFailure, err)
	}

	u.PasswordHash = hash
	u.Password = ""

	return nil
}

func (rm *RecordManager) VerifyPassword(u *user.User, candidate string) bool {
	if u == nil {
		return false
	}
	return rm.hasher.Compare(u.PasswordHash, candidate)
}

func (rm *RecordManager) IssueAccessToken(u *user.User, cfg config.Token) (string, error) {
	if u == nil {
		return "", ErrNoUser
	}
	if cfg.Secret == "" {
		return "", fmt.Errorf("%w: ACCESS_TOKEN_SECRET is empty", user.ErrSigningConfiguration)
	}
	expiresIn, err := jwt.ParseExpiry(cfg.Expiry)
	if err != nil {
		return "", fmt.Errorf("%w: ACCESS_TOKEN_EXPIRY: %w", user.ErrSigningConfiguration, err)
	}

	token, err := rm.signer.GenerateJWT(u.ID.String(), u.Email, u.Role.String(), cfg.Secret, expiresIn)
	if err != nil {
		return "", err
	}

	return token, nil
}
