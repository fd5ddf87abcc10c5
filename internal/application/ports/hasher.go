package ports

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Compare must run in constant time with respect to the candidate.
	Compare(hash, plaintext string) bool
}
