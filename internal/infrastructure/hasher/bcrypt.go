package hasher

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the work factor existing hashes were produced with.
const DefaultCost = 10

type Bcrypt struct {
	cost     int
	duration prometheus.Observer
}

// NewBcrypt returns a bcrypt hasher. duration may be nil.
func NewBcrypt(cost int, duration prometheus.Observer) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Bcrypt{cost: cost, duration: duration}
}

func (b *Bcrypt) Hash(plaintext string) (string, error) {
	start := time.Now()
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if b.duration != nil {
		b.duration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return "", err
	}

	return string(h), nil
}

func (b *Bcrypt) Compare(hash, plaintext string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
