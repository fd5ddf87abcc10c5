package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	domain "user-record-manager/internal/domain/user"
	"user-record-manager/internal/infrastructure/mq"
)

// memRepo follows the repository contract: unique emails, no plaintext.
type memRepo struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]domain.User
	writes int
}

func newMemRepo() *memRepo {
	return &memRepo{byID: make(map[uuid.UUID]domain.User)}
}

func clone(u domain.User) *domain.User {
	u.ProductRefs = append([]domain.UUID(nil), u.ProductRefs...)
	return &u
}

func (m *memRepo) FetchUserByID(_ context.Context, id domain.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return clone(u), nil
}

func (m *memRepo) FetchUserByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.byID {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (m *memRepo) FetchUsers(_ context.Context, _ int) (domain.Users, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	us := make(domain.Users, 0, len(m.byID))
	for _, u := range m.byID {
		us = append(us, clone(u))
	}
	return us, nil
}

func (m *memRepo) CreateUser(_ context.Context, req domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if req.Password != "" {
		return nil, domain.ErrPlaintextPassword
	}
	if m.emailTaken(req.Email, uuid.Nil) {
		return nil, domain.ErrEmailAlreadyExists
	}

	now := time.Now().UTC()
	req.ID = uuid.New()
	req.CreatedAt, req.UpdatedAt = now, now
	m.byID[req.ID] = *clone(req)
	m.writes++

	return clone(req), nil
}

func (m *memRepo) UpdateUser(_ context.Context, req domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if req.Password != "" {
		return nil, domain.ErrPlaintextPassword
	}
	if _, ok := m.byID[req.ID]; !ok {
		return nil, nil
	}
	if m.emailTaken(req.Email, req.ID) {
		return nil, domain.ErrEmailAlreadyExists
	}

	req.UpdatedAt = time.Now().UTC()
	m.byID[req.ID] = *clone(req)
	m.writes++

	return clone(req), nil
}

func (m *memRepo) emailTaken(email string, except uuid.UUID) bool {
	for id, u := range m.byID {
		if u.Email == email && id != except {
			return true
		}
	}
	return false
}

func (m *memRepo) stored(id uuid.UUID) domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id]
}

type chanMQ struct {
	in chan mq.Event
}

func newChanMQ(size int) *chanMQ { return &chanMQ{in: make(chan mq.Event, size)} }

func (c *chanMQ) Connect(context.Context, string) error { return nil }
func (c *chanMQ) Init() error                           { return nil }
func (c *chanMQ) PublisherWorker(context.Context)       {}
func (c *chanMQ) GetInputChan() chan mq.Event           { return c.in }
func (c *chanMQ) GetConn() *amqp091.Connection          { return nil }
