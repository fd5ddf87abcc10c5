package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"user-record-manager/internal/application/ports"
	domain "user-record-manager/internal/domain/user"
	"user-record-manager/internal/infrastructure/mq"
	"user-record-manager/internal/interface/api/rest/dto/user"
)

// UserService is the only write path to the repository: every create and
// update goes through persist, so the pre-persist hook cannot be skipped.
type UserService struct {
	userRepository domain.Repository
	records        *RecordManager
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	userRepository domain.Repository,
	records *RecordManager,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		records:        records,
		mq:             mq,
		mCounter:       mCounter,
	}
}

func (us *UserService) FindUserByID(ctx context.Context, id domain.UUID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindUsers(ctx context.Context, page int) (domain.Users, error) {
	users, err := us.userRepository.FetchUsers(ctx, page)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (us *UserService) Register(ctx context.Context, u domain.User) (*domain.User, error) {
	u.ID = uuid.Nil
	u.PasswordHash = ""

	uRet, err := us.persist(ctx, &u, true, true)
	if err != nil {
		return nil, err
	}

	us.publish(mq.RoutingUserCreated, uRet)
	us.inc("user_created_total")

	return uRet, nil
}

func (us *UserService) UpdateUser(ctx context.Context, id domain.UUID, patch domain.Patch) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}
	if patch.Empty() {
		return u, nil
	}

	passwordChanged := patch.Apply(u)

	return us.update(ctx, u, passwordChanged)
}

func (us *UserService) ChangePassword(ctx context.Context, id domain.UUID, password string) (*domain.User, error) {
	return us.UpdateUser(ctx, id, domain.Patch{Password: &password})
}

func (us *UserService) AttachProduct(ctx context.Context, id domain.UUID, productID domain.UUID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}
	if !u.AddProductRef(productID) {
		return u, nil
	}

	return us.update(ctx, u, false)
}

func (us *UserService) DetachProduct(ctx context.Context, id domain.UUID, productID domain.UUID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}
	if !u.RemoveProductRef(productID) {
		return u, nil
	}

	return us.update(ctx, u, false)
}

func (us *UserService) update(ctx context.Context, u *domain.User, passwordChanged bool) (*domain.User, error) {
	uRet, err := us.persist(ctx, u, passwordChanged, false)
	if err != nil {
		return nil, err
	}

	if uRet != nil {
		us.publish(mq.RoutingUserUpdated, uRet)
	}
	us.inc("user_updated_total")

	return uRet, nil
}

// persist runs defaults, validation and the pre-persist hook, in that order,
// and only then hands the record to the repository.
func (us *UserService) persist(ctx context.Context, u *domain.User, passwordChanged, create bool) (*domain.User, error) {
	u.ApplyDefaults()
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := us.records.BeforePersist(u, passwordChanged); err != nil {
		if errors.Is(err, domain.ErrHashingFailure) {
			us.inc("user_hashing_failed_total")
		}
		return nil, err
	}

	if create {
		return us.userRepository.CreateUser(ctx, *u)
	}
	return us.userRepository.UpdateUser(ctx, *u)
}

func (us *UserService) publish(routingKey string, u *domain.User) {
	if us.mq == nil || u == nil {
		return
	}

	e := mq.Event{
		Id:         uuid.New(),
		TS:         time.Now(),
		RoutingKey: routingKey,
		UserID:     u.ID.String(),
		Payload:    user.ToResponseUser(*u),
	}
	select {
	case us.mq.GetInputChan() <- e:
	default:
		us.inc("user_events_dropped_total")
	}
}

func (us *UserService) inc(label string) {
	if us.mCounter != nil {
		us.mCounter.WithLabelValues(label).Inc()
	}
}
