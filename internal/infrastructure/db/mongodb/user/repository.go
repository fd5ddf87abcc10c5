package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"user-record-manager/internal/domain/user"
	"user-record-manager/internal/infrastructure/db/mongodb"
)

const pageSize = 50

// collection is the part of *mongo.Collection the repository uses.
type collection interface {
	Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error)
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
	FindOneAndUpdate(ctx context.Context, filter any, update any, opts ...options.Lister[options.FindOneAndUpdateOptions]) *mongo.SingleResult
}

var _ collection = (*mongo.Collection)(nil)

type Repository struct {
	coll collection
	now  func() time.Time
}

func NewRepository(db *mongo.Database) user.Repository {
	return newRepository(db.Collection(mongodb.UsersCollection))
}

func newRepository(coll collection) *Repository {
	return &Repository{
		coll: coll,
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (r *Repository) FetchUsers(ctx context.Context, page int) (user.Users, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(pageSize)

	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}

	var docs Users
	if err = cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	return fromDocuments(docs)
}

func (r *Repository) FetchUserByID(ctx context.Context, id user.UUID) (*user.User, error) {
	return r.fetchOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

func (r *Repository) FetchUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.fetchOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *Repository) fetchOne(ctx context.Context, filter bson.D) (*user.User, error) {
	var doc User
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return fromDocument(&doc)
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	if req.Password != "" {
		return nil, user.ErrPlaintextPassword
	}

	now := r.now()
	req.ID = uuid.New()
	req.CreatedAt = now
	req.UpdatedAt = now

	doc := toDocument(req)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, user.ErrEmailAlreadyExists
		}
		return nil, err
	}

	return fromDocument(doc)
}

func (r *Repository) UpdateUser(ctx context.Context, req user.User) (*user.User, error) {
	if req.Password != "" {
		return nil, user.ErrPlaintextPassword
	}

	doc := toDocument(req)
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: doc.Name},
		{Key: "email", Value: doc.Email},
		{Key: "phone", Value: doc.Phone},
		{Key: "password_hash", Value: doc.PasswordHash},
		{Key: "role", Value: doc.Role},
		{Key: "product_refs", Value: doc.ProductRefs},
		{Key: "updated_at", Value: r.now()},
	}}}

	var updated User
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.D{{Key: "_id", Value: doc.ID}},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, user.ErrEmailAlreadyExists
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return fromDocument(&updated)
}
