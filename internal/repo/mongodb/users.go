package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/mirkamary/schoolhub/internal/domain/user"
	"github.com/mirkamary/schoolhub/internal/observability"
	"github.com/mirkamary/schoolhub/internal/users"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UsersStore is the record store shim behind the lifecycle service. It
// holds no state beyond the collection handle; atomicity comes from the
// store's own update primitives.
type UsersStore struct {
	col  *mongo.Collection
	prom *observability.Prom
}

func NewUsersStore(db *mongo.Database, prom *observability.Prom) *UsersStore {
	return &UsersStore{
		col:  db.Collection("users"),
		prom: prom,
	}
}

var _ users.Store = (*UsersStore)(nil)

func (s *UsersStore) observe(op string, fn func() error) error {
	if s.prom == nil {
		return fn()
	}
	return s.prom.ObserveStore(op, fn)
}

func pairFilter(email, displayName string) bson.M {
	return bson.M{"email": email, "displayName": displayName}
}

func (s *UsersStore) FindByKey(ctx context.Context, email, displayName string) (*user.Record, error) {
	var rec user.Record

	err := s.observe("users.find_by_key", func() error {
		return s.col.FindOne(ctx, pairFilter(email, displayName)).Decode(&rec)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, fmt.Errorf("find user by key: %w", err)
	}

	return &rec, nil
}

func (s *UsersStore) SetStatus(ctx context.Context, email, displayName, status string) (*user.Record, error) {
	var rec user.Record

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err := s.observe("users.set_status", func() error {
		return s.col.FindOneAndUpdate(
			ctx,
			pairFilter(email, displayName),
			bson.M{"$set": bson.M{"status": status}},
			opts,
		).Decode(&rec)
	})

	if err != nil {
		return nil, fmt.Errorf("set user status: %w", err)
	}

	return &rec, nil
}

// Insert writes a new record for the pair key. It runs as an upsert so
// two concurrent first writes for the same pair converge onto one
// document instead of erroring.
func (s *UsersStore) Insert(ctx context.Context, p user.Profile, timestamp int64) (*user.Record, error) {
	doc := bson.M{}

	for k, v := range p.Extra {
		doc[k] = v
	}

	doc["email"] = p.Email
	doc["displayName"] = p.DisplayName
	doc["timestamp"] = timestamp

	if p.Status != "" {
		doc["status"] = p.Status
	}

	var rec user.Record

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	err := s.observe("users.insert", func() error {
		return s.col.FindOneAndUpdate(
			ctx,
			pairFilter(p.Email, p.DisplayName),
			bson.M{"$set": doc},
			opts,
		).Decode(&rec)
	})

	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &rec, nil
}

func (s *UsersStore) UpdateRole(ctx context.Context, email, role string) (int64, int64, error) {
	var res *mongo.UpdateResult

	err := s.observe("users.update_role", func() error {
		var uerr error
		res, uerr = s.col.UpdateOne(
			ctx,
			bson.M{"email": email},
			bson.M{"$set": bson.M{"role": role}},
		)
		return uerr
	})

	if err != nil {
		return 0, 0, fmt.Errorf("update user role: %w", err)
	}

	return res.MatchedCount, res.ModifiedCount, nil
}

func (s *UsersStore) FindByEmail(ctx context.Context, email string) (*user.Record, error) {
	var rec user.Record

	err := s.observe("users.find_by_email", func() error {
		return s.col.FindOne(ctx, bson.M{"email": email}).Decode(&rec)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return &rec, nil
}

func (s *UsersStore) List(ctx context.Context, opts users.ListOptions) ([]user.Record, error) {
	findOpts := options.Find()

	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}

	var recs []user.Record

	err := s.observe("users.list", func() error {
		cur, ferr := s.col.Find(ctx, bson.M{}, findOpts)

		if ferr != nil {
			return ferr
		}

		return cur.All(ctx, &recs)
	})

	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return recs, nil
}
