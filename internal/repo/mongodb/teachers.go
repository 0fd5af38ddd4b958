package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/mirkamary/schoolhub/internal/domain/content"
	"github.com/mirkamary/schoolhub/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TeachersRepo struct {
	col  *mongo.Collection
	prom *observability.Prom
}

func NewTeachersRepo(db *mongo.Database, prom *observability.Prom) *TeachersRepo {
	return &TeachersRepo{
		col:  db.Collection("teacher"),
		prom: prom,
	}
}

func (r *TeachersRepo) observe(op string, fn func() error) error {
	if r.prom == nil {
		return fn()
	}
	return r.prom.ObserveStore(op, fn)
}

func (r *TeachersRepo) List(ctx context.Context) ([]content.Teacher, error) {
	var items []content.Teacher

	err := r.observe("teacher.list", func() error {
		cur, ferr := r.col.Find(ctx, bson.M{})

		if ferr != nil {
			return ferr
		}

		return cur.All(ctx, &items)
	})

	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}

	if items == nil {
		items = []content.Teacher{}
	}

	return items, nil
}

func (r *TeachersRepo) GetByID(ctx context.Context, id string) (content.Teacher, error) {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return content.Teacher{}, ErrInvalidID
	}

	var t content.Teacher

	err = r.observe("teacher.get", func() error {
		return r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&t)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return content.Teacher{}, ErrNotFound
		}

		return content.Teacher{}, fmt.Errorf("get teacher: %w", err)
	}

	return t, nil
}

func (r *TeachersRepo) Insert(ctx context.Context, t content.Teacher) (content.Teacher, error) {
	err := r.observe("teacher.insert", func() error {
		res, ierr := r.col.InsertOne(ctx, t)

		if ierr != nil {
			return ierr
		}

		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			t.ID = oid
		}

		return nil
	})

	if err != nil {
		return content.Teacher{}, fmt.Errorf("insert teacher: %w", err)
	}

	return t, nil
}

func (r *TeachersRepo) Update(ctx context.Context, id string, upd content.TeacherUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return ErrInvalidID
	}

	set := bson.M{}

	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Role != nil {
		set["role"] = *upd.Role
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}
	if upd.Details != nil {
		set["details"] = *upd.Details
	}

	var res *mongo.UpdateResult

	err = r.observe("teacher.update", func() error {
		var uerr error
		res, uerr = r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
		return uerr
	})

	if err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}

	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *TeachersRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return ErrInvalidID
	}

	var res *mongo.DeleteResult

	err = r.observe("teacher.delete", func() error {
		var derr error
		res, derr = r.col.DeleteOne(ctx, bson.M{"_id": oid})
		return derr
	})

	if err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}

	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
