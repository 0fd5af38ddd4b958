package mongodb

import (
	"context"
	"fmt"

	"github.com/mirkamary/schoolhub/internal/domain/content"
	"github.com/mirkamary/schoolhub/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AnnouncementsRepo struct {
	col  *mongo.Collection
	prom *observability.Prom
}

func NewAnnouncementsRepo(db *mongo.Database, prom *observability.Prom) *AnnouncementsRepo {
	return &AnnouncementsRepo{
		col:  db.Collection("announcement"),
		prom: prom,
	}
}

func (r *AnnouncementsRepo) observe(op string, fn func() error) error {
	if r.prom == nil {
		return fn()
	}
	return r.prom.ObserveStore(op, fn)
}

func (r *AnnouncementsRepo) List(ctx context.Context) ([]content.Announcement, error) {
	var items []content.Announcement

	err := r.observe("announcement.list", func() error {
		cur, ferr := r.col.Find(ctx, bson.M{})

		if ferr != nil {
			return ferr
		}

		return cur.All(ctx, &items)
	})

	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}

	if items == nil {
		items = []content.Announcement{}
	}

	return items, nil
}

func (r *AnnouncementsRepo) Insert(ctx context.Context, a content.Announcement) (content.Announcement, error) {
	err := r.observe("announcement.insert", func() error {
		res, ierr := r.col.InsertOne(ctx, a)

		if ierr != nil {
			return ierr
		}

		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			a.ID = oid
		}

		return nil
	})

	if err != nil {
		return content.Announcement{}, fmt.Errorf("insert announcement: %w", err)
	}

	return a, nil
}
