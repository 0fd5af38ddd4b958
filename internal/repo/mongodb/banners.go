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

type BannersRepo struct {
	col  *mongo.Collection
	prom *observability.Prom
}

func NewBannersRepo(db *mongo.Database, prom *observability.Prom) *BannersRepo {
	return &BannersRepo{
		col:  db.Collection("banner"),
		prom: prom,
	}
}

func (r *BannersRepo) observe(op string, fn func() error) error {
	if r.prom == nil {
		return fn()
	}
	return r.prom.ObserveStore(op, fn)
}

func (r *BannersRepo) List(ctx context.Context) ([]content.Banner, error) {
	var items []content.Banner

	err := r.observe("banner.list", func() error {
		cur, ferr := r.col.Find(ctx, bson.M{})

		if ferr != nil {
			return ferr
		}

		return cur.All(ctx, &items)
	})

	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}

	if items == nil {
		items = []content.Banner{}
	}

	return items, nil
}

func (r *BannersRepo) Insert(ctx context.Context, b content.Banner) (content.Banner, error) {
	err := r.observe("banner.insert", func() error {
		res, ierr := r.col.InsertOne(ctx, b)

		if ierr != nil {
			return ierr
		}

		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			b.ID = oid
		}

		return nil
	})

	if err != nil {
		return content.Banner{}, fmt.Errorf("insert banner: %w", err)
	}

	return b, nil
}

func (r *BannersRepo) Update(ctx context.Context, id string, upd content.BannerUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return ErrInvalidID
	}

	set := bson.M{}

	if upd.Image != nil {
		set["image"] = *upd.Image
	}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}

	var res *mongo.UpdateResult

	err = r.observe("banner.update", func() error {
		var uerr error
		res, uerr = r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
		return uerr
	})

	if err != nil {
		return fmt.Errorf("update banner: %w", err)
	}

	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}
