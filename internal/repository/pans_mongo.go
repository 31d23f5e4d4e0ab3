package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brandonleon/carbsmart/internal/domain/model"
)

const panSequence = "pans"

// MongoPanRepository stores pans in MongoDB. Ids come from a counter
// document so they stay small positive integers as in the SQL stores.
type MongoPanRepository struct {
	db *MongoDB
}

// NewMongoPanRepository creates a new pan repository on db.
func NewMongoPanRepository(db *MongoDB) *MongoPanRepository {
	return &MongoPanRepository{db: db}
}

func (r *MongoPanRepository) List(ctx context.Context) ([]model.Pan, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "capacity_label", Value: 1}})
	cursor, err := r.db.Pans.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	pans := []model.Pan{}
	if err := cursor.All(ctx, &pans); err != nil {
		return nil, err
	}
	return pans, nil
}

func (r *MongoPanRepository) GetByID(ctx context.Context, id int64) (*model.Pan, error) {
	var pan model.Pan
	err := r.db.Pans.FindOne(ctx, bson.M{"_id": id}).Decode(&pan)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pan, nil
}

func (r *MongoPanRepository) Create(ctx context.Context, in model.PanInput) (*model.Pan, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	pan := model.Pan{
		ID:            id,
		Name:          in.Name,
		WeightGrams:   in.WeightGrams,
		CapacityLabel: in.CapacityLabel,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := r.db.Pans.InsertOne(ctx, pan); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return &pan, nil
}

func (r *MongoPanRepository) Update(ctx context.Context, pan model.Pan) (*model.Pan, error) {
	set := bson.M{
		"name":           pan.Name,
		"weight_grams":   pan.WeightGrams,
		"capacity_label": pan.CapacityLabel,
		"updated_at":     time.Now().UTC().Truncate(time.Millisecond),
	}
	update := bson.M{"$set": set}
	if pan.Notes != nil {
		set["notes"] = *pan.Notes
	} else {
		update["$unset"] = bson.M{"notes": ""}
	}

	var updated model.Pan
	err := r.db.Pans.FindOneAndUpdate(
		ctx,
		bson.M{"_id": pan.ID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return nil, ErrDuplicateKey
	case err != nil:
		return nil, err
	}
	return &updated, nil
}

func (r *MongoPanRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Pans.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPanRepository) Count(ctx context.Context) (int64, error) {
	return r.db.Pans.CountDocuments(ctx, bson.M{})
}

func (r *MongoPanRepository) Ping(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}

func (r *MongoPanRepository) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.db.Counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": panSequence},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}
