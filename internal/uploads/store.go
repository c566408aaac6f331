package uploads

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store persists Upload records. There is no filtering or pagination; All
// returns the collection in whatever order the store yields it.
type Store interface {
	Create(ctx context.Context, u *Upload) error
	All(ctx context.Context) ([]Upload, error)
}

type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection("uploads")}
}

func (s *MongoStore) Create(ctx context.Context, u *Upload) error {
	res, err := s.coll.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (s *MongoStore) All(ctx context.Context) ([]Upload, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	// Empty slice, not nil, so the handler serializes [] for an empty
	// collection.
	records := []Upload{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
