package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aspiantech/ogle-api/internal/domain/entity"
	"github.com/aspiantech/ogle-api/internal/domain/repository"
)

type PropertyRepository struct {
	coll *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{coll: db.Collection(propertiesCollection)}
}

func (r *PropertyRepository) Create(ctx context.Context, p *entity.Property) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = entity.StatusAvailable
	}

	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*entity.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	p := &entity.Property{}
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PropertyRepository) FindAll(ctx context.Context) ([]*entity.Property, error) {
	return r.find(ctx, bson.M{})
}

func (r *PropertyRepository) FindByListingType(ctx context.Context, listingType string) ([]*entity.Property, error) {
	return r.find(ctx, bson.M{"listingType": listingType})
}

func (r *PropertyRepository) FindByOwner(ctx context.Context, userID string) ([]*entity.Property, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []*entity.Property{}, nil
	}
	return r.find(ctx, bson.M{"user": oid})
}

func (r *PropertyRepository) find(ctx context.Context, filter bson.M) ([]*entity.Property, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	out := []*entity.Property{}
	for cur.Next(ctx) {
		p := &entity.Property{}
		if err := cur.Decode(p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}

func (r *PropertyRepository) Update(ctx context.Context, p *entity.Property) error {
	p.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.PropertyRepository = (*PropertyRepository)(nil)
