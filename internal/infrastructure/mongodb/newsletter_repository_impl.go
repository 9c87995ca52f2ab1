package mongodb

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aspiantech/ogle-api/internal/domain/entity"
	"github.com/aspiantech/ogle-api/internal/domain/repository"
)

type NewsletterRepository struct {
	coll *mongo.Collection
}

func NewNewsletterRepository(db *mongo.Database) *NewsletterRepository {
	return &NewsletterRepository{coll: db.Collection(newsletterCollection)}
}

func (r *NewsletterRepository) GetByEmail(ctx context.Context, email string) (*entity.NewsletterSubscription, error) {
	s := &entity.NewsletterSubscription{}
	filter := bson.M{"email": strings.ToLower(email)}
	if err := r.coll.FindOne(ctx, filter).Decode(s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *NewsletterRepository) Create(ctx context.Context, s *entity.NewsletterSubscription) error {
	s.Email = strings.ToLower(s.Email)
	if s.SubscribedAt.IsZero() {
		s.SubscribedAt = time.Now().UTC()
	}

	res, err := r.coll.InsertOne(ctx, s)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid
	}
	return nil
}

var _ repository.NewsletterRepository = (*NewsletterRepository)(nil)
