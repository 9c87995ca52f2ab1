package repository

import (
	"context"
	"errors"

	"github.com/aspiantech/ogle-api/internal/domain/entity"
)

// ErrNotFound is returned by every repository when a lookup does not
// resolve. Implementations translate their driver's sentinel (for
// mongo-driver, mongo.ErrNoDocuments) into this one.
var ErrNotFound = errors.New("not found")

// UserRepository defines user persistence. Email lookups are
// case-insensitive; implementations store emails lowercased.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}

type PropertyRepository interface {
	Create(ctx context.Context, p *entity.Property) error
	GetByID(ctx context.Context, id string) (*entity.Property, error)
	FindAll(ctx context.Context) ([]*entity.Property, error)
	FindByListingType(ctx context.Context, listingType string) ([]*entity.Property, error)
	FindByOwner(ctx context.Context, userID string) ([]*entity.Property, error)
	Update(ctx context.Context, p *entity.Property) error
	Delete(ctx context.Context, id string) error
}

type NewsletterRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.NewsletterSubscription, error)
	Create(ctx context.Context, s *entity.NewsletterSubscription) error
}
