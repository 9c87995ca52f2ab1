package application

import (
	"context"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aspiantech/ogle-api/internal/domain/entity"
	repo "github.com/aspiantech/ogle-api/internal/domain/repository"
)

// In-memory repository fakes. Error fields inject failures; call counters
// let tests assert that an operation never reached the store.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*entity.User

	createErr error
	updateErr error

	getByEmailCalls int
	updateCalls     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*entity.User{}}
}

func (r *fakeUserRepo) add(u *entity.User) *entity.User {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.Email = strings.ToLower(u.Email)
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if u.Properties == nil {
		u.Properties = []primitive.ObjectID{}
	}
	if u.Wishlist == nil {
		u.Wishlist = []entity.WishlistEntry{}
	}
	r.add(u)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repo.ErrNotFound
	}
	u, ok := r.users[oid]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.getByEmailCalls++
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.updateCalls++
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

type fakePropertyRepo struct {
	props map[primitive.ObjectID]*entity.Property
	order []primitive.ObjectID

	createErr error
	updateErr error
	deleteErr error

	deleteCalls int
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{props: map[primitive.ObjectID]*entity.Property{}}
}

func (r *fakePropertyRepo) add(p *entity.Property) *entity.Property {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.props[p.ID] = p
	r.order = append(r.order, p.ID)
	return p
}

func (r *fakePropertyRepo) Create(_ context.Context, p *entity.Property) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.add(p)
	return nil
}

func (r *fakePropertyRepo) GetByID(_ context.Context, id string) (*entity.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repo.ErrNotFound
	}
	p, ok := r.props[oid]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return p, nil
}

func (r *fakePropertyRepo) FindAll(_ context.Context) ([]*entity.Property, error) {
	out := []*entity.Property{}
	for _, id := range r.order {
		if p, ok := r.props[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) FindByListingType(ctx context.Context, listingType string) ([]*entity.Property, error) {
	all, _ := r.FindAll(ctx)
	out := []*entity.Property{}
	for _, p := range all {
		if p.ListingType == listingType {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) FindByOwner(ctx context.Context, userID string) ([]*entity.Property, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []*entity.Property{}, nil
	}
	all, _ := r.FindAll(ctx)
	out := []*entity.Property{}
	for _, p := range all {
		if p.User == oid {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) Update(_ context.Context, p *entity.Property) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.props[p.ID]; !ok {
		return repo.ErrNotFound
	}
	r.props[p.ID] = p
	return nil
}

func (r *fakePropertyRepo) Delete(_ context.Context, id string) error {
	r.deleteCalls++
	if r.deleteErr != nil {
		return r.deleteErr
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repo.ErrNotFound
	}
	if _, ok := r.props[oid]; !ok {
		return repo.ErrNotFound
	}
	delete(r.props, oid)
	return nil
}

type fakeNewsletterRepo struct {
	subs map[string]*entity.NewsletterSubscription
}

func newFakeNewsletterRepo() *fakeNewsletterRepo {
	return &fakeNewsletterRepo{subs: map[string]*entity.NewsletterSubscription{}}
}

func (r *fakeNewsletterRepo) GetByEmail(_ context.Context, email string) (*entity.NewsletterSubscription, error) {
	s, ok := r.subs[strings.ToLower(email)]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return s, nil
}

func (r *fakeNewsletterRepo) Create(_ context.Context, s *entity.NewsletterSubscription) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	s.Email = strings.ToLower(s.Email)
	r.subs[s.Email] = s
	return nil
}

type sentEmail struct {
	To      string
	Subject string
	HTML    string
}

type fakeSender struct {
	sent    []sentEmail
	sendErr error
}

func (f *fakeSender) Send(_ context.Context, to, subject, _, html string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentEmail{To: to, Subject: subject, HTML: html})
	return nil
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

var _ repo.UserRepository = (*fakeUserRepo)(nil)
var _ repo.PropertyRepository = (*fakePropertyRepo)(nil)
var _ repo.NewsletterRepository = (*fakeNewsletterRepo)(nil)
