package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aspiantech/ogle-api/internal/domain/entity"
	repo "github.com/aspiantech/ogle-api/internal/domain/repository"
	"github.com/aspiantech/ogle-api/pkg/apperr"
)

// PropertyService implements the listing queries and mutations, including
// the cross-entity bookkeeping between properties and their owners. The
// store has no multi-document transactions, so the two-phase writes here are
// ordered (property first, then owner array) and reads never trust the
// denormalized User.Properties array: ownership is always derived by
// querying properties by owner.
type PropertyService struct {
	Properties repo.PropertyRepository
	Users      repo.UserRepository
	Logger     *logrus.Logger
}

func NewPropertyService(properties repo.PropertyRepository, users repo.UserRepository, logger *logrus.Logger) *PropertyService {
	return &PropertyService{Properties: properties, Users: users, Logger: logger}
}

func (s *PropertyService) AllProperties(ctx context.Context) ([]*entity.Property, error) {
	return s.Properties.FindAll(ctx)
}

func (s *PropertyService) PropertiesByListingType(ctx context.Context, listingType string) ([]*entity.Property, error) {
	if !entity.ValidListingType(listingType) {
		return nil, apperr.E(apperr.InvalidArgument, "%s is not a valid listing type", listingType)
	}
	return s.Properties.FindByListingType(ctx, listingType)
}

func (s *PropertyService) PropertyByID(ctx context.Context, id string) (*entity.Property, error) {
	p, err := s.Properties.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.E(apperr.NotFound, "property with ID %s not found", id)
	}
	return p, err
}

// PropertiesByUser returns the listings owned by userID, querying by the
// owner field rather than the user's denormalized id list.
func (s *PropertyService) PropertiesByUser(ctx context.Context, userID string) ([]*entity.Property, error) {
	return s.Properties.FindByOwner(ctx, userID)
}

// OwnerOtherListings resolves all listings by the owner of the given
// property.
func (s *PropertyService) OwnerOtherListings(ctx context.Context, propertyID string) ([]*entity.Property, error) {
	p, err := s.PropertyByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return s.Properties.FindByOwner(ctx, p.User.Hex())
}

// Owner resolves the owning user of a property.
func (s *PropertyService) Owner(ctx context.Context, p *entity.Property) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, p.User.Hex())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.E(apperr.NotFound, "user with ID %s not found", p.User.Hex())
	}
	return u, err
}

// WishlistByUser resolves the user's wishlist entries to full properties in
// insertion order, optionally filtered to one listing type. Entries whose
// property has been deleted by a concurrent writer are skipped, not errors.
func (s *PropertyService) WishlistByUser(ctx context.Context, userID, listingType string) ([]*entity.Property, error) {
	if listingType != "" && !entity.ValidListingType(listingType) {
		return nil, apperr.E(apperr.InvalidArgument, "%s is not a valid listing type", listingType)
	}
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.E(apperr.NotFound, "user with ID %s not found", userID)
	}
	if err != nil {
		return nil, err
	}

	out := []*entity.Property{}
	for _, entry := range u.Wishlist {
		p, err := s.Properties.GetByID(ctx, entry.Property.Hex())
		if errors.Is(err, repo.ErrNotFound) {
			continue // dangling reference, reconciled by skipping
		}
		if err != nil {
			return nil, err
		}
		if listingType != "" && p.ListingType != listingType {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// CreateListingInput carries every field a new listing accepts. Pointer
// pricing fields distinguish omitted from zero so the listing-type rule can
// be enforced.
type CreateListingInput struct {
	UserID            string
	ListingType       string
	PriceForRent      *int
	PriceForBuy       *int
	Address           string
	Title             string
	Favourite         bool
	Street            string
	City              string
	State             string
	Amenities         []entity.Amenity
	PropertyImageList []string
	NumberOfBedrooms  int
	NumberOfGarages   int
	YearBuilt         int
	Size              string
	NumberOfBathrooms int
	PropertyType      string
	NumberOfFloors    int
	RoomSize          string
	BathroomSize      string
	Description       string
}

func validateListing(in CreateListingInput) error {
	if !entity.ValidListingType(in.ListingType) {
		return apperr.E(apperr.InvalidArgument, "%s is not a valid listing type", in.ListingType)
	}
	switch in.ListingType {
	case entity.ListingTypeRent:
		if in.PriceForRent == nil {
			return apperr.E(apperr.InvalidArgument, "price for rent is required for rent listings")
		}
		if *in.PriceForRent < 0 {
			return apperr.E(apperr.InvalidArgument, "price for rent must be a positive value")
		}
	case entity.ListingTypeBuy:
		if in.PriceForBuy == nil {
			return apperr.E(apperr.InvalidArgument, "price for buy is required for buy listings")
		}
		if *in.PriceForBuy < 0 {
			return apperr.E(apperr.InvalidArgument, "price for buy must be a positive value")
		}
	}
	if in.Address == "" {
		return apperr.E(apperr.InvalidArgument, "address is required")
	}
	if in.Title == "" {
		return apperr.E(apperr.InvalidArgument, "a title is required for the property listing")
	}
	if in.Description == "" {
		return apperr.E(apperr.InvalidArgument, "property description is a required field")
	}
	if len(in.PropertyImageList) == 0 {
		return apperr.E(apperr.InvalidArgument, "property images are required for the property listing")
	}
	if in.Street == "" || in.City == "" || in.State == "" {
		return apperr.E(apperr.InvalidArgument, "street, city and state are required")
	}
	if in.PropertyType == "" {
		return apperr.E(apperr.InvalidArgument, "property type is a required field")
	}
	if in.NumberOfBedrooms < 0 || in.NumberOfBathrooms < 0 || in.NumberOfGarages < 0 || in.NumberOfFloors < 0 {
		return apperr.E(apperr.InvalidArgument, "room counts must be positive values")
	}
	if in.YearBuilt != 0 {
		if in.YearBuilt < 1700 {
			return apperr.E(apperr.InvalidArgument, "year built cannot be earlier than 1700")
		}
		if in.YearBuilt > time.Now().Year() {
			return apperr.E(apperr.InvalidArgument, "year built cannot be in the future")
		}
	}
	return nil
}

// CreateListing validates the input, persists the property, then appends its
// id to the owner's properties array. The two writes are not atomic: if the
// second fails the property is still owned (property.user is authoritative)
// and reads by owner pick it up, so the failure is logged and the listing
// returned.
func (s *PropertyService) CreateListing(ctx context.Context, in CreateListingInput) (*entity.Property, error) {
	owner, err := s.Users.GetByID(ctx, in.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.E(apperr.NotFound, "user with ID %s not found", in.UserID)
	}
	if err != nil {
		return nil, err
	}

	if err := validateListing(in); err != nil {
		return nil, err
	}

	p := &entity.Property{
		ListingType:       in.ListingType,
		Address:           in.Address,
		Title:             in.Title,
		Amenities:         in.Amenities,
		Favourite:         in.Favourite,
		PropertyImageList: in.PropertyImageList,
		DetailedAddress: entity.DetailedAddress{
			Street: in.Street,
			City:   in.City,
			State:  in.State,
		},
		PropertyAttributes: entity.PropertyAttributes{
			NumberOfBedrooms:  in.NumberOfBedrooms,
			NumberOfGarages:   in.NumberOfGarages,
			YearBuilt:         in.YearBuilt,
			Size:              in.Size,
			NumberOfBathrooms: in.NumberOfBathrooms,
			PropertyType:      in.PropertyType,
		},
		FloorPlan: entity.FloorPlan{
			NumberOfFloors: in.NumberOfFloors,
			RoomSize:       in.RoomSize,
			BathroomSize:   in.BathroomSize,
		},
		Description: in.Description,
		User:        owner.ID,
	}
	if in.PriceForRent != nil {
		p.PriceForRent = *in.PriceForRent
	}
	if in.PriceForBuy != nil {
		p.PriceForBuy = *in.PriceForBuy
	}

	if err := s.Properties.Create(ctx, p); err != nil {
		return nil, err
	}

	owner.Properties = append(owner.Properties, p.ID)
	if err := s.Users.Update(ctx, owner); err != nil {
		// The owner array is a write-side audit trail only; ownership reads
		// query by property.user, so the listing stays reachable.
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"property_id": p.ID.Hex(),
			"user_id":     in.UserID,
		}).Warn("failed to append listing to owner's properties")
	}
	return p, nil
}

// DetailedAddressPatch, PropertyAttributesPatch and FloorPlanPatch carry
// partial sub-object updates: nil means leave unchanged, non-nil overwrites.
type DetailedAddressPatch struct {
	Street *string
	City   *string
	State  *string
}

type PropertyAttributesPatch struct {
	NumberOfBedrooms  *int
	NumberOfGarages   *int
	YearBuilt         *int
	Size              *string
	NumberOfBathrooms *int
	PropertyType      *string
}

type FloorPlanPatch struct {
	NumberOfFloors *int
	RoomSize       *string
	BathroomSize   *string
}

// PropertyPatch is the partial-update input for a listing. Top-level scalars
// are overwritten only when provided; the three structured sub-objects are
// shallow-merged field by field onto the stored values.
type PropertyPatch struct {
	ListingType        *string
	PriceForRent       *int
	PriceForBuy        *int
	Address            *string
	Title              *string
	Favourite          *bool
	Status             *string
	Amenities          *[]entity.Amenity
	PropertyImageList  *[]string
	Description        *string
	DetailedAddress    *DetailedAddressPatch
	PropertyAttributes *PropertyAttributesPatch
	FloorPlan          *FloorPlanPatch
}

func (patch *DetailedAddressPatch) apply(dst *entity.DetailedAddress) {
	if patch.Street != nil {
		dst.Street = *patch.Street
	}
	if patch.City != nil {
		dst.City = *patch.City
	}
	if patch.State != nil {
		dst.State = *patch.State
	}
}

func (patch *PropertyAttributesPatch) apply(dst *entity.PropertyAttributes) {
	if patch.NumberOfBedrooms != nil {
		dst.NumberOfBedrooms = *patch.NumberOfBedrooms
	}
	if patch.NumberOfGarages != nil {
		dst.NumberOfGarages = *patch.NumberOfGarages
	}
	if patch.YearBuilt != nil {
		dst.YearBuilt = *patch.YearBuilt
	}
	if patch.Size != nil {
		dst.Size = *patch.Size
	}
	if patch.NumberOfBathrooms != nil {
		dst.NumberOfBathrooms = *patch.NumberOfBathrooms
	}
	if patch.PropertyType != nil {
		dst.PropertyType = *patch.PropertyType
	}
}

func (patch *FloorPlanPatch) apply(dst *entity.FloorPlan) {
	if patch.NumberOfFloors != nil {
		dst.NumberOfFloors = *patch.NumberOfFloors
	}
	if patch.RoomSize != nil {
		dst.RoomSize = *patch.RoomSize
	}
	if patch.BathroomSize != nil {
		dst.BathroomSize = *patch.BathroomSize
	}
}

// UpdateProperty applies a partial update. Omitted fields keep their stored
// values.
func (s *PropertyService) UpdateProperty(ctx context.Context, id string, patch PropertyPatch) (*entity.Property, error) {
	p, err := s.PropertyByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.ListingType != nil {
		if !entity.ValidListingType(*patch.ListingType) {
			return nil, apperr.E(apperr.InvalidArgument, "%s is not a valid listing type", *patch.ListingType)
		}
		p.ListingType = *patch.ListingType
	}
	if patch.Status != nil {
		if *patch.Status != entity.StatusAvailable && *patch.Status != entity.StatusUnavailable {
			return nil, apperr.E(apperr.InvalidArgument, "%s is not a valid status", *patch.Status)
		}
		p.Status = *patch.Status
	}
	if patch.PriceForRent != nil {
		p.PriceForRent = *patch.PriceForRent
	}
	if patch.PriceForBuy != nil {
		p.PriceForBuy = *patch.PriceForBuy
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Favourite != nil {
		p.Favourite = *patch.Favourite
	}
	if patch.Amenities != nil {
		p.Amenities = *patch.Amenities
	}
	if patch.PropertyImageList != nil {
		p.PropertyImageList = *patch.PropertyImageList
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}

	if patch.DetailedAddress != nil {
		patch.DetailedAddress.apply(&p.DetailedAddress)
	}
	if patch.PropertyAttributes != nil {
		patch.PropertyAttributes.apply(&p.PropertyAttributes)
	}
	if patch.FloorPlan != nil {
		patch.FloorPlan.apply(&p.FloorPlan)
	}

	if err := s.Properties.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePropertyImage removes the image at a zero-based index from the
// listing's image list.
func (s *PropertyService) DeletePropertyImage(ctx context.Context, id string, imageIndex int) (*entity.Property, error) {
	p, err := s.PropertyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if imageIndex < 0 || imageIndex >= len(p.PropertyImageList) {
		return nil, apperr.E(apperr.InvalidArgument, "invalid image index")
	}

	p.PropertyImageList = append(p.PropertyImageList[:imageIndex], p.PropertyImageList[imageIndex+1:]...)

	if err := s.Properties.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProperty removes a listing after checking the caller owns it, then
// prunes the id from the owner's properties array and returns the updated
// owner.
func (s *PropertyService) DeleteProperty(ctx context.Context, propertyID, userID string) (*entity.User, error) {
	p, err := s.Properties.GetByID(ctx, propertyID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.E(apperr.NotFound, "property not found")
	}
	if err != nil {
		return nil, err
	}

	if p.User.Hex() != userID {
		return nil, apperr.E(apperr.Forbidden, "you are not authorized to delete this property")
	}

	if err := s.Properties.Delete(ctx, propertyID); err != nil {
		return nil, err
	}

	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.E(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}

	kept := u.Properties[:0]
	for _, pid := range u.Properties {
		if pid != p.ID {
			kept = append(kept, pid)
		}
	}
	u.Properties = kept

	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// AddToWishlist appends the property to the user's wishlist if not already
// present; adding twice leaves a single entry.
func (s *PropertyService) AddToWishlist(ctx context.Context, userID, propertyID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.E(apperr.NotFound, "user with ID %s not found", userID)
	}
	if err != nil {
		return nil, err
	}

	p, err := s.Properties.GetByID(ctx, propertyID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.E(apperr.NotFound, "property with ID %s not found", propertyID)
	}
	if err != nil {
		return nil, err
	}

	if u.WishlistIndex(p.ID) >= 0 {
		return u, nil
	}

	u.Wishlist = append(u.Wishlist, entity.WishlistEntry{
		Property:  p.ID,
		DateAdded: time.Now().UTC(),
	})
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// RemoveFromWishlist deletes the wishlist entry for the property, failing
// when no such entry exists.
func (s *PropertyService) RemoveFromWishlist(ctx context.Context, userID, propertyID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.E(apperr.NotFound, "user with ID %s not found", userID)
	}
	if err != nil {
		return nil, err
	}

	pid, err := primitive.ObjectIDFromHex(propertyID)
	if err != nil {
		return nil, apperr.E(apperr.NotFound, "property with ID %s not found in user's wish list", propertyID)
	}
	idx := u.WishlistIndex(pid)
	if idx < 0 {
		return nil, apperr.E(apperr.NotFound, "property with ID %s not found in user's wish list", propertyID)
	}

	u.Wishlist = append(u.Wishlist[:idx], u.Wishlist[idx+1:]...)

	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
