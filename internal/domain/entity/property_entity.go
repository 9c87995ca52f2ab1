package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ListingTypeRent = "rent"
	ListingTypeBuy  = "buy"
)

const (
	StatusAvailable   = "Available"
	StatusUnavailable = "Unavailable"
)

// ValidListingType reports whether lt is one of the two supported values.
func ValidListingType(lt string) bool {
	return lt == ListingTypeRent || lt == ListingTypeBuy
}

type Amenity struct {
	Name string `bson:"name,omitempty" json:"name"`
	Icon string `bson:"icon,omitempty" json:"icon"`
}

type DetailedAddress struct {
	Street string `bson:"street" json:"street"`
	City   string `bson:"city" json:"city"`
	State  string `bson:"state" json:"state"`
}

type PropertyAttributes struct {
	NumberOfBedrooms  int    `bson:"numberOfBedrooms" json:"numberOfBedrooms"`
	NumberOfGarages   int    `bson:"numberOfGarages,omitempty" json:"numberOfGarages,omitempty"`
	YearBuilt         int    `bson:"yearBuilt,omitempty" json:"yearBuilt,omitempty"`
	Size              string `bson:"size,omitempty" json:"size,omitempty"`
	NumberOfBathrooms int    `bson:"numberOfBathrooms" json:"numberOfBathrooms"`
	PropertyType      string `bson:"propertyType" json:"propertyType"`
}

type FloorPlan struct {
	NumberOfFloors int    `bson:"numberOfFloors,omitempty" json:"numberOfFloors,omitempty"`
	RoomSize       string `bson:"roomSize,omitempty" json:"roomSize,omitempty"`
	BathroomSize   string `bson:"bathroomSize,omitempty" json:"bathroomSize,omitempty"`
}

// Property is a listing document. Exactly one of PriceForRent/PriceForBuy is
// mandatory depending on ListingType; detailedAddress, propertyAttributes and
// floorPlan are embedded sub-documents, not separate collections.
type Property struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ListingType        string             `bson:"listingType" json:"listingType"`
	PriceForRent       int                `bson:"priceForRent,omitempty" json:"priceForRent,omitempty"`
	PriceForBuy        int                `bson:"priceForBuy,omitempty" json:"priceForBuy,omitempty"`
	Address            string             `bson:"address" json:"address"`
	Title              string             `bson:"title" json:"title"`
	Amenities          []Amenity          `bson:"amenities,omitempty" json:"amenities,omitempty"`
	PropertyImageList  []string           `bson:"propertyImageList" json:"propertyImageList"`
	Favourite          bool               `bson:"favourite" json:"favourite"`
	DetailedAddress    DetailedAddress    `bson:"detailedAddress" json:"detailedAddress"`
	PropertyAttributes PropertyAttributes `bson:"propertyAttributes" json:"propertyAttributes"`
	FloorPlan          FloorPlan          `bson:"floorPlan" json:"floorPlan"`
	Status             string             `bson:"status" json:"status"`
	Description        string             `bson:"description" json:"description"`
	User               primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}
