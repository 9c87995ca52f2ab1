package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. The store only ever holds one of these two values.
const (
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// WishlistEntry links a property into a user's wishlist. Insertion order
// of the slice is the display order.
type WishlistEntry struct {
	Property  primitive.ObjectID `bson:"property" json:"property"`
	DateAdded time.Time          `bson:"dateAdded" json:"dateAdded"`
}

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash, never plaintext. The Properties slice is a
// write-side audit trail only; reads of a user's listings always query
// properties by owner (see application.PropertyService).
type User struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email             string               `bson:"email" json:"email"`
	Password          string               `bson:"password" json:"-"`
	Name              string               `bson:"name,omitempty" json:"name"`
	Role              string               `bson:"role,omitempty" json:"role,omitempty"`
	Gender            string               `bson:"gender,omitempty" json:"gender,omitempty"`
	DateOfBirth       string               `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Address           string               `bson:"address,omitempty" json:"address,omitempty"`
	PhoneNumber       string               `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	About             string               `bson:"about,omitempty" json:"about,omitempty"`
	Verified          bool                 `bson:"verified" json:"verified"`
	Properties        []primitive.ObjectID `bson:"properties" json:"properties"`
	Wishlist          []WishlistEntry      `bson:"wishlist" json:"wishlist"`
	ProfilePictureURL string               `bson:"profilePictureUrl,omitempty" json:"profilePictureUrl,omitempty"`
	Website           string               `bson:"website,omitempty" json:"website,omitempty"`
	CreatedAt         time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// WishlistIndex returns the position of propertyID in the wishlist, or -1.
func (u *User) WishlistIndex(propertyID primitive.ObjectID) int {
	for i, entry := range u.Wishlist {
		if entry.Property == propertyID {
			return i
		}
	}
	return -1
}
