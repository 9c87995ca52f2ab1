package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/aspiantech/ogle-api/internal/application"
	"github.com/aspiantech/ogle-api/internal/domain/entity"
	"github.com/aspiantech/ogle-api/pkg/response"
	"github.com/aspiantech/ogle-api/pkg/validation"
)

type PropertyHandler struct {
	Svc    *application.PropertyService
	Logger *logrus.Logger
}

func NewPropertyHandler(svc *application.PropertyService, logger *logrus.Logger) *PropertyHandler {
	return &PropertyHandler{Svc: svc, Logger: logger}
}

type amenityInput struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func toAmenities(in []amenityInput) []entity.Amenity {
	if in == nil {
		return nil
	}
	out := make([]entity.Amenity, 0, len(in))
	for _, a := range in {
		out = append(out, entity.Amenity{Name: a.Name, Icon: a.Icon})
	}
	return out
}

// List handles GET /properties. An optional listingType query parameter
// narrows the result to one listing type.
func (h *PropertyHandler) List(c *gin.Context) {
	var (
		props []*entity.Property
		err   error
	)
	if lt := c.Query("listingType"); lt != "" {
		props, err = h.Svc.PropertiesByListingType(c.Request.Context(), lt)
	} else {
		props, err = h.Svc.AllProperties(c.Request.Context())
	}
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, props, "properties")
}

// Get handles GET /properties/:id.
func (h *PropertyHandler) Get(c *gin.Context) {
	p, err := h.Svc.PropertyByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "property")
}

// Owner handles GET /properties/:id/owner and resolves the listing's owner.
func (h *PropertyHandler) Owner(c *gin.Context) {
	p, err := h.Svc.PropertyByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	u, err := h.Svc.Owner(c.Request.Context(), p)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "property owner")
}

// OwnerListings handles GET /properties/:id/owner-listings and resolves all
// listings by the same owner.
func (h *PropertyHandler) OwnerListings(c *gin.Context) {
	props, err := h.Svc.OwnerOtherListings(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, props, "owner listings")
}

// ByUser handles GET /users/:id/properties.
func (h *PropertyHandler) ByUser(c *gin.Context) {
	props, err := h.Svc.PropertiesByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, props, "user properties")
}

// Wishlist handles GET /users/:id/wishlist with an optional listingType
// query parameter.
func (h *PropertyHandler) Wishlist(c *gin.Context) {
	props, err := h.Svc.WishlistByUser(c.Request.Context(), c.Param("id"), c.Query("listingType"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, props, "wishlist")
}

type createListingRequest struct {
	UserID            string         `json:"userId" binding:"required"`
	ListingType       string         `json:"listingType" binding:"required,listingtype"`
	PriceForRent      *int           `json:"priceForRent"`
	PriceForBuy       *int           `json:"priceForBuy"`
	Address           string         `json:"address" binding:"required"`
	Title             string         `json:"title" binding:"required"`
	Favourite         bool           `json:"favourite"`
	Street            string         `json:"street" binding:"required"`
	City              string         `json:"city" binding:"required"`
	State             string         `json:"state" binding:"required"`
	Amenities         []amenityInput `json:"amenities"`
	PropertyImageList []string       `json:"propertyImageList" binding:"required,min=1"`
	NumberOfBedrooms  *int           `json:"numberOfBedrooms" binding:"required"`
	NumberOfGarages   int            `json:"numberOfGarages"`
	YearBuilt         int            `json:"yearBuilt"`
	Size              string         `json:"size"`
	NumberOfBathrooms *int           `json:"numberOfBathrooms" binding:"required"`
	PropertyType      string         `json:"propertyType" binding:"required"`
	NumberOfFloors    int            `json:"numberOfFloors"`
	RoomSize          string         `json:"roomSize"`
	BathroomSize      string         `json:"bathroomSize"`
	Description       string         `json:"description" binding:"required"`
}

// Create handles POST /properties.
func (h *PropertyHandler) Create(c *gin.Context) {
	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	p, err := h.Svc.CreateListing(c.Request.Context(), application.CreateListingInput{
		UserID:            req.UserID,
		ListingType:       req.ListingType,
		PriceForRent:      req.PriceForRent,
		PriceForBuy:       req.PriceForBuy,
		Address:           req.Address,
		Title:             req.Title,
		Favourite:         req.Favourite,
		Street:            req.Street,
		City:              req.City,
		State:             req.State,
		Amenities:         toAmenities(req.Amenities),
		PropertyImageList: req.PropertyImageList,
		NumberOfBedrooms:  *req.NumberOfBedrooms,
		NumberOfGarages:   req.NumberOfGarages,
		YearBuilt:         req.YearBuilt,
		Size:              req.Size,
		NumberOfBathrooms: *req.NumberOfBathrooms,
		PropertyType:      req.PropertyType,
		NumberOfFloors:    req.NumberOfFloors,
		RoomSize:          req.RoomSize,
		BathroomSize:      req.BathroomSize,
		Description:       req.Description,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "listing created")
}

type detailedAddressPatchRequest struct {
	Street *string `json:"street"`
	City   *string `json:"city"`
	State  *string `json:"state"`
}

type propertyAttributesPatchRequest struct {
	NumberOfBedrooms  *int    `json:"numberOfBedrooms"`
	NumberOfGarages   *int    `json:"numberOfGarages"`
	YearBuilt         *int    `json:"yearBuilt"`
	Size              *string `json:"size"`
	NumberOfBathrooms *int    `json:"numberOfBathrooms"`
	PropertyType      *string `json:"propertyType"`
}

type floorPlanPatchRequest struct {
	NumberOfFloors *int    `json:"numberOfFloors"`
	RoomSize       *string `json:"roomSize"`
	BathroomSize   *string `json:"bathroomSize"`
}

type updatePropertyRequest struct {
	ListingType        *string                         `json:"listingType"`
	PriceForRent       *int                            `json:"priceForRent"`
	PriceForBuy        *int                            `json:"priceForBuy"`
	Address            *string                         `json:"address"`
	Title              *string                         `json:"title"`
	Favourite          *bool                           `json:"favourite"`
	Status             *string                         `json:"status"`
	Amenities          *[]amenityInput                 `json:"amenities"`
	PropertyImageList  *[]string                       `json:"propertyImageList"`
	Description        *string                         `json:"description"`
	DetailedAddress    *detailedAddressPatchRequest    `json:"detailedAddress"`
	PropertyAttributes *propertyAttributesPatchRequest `json:"propertyAttributes"`
	FloorPlan          *floorPlanPatchRequest          `json:"floorPlan"`
}

// Update handles PATCH /properties/:id. Omitted fields keep their stored
// values; the three structured sub-objects merge field by field.
func (h *PropertyHandler) Update(c *gin.Context) {
	var req updatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	patch := application.PropertyPatch{
		ListingType:       req.ListingType,
		PriceForRent:      req.PriceForRent,
		PriceForBuy:       req.PriceForBuy,
		Address:           req.Address,
		Title:             req.Title,
		Favourite:         req.Favourite,
		Status:            req.Status,
		PropertyImageList: req.PropertyImageList,
		Description:       req.Description,
	}
	if req.Amenities != nil {
		amenities := toAmenities(*req.Amenities)
		patch.Amenities = &amenities
	}
	if req.DetailedAddress != nil {
		patch.DetailedAddress = &application.DetailedAddressPatch{
			Street: req.DetailedAddress.Street,
			City:   req.DetailedAddress.City,
			State:  req.DetailedAddress.State,
		}
	}
	if req.PropertyAttributes != nil {
		patch.PropertyAttributes = &application.PropertyAttributesPatch{
			NumberOfBedrooms:  req.PropertyAttributes.NumberOfBedrooms,
			NumberOfGarages:   req.PropertyAttributes.NumberOfGarages,
			YearBuilt:         req.PropertyAttributes.YearBuilt,
			Size:              req.PropertyAttributes.Size,
			NumberOfBathrooms: req.PropertyAttributes.NumberOfBathrooms,
			PropertyType:      req.PropertyAttributes.PropertyType,
		}
	}
	if req.FloorPlan != nil {
		patch.FloorPlan = &application.FloorPlanPatch{
			NumberOfFloors: req.FloorPlan.NumberOfFloors,
			RoomSize:       req.FloorPlan.RoomSize,
			BathroomSize:   req.FloorPlan.BathroomSize,
		}
	}

	p, err := h.Svc.UpdateProperty(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "property updated")
}

// DeleteImage handles DELETE /properties/:id/images/:index.
func (h *PropertyHandler) DeleteImage(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid image index", nil)
		return
	}
	p, err := h.Svc.DeletePropertyImage(c.Request.Context(), c.Param("id"), idx)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "image removed")
}

type deletePropertyRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// Delete handles DELETE /properties/:id. The owning user id comes from the
// request body, matching the public operation's argument shape.
func (h *PropertyHandler) Delete(c *gin.Context) {
	var req deletePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.DeleteProperty(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "property deleted")
}

type wishlistAddRequest struct {
	PropertyID string `json:"propertyId" binding:"required"`
}

// WishlistAdd handles POST /users/:id/wishlist.
func (h *PropertyHandler) WishlistAdd(c *gin.Context) {
	var req wishlistAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.AddToWishlist(c.Request.Context(), c.Param("id"), req.PropertyID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "added to wishlist")
}

// WishlistRemove handles DELETE /users/:id/wishlist/:propertyId.
func (h *PropertyHandler) WishlistRemove(c *gin.Context) {
	u, err := h.Svc.RemoveFromWishlist(c.Request.Context(), c.Param("id"), c.Param("propertyId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "removed from wishlist")
}
