package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aspiantech/ogle-api/internal/container"
	handlers "github.com/aspiantech/ogle-api/internal/interface/http"
	"github.com/aspiantech/ogle-api/internal/interface/middleware"
)

// PropertyModule wires listing and wishlist routes.
// Reads are public; every write requires a session token.
type PropertyModule struct {
	Handler *handlers.PropertyHandler
	Upload  *handlers.UploadHandler
}

func NewPropertyModule(h *handlers.PropertyHandler, up *handlers.UploadHandler) *PropertyModule {
	return &PropertyModule{Handler: h, Upload: up}
}

func (m *PropertyModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP())

	rg.GET("/properties", readLimiter, m.Handler.List)
	rg.GET("/properties/:id", readLimiter, m.Handler.Get)
	rg.GET("/properties/:id/owner", readLimiter, m.Handler.Owner)
	rg.GET("/properties/:id/owner-listings", readLimiter, m.Handler.OwnerListings)
	rg.GET("/users/:id/properties", readLimiter, m.Handler.ByUser)
	rg.GET("/users/:id/wishlist", readLimiter, m.Handler.Wishlist)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(container.GetTokens()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP()))
	{
		auth.POST("/properties", m.Handler.Create)
		auth.PATCH("/properties/:id", m.Handler.Update)
		auth.DELETE("/properties/:id", m.Handler.Delete)
		auth.DELETE("/properties/:id/images/:index", m.Handler.DeleteImage)
		auth.POST("/users/:id/wishlist", m.Handler.WishlistAdd)
		auth.DELETE("/users/:id/wishlist/:propertyId", m.Handler.WishlistRemove)
		auth.POST("/uploads/image", m.Upload.UploadImage)
	}
}
