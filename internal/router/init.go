package router

import (
	"github.com/aspiantech/ogle-api/internal/application"
	"github.com/aspiantech/ogle-api/internal/container"
	"github.com/aspiantech/ogle-api/internal/infrastructure/mongodb"
	handlers "github.com/aspiantech/ogle-api/internal/interface/http"
	"github.com/aspiantech/ogle-api/internal/router/modules"
)

// InitModules constructs the repositories, services and handlers from the
// container singletons and registers every feature module with the registry.
// Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	db := container.GetMongo()

	users := mongodb.NewUserRepository(db)
	properties := mongodb.NewPropertyRepository(db)
	newsletters := mongodb.NewNewsletterRepository(db)

	userSvc := &application.UserService{
		Users:            users,
		Newsletters:      newsletters,
		Tokens:           container.GetTokens(),
		Mail:             container.GetMailSender(),
		Logger:           logger,
		VerifyEmailURL:   cfg.VerifyEmailURL,
		ResetPasswordURL: cfg.ResetPasswordURL,
	}
	propertySvc := &application.PropertyService{
		Properties: properties,
		Users:      users,
		Logger:     logger,
	}

	userHandler := handlers.NewUserHandler(userSvc, logger)
	propertyHandler := handlers.NewPropertyHandler(propertySvc, logger)
	uploadHandler := handlers.NewUploadHandler(container.GetGCS(), cfg.GCSBucket, logger)

	r.Add(modules.NewUserModule(userHandler))
	r.Add(modules.NewPropertyModule(propertyHandler, uploadHandler))
}
