package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/aspiantech/ogle-api/config"
	"github.com/aspiantech/ogle-api/internal/domain/entity"
	"github.com/aspiantech/ogle-api/internal/infrastructure/mongodb"
	"github.com/aspiantech/ogle-api/pkg/helpers"
)

// seed creates a verified demo agent with two listings so a fresh database
// has something to browse.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	users := mongodb.NewUserRepository(db)
	properties := mongodb.NewPropertyRepository(db)

	email := "demo.agent@aspiantech.co.uk"
	password := "password123"

	if existing, err := users.GetByEmail(ctx, email); err == nil {
		fmt.Printf("seed user already exists: id=%s email=%s\n", existing.ID.Hex(), email)
		return
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	agent := &entity.User{
		Email:    email,
		Password: hash,
		Name:     "Demo Agent",
		Role:     entity.RoleAgent,
		Verified: true,
	}
	if err := users.Create(ctx, agent); err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}

	listings := []*entity.Property{
		{
			ListingType:       entity.ListingTypeRent,
			PriceForRent:      1450,
			Address:           "14 Harbour Walk, Bristol",
			Title:             "Bright two-bed flat by the harbourside",
			PropertyImageList: []string{"https://storage.googleapis.com/ogle-demo/harbour-walk-1.jpg"},
			DetailedAddress:   entity.DetailedAddress{Street: "14 Harbour Walk", City: "Bristol", State: "Bristol"},
			Amenities: []entity.Amenity{
				{Name: "Parking", Icon: "parking"},
				{Name: "Balcony", Icon: "balcony"},
			},
			PropertyAttributes: entity.PropertyAttributes{
				NumberOfBedrooms:  2,
				NumberOfBathrooms: 1,
				YearBuilt:         2012,
				Size:              "68sqm",
				PropertyType:      "Apartment",
			},
			FloorPlan:   entity.FloorPlan{NumberOfFloors: 1, RoomSize: "18sqm", BathroomSize: "6sqm"},
			Status:      entity.StatusAvailable,
			Description: "A bright, recently refurbished two-bedroom flat a short walk from the harbourside.",
			User:        agent.ID,
		},
		{
			ListingType:       entity.ListingTypeBuy,
			PriceForBuy:       385000,
			Address:           "7 Orchard Lane, Bath",
			Title:             "Three-bed terrace with south-facing garden",
			PropertyImageList: []string{"https://storage.googleapis.com/ogle-demo/orchard-lane-1.jpg"},
			DetailedAddress:   entity.DetailedAddress{Street: "7 Orchard Lane", City: "Bath", State: "Somerset"},
			Amenities: []entity.Amenity{
				{Name: "Garden", Icon: "garden"},
				{Name: "Garage", Icon: "garage"},
			},
			PropertyAttributes: entity.PropertyAttributes{
				NumberOfBedrooms:  3,
				NumberOfBathrooms: 2,
				NumberOfGarages:   1,
				YearBuilt:         1936,
				Size:              "104sqm",
				PropertyType:      "House",
			},
			FloorPlan:   entity.FloorPlan{NumberOfFloors: 2, RoomSize: "22sqm", BathroomSize: "8sqm"},
			Status:      entity.StatusAvailable,
			Description: "A well-kept period terrace with a mature south-facing garden and single garage.",
			User:        agent.ID,
		},
	}

	for _, p := range listings {
		if err := properties.Create(ctx, p); err != nil {
			log.Fatalf("failed to seed property: %v", err)
		}
		agent.Properties = append(agent.Properties, p.ID)
	}
	if err := users.Update(ctx, agent); err != nil {
		log.Fatalf("failed to link listings to user: %v", err)
	}

	fmt.Printf("seeded agent: id=%s email=%s password=%s listings=%d\n", agent.ID.Hex(), email, password, len(listings))
}
