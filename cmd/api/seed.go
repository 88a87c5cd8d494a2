package main

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/logger"
	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
	"github.com/alfaSophia29/CyBerPhone1.0/internal/store"
)

func strPtr(s string) *string { return &s }

// seedIfEmpty loads a starter data set on first boot. All seeded accounts use
// the password "password".
func seedIfEmpty(st *store.Store) error {
	existing, err := st.Users()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []models.User{
		{
			ID:        uuid.NewString(),
			UserType:  models.UserTypeCreator,
			FirstName: "Maria",
			LastName:  "Santos",
			Email:     "maria@example.com",
			Bio:       strPtr("Baking the neighborhood's favorite pastries since 2019."),
			Balance:   decimal.NewFromInt(250),
		},
		{
			ID:        uuid.NewString(),
			UserType:  models.UserTypeCreator,
			FirstName: "Kwame",
			LastName:  "Mensah",
			Email:     "kwame@example.com",
			Bio:       strPtr("Guitar teacher and live looper. Catch my Friday streams."),
			Balance:   decimal.NewFromInt(120),
		},
		{
			ID:        uuid.NewString(),
			UserType:  models.UserTypeStandard,
			FirstName: "Lena",
			LastName:  "Fischer",
			Email:     "lena@example.com",
			Balance:   decimal.NewFromInt(500),
		},
	}
	for _, u := range users {
		if err := st.CreateUser(u, string(hash)); err != nil {
			return err
		}
	}

	bakery, err := st.CreateStore(models.StoreFront{
		OwnerID:     users[0].ID,
		Name:        "Maria's Corner Bakery",
		Description: "Small-batch breads and pastries, baked every morning.",
	})
	if err != nil {
		return err
	}
	studio, err := st.CreateStore(models.StoreFront{
		OwnerID:     users[1].ID,
		Name:        "Mensah Music Studio",
		Description: "Lessons, tabs and backing tracks for working guitarists.",
	})
	if err != nil {
		return err
	}

	products := []models.Product{
		{
			StoreID:                 bakery.ID,
			Name:                    "Sourdough Loaf",
			Description:             "Naturally leavened, 48h cold ferment.",
			Price:                   decimal.RequireFromString("8.50"),
			Type:                    models.ProductTypePhysical,
			AffiliateCommissionRate: 0.10,
		},
		{
			StoreID:                 bakery.ID,
			Name:                    "Home Baking Basics",
			Description:             "A beginner's ebook covering starters, shaping and scoring.",
			Price:                   decimal.RequireFromString("12.00"),
			Type:                    models.ProductTypeDigitalEbook,
			DigitalContentURL:       strPtr("https://cdn.example.com/ebooks/home-baking-basics.pdf"),
			AffiliateCommissionRate: 0.20,
		},
		{
			StoreID:                 studio.ID,
			Name:                    "Fingerstyle Foundations",
			Description:             "Six-week video course, beginner to intermediate.",
			Price:                   decimal.RequireFromString("45.00"),
			Type:                    models.ProductTypeDigitalCourse,
			DigitalContentURL:       strPtr("https://cdn.example.com/courses/fingerstyle-foundations"),
			AffiliateCommissionRate: 0.15,
		},
	}
	for _, p := range products {
		if _, err := st.CreateProduct(p); err != nil {
			return err
		}
	}

	tracks := []models.AudioTrack{
		{ID: "track-1", Title: "Sunrise Market", Artist: "The Locals", URL: "https://cdn.example.com/audio/sunrise-market.mp3"},
		{ID: "track-2", Title: "Side Street Groove", Artist: "DJ Corner", URL: "https://cdn.example.com/audio/side-street-groove.mp3"},
		{ID: "track-3", Title: "Closing Time", Artist: "Luna Vale", URL: "https://cdn.example.com/audio/closing-time.mp3"},
	}
	for _, t := range tracks {
		if err := st.AddAudioTrack(t); err != nil {
			return err
		}
	}

	logger.Sugar().Infow("seeded starter data", "users", len(users), "products", len(products))
	return nil
}
