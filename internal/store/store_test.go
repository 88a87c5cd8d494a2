package store

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, CreateTables(db, false))
	return New(db, false)
}

func seedUser(t *testing.T, s *Store, name, balance string) string {
	t.Helper()
	id := uuid.NewString()
	err := s.CreateUser(models.User{
		ID:        id,
		UserType:  models.UserTypeStandard,
		FirstName: name,
		LastName:  "Tester",
		Email:     name + "-" + id[:8] + "@example.com",
		Balance:   decimal.RequireFromString(balance),
	}, "hash")
	require.NoError(t, err)
	return id
}

func seedStoreWithProduct(t *testing.T, s *Store, ownerID, price string, rate float64, productType string) (storeID, productID string) {
	t.Helper()
	sf, err := s.CreateStore(models.StoreFront{OwnerID: ownerID, Name: "Shop"})
	require.NoError(t, err)
	p, err := s.CreateProduct(models.Product{
		StoreID:                 sf.ID,
		Name:                    "Widget",
		Price:                   decimal.RequireFromString(price),
		Type:                    productType,
		AffiliateCommissionRate: rate,
	})
	require.NoError(t, err)
	return sf.ID, p.ID
}

func seedTextPost(t *testing.T, s *Store, authorID, content string) *models.Post {
	t.Helper()
	p, err := s.CreatePost(models.Post{UserID: authorID, Type: models.PostTypeText, Content: content})
	require.NoError(t, err)
	return p
}
