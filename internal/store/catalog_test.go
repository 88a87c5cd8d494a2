package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
)

func TestCreateStoreLinksOwner(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner", "0")

	sf, err := s.CreateStore(models.StoreFront{OwnerID: owner, Name: "Shop", Description: "d"})
	require.NoError(t, err)

	u, err := s.FindUser(owner)
	require.NoError(t, err)
	require.NotNil(t, u.StoreID)
	assert.Equal(t, sf.ID, *u.StoreID)

	byOwner, err := s.StoreByOwner(owner)
	require.NoError(t, err)
	assert.Equal(t, sf.ID, byOwner.ID)
	_, err = s.StoreByOwner("ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.CreateStore(models.StoreFront{OwnerID: "ghost", Name: "Nope"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateProductValidation(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner", "0")
	sf, err := s.CreateStore(models.StoreFront{OwnerID: owner, Name: "Shop"})
	require.NoError(t, err)

	_, err = s.CreateProduct(models.Product{
		StoreID: sf.ID, Name: "Free", Price: decimal.Zero, Type: models.ProductTypePhysical,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.CreateProduct(models.Product{
		StoreID: sf.ID, Name: "Greedy", Price: decimal.NewFromInt(5),
		Type: models.ProductTypePhysical, AffiliateCommissionRate: 1.5,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.CreateProduct(models.Product{
		StoreID: sf.ID, Name: "Odd", Price: decimal.NewFromInt(5), Type: "service",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.CreateProduct(models.Product{
		StoreID: "ghost", Name: "Lost", Price: decimal.NewFromInt(5), Type: models.ProductTypePhysical,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddRatingOncePerSale(t *testing.T) {
	s := newTestStore(t)
	buyer := seedUser(t, s, "buyer", "100")
	owner := seedUser(t, s, "owner", "0")
	_, productID := seedStoreWithProduct(t, s, owner, "20.00", 0, models.ProductTypeDigitalEbook)

	require.NoError(t, s.AddToCart(buyer, productID, 1))
	sales, err := s.Checkout(buyer, "", nil)
	require.NoError(t, err)
	require.Len(t, sales, 1)

	assert.ErrorIs(t, s.AddRating(sales[0].ID, 0, ""), ErrInvalidInput)
	assert.ErrorIs(t, s.AddRating(sales[0].ID, 6, ""), ErrInvalidInput)
	assert.ErrorIs(t, s.AddRating("ghost", 5, ""), ErrNotFound)

	require.NoError(t, s.AddRating(sales[0].ID, 4, "solid"))
	assert.ErrorIs(t, s.AddRating(sales[0].ID, 5, "again"), ErrAlreadyRated)

	// The rating is attributed to the sale's buyer and the derived pair follows.
	ratings, err := s.RatingsForProduct(productID)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, buyer, ratings[0].UserID)
	assert.Equal(t, 4, ratings[0].Rating)

	p, err := s.FindProduct(productID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, p.AverageRating)
	assert.Equal(t, 1, p.RatingCount)

	sale, err := s.FindSale(sales[0].ID)
	require.NoError(t, err)
	assert.True(t, sale.IsRated)
}

func TestSyncProductRatings(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner", "0")
	_, productID := seedStoreWithProduct(t, s, owner, "10.00", 0, models.ProductTypeDigitalOther)

	// Simulate drift left behind by an older build.
	_, err := s.DB().Exec(`
		INSERT INTO product_ratings (id, sale_id, product_id, user_id, rating, comment, created_at)
		VALUES ('r1', 's1', ?, 'u1', 2, '', 1), ('r2', 's2', ?, 'u2', 4, '', 2)
	`, productID, productID)
	require.NoError(t, err)

	require.NoError(t, s.SyncProductRatings())

	p, err := s.FindProduct(productID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, p.AverageRating)
	assert.Equal(t, 2, p.RatingCount)
}

func TestUpdateProductKeepsFrozenCommissions(t *testing.T) {
	s := newTestStore(t)
	buyer := seedUser(t, s, "buyer", "100")
	affiliate := seedUser(t, s, "aff", "0")
	owner := seedUser(t, s, "owner", "0")
	_, productID := seedStoreWithProduct(t, s, owner, "20.00", 0.10, models.ProductTypeDigitalCourse)

	require.NoError(t, s.AddToCart(buyer, productID, 1))
	sales, err := s.Checkout(buyer, affiliate, nil)
	require.NoError(t, err)
	require.Len(t, sales, 1)

	p, err := s.FindProduct(productID)
	require.NoError(t, err)
	p.AffiliateCommissionRate = 0.50
	require.NoError(t, s.UpdateProduct(*p))

	sale, err := s.FindSale(sales[0].ID)
	require.NoError(t, err)
	assert.True(t, sale.CommissionEarned.Equal(decimal.RequireFromString("2.00")),
		"commission must stay frozen at sale time, got %s", sale.CommissionEarned)
}

func TestDeleteProductDropsCartLines(t *testing.T) {
	s := newTestStore(t)
	buyer := seedUser(t, s, "buyer", "0")
	owner := seedUser(t, s, "owner", "0")
	_, productID := seedStoreWithProduct(t, s, owner, "5.00", 0, models.ProductTypePhysical)

	require.NoError(t, s.AddToCart(buyer, productID, 2))
	require.NoError(t, s.DeleteProduct(productID))

	items, err := s.CartFor(buyer)
	require.NoError(t, err)
	assert.Empty(t, items)
}
