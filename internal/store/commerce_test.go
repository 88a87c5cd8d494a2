package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
)

func TestCartMergeAndQuantity(t *testing.T) {
	s := newTestStore(t)
	buyer := seedUser(t, s, "buyer", "0")
	owner := seedUser(t, s, "owner", "0")
	_, productID := seedStoreWithProduct(t, s, owner, "5.00", 0, models.ProductTypePhysical)

	assert.ErrorIs(t, s.AddToCart(buyer, "ghost", 1), ErrNotFound)

	require.NoError(t, s.AddToCart(buyer, productID, 2))
	require.NoError(t, s.AddToCart(buyer, productID, 3))
	// Non-positive quantities fall back to one.
	require.NoError(t, s.AddToCart(buyer, productID, -4))

	items, err := s.CartFor(buyer)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 6, items[0].Quantity)

	require.NoError(t, s.SetCartQuantity(buyer, productID, 2))
	items, err = s.CartFor(buyer)
	require.NoError(t, err)
	assert.Equal(t, 2, items[0].Quantity)

	// Zero removes the line.
	require.NoError(t, s.SetCartQuantity(buyer, productID, 0))
	items, err = s.CartFor(buyer)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCheckoutWithAffiliate(t *testing.T) {
	s := newTestStore(t)
	buyer := seedUser(t, s, "buyer", "100")
	affiliate := seedUser(t, s, "aff", "0")
	owner := seedUser(t, s, "owner", "0")
	_, productID := seedStoreWithProduct(t, s, owner, "20.00", 0.10, models.ProductTypeDigitalCourse)

	require.NoError(t, s.AddToCart(buyer, productID, 1))
	sales, err := s.Checkout(buyer, affiliate, nil)
	require.NoError(t, err)
	require.Len(t, sales, 1)

	assert.True(t, sales[0].SaleAmount.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, sales[0].CommissionEarned.Equal(decimal.RequireFromString("2.00")))
	assert.Equal(t, models.SaleStatusDelivered, sales[0].Status)
	assert.Equal(t, affiliate, sales[0].AffiliateUserID)

	buyerBalance, err := s.Balance(buyer)
	require.NoError(t, err)
	assert.True(t, buyerBalance.Equal(decimal.RequireFromString("80.00")), "got %s", buyerBalance)

	affBalance, err := s.Balance(affiliate)
	require.NoError(t, err)
	assert.True(t, affBalance.Equal(decimal.RequireFromString("2.00")), "got %s", affBalance)

	// The affiliate learns about the sale exactly once; the buyer does not.
	notes, err := s.NotificationsFor(affiliate)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationAffiliateSale, notes[0].Type)
	assert.Equal(t, buyer, notes[0].ActorID)

	notes, err = s.NotificationsFor(buyer)
	require.NoError(t, err)
	assert.Empty(t, notes)

	// The cart was consumed.
	items, err := s.CartFor(buyer)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCheckoutInsufficientFundsAppliesNothing(t *testing.T) {
	s := newTestStore(t)
	buyer := seedUser(t, s, "buyer", "10")
	affiliate := seedUser(t, s, "aff", "0")
	owner := seedUser(t, s, "owner", "0")
	_, productID := seedStoreWithProduct(t, s, owner, "20.00", 0.10, models.ProductTypeDigitalCourse)

	require.NoError(t, s.AddToCart(buyer, productID, 1))
	_, err := s.Checkout(buyer, affiliate, nil)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	balance, err := s.Balance(buyer)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("10")))

	txs, err := s.Transactions(buyer)
	require.NoError(t, err)
	assert.Empty(t, txs)

	sales, err := s.SalesByAffiliate(affiliate)
	require.NoError(t, err)
	assert.Empty(t, sales)

	// The cart survives a failed checkout.
	items, err := s.CartFor(buyer)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCheckoutWithoutAffiliate(t *testing.T) {
	s := newTestStore(t)
	buyer := seedUser(t, s, "buyer", "50")
	owner := seedUser(t, s, "owner", "0")
	_, productID := seedStoreWithProduct(t, s, owner, "15.00", 0.20, models.ProductTypePhysical)

	shipping := &models.ShippingAddress{FullName: "B Uyer", Street: "1 Main St", City: "Town", ZipCode: "12345", Country: "US"}
	require.NoError(t, s.AddToCart(buyer, productID, 2))
	sales, err := s.Checkout(buyer, "", shipping)
	require.NoError(t, err)
	require.Len(t, sales, 1)

	assert.True(t, sales[0].SaleAmount.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, models.SaleStatusWaitlisted, sales[0].Status)
	assert.Empty(t, sales[0].AffiliateUserID)

	stored, err := s.FindSale(sales[0].ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ShippingAddress)
	assert.Equal(t, "1 Main St", stored.ShippingAddress.Street)

	balance, err := s.Balance(buyer)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("20.00")), "got %s", balance)
}

func TestCheckoutEmptyCart(t *testing.T) {
	s := newTestStore(t)
	buyer := seedUser(t, s, "buyer", "50")

	_, err := s.Checkout(buyer, "", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCheckoutUnknownAffiliate(t *testing.T) {
	s := newTestStore(t)
	buyer := seedUser(t, s, "buyer", "50")
	owner := seedUser(t, s, "owner", "0")
	_, productID := seedStoreWithProduct(t, s, owner, "5.00", 0, models.ProductTypePhysical)
	require.NoError(t, s.AddToCart(buyer, productID, 1))

	_, err := s.Checkout(buyer, "ghost", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	balance, err := s.Balance(buyer)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("50")))
}

func TestAffiliateLinkRoundTrip(t *testing.T) {
	s := newTestStore(t)
	affiliate := seedUser(t, s, "aff", "0")
	owner := seedUser(t, s, "owner", "0")
	_, productID := seedStoreWithProduct(t, s, owner, "5.00", 0.10, models.ProductTypeDigitalEbook)

	link, err := s.CreateAffiliateLink(affiliate, productID)
	require.NoError(t, err)
	assert.Len(t, link.Code, 8)

	resolved, err := s.ResolveAffiliateLink(link.Code)
	require.NoError(t, err)
	assert.Equal(t, affiliate, resolved.AffiliateUserID)
	assert.Equal(t, productID, resolved.ProductID)

	_, err = s.ResolveAffiliateLink("nocode00")
	assert.ErrorIs(t, err, ErrNotFound)

	links, err := s.LinksByAffiliate(affiliate)
	require.NoError(t, err)
	assert.Len(t, links, 1)

	_, err = s.CreateAffiliateLink("ghost", productID)
	assert.ErrorIs(t, err, ErrNotFound)
}
