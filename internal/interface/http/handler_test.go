package http

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, store.CreateTables(db, false))

	st := store.New(db, false)
	handler := NewHTTPHandler(st, NewAuthManager("test-secret"))
	router := gin.New()
	handler.RegisterRoutes(router)
	return router, st
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, router *gin.Engine, email string) (id, token string) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"firstName": "Test",
		"lastName":  "User",
		"email":     email,
		"password":  "password",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.User.ID)
	require.NotEmpty(t, resp.Token)
	return resp.User.ID, resp.Token
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterLoginMe(t *testing.T) {
	router, _ := newTestRouter(t)
	id, token := registerUser(t, router, "alice@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, id, me.ID)

	w = doJSON(t, router, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWalletEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)
	id, token := registerUser(t, router, "bob@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/wallet/"+id+"/deposit", token, gin.H{"amount": "150"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Below the minimum withdrawal.
	w = doJSON(t, router, http.MethodPost, "/api/wallet/"+id+"/withdraw", token, gin.H{"amount": "50"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// More than the balance.
	w = doJSON(t, router, http.MethodPost, "/api/wallet/"+id+"/withdraw", token, gin.H{"amount": "500"})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/wallet/"+id+"/withdraw", token, gin.H{"amount": "100"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/wallet/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var wallet struct {
		Balance      string `json:"balance"`
		Transactions []struct {
			Type string `json:"type"`
		} `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wallet))
	assert.True(t, decimal.RequireFromString(wallet.Balance).Equal(decimal.NewFromInt(50)), "got %s", wallet.Balance)
	assert.Len(t, wallet.Transactions, 2)
}

func TestCheckoutViaAffiliateCode(t *testing.T) {
	router, _ := newTestRouter(t)
	buyerID, buyerToken := registerUser(t, router, "buyer@example.com")
	affiliateID, affToken := registerUser(t, router, "aff@example.com")
	ownerID, ownerToken := registerUser(t, router, "owner@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/wallet/"+buyerID+"/deposit", buyerToken, gin.H{"amount": "100"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/stores", ownerToken, gin.H{
		"ownerId": ownerID, "name": "Shop",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sf struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sf))

	w = doJSON(t, router, http.MethodPost, "/api/products", ownerToken, gin.H{
		"storeId": sf.ID, "name": "Course", "price": "20.00",
		"type": "digital_course", "affiliateCommissionRate": 0.10,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))

	w = doJSON(t, router, http.MethodPost, "/api/affiliate-links", affToken, gin.H{
		"affiliateId": affiliateID, "productId": product.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var link struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &link))

	w = doJSON(t, router, http.MethodPost, "/api/cart/"+buyerID+"/items", buyerToken, gin.H{
		"productId": product.ID, "quantity": 1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/checkout", buyerToken, gin.H{
		"userId": buyerID, "affiliateCode": link.Code,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var checkout struct {
		Sales []struct {
			ID               string `json:"id"`
			AffiliateUserID  string `json:"affiliateUserId"`
			CommissionEarned string `json:"commissionEarned"`
		} `json:"sales"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkout))
	require.Len(t, checkout.Sales, 1)
	assert.Equal(t, affiliateID, checkout.Sales[0].AffiliateUserID)
	assert.True(t, decimal.RequireFromString(checkout.Sales[0].CommissionEarned).Equal(decimal.NewFromInt(2)),
		"got %s", checkout.Sales[0].CommissionEarned)

	// Second rating of the same sale conflicts.
	w = doJSON(t, router, http.MethodPost, "/api/ratings", buyerToken, gin.H{
		"saleId": checkout.Sales[0].ID, "rating": 5,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(t, router, http.MethodPost, "/api/ratings", buyerToken, gin.H{
		"saleId": checkout.Sales[0].ID, "rating": 3,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCheckoutInsufficientFunds(t *testing.T) {
	router, st := newTestRouter(t)
	buyerID, buyerToken := registerUser(t, router, "poor@example.com")
	ownerID, ownerToken := registerUser(t, router, "owner2@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/stores", ownerToken, gin.H{"ownerId": ownerID, "name": "Shop"})
	require.Equal(t, http.StatusCreated, w.Code)
	var sf struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sf))

	w = doJSON(t, router, http.MethodPost, "/api/products", ownerToken, gin.H{
		"storeId": sf.ID, "name": "Loaf", "price": "8.50", "type": "physical",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var product struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))

	w = doJSON(t, router, http.MethodPost, "/api/cart/"+buyerID+"/items", buyerToken, gin.H{"productId": product.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/checkout", buyerToken, gin.H{"userId": buyerID})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	items, err := st.CartFor(buyerID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestAISuggestionsUnavailableWithoutClient(t *testing.T) {
	router, _ := newTestRouter(t)
	_, token := registerUser(t, router, "writer@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/ai/suggest-bio", token, gin.H{"name": "Test"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	w = doJSON(t, router, http.MethodPost, "/api/ai/suggest-ad-copy", token, gin.H{"title": "Sale"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
