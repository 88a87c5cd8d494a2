package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// MinWithdrawal is the smallest withdrawal the wallet accepts.
var MinWithdrawal = decimal.NewFromInt(100)

// GetWallet returns the user's balance and full transaction log, newest first.
func (h *HTTPHandler) GetWallet(c *gin.Context) {
	userID := c.Param("userId")
	balance, err := h.store.Balance(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	transactions, err := h.store.Transactions(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"balance":      balance,
		"transactions": transactions,
	})
}

// Deposit credits the wallet.
func (h *HTTPHandler) Deposit(c *gin.Context) {
	var req struct {
		Amount      decimal.Decimal `json:"amount" binding:"required"`
		Description string          `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}
	if req.Description == "" {
		req.Description = "Deposit"
	}
	if err := h.store.AdjustBalance(c.Param("userId"), req.Amount, req.Description); err != nil {
		respondError(c, err)
		return
	}
	balance, err := h.store.Balance(c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// Withdraw debits the wallet. Withdrawals below the platform minimum or above
// the current balance are rejected.
func (h *HTTPHandler) Withdraw(c *gin.Context) {
	var req struct {
		Amount decimal.Decimal `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Amount.LessThan(MinWithdrawal) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount below the minimum withdrawal"})
		return
	}

	userID := c.Param("userId")
	balance, err := h.store.Balance(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if balance.LessThan(req.Amount) {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient balance"})
		return
	}
	if err := h.store.AdjustBalance(userID, req.Amount.Neg(), "Withdrawal"); err != nil {
		respondError(c, err)
		return
	}
	balance, err = h.store.Balance(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}
