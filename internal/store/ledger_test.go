package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
)

func TestAdjustBalanceKeepsLedgerConsistent(t *testing.T) {
	s := newTestStore(t)
	uid := seedUser(t, s, "alice", "100")

	require.NoError(t, s.AdjustBalance(uid, decimal.RequireFromString("25.50"), "Deposit"))
	require.NoError(t, s.AdjustBalance(uid, decimal.RequireFromString("-10.25"), "Withdrawal"))
	require.NoError(t, s.AdjustBalance(uid, decimal.RequireFromString("-5"), "Withdrawal"))

	balance, err := s.Balance(uid)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("110.25")), "got %s", balance)

	// The balance must equal the opening balance plus the signed sum of the log.
	txs, err := s.Transactions(uid)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	sum := decimal.RequireFromString("100")
	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionCredit:
			sum = sum.Add(tx.Amount)
		case models.TransactionDebit:
			sum = sum.Sub(tx.Amount)
		default:
			t.Fatalf("unexpected transaction type %q", tx.Type)
		}
	}
	assert.True(t, balance.Equal(sum), "balance %s, signed sum %s", balance, sum)
}

func TestAdjustBalanceStoresAbsoluteAmounts(t *testing.T) {
	s := newTestStore(t)
	uid := seedUser(t, s, "bob", "50")

	require.NoError(t, s.AdjustBalance(uid, decimal.RequireFromString("-20"), "Withdrawal"))

	txs, err := s.Transactions(uid)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, models.TransactionDebit, txs[0].Type)
	assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("20")))
	assert.Equal(t, "Withdrawal", txs[0].Description)
}

func TestAdjustBalanceUnknownUser(t *testing.T) {
	s := newTestStore(t)

	err := s.AdjustBalance("nope", decimal.NewFromInt(10), "Deposit")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequestCard(t *testing.T) {
	s := newTestStore(t)
	uid := seedUser(t, s, "carla", "0")

	card := models.PaymentCard{HolderName: "Carla Tester", Last4: "4242", Brand: "visa", ExpiryDate: "12/27"}
	require.NoError(t, s.RequestCard(uid, card))

	u, err := s.FindUser(uid)
	require.NoError(t, err)
	require.NotNil(t, u.Card)
	assert.Equal(t, "4242", u.Card.Last4)

	// Balance is untouched by card changes.
	assert.True(t, u.Balance.Equal(decimal.Zero))

	assert.ErrorIs(t, s.RequestCard("missing", card), ErrNotFound)
}
