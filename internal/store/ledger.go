package store

import (
	"database/sql"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
)

// AdjustBalance applies a signed amount to the user's balance and appends the
// matching transaction in the same tx. The ledger invariant — balance equals the
// signed sum of the log — holds because no other code path writes balances.
func (s *Store) AdjustBalance(userID string, amount decimal.Decimal, description string) error {
	return s.inTx(func(tx *sql.Tx) error {
		return s.adjustBalanceTx(tx, userID, amount, description)
	})
}

func (s *Store) adjustBalanceTx(tx *sql.Tx, userID string, amount decimal.Decimal, description string) error {
	balance, err := s.balanceForUpdate(tx, userID)
	if err != nil {
		return err
	}

	txType := models.TransactionCredit
	if amount.IsNegative() {
		txType = models.TransactionDebit
	}

	if _, err := tx.Exec("UPDATE users SET balance = ? WHERE id = ?",
		balance.Add(amount).String(), userID); err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO transactions (id, user_id, amount, type, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, newID(), userID, amount.Abs().String(), txType, description, nowMillis())
	return err
}

func (s *Store) balanceForUpdate(tx *sql.Tx, userID string) (decimal.Decimal, error) {
	var raw string
	err := tx.QueryRow("SELECT balance FROM users WHERE id = ?"+s.forUpdate(), userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return decimal.Zero, ErrNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(raw)
}

// Balance returns the user's current balance.
func (s *Store) Balance(userID string) (decimal.Decimal, error) {
	var raw string
	err := s.db.QueryRow("SELECT balance FROM users WHERE id = ?", userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return decimal.Zero, ErrNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(raw)
}

// Transactions returns the user's ledger entries, newest first.
func (s *Store) Transactions(userID string) ([]models.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT id, amount, type, description, created_at
		FROM transactions
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var amount string
		if err := rows.Scan(&t.ID, &amount, &t.Type, &t.Description, &t.Timestamp); err != nil {
			return nil, err
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// RequestCard replaces the user's payment instrument snapshot. Balance is untouched.
func (s *Store) RequestCard(userID string, card models.PaymentCard) error {
	payload, err := json.Marshal(card)
	if err != nil {
		return err
	}
	res, err := s.db.Exec("UPDATE users SET card_json = ? WHERE id = ?", string(payload), userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// UPDATE matches zero rows both for missing users and for an unchanged
		// card; distinguish with an existence probe.
		var one int
		if err := s.db.QueryRow("SELECT 1 FROM users WHERE id = ?", userID).Scan(&one); err == sql.ErrNoRows {
			return ErrNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}
