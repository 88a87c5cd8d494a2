package store

import (
	"database/sql"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
)

const userColumns = "id, user_type, first_name, last_name, email, phone, document_id, profile_picture, bio, credentials, balance, card_json, store_id"

// CreateUser registers a new account. Called once per user; the ledger starts
// at the given opening balance with no transactions, so account creation is
// time zero for the balance invariant.
func (s *Store) CreateUser(u models.User, passwordHash string) error {
	if u.ID == "" {
		return ErrInvalidInput
	}
	var card *string
	if u.Card != nil {
		raw, err := json.Marshal(u.Card)
		if err != nil {
			return err
		}
		str := string(raw)
		card = &str
	}
	_, err := s.db.Exec(`
		INSERT INTO users (id, user_type, first_name, last_name, email, password_hash,
			phone, document_id, profile_picture, bio, credentials, balance, card_json, store_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.UserType, u.FirstName, u.LastName, u.Email, passwordHash,
		u.Phone, u.DocumentID, u.ProfilePicture, u.Bio, u.Credentials,
		u.Balance.String(), card, u.StoreID, nowMillis())
	return err
}

// FindUser loads a user with their followed set.
func (s *Store) FindUser(id string) (*models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row, nil)
	if err != nil {
		return nil, err
	}
	if u.FollowedUsers, err = s.Following(u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// FindUserByEmail is the login lookup; it also returns the stored password hash.
func (s *Store) FindUserByEmail(email string) (*models.User, string, error) {
	var hash sql.NullString
	row := s.db.QueryRow("SELECT "+userColumns+", password_hash FROM users WHERE email = ?", email)
	u, err := scanUser(row, &hash)
	if err != nil {
		return nil, "", err
	}
	if u.FollowedUsers, err = s.Following(u.ID); err != nil {
		return nil, "", err
	}
	return u, hash.String, nil
}

// Users returns every registered user.
func (s *Store) Users() ([]models.User, error) {
	rows, err := s.db.Query("SELECT " + userColumns + " FROM users ORDER BY created_at ASC")
	if err != nil {
		return nil, err
	}

	var list []models.User
	for rows.Next() {
		u, err := scanUser(rows, nil)
		if err != nil {
			rows.Close()
			return nil, err
		}
		list = append(list, *u)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// Followed sets are loaded after the cursor closes; SQLite runs on a single
	// connection and nested queries would starve it.
	for i := range list {
		if list[i].FollowedUsers, err = s.Following(list[i].ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// UpdateProfile mutates the editable identity fields only. Balance, card and
// store linkage go through their own operations.
func (s *Store) UpdateProfile(u models.User) error {
	res, err := s.db.Exec(`
		UPDATE users SET first_name = ?, last_name = ?, phone = ?, profile_picture = ?, bio = ?, credentials = ?
		WHERE id = ?
	`, u.FirstName, u.LastName, u.Phone, u.ProfilePicture, u.Bio, u.Credentials, u.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var one int
		if err := s.db.QueryRow("SELECT 1 FROM users WHERE id = ?", u.ID).Scan(&one); err == sql.ErrNoRows {
			return ErrNotFound
		}
	}
	return nil
}

func (s *Store) setUserStore(tx execer, userID, storeID string) error {
	_, err := tx.Exec("UPDATE users SET store_id = ? WHERE id = ?", storeID, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, extra *sql.NullString) (*models.User, error) {
	var u models.User
	var balance string
	var cardJSON sql.NullString
	dest := []any{&u.ID, &u.UserType, &u.FirstName, &u.LastName, &u.Email,
		&u.Phone, &u.DocumentID, &u.ProfilePicture, &u.Bio, &u.Credentials,
		&balance, &cardJSON, &u.StoreID}
	if extra != nil {
		dest = append(dest, extra)
	}

	err := row.Scan(dest...)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if u.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, err
	}
	if cardJSON.Valid && cardJSON.String != "" {
		var card models.PaymentCard
		if err := json.Unmarshal([]byte(cardJSON.String), &card); err != nil {
			return nil, err
		}
		u.Card = &card
	}
	u.FollowedUsers = []string{}
	return &u, nil
}
