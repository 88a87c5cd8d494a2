package store

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
)

// MinAdBudget is the smallest campaign budget accepted, in account currency.
var MinAdBudget = decimal.RequireFromString("0.20")

// CreateAdCampaign funds an ad campaign from the creator's wallet. The debit
// and its ledger entry land in the same tx as the campaign row, so a failed
// insert charges nothing.
func (s *Store) CreateAdCampaign(ad models.AdCampaign) (*models.AdCampaign, error) {
	if ad.Title == "" || ad.Budget.LessThan(MinAdBudget) {
		return nil, ErrInvalidInput
	}
	if ad.ID == "" {
		ad.ID = newID()
	}
	if ad.CreatedAt == 0 {
		ad.CreatedAt = nowMillis()
	}

	err := s.inTx(func(tx *sql.Tx) error {
		balance, err := s.balanceForUpdate(tx, ad.UserID)
		if err != nil {
			return err
		}
		if balance.LessThan(ad.Budget) {
			return ErrInsufficientFunds
		}
		if err := s.adjustBalanceTx(tx, ad.UserID, ad.Budget.Neg(), "Ad campaign: "+ad.Title); err != nil {
			return err
		}
		_, err = tx.Exec(`
			INSERT INTO ad_campaigns (id, user_id, title, copy, image_url, budget, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, ad.ID, ad.UserID, ad.Title, ad.Copy, ad.ImageURL, ad.Budget.String(), ad.CreatedAt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

// AdCampaigns lists every campaign, newest first.
func (s *Store) AdCampaigns() ([]models.AdCampaign, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, title, copy, image_url, budget, created_at
		FROM ad_campaigns ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.AdCampaign
	for rows.Next() {
		var ad models.AdCampaign
		var budget string
		if err := rows.Scan(&ad.ID, &ad.UserID, &ad.Title, &ad.Copy, &ad.ImageURL, &budget, &ad.CreatedAt); err != nil {
			return nil, err
		}
		if ad.Budget, err = decimal.NewFromString(budget); err != nil {
			return nil, err
		}
		list = append(list, ad)
	}
	return list, rows.Err()
}
