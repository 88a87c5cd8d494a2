package store

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
)

// CartFor returns the user's cart lines.
func (s *Store) CartFor(userID string) ([]models.CartItem, error) {
	rows, err := s.db.Query("SELECT product_id, quantity FROM cart_items WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AddToCart merges quantity into the user's line for the product, creating it
// if needed.
func (s *Store) AddToCart(userID, productID string, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	return s.inTx(func(tx *sql.Tx) error {
		var one int
		if err := tx.QueryRow("SELECT 1 FROM products WHERE id = ?", productID).Scan(&one); err == sql.ErrNoRows {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		var current int
		err := tx.QueryRow("SELECT quantity FROM cart_items WHERE user_id = ? AND product_id = ?",
			userID, productID).Scan(&current)
		if err == sql.ErrNoRows {
			_, err = tx.Exec("INSERT INTO cart_items (user_id, product_id, quantity) VALUES (?, ?, ?)",
				userID, productID, quantity)
			return err
		}
		if err != nil {
			return err
		}
		_, err = tx.Exec("UPDATE cart_items SET quantity = ? WHERE user_id = ? AND product_id = ?",
			current+quantity, userID, productID)
		return err
	})
}

// SetCartQuantity sets a line's quantity; zero or less removes the line.
func (s *Store) SetCartQuantity(userID, productID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveFromCart(userID, productID)
	}
	_, err := s.db.Exec("UPDATE cart_items SET quantity = ? WHERE user_id = ? AND product_id = ?",
		quantity, userID, productID)
	return err
}

// RemoveFromCart drops a line.
func (s *Store) RemoveFromCart(userID, productID string) error {
	_, err := s.db.Exec("DELETE FROM cart_items WHERE user_id = ? AND product_id = ?", userID, productID)
	return err
}

// ClearCart empties the user's cart.
func (s *Store) ClearCart(userID string) error {
	_, err := s.db.Exec("DELETE FROM cart_items WHERE user_id = ?", userID)
	return err
}

// Checkout purchases the buyer's whole cart in one transaction: every line
// debits the buyer, records an affiliate sale with its commission frozen at
// purchase time, credits the affiliate when there is one, and notifies them.
// Insufficient balance fails the entire checkout before anything is applied.
// Physical goods start waitlisted until fulfillment; digital goods are
// delivered immediately.
func (s *Store) Checkout(buyerID, affiliateID string, shipping *models.ShippingAddress) ([]models.AffiliateSale, error) {
	var created []models.AffiliateSale
	err := s.inTx(func(tx *sql.Tx) error {
		balance, err := s.balanceForUpdate(tx, buyerID)
		if err != nil {
			return err
		}
		if affiliateID != "" {
			var one int
			if err := tx.QueryRow("SELECT 1 FROM users WHERE id = ?", affiliateID).Scan(&one); err == sql.ErrNoRows {
				return ErrNotFound
			} else if err != nil {
				return err
			}
		}

		type line struct {
			product models.Product
			qty     int
			total   decimal.Decimal
		}
		var lines []line

		rows, err := tx.Query("SELECT product_id, quantity FROM cart_items WHERE user_id = ?", buyerID)
		if err != nil {
			return err
		}
		var items []models.CartItem
		for rows.Next() {
			var item models.CartItem
			if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
				rows.Close()
				return err
			}
			items = append(items, item)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()

		if len(items) == 0 {
			return ErrInvalidInput
		}

		grandTotal := decimal.Zero
		for _, item := range items {
			row := tx.QueryRow("SELECT "+productColumns+" FROM products WHERE id = ?", item.ProductID)
			p, err := scanProduct(row)
			if err == ErrNotFound {
				// A product deleted after it was carted does not sink the
				// purchase; the line is skipped like the source did.
				continue
			}
			if err != nil {
				return err
			}
			total := p.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			grandTotal = grandTotal.Add(total)
			lines = append(lines, line{product: *p, qty: item.Quantity, total: total})
		}
		if len(lines) == 0 {
			return ErrInvalidInput
		}

		if balance.LessThan(grandTotal) {
			return ErrInsufficientFunds
		}

		var shippingJSON *string
		if shipping != nil {
			raw, err := json.Marshal(shipping)
			if err != nil {
				return err
			}
			str := string(raw)
			shippingJSON = &str
		}

		for _, ln := range lines {
			if err := s.adjustBalanceTx(tx, buyerID, ln.total.Neg(), "Purchase of "+ln.product.Name); err != nil {
				return err
			}

			commission := ln.total.Mul(decimal.NewFromFloat(ln.product.AffiliateCommissionRate)).Round(2)
			status := models.SaleStatusDelivered
			if ln.product.Type == models.ProductTypePhysical {
				status = models.SaleStatusWaitlisted
			}

			sale := models.AffiliateSale{
				ID:               newID(),
				ProductID:        ln.product.ID,
				BuyerID:          buyerID,
				AffiliateUserID:  affiliateID,
				StoreID:          ln.product.StoreID,
				SaleAmount:       ln.total,
				CommissionEarned: commission,
				Status:           status,
				ShippingAddress:  shipping,
				Timestamp:        nowMillis(),
			}
			if _, err := tx.Exec(`
				INSERT INTO affiliate_sales (id, product_id, buyer_id, affiliate_user_id, store_id, sale_amount, commission_earned, status, is_rated, shipping_json, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)
			`, sale.ID, sale.ProductID, sale.BuyerID, sale.AffiliateUserID, sale.StoreID,
				sale.SaleAmount.String(), sale.CommissionEarned.String(), sale.Status,
				shippingJSON, sale.Timestamp); err != nil {
				return err
			}

			if affiliateID != "" {
				if err := s.adjustBalanceTx(tx, affiliateID, commission, "Sale commission: "+ln.product.Name); err != nil {
					return err
				}
				if err := s.notify(tx, models.NotificationAffiliateSale, affiliateID, buyerID, &sale.ID); err != nil {
					return err
				}
			}
			created = append(created, sale)
		}

		_, err = tx.Exec("DELETE FROM cart_items WHERE user_id = ?", buyerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CreateAffiliateLink mints a shareable referral code for a product.
func (s *Store) CreateAffiliateLink(affiliateID, productID string) (*models.AffiliateLink, error) {
	if _, err := s.FindUser(affiliateID); err != nil {
		return nil, err
	}
	if _, err := s.FindProduct(productID); err != nil {
		return nil, err
	}

	link := models.AffiliateLink{
		ID:              newID(),
		AffiliateUserID: affiliateID,
		ProductID:       productID,
		CreatedAt:       nowMillis(),
	}
	// Short codes can collide; retry with a fresh one a few times before
	// giving up.
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		link.Code = strings.ReplaceAll(newID(), "-", "")[:8]
		_, err = s.db.Exec(`
			INSERT INTO affiliate_links (id, code, affiliate_user_id, product_id, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, link.ID, link.Code, link.AffiliateUserID, link.ProductID, link.CreatedAt)
		if err == nil {
			return &link, nil
		}
	}
	return nil, err
}

// ResolveAffiliateLink maps a referral code back to its affiliate and product.
func (s *Store) ResolveAffiliateLink(code string) (*models.AffiliateLink, error) {
	var link models.AffiliateLink
	err := s.db.QueryRow(`
		SELECT id, code, affiliate_user_id, product_id, created_at
		FROM affiliate_links WHERE code = ?
	`, code).Scan(&link.ID, &link.Code, &link.AffiliateUserID, &link.ProductID, &link.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// LinksByAffiliate lists an affiliate's referral codes, newest first.
func (s *Store) LinksByAffiliate(affiliateID string) ([]models.AffiliateLink, error) {
	rows, err := s.db.Query(`
		SELECT id, code, affiliate_user_id, product_id, created_at
		FROM affiliate_links WHERE affiliate_user_id = ?
		ORDER BY created_at DESC, id DESC
	`, affiliateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.AffiliateLink
	for rows.Next() {
		var link models.AffiliateLink
		if err := rows.Scan(&link.ID, &link.Code, &link.AffiliateUserID, &link.ProductID, &link.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, link)
	}
	return list, rows.Err()
}
