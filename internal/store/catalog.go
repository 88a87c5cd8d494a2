package store

import (
	"database/sql"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
)

const productColumns = "id, store_id, name, description, price, image_url, type, digital_content_url, affiliate_commission_rate, average_rating, rating_count"

// CreateStore opens a storefront and links it to its owner.
func (s *Store) CreateStore(sf models.StoreFront) (*models.StoreFront, error) {
	if sf.ID == "" {
		sf.ID = newID()
	}
	if sf.CreatedAt == 0 {
		sf.CreatedAt = nowMillis()
	}
	err := s.inTx(func(tx *sql.Tx) error {
		var one int
		if err := tx.QueryRow("SELECT 1 FROM users WHERE id = ?", sf.OwnerID).Scan(&one); err == sql.ErrNoRows {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO stores (id, owner_id, name, description, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, sf.ID, sf.OwnerID, sf.Name, sf.Description, sf.CreatedAt); err != nil {
			return err
		}
		return s.setUserStore(tx, sf.OwnerID, sf.ID)
	})
	if err != nil {
		return nil, err
	}
	return &sf, nil
}

// FindStore returns a storefront by id.
func (s *Store) FindStore(id string) (*models.StoreFront, error) {
	var sf models.StoreFront
	err := s.db.QueryRow(
		"SELECT id, owner_id, name, description, created_at FROM stores WHERE id = ?", id).
		Scan(&sf.ID, &sf.OwnerID, &sf.Name, &sf.Description, &sf.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sf, nil
}

// StoreByOwner resolves a user's storefront, if they opened one.
func (s *Store) StoreByOwner(ownerID string) (*models.StoreFront, error) {
	var sf models.StoreFront
	err := s.db.QueryRow(
		"SELECT id, owner_id, name, description, created_at FROM stores WHERE owner_id = ?", ownerID).
		Scan(&sf.ID, &sf.OwnerID, &sf.Name, &sf.Description, &sf.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sf, nil
}

// UpdateStore edits name and description.
func (s *Store) UpdateStore(sf models.StoreFront) error {
	res, err := s.db.Exec("UPDATE stores SET name = ?, description = ? WHERE id = ?",
		sf.Name, sf.Description, sf.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var one int
		if err := s.db.QueryRow("SELECT 1 FROM stores WHERE id = ?", sf.ID).Scan(&one); err == sql.ErrNoRows {
			return ErrNotFound
		}
	}
	return nil
}

// Stores lists every storefront.
func (s *Store) Stores() ([]models.StoreFront, error) {
	rows, err := s.db.Query("SELECT id, owner_id, name, description, created_at FROM stores ORDER BY created_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.StoreFront
	for rows.Next() {
		var sf models.StoreFront
		if err := rows.Scan(&sf.ID, &sf.OwnerID, &sf.Name, &sf.Description, &sf.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, sf)
	}
	return list, rows.Err()
}

// CreateProduct adds a product to an existing store. Price must be positive and
// the commission rate a fraction in [0,1].
func (s *Store) CreateProduct(p models.Product) (*models.Product, error) {
	if !p.Price.IsPositive() || p.AffiliateCommissionRate < 0 || p.AffiliateCommissionRate > 1 {
		return nil, ErrInvalidInput
	}
	switch p.Type {
	case models.ProductTypePhysical, models.ProductTypeDigitalCourse,
		models.ProductTypeDigitalEbook, models.ProductTypeDigitalOther:
	default:
		return nil, ErrInvalidInput
	}
	if _, err := s.FindStore(p.StoreID); err != nil {
		return nil, err
	}

	if p.ID == "" {
		p.ID = newID()
	}
	p.AverageRating = 0
	p.RatingCount = 0
	_, err := s.db.Exec(`
		INSERT INTO products (id, store_id, name, description, price, image_url, type, digital_content_url, affiliate_commission_rate, average_rating, rating_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0)
	`, p.ID, p.StoreID, p.Name, p.Description, p.Price.String(), p.ImageURL, p.Type,
		p.DigitalContentURL, p.AffiliateCommissionRate)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct edits the mutable product fields. Historical sales keep their
// frozen commission regardless of rate changes here.
func (s *Store) UpdateProduct(p models.Product) error {
	if !p.Price.IsPositive() || p.AffiliateCommissionRate < 0 || p.AffiliateCommissionRate > 1 {
		return ErrInvalidInput
	}
	res, err := s.db.Exec(`
		UPDATE products SET name = ?, description = ?, price = ?, image_url = ?, digital_content_url = ?, affiliate_commission_rate = ?
		WHERE id = ?
	`, p.Name, p.Description, p.Price.String(), p.ImageURL, p.DigitalContentURL,
		p.AffiliateCommissionRate, p.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var one int
		if err := s.db.QueryRow("SELECT 1 FROM products WHERE id = ?", p.ID).Scan(&one); err == sql.ErrNoRows {
			return ErrNotFound
		}
	}
	return nil
}

// DeleteProduct removes a product and any cart lines pointing at it.
func (s *Store) DeleteProduct(id string) error {
	return s.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM cart_items WHERE product_id = ?", id); err != nil {
			return err
		}
		_, err := tx.Exec("DELETE FROM products WHERE id = ?", id)
		return err
	})
}

// FindProduct returns a product by id.
func (s *Store) FindProduct(id string) (*models.Product, error) {
	row := s.db.QueryRow("SELECT "+productColumns+" FROM products WHERE id = ?", id)
	return scanProduct(row)
}

// Products lists the whole catalog.
func (s *Store) Products() ([]models.Product, error) {
	return s.productList("SELECT " + productColumns + " FROM products ORDER BY name ASC")
}

// ProductsByStore lists a storefront's catalog.
func (s *Store) ProductsByStore(storeID string) ([]models.Product, error) {
	return s.productList("SELECT "+productColumns+" FROM products WHERE store_id = ? ORDER BY name ASC", storeID)
}

// AddRating rates a purchased sale exactly once. The sale flips to rated, the
// rating row is attributed to the sale's buyer and the product's derived pair
// is recomputed as a full fold over the rating list, never incrementally.
func (s *Store) AddRating(saleID string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidInput
	}
	return s.inTx(func(tx *sql.Tx) error {
		var productID, buyerID string
		var isRated int
		err := tx.QueryRow(
			"SELECT product_id, buyer_id, is_rated FROM affiliate_sales WHERE id = ?"+s.forUpdate(),
			saleID).Scan(&productID, &buyerID, &isRated)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if isRated != 0 {
			return ErrAlreadyRated
		}

		if _, err := tx.Exec("UPDATE affiliate_sales SET is_rated = 1 WHERE id = ?", saleID); err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO product_ratings (id, sale_id, product_id, user_id, rating, comment, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, newID(), saleID, productID, buyerID, rating, comment, nowMillis()); err != nil {
			return err
		}
		return recomputeRating(tx, productID)
	})
}

// RatingsForProduct lists a product's ratings, newest first.
func (s *Store) RatingsForProduct(productID string) ([]models.ProductRating, error) {
	rows, err := s.db.Query(`
		SELECT id, sale_id, product_id, user_id, rating, comment, created_at
		FROM product_ratings WHERE product_id = ?
		ORDER BY created_at DESC, id DESC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.ProductRating
	for rows.Next() {
		var r models.ProductRating
		if err := rows.Scan(&r.ID, &r.SaleID, &r.ProductID, &r.UserID, &r.Rating, &r.Comment, &r.Timestamp); err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

// recomputeRating folds the authoritative rating rows into the stored derived
// pair. COALESCE covers the zero-rating case.
func recomputeRating(tx execer, productID string) error {
	_, err := tx.Exec(`
		UPDATE products SET
			average_rating = (SELECT COALESCE(AVG(rating), 0) FROM product_ratings WHERE product_id = ?),
			rating_count   = (SELECT COUNT(*) FROM product_ratings WHERE product_id = ?)
		WHERE id = ?
	`, productID, productID, productID)
	return err
}

// SyncProductRatings recomputes every product's derived rating fields from the
// rating rows. Run at boot to repair any drift in a store written by an older
// build.
func (s *Store) SyncProductRatings() error {
	_, err := s.db.Exec(`
		UPDATE products SET
			average_rating = COALESCE((SELECT AVG(rating) FROM product_ratings pr WHERE pr.product_id = products.id), 0),
			rating_count   = (SELECT COUNT(*) FROM product_ratings pr WHERE pr.product_id = products.id)
	`)
	return err
}

// SalesByAffiliate returns sales credited to an affiliate, newest first.
func (s *Store) SalesByAffiliate(affiliateID string) ([]models.AffiliateSale, error) {
	return s.saleList("WHERE affiliate_user_id = ?", affiliateID)
}

// SalesByStore returns a storefront's sales, newest first.
func (s *Store) SalesByStore(storeID string) ([]models.AffiliateSale, error) {
	return s.saleList("WHERE store_id = ?", storeID)
}

// SalesByBuyer returns a buyer's purchase history, newest first.
func (s *Store) SalesByBuyer(buyerID string) ([]models.AffiliateSale, error) {
	return s.saleList("WHERE buyer_id = ?", buyerID)
}

// FindSale returns one sale record.
func (s *Store) FindSale(id string) (*models.AffiliateSale, error) {
	sales, err := s.saleList("WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, ErrNotFound
	}
	return &sales[0], nil
}

func (s *Store) saleList(where string, args ...any) ([]models.AffiliateSale, error) {
	rows, err := s.db.Query(`
		SELECT id, product_id, buyer_id, affiliate_user_id, store_id, sale_amount, commission_earned, status, is_rated, shipping_json, created_at
		FROM affiliate_sales `+where+`
		ORDER BY created_at DESC, id DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.AffiliateSale
	for rows.Next() {
		var sale models.AffiliateSale
		var amount, commission string
		var isRated int
		var shipping sql.NullString
		if err := rows.Scan(&sale.ID, &sale.ProductID, &sale.BuyerID, &sale.AffiliateUserID,
			&sale.StoreID, &amount, &commission, &sale.Status, &isRated, &shipping, &sale.Timestamp); err != nil {
			return nil, err
		}
		if sale.SaleAmount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		if sale.CommissionEarned, err = decimal.NewFromString(commission); err != nil {
			return nil, err
		}
		sale.IsRated = isRated != 0
		if shipping.Valid && shipping.String != "" {
			var addr models.ShippingAddress
			if err := json.Unmarshal([]byte(shipping.String), &addr); err != nil {
				return nil, err
			}
			sale.ShippingAddress = &addr
		}
		list = append(list, sale)
	}
	return list, rows.Err()
}

func (s *Store) productList(query string, args ...any) ([]models.Product, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var price string
	err := row.Scan(&p.ID, &p.StoreID, &p.Name, &p.Description, &price, &p.ImageURL,
		&p.Type, &p.DigitalContentURL, &p.AffiliateCommissionRate, &p.AverageRating, &p.RatingCount)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, err
	}
	return &p, nil
}
