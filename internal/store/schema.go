package store

import (
	"database/sql"
	"fmt"
)

// CreateTables creates all required database tables.
func CreateTables(db *sql.DB, isMySQL bool) error {
	tables := []string{
		createUsersTable(isMySQL),
		createTransactionsTable(isMySQL),
		createFollowsTable(isMySQL),
		createPostsTable(isMySQL),
		createEngagementTable("post_likes", isMySQL),
		createEngagementTable("post_saves", isMySQL),
		createEngagementTable("post_shares", isMySQL),
		createReactionsTable(isMySQL),
		createCommentsTable(isMySQL),
		createStoresTable(isMySQL),
		createProductsTable(isMySQL),
		createRatingsTable(isMySQL),
		createAffiliateSalesTable(isMySQL),
		createCartTable(isMySQL),
		createNotificationsTable(isMySQL),
		createAudioTracksTable(isMySQL),
		createEventsTable(isMySQL),
		createEventAttendeesTable(isMySQL),
		createAffiliateLinksTable(isMySQL),
		createAdCampaignsTable(isMySQL),
		createConversationsTable(isMySQL),
		createMessagesTable(isMySQL),
	}

	for _, table := range tables {
		if _, err := db.Exec(table); err != nil {
			return err
		}
	}
	return nil
}

func createUsersTable(isMySQL bool) string {
	id := idType(isMySQL)
	text := textType(isMySQL)
	integer := intType(isMySQL)
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS users (
		id %s PRIMARY KEY,
		user_type %s NOT NULL,
		first_name %s NOT NULL,
		last_name %s NOT NULL,
		email %s NOT NULL UNIQUE,
		password_hash %s,
		phone %s,
		document_id %s,
		profile_picture %s,
		bio %s,
		credentials %s,
		balance %s NOT NULL DEFAULT '0',
		card_json %s,
		store_id %s,
		created_at %s NOT NULL DEFAULT 0
	) %s;`, id, keyText(isMySQL), text, text, keyText(isMySQL), text, text, text, text, text, text,
		moneyType(isMySQL), text, id, integer, tableOptions(isMySQL))
}

func createTransactionsTable(isMySQL bool) string {
	id := idType(isMySQL)
	text := textType(isMySQL)
	integer := intType(isMySQL)
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS transactions (
		id %s PRIMARY KEY,
		user_id %s NOT NULL,
		amount %s NOT NULL,
		type %s NOT NULL,
		description %s NOT NULL,
		created_at %s NOT NULL,
		FOREIGN KEY(user_id) REFERENCES users(id)
	) %s;`, id, id, moneyType(isMySQL), keyText(isMySQL), text, integer, tableOptions(isMySQL))
}

func createFollowsTable(isMySQL bool) string {
	id := idType(isMySQL)
	integer := intType(isMySQL)
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS user_follows (
		follower_id %s NOT NULL,
		followee_id %s NOT NULL,
		created_at %s NOT NULL,
		UNIQUE(follower_id, followee_id),
		FOREIGN KEY(follower_id) REFERENCES users(id),
		FOREIGN KEY(followee_id) REFERENCES users(id)
	) %s;`, id, id, integer, tableOptions(isMySQL))
}

func createPostsTable(isMySQL bool) string {
	id := idType(isMySQL)
	text := textType(isMySQL)
	integer := intType(isMySQL)
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS posts (
		id %s PRIMARY KEY,
		user_id %s NOT NULL,
		type %s NOT NULL,
		content %s,
		image_url %s,
		video_url %s,
		audio_track_id %s,
		live_stream_url %s,
		is_pinned %s NOT NULL DEFAULT 0,
		scheduled_at %s,
		created_at %s NOT NULL,
		FOREIGN KEY(user_id) REFERENCES users(id)
	) %s;`, id, id, keyText(isMySQL), text, text, text, id, text, integer, integer, integer, tableOptions(isMySQL))
}

// createEngagementTable builds the likes/saves/shares tables; membership of a
// (post, user) pair means the user acted, the UNIQUE constraint makes duplicate
// adds collapse under retry.
func createEngagementTable(name string, isMySQL bool) string {
	id := idType(isMySQL)
	integer := intType(isMySQL)
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		post_id %s NOT NULL,
		user_id %s NOT NULL,
		created_at %s NOT NULL,
		UNIQUE(post_id, user_id),
		FOREIGN KEY(post_id) REFERENCES posts(id),
		FOREIGN KEY(user_id) REFERENCES users(id)
	) %s;`, name, id, id, integer, tableOptions(isMySQL))
}

func createReactionsTable(isMySQL bool) string {
	id := idType(isMySQL)
	integer := intType(isMySQL)
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS post_reactions (
		post_id %s NOT NULL,
		emoji %s NOT NULL,
		user_id %s NOT NULL,
		created_at %s NOT NULL,
		UNIQUE(post_id, emoji, user_id),
		FOREIGN KEY(post_id) REFERENCES posts(id),
		FOREIGN KEY(user_id) REFERENCES users(id)
	) %s;`, id, keyText(isMySQL), id, integer, tableOptions(isMySQL))
}

func createCommentsTable(isMySQL bool) string {
	id := idType(isMySQL)
	text := textType(isMySQL)
	integer := intType(isMySQL)
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS post_comments (
		id %s PRIMARY KEY,
		post_id %s NOT NULL,
		user_id %s NOT NULL,
		user_name %s NOT NULL,
		text %s NOT NULL,
		created_at %s NOT NULL,
		FOREIGN KEY(post_id) REFERENCES posts(id),
		FOREIGN KEY(user_id) REFERENCES users(id)
	) %s;`, id, id, id, text, text, integer, tableOptions(isMySQL))
}

func createStoresTable(isMySQL bool) string {
	id := idType(isMySQL)
	text := textType(isMySQL)
	integer := intType(isMySQL)
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS stores (
		id %s PRIMARY KEY,
		owner_id %s NOT NULL,
		name %s NOT NULL,
		description %s,
		created_at %s NOT NULL,
		FOREIGN KEY(owner_id) REFERENCES users(id)
	) %s;`, id, id, text, text, integer, tableOptions(isMySQL))
}

func createProductsTable(isMySQL bool) string {
	id := idType(isMySQL)
	text := textType(isMySQL)
	real := realType(isMySQL)
	integer := intType(isMySQL)
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS products (
		id %s PRIMARY KEY,
		store_id %s NOT NULL,
		name %s NOT NULL,
		description %s,
		price %s NOT NULL,
		image_url %s,
		type %s NOT NULL,
		digital_content_url %s,
		affiliate_commission_rate %s NOT NULL DEFAULT 0,
		average_rating %s NOT NULL DEFAULT 0,
		rating_count %s NOT NULL DEFAULT 0,
		FOREIGN KEY(store_id) REFERENCES stores(id)
	) %s;`, id, id, text, text, moneyType(isMySQL), text, keyText(isMySQL), text, real, real, integer, tableOptions(isMySQL))
}

func createRatingsTable(isMySQL bool) string {
	id := idType(isMySQL)
	text := textType(isMySQL)
	integer := intType(isMySQL)
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS product_ratings (
		id %s PRIMARY KEY,
		sale_id %s NOT NULL UNIQUE,
		product_id %s NOT NULL,
		user_id %s NOT NULL,
		rating %s NOT NULL,
		comment %s,
		created_at %s NOT NULL,
		FOREIGN KEY(product_id) REFERENCES products(id)
	) %s;`, id, id, id, id, integer, text, integer, tableOptions(isMySQL))
}

func createAffiliateSalesTable(isMySQL bool) string {
	id := idType(isMySQL)
	text := textType(isMySQL)
	integer := intType(isMySQL)
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS affiliate_sales (
		id %s PRIMARY KEY,
		product_id %s NOT NULL,
		buyer_id %s NOT NULL,
		affiliate_user_id %s NOT NULL DEFAULT '',
		store_id %s NOT NULL,
		sale_amount %s NOT NULL,
		commission_earned %s NOT NULL,
		status %s NOT NULL,
		is_rated %s NOT NULL DEFAULT 0,
		shipping_json %s,
		created_at %s NOT NULL,
		FOREIGN KEY(product_id) REFERENCES products(id)
	) %s;`, id, id, id, id, id, moneyType(isMySQL), moneyType(isMySQL), keyText(isMySQL), integer, text, integer, tableOptions(isMySQL))
}

func createCartTable(isMySQL bool) string {
	id := idType(isMySQL)
	integer := intType(isMySQL)
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS cart_items (
		user_id %s NOT NULL,
		product_id %s NOT NULL,
		quantity %s NOT NULL,
		UNIQUE(user_id, product_id),
		FOREIGN KEY(product_id) REFERENCES products(id)
	) %s;`, id, id, integer, tableOptions(isMySQL))
}

func createNotificationsTable(isMySQL bool) string {
	id := idType(isMySQL)
	integer := intType(isMySQL)
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS notifications (
		id %s PRIMARY KEY,
		type %s NOT NULL,
		recipient_id %s NOT NULL,
		actor_id %s NOT NULL,
		subject_id %s,
		is_read %s NOT NULL DEFAULT 0,
		created_at %s NOT NULL,
		FOREIGN KEY(recipient_id) REFERENCES users(id)
	) %s;`, id, keyText(isMySQL), id, id, id, integer, integer, tableOptions(isMySQL))
}

func createAudioTracksTable(isMySQL bool) string {
	id := idType(isMySQL)
	text := textType(isMySQL)
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS audio_tracks (
		id %s PRIMARY KEY,
		title %s NOT NULL,
		artist %s NOT NULL,
		url %s NOT NULL
	) %s;`, id, text, text, text, tableOptions(isMySQL))
}

func createEventsTable(isMySQL bool) string {
	id := idType(isMySQL)
	text := textType(isMySQL)
	integer := intType(isMySQL)
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS events (
		id %s PRIMARY KEY,
		host_id %s NOT NULL,
		title %s NOT NULL,
		description %s,
		starts_at %s NOT NULL,
		created_at %s NOT NULL,
		FOREIGN KEY(host_id) REFERENCES users(id)
	) %s;`, id, id, text, text, integer, integer, tableOptions(isMySQL))
}

func createEventAttendeesTable(isMySQL bool) string {
	id := idType(isMySQL)
	integer := intType(isMySQL)
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS event_attendees (
		event_id %s NOT NULL,
		user_id %s NOT NULL,
		created_at %s NOT NULL,
		UNIQUE(event_id, user_id),
		FOREIGN KEY(event_id) REFERENCES events(id),
		FOREIGN KEY(user_id) REFERENCES users(id)
	) %s;`, id, id, integer, tableOptions(isMySQL))
}

func createAffiliateLinksTable(isMySQL bool) string {
	id := idType(isMySQL)
	integer := intType(isMySQL)
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS affiliate_links (
		id %s PRIMARY KEY,
		code %s NOT NULL UNIQUE,
		affiliate_user_id %s NOT NULL,
		product_id %s NOT NULL,
		created_at %s NOT NULL,
		FOREIGN KEY(affiliate_user_id) REFERENCES users(id),
		FOREIGN KEY(product_id) REFERENCES products(id)
	) %s;`, id, keyText(isMySQL), id, id, integer, tableOptions(isMySQL))
}

func createAdCampaignsTable(isMySQL bool) string {
	id := idType(isMySQL)
	text := textType(isMySQL)
	integer := intType(isMySQL)
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS ad_campaigns (
		id %s PRIMARY KEY,
		user_id %s NOT NULL,
		title %s NOT NULL,
		copy %s,
		image_url %s,
		budget %s NOT NULL,
		created_at %s NOT NULL,
		FOREIGN KEY(user_id) REFERENCES users(id)
	) %s;`, id, id, text, text, text, moneyType(isMySQL), integer, tableOptions(isMySQL))
}

func createConversationsTable(isMySQL bool) string {
	id := idType(isMySQL)
	integer := intType(isMySQL)
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS conversations (
		id %s PRIMARY KEY,
		user_a %s NOT NULL,
		user_b %s NOT NULL,
		created_at %s NOT NULL,
		updated_at %s NOT NULL,
		UNIQUE(user_a, user_b),
		FOREIGN KEY(user_a) REFERENCES users(id),
		FOREIGN KEY(user_b) REFERENCES users(id)
	) %s;`, id, id, id, integer, integer, tableOptions(isMySQL))
}

func createMessagesTable(isMySQL bool) string {
	id := idType(isMySQL)
	text := textType(isMySQL)
	integer := intType(isMySQL)
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS messages (
		id %s PRIMARY KEY,
		conversation_id %s NOT NULL,
		sender_id %s NOT NULL,
		content %s NOT NULL,
		created_at %s NOT NULL,
		FOREIGN KEY(conversation_id) REFERENCES conversations(id),
		FOREIGN KEY(sender_id) REFERENCES users(id)
	) %s;`, id, id, id, text, integer, tableOptions(isMySQL))
}

func idType(isMySQL bool) string {
	if isMySQL {
		return "VARCHAR(64)"
	}
	return "TEXT"
}

// keyText is for short strings that appear in UNIQUE constraints; MySQL cannot
// index unsized TEXT columns.
func keyText(isMySQL bool) string {
	if isMySQL {
		return "VARCHAR(255)"
	}
	return "TEXT"
}

func textType(isMySQL bool) string {
	return "TEXT"
}

// moneyType holds decimal amounts as exact strings; arithmetic happens in Go.
func moneyType(isMySQL bool) string {
	if isMySQL {
		return "VARCHAR(40)"
	}
	return "TEXT"
}

func realType(isMySQL bool) string {
	if isMySQL {
		return "DOUBLE"
	}
	return "REAL"
}

func intType(isMySQL bool) string {
	if isMySQL {
		return "BIGINT"
	}
	return "INTEGER"
}

func tableOptions(isMySQL bool) string {
	if isMySQL {
		return "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"
	}
	return ""
}
