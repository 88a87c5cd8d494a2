package store

import (
	"database/sql"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
)

const postColumns = "id, user_id, type, content, image_url, video_url, audio_track_id, live_stream_url, is_pinned, scheduled_at, created_at"

// CreatePost stores a new post. The payload must match the type tag so a reel
// without video or an image post without an image never reaches the table.
func (s *Store) CreatePost(p models.Post) (*models.Post, error) {
	switch p.Type {
	case models.PostTypeText:
		if p.Content == "" {
			return nil, ErrInvalidInput
		}
	case models.PostTypeImage:
		if p.ImageURL == nil || *p.ImageURL == "" {
			return nil, ErrInvalidInput
		}
	case models.PostTypeReel:
		if p.VideoURL == nil || *p.VideoURL == "" {
			return nil, ErrInvalidInput
		}
	case models.PostTypeLive:
		if p.LiveStreamURL == nil || *p.LiveStreamURL == "" {
			return nil, ErrInvalidInput
		}
	default:
		return nil, ErrInvalidInput
	}

	if p.ID == "" {
		p.ID = newID()
	}
	if p.Timestamp == 0 {
		p.Timestamp = nowMillis()
	}
	_, err := s.db.Exec(`
		INSERT INTO posts (id, user_id, type, content, image_url, video_url, audio_track_id, live_stream_url, is_pinned, scheduled_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)
	`, p.ID, p.UserID, p.Type, p.Content, p.ImageURL, p.VideoURL, p.AudioTrackID, p.LiveStreamURL, p.ScheduledAt, p.Timestamp)
	if err != nil {
		return nil, err
	}
	return s.GetPost(p.ID)
}

// DeletePost removes a post and its engagement state. Owner only.
func (s *Store) DeletePost(postID, userID string) error {
	return s.inTx(func(tx *sql.Tx) error {
		var owner string
		err := tx.QueryRow("SELECT user_id FROM posts WHERE id = ?", postID).Scan(&owner)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}
		if owner != userID {
			return ErrNotOwner
		}
		for _, table := range []string{"post_likes", "post_saves", "post_shares", "post_reactions", "post_comments"} {
			if _, err := tx.Exec("DELETE FROM "+table+" WHERE post_id = ?", postID); err != nil {
				return err
			}
		}
		_, err = tx.Exec("DELETE FROM posts WHERE id = ?", postID)
		return err
	})
}

// GetPost loads a single post with all engagement state.
func (s *Store) GetPost(postID string) (*models.Post, error) {
	row := s.db.QueryRow("SELECT "+postColumns+" FROM posts WHERE id = ?", postID)
	p, err := scanPost(row)
	if err != nil {
		return nil, err
	}
	if err := s.loadEngagement(p); err != nil {
		return nil, err
	}
	return p, nil
}

// VisiblePosts returns the feed for a viewer, newest first. A scheduled post is
// hidden until its time arrives, except from its own author.
func (s *Store) VisiblePosts(now int64, viewerID string) ([]models.Post, error) {
	return s.postList(`
		SELECT `+postColumns+` FROM posts
		WHERE scheduled_at IS NULL OR scheduled_at <= ? OR user_id = ?
		ORDER BY created_at DESC, id DESC
	`, now, viewerID)
}

// PostsByUser returns the author's own posts, all of them, newest first.
func (s *Store) PostsByUser(userID string) ([]models.Post, error) {
	return s.postList(`
		SELECT `+postColumns+` FROM posts
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`, userID)
}

// SetPinned pins the post and unpins every other post by the same author in one
// statement, so at most one pin per author survives any call order.
func (s *Store) SetPinned(postID, userID string) error {
	return s.inTx(func(tx *sql.Tx) error {
		var owner string
		err := tx.QueryRow("SELECT user_id FROM posts WHERE id = ?", postID).Scan(&owner)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}
		if owner != userID {
			return ErrNotOwner
		}
		_, err = tx.Exec("UPDATE posts SET is_pinned = (id = ?) WHERE user_id = ?", postID, userID)
		return err
	})
}

// Unpin clears the pin flag. With a non-empty userID the post must belong to
// that user, otherwise nothing changes.
func (s *Store) Unpin(postID, userID string) error {
	if userID == "" {
		_, err := s.db.Exec("UPDATE posts SET is_pinned = 0 WHERE id = ?", postID)
		return err
	}
	_, err := s.db.Exec("UPDATE posts SET is_pinned = 0 WHERE id = ? AND user_id = ?", postID, userID)
	return err
}

// ToggleLike flips the user's like on the post. The add transition notifies the
// post owner; removal is silent.
func (s *Store) ToggleLike(postID, userID string) error {
	return s.toggleEngagement("post_likes", postID, userID, models.NotificationLike)
}

// ToggleSave flips the user's save. Saves never notify.
func (s *Store) ToggleSave(postID, userID string) error {
	return s.toggleEngagement("post_saves", postID, userID, "")
}

// RecordShare records the user as having shared the post, once. Repeat calls
// leave exactly one record.
func (s *Store) RecordShare(postID, userID string) error {
	return s.inTx(func(tx *sql.Tx) error {
		var owner string
		err := tx.QueryRow("SELECT user_id FROM posts WHERE id = ?", postID).Scan(&owner)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}
		var exists bool
		if err := tx.QueryRow(
			"SELECT EXISTS(SELECT 1 FROM post_shares WHERE post_id = ? AND user_id = ?)",
			postID, userID).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return nil
		}
		_, err = tx.Exec("INSERT INTO post_shares (post_id, user_id, created_at) VALUES (?, ?, ?)",
			postID, userID, nowMillis())
		return err
	})
}

func (s *Store) toggleEngagement(table, postID, userID, notifyType string) error {
	return s.inTx(func(tx *sql.Tx) error {
		var owner string
		err := tx.QueryRow("SELECT user_id FROM posts WHERE id = ?", postID).Scan(&owner)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}

		var exists bool
		if err := tx.QueryRow(
			"SELECT EXISTS(SELECT 1 FROM "+table+" WHERE post_id = ? AND user_id = ?)",
			postID, userID).Scan(&exists); err != nil {
			return err
		}

		if exists {
			_, err = tx.Exec("DELETE FROM "+table+" WHERE post_id = ? AND user_id = ?", postID, userID)
			return err
		}

		if _, err = tx.Exec("INSERT INTO "+table+" (post_id, user_id, created_at) VALUES (?, ?, ?)",
			postID, userID, nowMillis()); err != nil {
			return err
		}
		if notifyType != "" {
			return s.notify(tx, notifyType, owner, userID, &postID)
		}
		return nil
	})
}

// ToggleReaction flips the user inside the emoji's reactor set. The emoji key
// disappears from the map when its set empties, which the row model gives for
// free. The add transition notifies the owner.
func (s *Store) ToggleReaction(postID, userID, emoji string) error {
	if emoji == "" {
		return ErrInvalidInput
	}
	return s.inTx(func(tx *sql.Tx) error {
		var owner string
		err := tx.QueryRow("SELECT user_id FROM posts WHERE id = ?", postID).Scan(&owner)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}

		var exists bool
		if err := tx.QueryRow(
			"SELECT EXISTS(SELECT 1 FROM post_reactions WHERE post_id = ? AND emoji = ? AND user_id = ?)",
			postID, emoji, userID).Scan(&exists); err != nil {
			return err
		}

		if exists {
			_, err = tx.Exec("DELETE FROM post_reactions WHERE post_id = ? AND emoji = ? AND user_id = ?",
				postID, emoji, userID)
			return err
		}

		if _, err = tx.Exec(
			"INSERT INTO post_reactions (post_id, emoji, user_id, created_at) VALUES (?, ?, ?, ?)",
			postID, emoji, userID, nowMillis()); err != nil {
			return err
		}
		return s.notify(tx, models.NotificationReaction, owner, userID, &postID)
	})
}

// AddComment appends to the post's comment list and notifies the owner.
func (s *Store) AddComment(postID string, c models.Comment) error {
	if c.ID == "" {
		c.ID = newID()
	}
	if c.Timestamp == 0 {
		c.Timestamp = nowMillis()
	}
	return s.inTx(func(tx *sql.Tx) error {
		var owner string
		err := tx.QueryRow("SELECT user_id FROM posts WHERE id = ?", postID).Scan(&owner)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO post_comments (id, post_id, user_id, user_name, text, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, c.ID, postID, c.UserID, c.UserName, c.Text, c.Timestamp); err != nil {
			return err
		}
		return s.notify(tx, models.NotificationComment, owner, c.UserID, &postID)
	})
}

// AddAudioTrack registers a reel soundtrack. Re-adding the same id is a no-op.
func (s *Store) AddAudioTrack(t models.AudioTrack) error {
	if t.ID == "" {
		t.ID = newID()
	}
	var exists int
	err := s.db.QueryRow("SELECT COUNT(*) FROM audio_tracks WHERE id = ?", t.ID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return nil
	}
	_, err = s.db.Exec("INSERT INTO audio_tracks (id, title, artist, url) VALUES (?, ?, ?, ?)",
		t.ID, t.Title, t.Artist, t.URL)
	return err
}

// AudioTracks lists the seeded reel soundtrack catalog.
func (s *Store) AudioTracks() ([]models.AudioTrack, error) {
	rows, err := s.db.Query("SELECT id, title, artist, url FROM audio_tracks ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.AudioTrack
	for rows.Next() {
		var t models.AudioTrack
		if err := rows.Scan(&t.ID, &t.Title, &t.Artist, &t.URL); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// FindAudioTrack resolves a track id referenced from a reel payload.
func (s *Store) FindAudioTrack(id string) (*models.AudioTrack, error) {
	var t models.AudioTrack
	err := s.db.QueryRow("SELECT id, title, artist, url FROM audio_tracks WHERE id = ?", id).
		Scan(&t.ID, &t.Title, &t.Artist, &t.URL)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) postList(query string, args ...any) ([]models.Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}

	var list []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range list {
		if err := s.loadEngagement(&list[i]); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (s *Store) loadEngagement(p *models.Post) error {
	var err error
	if p.Likes, err = s.idList("SELECT user_id FROM post_likes WHERE post_id = ? ORDER BY created_at ASC", p.ID); err != nil {
		return err
	}
	if p.Saves, err = s.idList("SELECT user_id FROM post_saves WHERE post_id = ? ORDER BY created_at ASC", p.ID); err != nil {
		return err
	}
	if p.Shares, err = s.idList("SELECT user_id FROM post_shares WHERE post_id = ? ORDER BY created_at ASC", p.ID); err != nil {
		return err
	}

	p.Reactions = map[string][]string{}
	rows, err := s.db.Query("SELECT emoji, user_id FROM post_reactions WHERE post_id = ? ORDER BY created_at ASC", p.ID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var emoji, userID string
		if err := rows.Scan(&emoji, &userID); err != nil {
			rows.Close()
			return err
		}
		p.Reactions[emoji] = append(p.Reactions[emoji], userID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	p.Comments = []models.Comment{}
	rows, err = s.db.Query(`
		SELECT id, user_id, user_name, text, created_at
		FROM post_comments WHERE post_id = ? ORDER BY created_at ASC, id ASC
	`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.UserName, &c.Text, &c.Timestamp); err != nil {
			return err
		}
		p.Comments = append(p.Comments, c)
	}
	return rows.Err()
}

func scanPost(row rowScanner) (*models.Post, error) {
	var p models.Post
	var pinned int
	err := row.Scan(&p.ID, &p.UserID, &p.Type, &p.Content, &p.ImageURL, &p.VideoURL,
		&p.AudioTrackID, &p.LiveStreamURL, &pinned, &p.ScheduledAt, &p.Timestamp)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.IsPinned = pinned != 0
	p.Likes = []string{}
	p.Saves = []string{}
	p.Shares = []string{}
	return &p, nil
}
