package store

import (
	"database/sql"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
)

// ToggleFollow flips targetID's membership in the follower's followed set.
// Only the add transition notifies the target. Missing users are a no-op so a
// stale id from the UI cannot corrupt the graph.
func (s *Store) ToggleFollow(followerID, targetID string) error {
	if followerID == targetID {
		return nil
	}
	return s.inTx(func(tx *sql.Tx) error {
		var one int
		if err := tx.QueryRow("SELECT 1 FROM users WHERE id = ?", followerID).Scan(&one); err == sql.ErrNoRows {
			return nil
		} else if err != nil {
			return err
		}
		if err := tx.QueryRow("SELECT 1 FROM users WHERE id = ?", targetID).Scan(&one); err == sql.ErrNoRows {
			return nil
		} else if err != nil {
			return err
		}

		var exists bool
		err := tx.QueryRow(
			"SELECT EXISTS(SELECT 1 FROM user_follows WHERE follower_id = ? AND followee_id = ?)",
			followerID, targetID).Scan(&exists)
		if err != nil {
			return err
		}

		if exists {
			_, err = tx.Exec("DELETE FROM user_follows WHERE follower_id = ? AND followee_id = ?",
				followerID, targetID)
			return err
		}

		if _, err = tx.Exec(
			"INSERT INTO user_follows (follower_id, followee_id, created_at) VALUES (?, ?, ?)",
			followerID, targetID, nowMillis()); err != nil {
			return err
		}
		return s.notify(tx, models.NotificationNewFollower, targetID, followerID, nil)
	})
}

// Following returns the ids the user follows, oldest first.
func (s *Store) Following(userID string) ([]string, error) {
	return s.idList(`
		SELECT followee_id FROM user_follows
		WHERE follower_id = ? ORDER BY created_at ASC`, userID)
}

// Followers returns the ids following the user.
func (s *Store) Followers(userID string) ([]string, error) {
	return s.idList(`
		SELECT follower_id FROM user_follows
		WHERE followee_id = ? ORDER BY created_at ASC`, userID)
}

// IsFollowing reports whether follower currently follows target.
func (s *Store) IsFollowing(followerID, targetID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM user_follows WHERE follower_id = ? AND followee_id = ?)",
		followerID, targetID).Scan(&exists)
	return exists, err
}

func (s *Store) idList(query string, args ...any) ([]string, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
