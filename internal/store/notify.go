package store

import (
	"database/sql"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
)

// notify appends an event to the feed on the caller's tx. Events where the
// recipient is the actor are dropped: nobody is told about their own actions.
func (s *Store) notify(tx execer, typ, recipientID, actorID string, subjectID *string) error {
	if recipientID == actorID || recipientID == "" {
		return nil
	}
	_, err := tx.Exec(`
		INSERT INTO notifications (id, type, recipient_id, actor_id, subject_id, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)
	`, newID(), typ, recipientID, actorID, subjectID, nowMillis())
	return err
}

// NotificationsFor returns the recipient's feed, newest first.
func (s *Store) NotificationsFor(recipientID string) ([]models.Notification, error) {
	rows, err := s.db.Query(`
		SELECT id, type, recipient_id, actor_id, subject_id, is_read, created_at
		FROM notifications
		WHERE recipient_id = ?
		ORDER BY created_at DESC, id DESC
	`, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Notification
	for rows.Next() {
		var n models.Notification
		var subject sql.NullString
		var isRead int
		if err := rows.Scan(&n.ID, &n.Type, &n.RecipientID, &n.ActorID, &subject, &isRead, &n.Timestamp); err != nil {
			return nil, err
		}
		if subject.Valid {
			n.SubjectID = &subject.String
		}
		n.IsRead = isRead != 0
		list = append(list, n)
	}
	return list, rows.Err()
}

// MarkAllRead flips every unread notification for the recipient.
func (s *Store) MarkAllRead(recipientID string) error {
	_, err := s.db.Exec("UPDATE notifications SET is_read = 1 WHERE recipient_id = ?", recipientID)
	return err
}
