package store

import (
	"database/sql"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
)

// CreateEvent schedules a live event hosted by a user.
func (s *Store) CreateEvent(e models.Event) (*models.Event, error) {
	if e.Title == "" || e.StartsAt == 0 {
		return nil, ErrInvalidInput
	}
	if _, err := s.FindUser(e.HostID); err != nil {
		return nil, err
	}
	if e.ID == "" {
		e.ID = newID()
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = nowMillis()
	}
	_, err := s.db.Exec(`
		INSERT INTO events (id, host_id, title, description, starts_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.HostID, e.Title, e.Description, e.StartsAt, e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Attendees = []string{}
	return &e, nil
}

// Events lists every event, soonest first, with attendee sets.
func (s *Store) Events() ([]models.Event, error) {
	rows, err := s.db.Query(`
		SELECT id, host_id, title, description, starts_at, created_at
		FROM events ORDER BY starts_at ASC
	`)
	if err != nil {
		return nil, err
	}

	var list []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.HostID, &e.Title, &e.Description, &e.StartsAt, &e.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range list {
		if list[i].Attendees, err = s.idList(
			"SELECT user_id FROM event_attendees WHERE event_id = ? ORDER BY created_at ASC", list[i].ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// ToggleJoinEvent flips the user's attendance. Missing events are a no-op.
func (s *Store) ToggleJoinEvent(eventID, userID string) error {
	return s.inTx(func(tx *sql.Tx) error {
		var one int
		if err := tx.QueryRow("SELECT 1 FROM events WHERE id = ?", eventID).Scan(&one); err == sql.ErrNoRows {
			return nil
		} else if err != nil {
			return err
		}

		var exists bool
		if err := tx.QueryRow(
			"SELECT EXISTS(SELECT 1 FROM event_attendees WHERE event_id = ? AND user_id = ?)",
			eventID, userID).Scan(&exists); err != nil {
			return err
		}
		if exists {
			_, err := tx.Exec("DELETE FROM event_attendees WHERE event_id = ? AND user_id = ?", eventID, userID)
			return err
		}
		_, err := tx.Exec("INSERT INTO event_attendees (event_id, user_id, created_at) VALUES (?, ?, ?)",
			eventID, userID, nowMillis())
		return err
	})
}
