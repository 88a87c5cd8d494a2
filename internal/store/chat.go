package store

import (
	"database/sql"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
)

// GetOrCreateConversation finds the conversation between two users, creating
// it on first contact. The pair is stored ordered so (a,b) and (b,a) resolve
// to the same row.
func (s *Store) GetOrCreateConversation(userA, userB string) (*models.Conversation, error) {
	if userA == userB || userA == "" || userB == "" {
		return nil, ErrInvalidInput
	}
	if userA > userB {
		userA, userB = userB, userA
	}

	var conv models.Conversation
	err := s.db.QueryRow(`
		SELECT id, user_a, user_b, created_at, updated_at
		FROM conversations WHERE user_a = ? AND user_b = ?
	`, userA, userB).Scan(&conv.ID, &conv.UserA, &conv.UserB, &conv.CreatedAt, &conv.UpdatedAt)
	if err == nil {
		return &conv, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	now := nowMillis()
	conv = models.Conversation{ID: newID(), UserA: userA, UserB: userB, CreatedAt: now, UpdatedAt: now}
	if _, err := s.db.Exec(`
		INSERT INTO conversations (id, user_a, user_b, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, conv.ID, conv.UserA, conv.UserB, conv.CreatedAt, conv.UpdatedAt); err != nil {
		return nil, err
	}
	return &conv, nil
}

// ConversationsFor lists the user's conversations, most recently active first.
func (s *Store) ConversationsFor(userID string) ([]models.Conversation, error) {
	rows, err := s.db.Query(`
		SELECT id, user_a, user_b, created_at, updated_at
		FROM conversations WHERE user_a = ? OR user_b = ?
		ORDER BY updated_at DESC
	`, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Conversation
	for rows.Next() {
		var conv models.Conversation
		if err := rows.Scan(&conv.ID, &conv.UserA, &conv.UserB, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, conv)
	}
	return list, rows.Err()
}

// SendMessage appends to a conversation and bumps its activity time.
func (s *Store) SendMessage(conversationID, senderID, content string) (*models.Message, error) {
	if content == "" {
		return nil, ErrInvalidInput
	}
	msg := models.Message{
		ID:             newID(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      nowMillis(),
	}
	err := s.inTx(func(tx *sql.Tx) error {
		var one int
		if err := tx.QueryRow("SELECT 1 FROM conversations WHERE id = ?", conversationID).Scan(&one); err == sql.ErrNoRows {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO messages (id, conversation_id, sender_id, content, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, msg.ID, msg.ConversationID, msg.SenderID, msg.Content, msg.CreatedAt); err != nil {
			return err
		}
		_, err := tx.Exec("UPDATE conversations SET updated_at = ? WHERE id = ?", msg.CreatedAt, conversationID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Messages returns a conversation's log, oldest first.
func (s *Store) Messages(conversationID string) ([]models.Message, error) {
	rows, err := s.db.Query(`
		SELECT id, conversation_id, sender_id, content, created_at
		FROM messages WHERE conversation_id = ?
		ORDER BY created_at ASC, id ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, msg)
	}
	return list, rows.Err()
}
