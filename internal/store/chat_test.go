package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateConversationIsSymmetric(t *testing.T) {
	s := newTestStore(t)
	a := seedUser(t, s, "ana", "0")
	b := seedUser(t, s, "ben", "0")

	first, err := s.GetOrCreateConversation(a, b)
	require.NoError(t, err)
	second, err := s.GetOrCreateConversation(b, a)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "pair order must not matter")
}

func TestSendMessageBumpsConversation(t *testing.T) {
	s := newTestStore(t)
	a := seedUser(t, s, "ana", "0")
	b := seedUser(t, s, "ben", "0")
	c := seedUser(t, s, "cat", "0")

	withB, err := s.GetOrCreateConversation(a, b)
	require.NoError(t, err)
	withC, err := s.GetOrCreateConversation(a, c)
	require.NoError(t, err)

	_, err = s.DB().Exec("UPDATE conversations SET updated_at = 1 WHERE id = ?", withB.ID)
	require.NoError(t, err)
	_, err = s.DB().Exec("UPDATE conversations SET updated_at = 2 WHERE id = ?", withC.ID)
	require.NoError(t, err)

	msg, err := s.SendMessage(withB.ID, a, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Content)

	convs, err := s.ConversationsFor(a)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, withB.ID, convs[0].ID, "last written conversation sorts first")

	msgs, err := s.Messages(withB.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, a, msgs[0].SenderID)
}

func TestSendMessageUnknownConversation(t *testing.T) {
	s := newTestStore(t)
	a := seedUser(t, s, "ana", "0")

	_, err := s.SendMessage("ghost", a, "hi")
	assert.ErrorIs(t, err, ErrNotFound)
}
