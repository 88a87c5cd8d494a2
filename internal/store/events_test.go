package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfaSophia29/CyBerPhone1.0/internal/models"
)

func TestToggleJoinEvent(t *testing.T) {
	s := newTestStore(t)
	host := seedUser(t, s, "host", "0")
	guest := seedUser(t, s, "guest", "0")

	e, err := s.CreateEvent(models.Event{
		HostID:   host,
		Title:    "Open Mic",
		StartsAt: time.Now().Add(time.Hour).UnixMilli(),
	})
	require.NoError(t, err)

	require.NoError(t, s.ToggleJoinEvent(e.ID, guest))
	events, err := s.Events()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, []string{guest}, events[0].Attendees)

	require.NoError(t, s.ToggleJoinEvent(e.ID, guest))
	events, err = s.Events()
	require.NoError(t, err)
	assert.Empty(t, events[0].Attendees)

	// Missing events are a no-op.
	require.NoError(t, s.ToggleJoinEvent("ghost", guest))
}

func TestCreateEventValidation(t *testing.T) {
	s := newTestStore(t)
	host := seedUser(t, s, "host", "0")

	_, err := s.CreateEvent(models.Event{HostID: host, StartsAt: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.CreateEvent(models.Event{HostID: "ghost", Title: "X", StartsAt: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}
