package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

func TestSessionLifecycle(t *testing.T) {
	c := context.Background()
	manager := NewManager(NewMemoryStore(), 30*time.Minute)
	userId := uuid.New()

	session, err := manager.Login(c, userId, "signed-token")
	assert.NoError(t, err)
	assert.Equal(t, userId, session.UserID)
	assert.Equal(t, "signed-token", session.Token)

	restored, err := manager.Init(c, session.ID)
	assert.NoError(t, err)
	assert.Equal(t, session.ID, restored.ID)
	assert.Equal(t, session.Token, restored.Token)

	err = manager.Logout(c, session.ID)
	assert.NoError(t, err)

	_, err = manager.Init(c, session.ID)
	assert.ErrorIs(t, err, inErrors.ErrSessionNotFound)
}

func TestSessionInitUnknownId(t *testing.T) {
	c := context.Background()
	manager := NewManager(NewMemoryStore(), 30*time.Minute)

	_, err := manager.Init(c, uuid.New())
	assert.ErrorIs(t, err, inErrors.ErrSessionNotFound)
}

func TestSessionInitExpired(t *testing.T) {
	c := context.Background()
	store := NewMemoryStore()
	manager := NewManager(store, -time.Minute)

	session, err := manager.Login(c, uuid.New(), "signed-token")
	assert.NoError(t, err)

	_, err = manager.Init(c, session.ID)
	assert.ErrorIs(t, err, inErrors.ErrSessionNotFound)

	// the expired record is dropped from the backend too
	_, err = store.Find(c, session.ID)
	assert.ErrorIs(t, err, inErrors.ErrSessionNotFound)
}
