package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
)

// Session is the persisted record of one authenticated user: the signed token
// plus its lifetime. There is exactly one live token per session id.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store is the injectable persistence backend for sessions: redis in
// production, in-memory in tests.
type Store interface {
	Save(c context.Context, s Session, ttl time.Duration) error
	Find(c context.Context, id uuid.UUID) (Session, error)
	Delete(c context.Context, id uuid.UUID) error
}

type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Login creates and persists a session for the authenticated user.
func (m *Manager) Login(c context.Context, userID uuid.UUID, token string) (Session, error) {
	c, span := otel.Tracer.Start(c, "SessionManager Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SessionManager Login").
		Str(log.KeyUserID, userID.String()).
		Logger()

	now := time.Now()
	session := Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	logger = logger.With().
		Str(log.KeyProcess, "saving session").
		Str(log.KeySessionID, session.ID.String()).
		Logger()
	logger.Info().Msg("saving session")
	err := m.store.Save(c, session, m.ttl)
	if err != nil {
		err = fmt.Errorf("failed saving session with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Session{}, err
	}
	logger.Info().Msg("saved session")

	return session, nil
}

// Init restores a previously persisted session, rejecting expired ones.
func (m *Manager) Init(c context.Context, id uuid.UUID) (Session, error) {
	c, span := otel.Tracer.Start(c, "SessionManager Init")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SessionManager Init").
		Str(log.KeySessionID, id.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding session").Logger()
	logger.Info().Msg("finding session")
	session, err := m.store.Find(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding session with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Session{}, err
	}
	logger.Info().Msg("found session")

	if time.Now().After(session.ExpiresAt) {
		logger = logger.With().Str(log.KeyProcess, "deleting expired session").Logger()
		logger.Info().Msg("deleting expired session")
		if err := m.store.Delete(c, id); err != nil {
			err = fmt.Errorf("failed deleting expired session with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return Session{}, err
		}
		logger.Info().Msg("deleted expired session")
		return Session{}, inErrors.ErrSessionNotFound
	}

	return session, nil
}

// Logout discards the session; subsequent Init calls fail.
func (m *Manager) Logout(c context.Context, id uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "SessionManager Logout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SessionManager Logout").
		Str(log.KeySessionID, id.String()).
		Str(log.KeyProcess, "deleting session").
		Logger()

	logger.Info().Msg("deleting session")
	err := m.store.Delete(c, id)
	if err != nil {
		err = fmt.Errorf("failed deleting session with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted session")

	return nil
}
