package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rfallows/campgrounds/internal/dependencies/clock"
	"github.com/rfallows/campgrounds/internal/model"
	"github.com/rfallows/campgrounds/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service handles identities, credential verification and server-side
// sessions. Sessions back the request identity resolution: a missing or
// expired token is never an error, just an anonymous outcome.
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	sessionDuration time.Duration
	touchThreshold  time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	// SessionDuration is the sliding session lifetime
	SessionDuration time.Duration
	// TouchThreshold is how stale a session's last touch may be before a
	// resolve re-extends the expiry
	TouchThreshold time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 7 * 24 * time.Hour,
		TouchThreshold:  24 * time.Hour,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	if cfg.TouchThreshold == 0 {
		cfg.TouchThreshold = DefaultConfig().TouchThreshold
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		sessionDuration: cfg.SessionDuration,
		touchThreshold:  cfg.TouchThreshold,
	}
}

// Register creates an identity with the given credentials and binds a
// fresh session to it
func (s *Service) Register(ctx context.Context, username, password string) (*model.Identity, *model.Session, error) {
	_, err := s.storage.GetCredentialByUsername(ctx, username)
	if err == nil {
		return nil, nil, model.ErrUsernameExists
	}
	if !errors.Is(err, model.ErrIdentityNotFound) {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	now := s.clock.Now()
	identity := &model.Identity{
		ID:        model.IdentityID(generateID("u_")),
		Username:  username,
		CreatedAt: now,
	}
	cred := &model.Credential{
		IdentityID:   identity.ID,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveIdentity(ctx, identity); err != nil {
		return nil, nil, err
	}
	if err := s.storage.SaveCredential(ctx, cred); err != nil {
		return nil, nil, err
	}

	session, err := s.createSession(ctx, identity.ID)
	if err != nil {
		return nil, nil, err
	}
	return identity, session, nil
}

// Login verifies credentials and creates a session. Unknown username and
// wrong password fail identically.
func (s *Service) Login(ctx context.Context, username, password string) (*model.Identity, *model.Session, error) {
	cred, err := s.storage.GetCredentialByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrIdentityNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	identity, err := s.storage.GetIdentity(ctx, cred.IdentityID)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.createSession(ctx, identity.ID)
	if err != nil {
		return nil, nil, err
	}
	return identity, session, nil
}

// StartSession creates a fresh anonymous session
func (s *Service) StartSession(ctx context.Context) (*model.Session, error) {
	return s.createSession(ctx, "")
}

// Resolve looks up a session token and the identity bound to it.
// A missing, unknown or expired token yields (nil, nil, nil): anonymous
// is a valid terminal state, not an error. Sessions touched more than
// the threshold ago have their expiry re-extended.
func (s *Service) Resolve(ctx context.Context, token string) (*model.Session, *model.Identity, error) {
	if token == "" {
		return nil, nil, nil
	}

	session, err := s.storage.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	now := s.clock.Now()
	if now.After(session.ExpiresAt) {
		_ = s.storage.DeleteSession(ctx, token)
		return nil, nil, nil
	}

	if now.Sub(session.TouchedAt) > s.touchThreshold {
		session.TouchedAt = now
		session.ExpiresAt = now.Add(s.sessionDuration)
		if err := s.storage.SaveSession(ctx, session); err != nil {
			return nil, nil, err
		}
	}

	if session.Anonymous() {
		return session, nil, nil
	}

	identity, err := s.storage.GetIdentity(ctx, session.IdentityID)
	if err != nil {
		if errors.Is(err, model.ErrIdentityNotFound) {
			// identity deleted out from under the session
			return session, nil, nil
		}
		return nil, nil, err
	}
	return session, identity, nil
}

// Identity looks up an identity by ID
func (s *Service) Identity(ctx context.Context, id model.IdentityID) (*model.Identity, error) {
	return s.storage.GetIdentity(ctx, id)
}

// Destroy removes a session
func (s *Service) Destroy(ctx context.Context, token string) error {
	return s.storage.DeleteSession(ctx, token)
}

// SetFlash queues a one-shot message on the session
func (s *Service) SetFlash(ctx context.Context, token string, kind model.FlashKind, text string) error {
	session, err := s.storage.GetSession(ctx, token)
	if err != nil {
		return err
	}
	session.Flash = &model.Flash{Kind: kind, Text: text}
	return s.storage.SaveSession(ctx, session)
}

// PopFlash reads and clears the session's flash message. Returns nil
// when nothing is queued.
func (s *Service) PopFlash(ctx context.Context, token string) (*model.Flash, error) {
	session, err := s.storage.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if session.Flash == nil {
		return nil, nil
	}

	flash := session.Flash
	session.Flash = nil
	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return flash, nil
}

// createSession creates and persists a new session
func (s *Service) createSession(ctx context.Context, identityID model.IdentityID) (*model.Session, error) {
	now := s.clock.Now()
	session := &model.Session{
		Token:      generateID("sess_"),
		IdentityID: identityID,
		CreatedAt:  now,
		TouchedAt:  now,
		ExpiresAt:  now.Add(s.sessionDuration),
	}

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// generateID generates a random ID with a prefix
func generateID(prefix string) string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}
