package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"savora-storefront/internal/logger"
	"savora-storefront/internal/storage"

	"go.uber.org/zap"
)

// Identity is the minimal user projection the storefront keeps. The full
// platform user record is discarded at the client boundary.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Session is a bearer token plus the identity it belongs to.
type Session struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

// LogoutHook runs synchronously during Logout, before it returns. Address
// selection cleanup is registered here so a protected view can never render
// against a stale session.
type LogoutHook func(ctx context.Context, shopper string) error

// Store owns the persisted auth session for each shopper.
type Store struct {
	snapshots storage.Store
	hooks     []LogoutHook
	now       func() time.Time
}

func NewStore(snapshots storage.Store, hooks ...LogoutHook) *Store {
	return &Store{snapshots: snapshots, hooks: hooks, now: time.Now}
}

// Login persists the session for the shopper.
func (s *Store) Login(ctx context.Context, shopper string, sess Session) error {
	log := logger.FromCtx(ctx).With(
		zap.String("store", "Auth"),
		zap.String("method", "Login"),
	)

	if sess.Token == "" {
		return errors.New("empty token")
	}

	body, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.snapshots.Put(ctx, shopper, storage.NSSession, body); err != nil {
		log.Error("failed to persist session", zap.Error(err))
		return err
	}

	log.Info("session stored", zap.String("user_id", sess.User.ID))
	return nil
}

// Session returns the stored session, or nil when absent or expired. An
// expired session is deleted on sight.
func (s *Store) Session(ctx context.Context, shopper string) (*Session, error) {
	body, err := s.snapshots.Get(ctx, shopper, storage.NSSession)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(body, &sess); err != nil {
		logger.FromCtx(ctx).Warn("discarding corrupt session", zap.Error(err))
		_ = s.snapshots.Delete(ctx, shopper, storage.NSSession)
		return nil, nil
	}

	if TokenExpired(sess.Token, s.now()) {
		logger.FromCtx(ctx).Info("dropping expired session",
			zap.String("user_id", sess.User.ID))
		_ = s.snapshots.Delete(ctx, shopper, storage.NSSession)
		return nil, nil
	}

	return &sess, nil
}

// IsAuthenticated is derived from token presence.
func (s *Store) IsAuthenticated(ctx context.Context, shopper string) bool {
	sess, err := s.Session(ctx, shopper)
	return err == nil && sess != nil && sess.Token != ""
}

// Logout clears the persisted session and runs every registered hook before
// returning. The first failure aborts so callers never navigate away with
// session-scoped data still on disk.
func (s *Store) Logout(ctx context.Context, shopper string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("store", "Auth"),
		zap.String("method", "Logout"),
	)

	if err := s.snapshots.Delete(ctx, shopper, storage.NSSession); err != nil {
		log.Error("failed to delete session", zap.Error(err))
		return err
	}

	for _, hook := range s.hooks {
		if err := hook(ctx, shopper); err != nil {
			log.Error("logout hook failed", zap.Error(err))
			return err
		}
	}

	log.Info("logged out")
	return nil
}
