package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
)

// ErrNotFound is returned when a session has no value under the requested key.
var ErrNotFound = errors.New("session value not found")

// Store persists session state in Redis. The credential and identity snapshot
// live in two separate slots; registration and password-reset state are
// transient side keys cleared when their flow ends.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func tokenKey(sid string) string        { return fmt.Sprintf("sess:%s:token", sid) }
func identityKey(sid string) string     { return fmt.Sprintf("sess:%s:user", sid) }
func registrationKey(sid string) string { return fmt.Sprintf("sess:%s:registration", sid) }
func resetEmailKey(sid string) string   { return fmt.Sprintf("sess:%s:reset_email", sid) }

// SaveCredentials writes both slots in one pipeline so a reader never sees a
// credential without its identity.
func (s *Store) SaveCredentials(ctx context.Context, sid, token string, identity domain.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, tokenKey(sid), token, s.ttl)
	pipe.Set(ctx, identityKey(sid), raw, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// LoadCredentials reads both slots. ErrNotFound means either slot is missing.
// The identity comes back raw; the manager decides what a parse failure means.
func (s *Store) LoadCredentials(ctx context.Context, sid string) (token string, rawIdentity []byte, err error) {
	token, err = s.client.Get(ctx, tokenKey(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil, ErrNotFound
	}
	if err != nil {
		return "", nil, fmt.Errorf("load credential: %w", err)
	}
	rawIdentity, err = s.client.Get(ctx, identityKey(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", nil, ErrNotFound
	}
	if err != nil {
		return "", nil, fmt.Errorf("load identity: %w", err)
	}
	return token, rawIdentity, nil
}

// ClearCredentials removes both slots in a single DEL so callers never
// observe one without the other.
func (s *Store) ClearCredentials(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, tokenKey(sid), identityKey(sid)).Err(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// Touch extends the slots' lifetime. Restoring a session renews it, giving
// active users a sliding expiry without an explicit refresh call.
func (s *Store) Touch(ctx context.Context, sid string) {
	pipe := s.client.Pipeline()
	pipe.Expire(ctx, tokenKey(sid), s.ttl)
	pipe.Expire(ctx, identityKey(sid), s.ttl)
	_, _ = pipe.Exec(ctx)
}

func (s *Store) SaveRegistration(ctx context.Context, sid string, reg domain.PendingRegistration) error {
	raw, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("marshal registration: %w", err)
	}
	if err := s.client.Set(ctx, registrationKey(sid), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save registration: %w", err)
	}
	return nil
}

func (s *Store) LoadRegistration(ctx context.Context, sid string) (*domain.PendingRegistration, error) {
	raw, err := s.client.Get(ctx, registrationKey(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load registration: %w", err)
	}
	var reg domain.PendingRegistration
	if err := json.Unmarshal(raw, &reg); err != nil {
		return nil, fmt.Errorf("decode registration: %w", err)
	}
	return &reg, nil
}

func (s *Store) ClearRegistration(ctx context.Context, sid string) error {
	return s.client.Del(ctx, registrationKey(sid)).Err()
}

func (s *Store) SaveResetEmail(ctx context.Context, sid, email string) error {
	if err := s.client.Set(ctx, resetEmailKey(sid), email, s.ttl).Err(); err != nil {
		return fmt.Errorf("save reset email: %w", err)
	}
	return nil
}

func (s *Store) LoadResetEmail(ctx context.Context, sid string) (string, error) {
	email, err := s.client.Get(ctx, resetEmailKey(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load reset email: %w", err)
	}
	return email, nil
}

func (s *Store) ClearResetEmail(ctx context.Context, sid string) error {
	return s.client.Del(ctx, resetEmailKey(sid)).Err()
}

// ClearAll removes every key belonging to the session.
func (s *Store) ClearAll(ctx context.Context, sid string) error {
	return s.client.Del(ctx,
		tokenKey(sid), identityKey(sid), registrationKey(sid), resetEmailKey(sid),
	).Err()
}
