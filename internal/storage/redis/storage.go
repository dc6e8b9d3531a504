package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rfallows/campgrounds/internal/model"
	"github.com/rfallows/campgrounds/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Identity operations

func (s *Storage) SaveIdentity(ctx context.Context, identity *model.Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, identityKey(identity.ID), data, 0).Err()
}

func (s *Storage) GetIdentity(ctx context.Context, id model.IdentityID) (*model.Identity, error) {
	data, err := s.client.Get(ctx, identityKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrIdentityNotFound
		}
		return nil, err
	}

	var identity model.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Credential operations

func (s *Storage) SaveCredential(ctx context.Context, cred *model.Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, credentialKey(cred.IdentityID), data, 0)
	pipe.Set(ctx, usernameIndexKey(cred.Username), string(cred.IdentityID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetCredentialByUsername(ctx context.Context, username string) (*model.Credential, error) {
	// Look up identity ID from username index
	identityIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrIdentityNotFound
		}
		return nil, err
	}

	data, err := s.client.Get(ctx, credentialKey(model.IdentityID(identityIDStr))).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrIdentityNotFound
		}
		return nil, err
	}

	var cred model.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

// Campground operations

func (s *Storage) SaveCampground(ctx context.Context, cg *model.Campground) error {
	data, err := json.Marshal(cg)
	if err != nil {
		return err
	}

	key := campgroundKey(cg.ID)

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, campgroundIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetCampground(ctx context.Context, id model.CampgroundID) (*model.Campground, error) {
	data, err := s.client.Get(ctx, campgroundKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCampgroundNotFound
		}
		return nil, err
	}

	var cg model.Campground
	if err := json.Unmarshal(data, &cg); err != nil {
		return nil, err
	}
	return &cg, nil
}

func (s *Storage) ListCampgrounds(ctx context.Context) ([]*model.Campground, error) {
	keys, err := s.client.SMembers(ctx, campgroundIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.Campground{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	list := make([]*model.Campground, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // index may briefly lag a delete
		}
		var cg model.Campground
		if err := json.Unmarshal([]byte(val.(string)), &cg); err != nil {
			continue // skip invalid data
		}
		list = append(list, &cg)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func (s *Storage) DeleteCampground(ctx context.Context, id model.CampgroundID) error {
	key := campgroundKey(id)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, campgroundIndexKey(), key)
	_, err := pipe.Exec(ctx)
	return err
}

// Review operations

func (s *Storage) SaveReview(ctx context.Context, review *model.Review) error {
	data, err := json.Marshal(review)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, reviewKey(review.ID), data, 0).Err()
}

func (s *Storage) GetReview(ctx context.Context, id model.ReviewID) (*model.Review, error) {
	data, err := s.client.Get(ctx, reviewKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrReviewNotFound
		}
		return nil, err
	}

	var review model.Review
	if err := json.Unmarshal(data, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *Storage) DeleteReview(ctx context.Context, id model.ReviewID) error {
	return s.client.Del(ctx, reviewKey(id)).Err()
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	// TTL acts as a safety net; the session service enforces the
	// authoritative expiry on the record itself
	ttl := s.cfg.SessionTTL
	if remaining := time.Until(session.ExpiresAt); remaining > 0 && remaining < ttl {
		ttl = remaining
	}

	return s.client.Set(ctx, sessionKey(session.Token), data, ttl).Err()
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}
