// Package redisstore provides a Redis-backed implementation of the
// storage.Store interface. Records are stored as JSON documents.
//
// Key layout:
//
//	calc:{id}              JSON FinanceCalculation
//	user:{userID}:calcs    sorted set of calculation IDs scored by creation time
//	share:{token}          calculation ID
//	user:{id}              JSON User
//	user-email:{email}     user ID
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mmynk/boatfinance/internal/models"
	"github.com/mmynk/boatfinance/internal/storage"
)

// Ensure RedisStore implements storage.Store
var _ storage.Store = (*RedisStore)(nil)

// maxShareAttempts bounds optimistic-lock retries in ShareCalculation.
const maxShareAttempts = 5

// RedisStore implements storage.Store on top of Redis.
type RedisStore struct {
	client *redis.Client
}

// New connects to the Redis server at addr and verifies the connection.
func New(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func calcKey(id string) string          { return "calc:" + id }
func userCalcsKey(userID string) string { return "user:" + userID + ":calcs" }
func shareKey(token string) string      { return "share:" + token }
func userKey(id string) string          { return "user:" + id }
func userEmailKey(email string) string  { return "user-email:" + email }

// CreateCalculation stores the calculation document and indexes it under its owner.
func (s *RedisStore) CreateCalculation(ctx context.Context, calc *models.FinanceCalculation) error {
	if calc.ID == "" {
		calc.ID = uuid.New().String()
	}
	if calc.CreatedAt.IsZero() {
		calc.CreatedAt = time.Now().UTC()
	}

	doc, err := json.Marshal(calc)
	if err != nil {
		return fmt.Errorf("failed to encode calculation: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, calcKey(calc.ID), doc, 0)
		pipe.ZAdd(ctx, userCalcsKey(calc.UserID), redis.Z{
			Score:  float64(calc.CreatedAt.UnixMicro()),
			Member: calc.ID,
		})
		if calc.ShareToken != "" {
			pipe.Set(ctx, shareKey(calc.ShareToken), calc.ID, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to insert calculation: %w", err)
	}
	return nil
}

// GetCalculation retrieves a calculation by ID.
func (s *RedisStore) GetCalculation(ctx context.Context, id string) (*models.FinanceCalculation, error) {
	raw, err := s.client.Get(ctx, calcKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("calculation %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get calculation: %w", err)
	}
	return decodeCalculation(raw)
}

// GetCalculationByShareToken resolves the token index and loads the calculation.
func (s *RedisStore) GetCalculationByShareToken(ctx context.Context, token string) (*models.FinanceCalculation, error) {
	id, err := s.client.Get(ctx, shareKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("share token: %w", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve share token: %w", err)
	}
	return s.GetCalculation(ctx, id)
}

// ListCalculationsByUser returns the newest calculations of a user.
func (s *RedisStore) ListCalculationsByUser(ctx context.Context, userID string, limit int) ([]*models.FinanceCalculation, error) {
	if limit <= 0 {
		return nil, nil
	}
	ids, err := s.client.ZRevRange(ctx, userCalcsKey(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations by user: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = calcKey(id)
	}
	docs, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load calculations: %w", err)
	}

	calcs := make([]*models.FinanceCalculation, 0, len(docs))
	for _, doc := range docs {
		str, ok := doc.(string)
		if !ok {
			// Index entry outlived its document.
			continue
		}
		calc, err := decodeCalculation([]byte(str))
		if err != nil {
			return nil, err
		}
		calcs = append(calcs, calc)
	}
	return calcs, nil
}

// ShareCalculation sets the share token under WATCH so that concurrent
// shares of one record end with a single token.
func (s *RedisStore) ShareCalculation(ctx context.Context, id, token string, at time.Time) (string, error) {
	key := calcKey(id)
	var result string

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("calculation %s: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get calculation: %w", err)
		}
		calc, err := decodeCalculation(raw)
		if err != nil {
			return err
		}
		if calc.ShareToken != "" {
			result = calc.ShareToken
			return nil
		}

		calc.Shared = true
		calc.ShareToken = token
		calc.UpdatedAt = at
		doc, err := json.Marshal(calc)
		if err != nil {
			return fmt.Errorf("failed to encode calculation: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, doc, 0)
			pipe.Set(ctx, shareKey(token), id, 0)
			return nil
		})
		if err == nil {
			result = token
		}
		return err
	}

	for attempt := 0; attempt < maxShareAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return "", err
		}
		return result, nil
	}
	return "", fmt.Errorf("calculation %s: share contention after %d attempts", id, maxShareAttempts)
}

// DeleteCalculation removes the document and its index entries.
func (s *RedisStore) DeleteCalculation(ctx context.Context, id string) error {
	calc, err := s.GetCalculation(ctx, id)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, calcKey(id))
		pipe.ZRem(ctx, userCalcsKey(calc.UserID), id)
		if calc.ShareToken != "" {
			pipe.Del(ctx, shareKey(calc.ShareToken))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}
	return nil
}

// CreateUser stores a user, failing when the email is already registered.
func (s *RedisStore) CreateUser(ctx context.Context, user *models.User) error {
	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	ok, err := s.client.SetNX(ctx, userEmailKey(user.Email), user.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if !ok {
		return fmt.Errorf("failed to create user: email %s already registered", user.Email)
	}

	if err := s.client.Set(ctx, userKey(user.ID), doc, 0).Err(); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *RedisStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	id, err := s.client.Get(ctx, userEmailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("user %s: %w", email, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return s.GetUserByID(ctx, id)
}

// GetUserByID retrieves a user by their ID.
func (s *RedisStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	raw, err := s.client.Get(ctx, userKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	user := &models.User{}
	if err := json.Unmarshal(raw, user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return user, nil
}

func decodeCalculation(raw []byte) (*models.FinanceCalculation, error) {
	calc := &models.FinanceCalculation{}
	if err := json.Unmarshal(raw, calc); err != nil {
		return nil, fmt.Errorf("failed to decode calculation: %w", err)
	}
	return calc, nil
}
