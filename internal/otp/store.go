package otp

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/r70610363/swiftcart-backend/pkg/errors"
)

// challenge is one outstanding code for a mobile number. The hash is an
// argon2id digest; the raw code is never stored.
type challenge struct {
	Hash      string    `json:"hash"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ChallengeStore keeps outstanding challenges keyed by mobile number.
// Expired entries stay readable for a while so verification can tell an
// expired code apart from a code that was never issued.
type ChallengeStore interface {
	Put(ctx context.Context, mobile string, ch challenge) error
	Get(ctx context.Context, mobile string) (challenge, bool, error)
	Delete(ctx context.Context, mobile string) error
}

const redisKeyPrefix = "swiftcart_otp:"

// expiryGrace keeps an expired challenge around long enough to report
// "expired" instead of "never sent".
const expiryGrace = time.Hour

type redisChallenges struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisChallengeStore backs challenges with redis so restarts do not
// void outstanding codes.
func NewRedisChallengeStore(client *redis.Client, ttl time.Duration) ChallengeStore {
	return &redisChallenges{client: client, ttl: ttl}
}

func (r *redisChallenges) Put(ctx context.Context, mobile string, ch challenge) error {
	raw, err := json.Marshal(ch)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "encode otp challenge")
	}
	if err := r.client.Set(ctx, redisKeyPrefix+mobile, string(raw), r.ttl+expiryGrace).Err(); err != nil {
		return errors.Wrap(errors.CodeStorage, err, "persist otp challenge")
	}
	return nil
}

func (r *redisChallenges) Get(ctx context.Context, mobile string) (challenge, bool, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+mobile).Result()
	if err == redis.Nil {
		return challenge{}, false, nil
	}
	if err != nil {
		return challenge{}, false, errors.Wrap(errors.CodeStorage, err, "read otp challenge")
	}
	var ch challenge
	if err := json.Unmarshal([]byte(raw), &ch); err != nil {
		return challenge{}, false, errors.Wrap(errors.CodeInternal, err, "decode otp challenge")
	}
	return ch, true, nil
}

func (r *redisChallenges) Delete(ctx context.Context, mobile string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+mobile).Err(); err != nil {
		return errors.Wrap(errors.CodeStorage, err, "delete otp challenge")
	}
	return nil
}

type memoryChallenges struct {
	mu      sync.Mutex
	entries map[string]challenge
}

// NewMemoryChallengeStore keeps challenges in process memory, the default
// when no redis is configured.
func NewMemoryChallengeStore() ChallengeStore {
	return &memoryChallenges{entries: make(map[string]challenge)}
}

func (m *memoryChallenges) Put(ctx context.Context, mobile string, ch challenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[mobile] = ch
	return nil
}

func (m *memoryChallenges) Get(ctx context.Context, mobile string) (challenge, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.entries[mobile]
	return ch, ok, nil
}

func (m *memoryChallenges) Delete(ctx context.Context, mobile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, mobile)
	return nil
}
