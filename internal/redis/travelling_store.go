package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"farehub/internal/models"
)

// ActiveJourney is the cached view of a card that is currently mid-journey,
// kept for external dashboards.
type ActiveJourney struct {
	CardID      string    `json:"card_id"`
	StartReader string    `json:"start_reader"`
	StartedAt   time.Time `json:"started_at"`
}

// Store mirrors the travelling set into redis. The TTL guards against
// entries orphaned by a crash between the in-memory update and the mirror
// write.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore returns redis-backed store.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) key(cardID models.CardID) string {
	return fmt.Sprintf("travel:active:%s", cardID)
}

// MarkTravelling caches the in-flight journey for a card.
func (s *Store) MarkTravelling(ctx context.Context, cardID models.CardID, readerID models.ReaderID, since time.Time) error {
	data, err := json.Marshal(ActiveJourney{
		CardID:      cardID.String(),
		StartReader: readerID.String(),
		StartedAt:   since,
	})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(cardID), data, s.ttl).Err()
}

// ClearTravelling removes the cached journey once the card taps out.
func (s *Store) ClearTravelling(ctx context.Context, cardID models.CardID) error {
	return s.client.Del(ctx, s.key(cardID)).Err()
}

// Get returns the cached journey for a card, or nil when the card has no
// cached entry.
func (s *Store) Get(ctx context.Context, cardID models.CardID) (*ActiveJourney, error) {
	result, err := s.client.Get(ctx, s.key(cardID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var journey ActiveJourney
	if err := json.Unmarshal([]byte(result), &journey); err != nil {
		return nil, err
	}
	return &journey, nil
}
