package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"viewset-bot/pkg/cursor"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cursor:"

// CursorRepository keeps cursors in redis so several bot instances share
// conversation state.
type CursorRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCursorRepository(rdb *redis.Client, ttl time.Duration) *CursorRepository {
	return &CursorRepository{rdb: rdb, ttl: ttl}
}

func key(participantID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, participantID)
}

func (r *CursorRepository) Load(ctx context.Context, participantID int64) (*cursor.Cursor, error) {
	data, err := r.rdb.Get(ctx, key(participantID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cursor.New(participantID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get cursor %d: %w", participantID, err)
	}
	return cursor.Unmarshal(participantID, data)
}

func (r *CursorRepository) Save(ctx context.Context, c *cursor.Cursor) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, key(c.ParticipantID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cursor %d: %w", c.ParticipantID, err)
	}
	return nil
}
