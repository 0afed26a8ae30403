package memory

import (
	"context"
	"strconv"
	"time"

	"viewset-bot/pkg/cursor"

	"github.com/patrickmn/go-cache"
)

// CursorRepository keeps cursors in process memory. Entries expire after
// ttl of inactivity, which resets the participant to an empty cursor.
type CursorRepository struct {
	cache *cache.Cache
}

func NewCursorRepository(ttl time.Duration) *CursorRepository {
	return &CursorRepository{
		cache: cache.New(ttl, ttl/4+time.Minute),
	}
}

func key(participantID int64) string {
	return strconv.FormatInt(participantID, 10)
}

// Load returns a fresh copy; callers may mutate it freely.
func (r *CursorRepository) Load(_ context.Context, participantID int64) (*cursor.Cursor, error) {
	if x, found := r.cache.Get(key(participantID)); found {
		return cursor.Unmarshal(participantID, x.([]byte))
	}
	return cursor.New(participantID), nil
}

func (r *CursorRepository) Save(_ context.Context, c *cursor.Cursor) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	r.cache.Set(key(c.ParticipantID), data, cache.DefaultExpiration)
	return nil
}

func (r *CursorRepository) Delete(participantID int64) {
	r.cache.Delete(key(participantID))
}
