package implementation

import (
	"context"
	"fmt"
	"time"

	"viewset-bot/internal/repository/contract"
	"viewset-bot/internal/repository/specification"
	"viewset-bot/pkg/cursor"

	"gorm.io/gorm"
)

// ParticipantCursorStore persists cursors on the participants row, next to
// the profile they belong to.
type ParticipantCursorStore struct {
	participants contract.ParticipantRepository
	now          func() time.Time
}

func NewParticipantCursorStore(db *gorm.DB) *ParticipantCursorStore {
	return &ParticipantCursorStore{
		participants: NewParticipantRepository(db),
		now:          time.Now,
	}
}

func (s *ParticipantCursorStore) Load(ctx context.Context, participantID int64) (*cursor.Cursor, error) {
	p, err := s.participants.FindOne(ctx, specification.ByID{ID: participantID})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return cursor.New(participantID), nil
	}
	c, err := cursor.Unmarshal(participantID, p.CursorSnapshot)
	if err != nil {
		return nil, err
	}
	if c.Route == "" {
		c.Route = p.Route
	}
	if p.RouteUpdatedAt != nil {
		c.UpdatedAt = *p.RouteUpdatedAt
	}
	return c, nil
}

func (s *ParticipantCursorStore) Save(ctx context.Context, c *cursor.Cursor) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := s.participants.SaveCursor(ctx, c.ParticipantID, c.Route, data, s.now()); err != nil {
		return fmt.Errorf("save cursor of participant %d: %w", c.ParticipantID, err)
	}
	return nil
}
