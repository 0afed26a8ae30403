package contract

import (
	"context"
	"time"

	"viewset-bot/internal/entity"
	"viewset-bot/internal/repository/specification"
)

type ParticipantRepository interface {
	Create(ctx context.Context, participant *entity.Participant) error
	// Update writes profile fields only; the cursor columns are owned by SaveCursor.
	Update(ctx context.Context, participant *entity.Participant) error
	SaveCursor(ctx context.Context, id int64, route string, snapshot []byte, at time.Time) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Participant, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Participant, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
