package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"viewset-bot/internal/constant"
	"viewset-bot/internal/entity"
	"viewset-bot/internal/pkg/logger"
	"viewset-bot/internal/repository/specification"
	"viewset-bot/internal/repository/unitofwork"
	"viewset-bot/pkg/bot"
	"viewset-bot/pkg/events"
)

type IParticipantService interface {
	// Resolve finds or creates the participant behind an event.
	Resolve(ctx context.Context, event *bot.Event) (bot.Actor, error)
	Get(ctx context.Context, id int64) (*entity.Participant, error)
}

type participantService struct {
	uowFactory    unitofwork.RepositoryFactory
	publisher     EventPublisher
	isStaff       func(id int64) bool
	defaultLocale string
	logger        logger.ILogger
	now           func() time.Time
}

func NewParticipantService(
	uowFactory unitofwork.RepositoryFactory,
	publisher EventPublisher,
	isStaff func(id int64) bool,
	defaultLocale string,
	log logger.ILogger,
) IParticipantService {
	if isStaff == nil {
		isStaff = func(int64) bool { return false }
	}
	return &participantService{
		uowFactory:    uowFactory,
		publisher:     publisher,
		isStaff:       isStaff,
		defaultLocale: defaultLocale,
		logger:        log,
		now:           time.Now,
	}
}

func (s *participantService) Get(ctx context.Context, id int64) (*entity.Participant, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ParticipantRepository().FindOne(ctx, specification.ByID{ID: id})
}

func (s *participantService) Resolve(ctx context.Context, event *bot.Event) (bot.Actor, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ParticipantRepository()

	p, err := repo.FindOne(ctx, specification.ByID{ID: event.ParticipantID})
	if err != nil {
		return bot.Actor{}, fmt.Errorf("find participant: %w", err)
	}

	created := false
	switch {
	case p == nil:
		p, created, err = s.create(ctx, uow, event)
		if err != nil {
			return bot.Actor{}, err
		}

	case !p.IsActive:
		p.IsActive = true
		s.refreshProfile(p, event)
		if err := repo.Update(ctx, p); err != nil {
			return bot.Actor{}, fmt.Errorf("reactivate participant: %w", err)
		}
		s.logger.Info("ParticipantService", "Participant reactivated", map[string]interface{}{"participant_id": p.Id})
		s.attachDeepLink(ctx, uow, p.Id, event.Text)

	case s.refreshProfile(p, event):
		if err := repo.Update(ctx, p); err != nil {
			return bot.Actor{}, fmt.Errorf("update participant profile: %w", err)
		}
	}

	return bot.Actor{
		ID:       p.Id,
		Username: p.Username,
		Name:     p.DisplayName(),
		Locale:   p.LanguageCode,
		IsStaff:  p.IsStaff || s.isStaff(p.Id),
		Created:  created,
	}, nil
}

func (s *participantService) create(ctx context.Context, uow unitofwork.UnitOfWork, event *bot.Event) (*entity.Participant, bool, error) {
	locale := event.LanguageCode
	if locale == "" {
		locale = s.defaultLocale
	}
	p := &entity.Participant{
		Id:           event.ParticipantID,
		Username:     truncate(event.Username, 64),
		FirstName:    truncate(event.FirstName, 64),
		LastName:     truncate(event.LastName, 64),
		LanguageCode: locale,
		Timezone:     constant.DefaultTimezone,
		IsStaff:      s.isStaff(event.ParticipantID),
		IsActive:     true,
	}

	if err := uow.ParticipantRepository().Create(ctx, p); err != nil {
		// Another worker may have created the row first.
		existing, findErr := uow.ParticipantRepository().FindOne(ctx, specification.ByID{ID: event.ParticipantID})
		if findErr != nil || existing == nil {
			return nil, false, fmt.Errorf("create participant: %w", err)
		}
		return existing, false, nil
	}

	if err := uow.ActionLogRepository().Create(ctx, &entity.ActionLog{
		ParticipantId: p.Id,
		Type:          constant.ActionCreated,
		CreatedAt:     s.now(),
	}); err != nil {
		s.logger.Warn("ParticipantService", "Failed to log participant creation", map[string]interface{}{
			"participant_id": p.Id,
			"error":          err.Error(),
		})
	}

	code := s.attachDeepLink(ctx, uow, p.Id, event.Text)

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewParticipantJoined(p.Id, p.Username, code, s.now())); err != nil {
			s.logger.Warn("ParticipantService", "Failed to publish participant joined", map[string]interface{}{"error": err.Error()})
		}
	}

	s.logger.Info("ParticipantService", "Participant created", map[string]interface{}{
		"participant_id": p.Id,
		"deep_link":      code,
	})
	return p, true, nil
}

// refreshProfile copies changed transport profile fields and reports
// whether anything changed.
func (s *participantService) refreshProfile(p *entity.Participant, event *bot.Event) bool {
	changed := false
	set := func(dst *string, v string) {
		v = truncate(v, 64)
		if v != "" && *dst != v {
			*dst = v
			changed = true
		}
	}
	set(&p.Username, event.Username)
	set(&p.FirstName, event.FirstName)
	set(&p.LastName, event.LastName)
	return changed
}

// attachDeepLink records "/start <code>" attribution and returns the code.
func (s *participantService) attachDeepLink(ctx context.Context, uow unitofwork.UnitOfWork, participantID int64, text string) string {
	words := strings.Fields(text)
	if len(words) < 2 || words[0] != constant.StartCommand {
		return ""
	}
	code := truncate(words[1], 64)

	repo := uow.DeepLinkRepository()
	link, err := repo.FindOne(ctx, specification.ByDeepLinkCode{Code: code})
	if err == nil && link == nil {
		err = repo.Create(ctx, &entity.DeepLink{Title: code, Code: code, ParticipantIds: []int64{participantID}})
	} else if err == nil && link.Attach(participantID) {
		err = repo.Update(ctx, link)
	}
	if err != nil {
		s.logger.Warn("ParticipantService", "Failed to record deep link", map[string]interface{}{
			"participant_id": participantID,
			"code":           code,
			"error":          err.Error(),
		})
	}
	return code
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
