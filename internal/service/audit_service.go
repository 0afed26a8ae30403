package service

import (
	"context"
	"encoding/json"
	"time"

	"viewset-bot/internal/constant"
	"viewset-bot/internal/entity"
	"viewset-bot/internal/pkg/logger"
	"viewset-bot/internal/repository/specification"
	"viewset-bot/internal/repository/unitofwork"
	"viewset-bot/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// IAuditService records handled routes without blocking the handler and
// persists them from a background consumer.
type IAuditService interface {
	Record(actorID int64, route string)
	Consume(ctx context.Context) error
}

// PubSub is the in-process bus the audit trail travels on.
type PubSub interface {
	message.Publisher
	message.Subscriber
}

type auditMessage struct {
	ParticipantID int64     `json:"participant_id,string"`
	Route         string    `json:"route"`
	At            time.Time `json:"at"`
}

type auditService struct {
	pubSub     PubSub
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	publisher  EventPublisher
	logger     logger.ILogger
	now        func() time.Time
}

func NewAuditService(
	pubSub PubSub,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	publisher EventPublisher,
	log logger.ILogger,
) IAuditService {
	return &auditService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
		now:        time.Now,
	}
}

func (s *auditService) Record(actorID int64, route string) {
	payload, err := json.Marshal(auditMessage{ParticipantID: actorID, Route: route, At: s.now()})
	if err != nil {
		return
	}
	if err := s.pubSub.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		s.logger.Warn("AuditService", "Failed to publish audit record", map[string]interface{}{
			"participant_id": actorID,
			"route":          route,
			"error":          err.Error(),
		})
	}
}

func (s *auditService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *auditService) processMessage(ctx context.Context, msg *message.Message) {
	var payload auditMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("AuditService", "Failed to unmarshal audit record", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	logs := uow.ActionLogRepository()

	if err := logs.Create(ctx, &entity.ActionLog{
		ParticipantId: payload.ParticipantID,
		Type:          truncate(payload.Route, constant.ActionTypeMaxLength),
		CreatedAt:     payload.At,
	}); err != nil {
		s.logger.Error("AuditService", "Failed to persist action log", map[string]interface{}{
			"participant_id": payload.ParticipantID,
			"error":          err.Error(),
		})
		msg.Nack()
		return
	}

	if err := s.markActiveToday(ctx, uow, payload); err != nil {
		s.logger.Warn("AuditService", "Failed to mark participant active", map[string]interface{}{
			"participant_id": payload.ParticipantID,
			"error":          err.Error(),
		})
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewBotAction(payload.ParticipantID, payload.Route, payload.At)); err != nil {
			s.logger.Warn("AuditService", "Failed to forward audit record", map[string]interface{}{"error": err.Error()})
		}
	}

	msg.Ack()
}

// markActiveToday writes one ACTION_ACTIVE_TODAY row per participant per day.
func (s *auditService) markActiveToday(ctx context.Context, uow unitofwork.UnitOfWork, payload auditMessage) error {
	y, m, d := payload.At.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, payload.At.Location())

	count, err := uow.ActionLogRepository().Count(ctx,
		specification.ByParticipant{ParticipantID: payload.ParticipantID},
		specification.ByActionType{Type: constant.ActionActiveToday},
		specification.CreatedSince{Since: startOfDay},
	)
	if err != nil || count > 0 {
		return err
	}
	return uow.ActionLogRepository().Create(ctx, &entity.ActionLog{
		ParticipantId: payload.ParticipantID,
		Type:          constant.ActionActiveToday,
		CreatedAt:     payload.At,
	})
}
