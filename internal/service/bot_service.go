package service

import (
	"context"
	"fmt"

	"viewset-bot/internal/pkg/logger"
	"viewset-bot/pkg/bot"
	"viewset-bot/pkg/worker"
)

// EventHandler serves one inbound event end to end. Implemented by the
// dispatcher.
type EventHandler interface {
	Handle(ctx context.Context, event *bot.Event) (*bot.Response, error)
}

// IBotService runs events on the bounded worker pool.
type IBotService interface {
	// Handle serves the event on a worker and waits for the reply.
	Handle(ctx context.Context, event *bot.Event) (*bot.Response, error)
	// Submit serves the event on a worker without waiting.
	Submit(ctx context.Context, event *bot.Event) error
}

type botService struct {
	handler EventHandler
	pool    *worker.Pool
	logger  logger.ILogger
}

func NewBotService(handler EventHandler, pool *worker.Pool, log logger.ILogger) IBotService {
	return &botService{handler: handler, pool: pool, logger: log}
}

func (s *botService) Handle(ctx context.Context, event *bot.Event) (*bot.Response, error) {
	type result struct {
		resp *bot.Response
		err  error
	}
	done := make(chan result, 1)

	err := s.pool.Submit(ctx, func(taskCtx context.Context) {
		resp, err := s.handler.Handle(taskCtx, event)
		done <- result{resp: resp, err: err}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule event of %d: %w", event.ParticipantID, err)
	}

	select {
	case r := <-done:
		return r.resp, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *botService) Submit(ctx context.Context, event *bot.Event) error {
	return s.pool.Submit(ctx, func(taskCtx context.Context) {
		if _, err := s.handler.Handle(taskCtx, event); err != nil {
			s.logger.Warn("BotService", "Event served with error", map[string]interface{}{
				"participant_id": event.ParticipantID,
				"error":          err.Error(),
			})
		}
	})
}
