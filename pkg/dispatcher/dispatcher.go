package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"viewset-bot/internal/pkg/logger"
	"viewset-bot/pkg/bot"
	"viewset-bot/pkg/cursor"
	"viewset-bot/pkg/routing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	module = "Dispatcher"

	MessageError   = "Something went wrong. Please try again later."
	MessageUnknown = "Sorry, I do not know this command."
)

// ParticipantResolver finds or creates the actor behind an event.
type ParticipantResolver interface {
	Resolve(ctx context.Context, event *bot.Event) (bot.Actor, error)
}

// Fallback answers events no route matched, by command text or button
// payload. A nil response means nothing matched either.
type Fallback interface {
	Lookup(ctx context.Context, actor bot.Actor, payload string) (*bot.Response, error)
}

type Options struct {
	Table        *routing.Table
	Cursors      cursor.Store
	Participants ParticipantResolver
	Fallback     Fallback
	Delivery     bot.Delivery
	Auditor      bot.Auditor
	Translator   bot.Translator
	Logger       logger.ILogger
}

// Dispatcher is the entry point for one inbound event.
type Dispatcher struct {
	table        *routing.Table
	cursors      cursor.Store
	participants ParticipantResolver
	fallback     Fallback
	delivery     bot.Delivery
	auditor      bot.Auditor
	translator   bot.Translator
	logger       logger.ILogger
}

func New(opts Options) *Dispatcher {
	d := &Dispatcher{
		table:        opts.Table,
		cursors:      opts.Cursors,
		participants: opts.Participants,
		fallback:     opts.Fallback,
		delivery:     opts.Delivery,
		auditor:      opts.Auditor,
		translator:   opts.Translator,
		logger:       opts.Logger,
	}
	if d.logger == nil {
		d.logger = logger.NewNopLogger()
	}
	return d
}

func (d *Dispatcher) t(actor bot.Actor, format string) string {
	if d.translator == nil {
		return format
	}
	return d.translator.Sprintf(actor.Locale, format)
}

// Handle classifies the event, serves it and delivers the reply. Any failure
// is answered with a generic message and returned after the reply is
// delivered. The cursor is written back only when a successful handler
// changed it.
func (d *Dispatcher) Handle(ctx context.Context, event *bot.Event) (*bot.Response, error) {
	ctx, span := otel.Tracer("viewset-bot/dispatcher").Start(ctx, "Dispatcher.Handle")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("participant.id", event.ParticipantID),
		attribute.Bool("event.callback", event.IsCallback()),
	)

	actor, err := d.participants.Resolve(ctx, event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve participant")
		d.logger.Error(module, "Failed to resolve participant", map[string]interface{}{
			"participant_id": event.ParticipantID,
			"error":          err.Error(),
		})
		// No stored profile to read the locale from; use what the transport sent.
		actor = bot.Actor{ID: event.ParticipantID, Username: event.Username, Locale: event.LanguageCode}
		return d.fail(ctx, actor, event, fmt.Errorf("resolve participant %d: %w", event.ParticipantID, err))
	}

	cur, err := d.cursors.Load(ctx, actor.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load cursor")
		d.logger.Error(module, "Failed to load cursor", map[string]interface{}{
			"participant_id": actor.ID,
			"error":          err.Error(),
		})
		return d.fail(ctx, actor, event, fmt.Errorf("load cursor of %d: %w", actor.ID, err))
	}
	before, _ := cur.Marshal()

	resp, route, handleErr := d.serve(ctx, event, actor, cur)
	span.SetAttributes(attribute.String("route", route))
	if handleErr != nil {
		span.RecordError(handleErr)
		span.SetStatus(codes.Error, "handler failed")
		d.logger.Error(module, "Handler failed", map[string]interface{}{
			"participant_id": actor.ID,
			"route":          route,
			"error":          handleErr.Error(),
		})
		resp = bot.NewResponse(d.t(actor, MessageError), nil)
	}

	deliverErr := d.deliver(ctx, actor, event, resp)

	// A failed turn keeps the stored cursor as it was before the event.
	if handleErr == nil {
		handleErr = d.saveIfChanged(ctx, cur, before)
	}

	if route != "" && d.auditor != nil {
		d.auditor.Record(actor.ID, route)
	}

	if handleErr != nil {
		return resp, handleErr
	}
	return resp, deliverErr
}

// fail answers an event that could not be served at all.
func (d *Dispatcher) fail(ctx context.Context, actor bot.Actor, event *bot.Event, err error) (*bot.Response, error) {
	resp := bot.NewResponse(d.t(actor, MessageError), nil)
	_ = d.deliver(ctx, actor, event, resp)
	return resp, err
}

func (d *Dispatcher) deliver(ctx context.Context, actor bot.Actor, event *bot.Event, resp *bot.Response) error {
	if resp == nil || d.delivery == nil {
		return nil
	}
	err := d.delivery.Render(ctx, actor, event, resp)
	if err != nil {
		d.logger.Warn(module, "Failed to deliver response", map[string]interface{}{
			"participant_id": actor.ID,
			"error":          err.Error(),
		})
	}
	return err
}

func (d *Dispatcher) saveIfChanged(ctx context.Context, cur *cursor.Cursor, before []byte) error {
	after, err := cur.Marshal()
	if err != nil {
		return fmt.Errorf("marshal cursor of %d: %w", cur.ParticipantID, err)
	}
	if string(after) == string(before) {
		return nil
	}
	if err := d.cursors.Save(ctx, cur); err != nil {
		d.logger.Error(module, "Failed to save cursor", map[string]interface{}{
			"participant_id": cur.ParticipantID,
			"error":          err.Error(),
		})
		return fmt.Errorf("save cursor of %d: %w", cur.ParticipantID, err)
	}
	return nil
}

// token picks the route token of an event: the button payload, a command,
// or the participant's pending cursor route.
func token(event *bot.Event, cur *cursor.Cursor) (string, bool) {
	switch {
	case event.IsCallback():
		return event.CallbackData, false
	case event.IsCommand():
		return event.Text, false
	case cur.Route != "":
		return cur.Route, true
	}
	return "", false
}

func isRouteError(err error) bool {
	return errors.Is(err, routing.ErrRouteNotFound) || errors.Is(err, routing.ErrMalformedToken)
}

func (d *Dispatcher) serve(ctx context.Context, event *bot.Event, actor bot.Actor, cur *cursor.Cursor) (resp *bot.Response, route string, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error(module, "Handler panicked", map[string]interface{}{
				"route": route,
				"panic": fmt.Sprint(r),
				"stack": string(debug.Stack()),
			})
			resp, err = nil, fmt.Errorf("panic serving %q: %v", route, r)
		}
	}()

	if tok, fromCursor := token(event, cur); tok != "" {
		m, resolveErr := d.table.Resolve(tok)
		if resolveErr == nil {
			route = m.Token
			req := &bot.Request{
				Event:      event,
				Actor:      actor,
				Cursor:     cur,
				Token:      m.Token,
				Args:       m.Args,
				FromCursor: fromCursor,
			}
			if m.Route.IsMount() {
				req.Prefix = m.Route.Pattern
			}
			resp, err = m.Route.Handler.Handle(ctx, req)
			if err == nil || !isRouteError(err) {
				return resp, route, err
			}
			resolveErr = err
		}
		d.logger.Debug(module, "No route, falling back to content lookup", map[string]interface{}{
			"token": tok,
			"error": resolveErr.Error(),
		})
	}

	route = event.Payload()
	if d.fallback == nil {
		return bot.NewResponse(d.t(actor, MessageUnknown), nil), route, nil
	}
	resp, err = d.fallback.Lookup(ctx, actor, route)
	if err != nil {
		return nil, route, fmt.Errorf("content lookup: %w", err)
	}
	if resp == nil {
		resp = bot.NewResponse(d.t(actor, MessageUnknown), nil)
	}
	return resp, route, nil
}
