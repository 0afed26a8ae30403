package viewset

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"viewset-bot/pkg/bot"
	"viewset-bot/pkg/cursor"
	"viewset-bot/pkg/form"
	"viewset-bot/pkg/pagination"
	"viewset-bot/pkg/routing"
)

// maxListPage bounds the offset of the first list query; Window clamps the
// page to the real total afterwards.
const maxListPage = math.MaxInt32

// ConfirmArg marks a confirmed delete token.
const ConfirmArg = "1"

// contextRecord is the cursor context key of the record whose multi-select
// field is being accumulated.
const contextRecord = "record"

// Controller is a viewset bound to a mount prefix and one request.
type Controller struct {
	vs    *Viewset
	codec routing.Codec
	req   *bot.Request
	scope Scope
}

func (c *Controller) Request() *bot.Request { return c.req }

func (c *Controller) Scope() Scope { return c.scope }

func (c *Controller) Viewset() *Viewset { return c.vs }

// T localizes format for the actor.
func (c *Controller) T(format string, args ...interface{}) string {
	return c.vs.translator.Sprintf(c.req.Actor.Locale, format, args...)
}

// Token builds the route token of an action under this mount, carrying the
// current contextual filters.
func (c *Controller) Token(a Action, args ...string) string {
	return c.codec.Encode(c.vs.codes[a], c.scope.Filters, args...)
}

func (c *Controller) cursor() *cursor.Cursor {
	if c.req.Cursor == nil {
		c.req.Cursor = cursor.New(c.req.Actor.ID)
	}
	return c.req.Cursor
}

// Dispatch decodes the request token, checks permissions and runs the
// bound action. A denied request gets the fixed denial text and touches
// no state.
func (c *Controller) Dispatch(ctx context.Context) (*bot.Response, error) {
	d, err := c.codec.Decode(c.req.Token)
	if err != nil {
		return nil, err
	}
	fn, ok := c.vs.handlers[d.Action]
	if !ok {
		return nil, fmt.Errorf("%w: unknown action code %q", routing.ErrMalformedToken, d.Action)
	}
	c.scope.Filters = d.Filters

	if err := checkPermissions(ctx, c.vs.cfg.Permissions, c.req.Actor, c.vs.actionOf[d.Action], d.Args); err != nil {
		return bot.NewResponse(c.T(c.vs.messages.Denied), nil), nil
	}
	return fn(ctx, c, d.Args)
}

// signal classifies the value part of a create/change token. Typed text
// counts only when the token came from the participant's cursor.
func (c *Controller) signal(rest []string) form.Signal {
	if len(rest) > 0 {
		return form.Classify(rest[0], true)
	}
	if c.req.FromCursor && c.req.Event != nil && !c.req.Event.IsCallback() {
		return form.Typed(c.req.Event.Text)
	}
	return form.Signal{}
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", routing.ErrMalformedToken, fmt.Sprintf(format, args...))
}

func (c *Controller) wizardError(err error) error {
	if errors.Is(err, form.ErrUnknownField) {
		return fmt.Errorf("%w: %v", routing.ErrMalformedToken, err)
	}
	return err
}

func (c *Controller) createArgs(ctx context.Context, args []string) (*bot.Response, error) {
	if len(args) == 0 || args[0] == "" {
		return c.Create(ctx, "", form.Signal{})
	}
	return c.Create(ctx, args[0], c.signal(args[1:]))
}

func (c *Controller) changeArgs(ctx context.Context, args []string) (*bot.Response, error) {
	if len(args) < 2 {
		return nil, malformed("change wants id and field, got %d args", len(args))
	}
	return c.Change(ctx, args[0], args[1], c.signal(args[2:]))
}

func (c *Controller) deleteArgs(ctx context.Context, args []string) (*bot.Response, error) {
	if len(args) < 1 {
		return nil, malformed("delete wants an id")
	}
	return c.Delete(ctx, args[0], len(args) > 1 && args[1] == ConfirmArg)
}

func (c *Controller) showElemArgs(ctx context.Context, args []string) (*bot.Response, error) {
	if len(args) < 1 {
		return nil, malformed("show_elem wants an id")
	}
	return c.ShowElem(ctx, args[0])
}

func (c *Controller) showListArgs(ctx context.Context, args []string) (*bot.Response, error) {
	page := 0
	if len(args) > 0 && args[0] != "" {
		p, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, malformed("page %q is not a number", args[0])
		}
		page = p
	}
	return c.ShowList(ctx, page)
}

func (c *Controller) get(ctx context.Context, id string) (*Record, error) {
	rec, err := c.vs.cfg.Collection.Get(ctx, c.scope, id)
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", c.vs.cfg.Name, id, err)
	}
	return rec, nil
}

// Create runs one turn of the create flow. An empty field starts a fresh
// flow seeded with the viewset's initial values.
func (c *Controller) Create(ctx context.Context, field string, sig form.Signal) (*bot.Response, error) {
	cur := c.cursor()

	var data map[string]cursor.Value
	if field == "" {
		cur.Clear()
		data = map[string]cursor.Value{}
		if c.vs.cfg.Initial != nil {
			for k, v := range c.vs.cfg.Initial(ctx, c.scope) {
				data[k] = v
			}
		}
	} else {
		data = cur.FormData(c.vs.form.Name)
	}

	step, err := c.vs.wizard.Advance(ctx, form.ModeCreate, data, field, sig)
	if err != nil {
		return nil, c.wizardError(err)
	}

	if step.Outcome == form.OutcomeComplete {
		rec, err := c.vs.cfg.Collection.Create(ctx, c.scope, step.Data)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", c.vs.cfg.Name, err)
		}
		cur.Clear()
		return c.renderElem(ctx, rec, c.T(c.vs.messages.Created, c.T(c.vs.cfg.Name)))
	}

	cur.SaveForm(c.vs.form.Name, step.Data)
	return c.prompt(ctx, ActionCreate, "", step)
}

// Change runs one turn of the update flow for one field of an existing
// record. Without a value the field is shown and the pending state cleared.
func (c *Controller) Change(ctx context.Context, id, field string, sig form.Signal) (*bot.Response, error) {
	rec, err := c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return c.notFound(id), nil
	}
	cur := c.cursor()

	data := make(map[string]cursor.Value, len(rec.Values))
	for k, v := range rec.Values {
		data[k] = v
	}
	if sig.Kind == form.SignalNone {
		cur.Clear()
	} else if cur.Context[contextRecord] == rec.ID {
		for k, v := range cur.FormData(c.vs.form.Name) {
			data[k] = v
		}
	}

	step, err := c.vs.wizard.Advance(ctx, form.ModeChange, data, field, sig)
	if err != nil {
		return nil, c.wizardError(err)
	}

	if step.Outcome == form.OutcomeComplete {
		updated, err := c.vs.cfg.Collection.Update(ctx, c.scope, rec, step.Data)
		if err != nil {
			return nil, fmt.Errorf("update %s %s: %w", c.vs.cfg.Name, id, err)
		}
		cur.Clear()
		return c.renderElem(ctx, updated, c.T(c.vs.messages.Updated))
	}

	if step.Repeat {
		cur.SaveForm(c.vs.form.Name, map[string]cursor.Value{field: step.Data[field]})
		cur.Context[contextRecord] = rec.ID
	}
	return c.prompt(ctx, ActionChange, rec.ID, step)
}

// Delete asks for confirmation first unless the viewset skips it.
func (c *Controller) Delete(ctx context.Context, id string, confirmed bool) (*bot.Response, error) {
	rec, err := c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return c.notFound(id), nil
	}
	name := c.T(c.vs.cfg.Name)
	msgs := c.vs.messages

	if !confirmed && !c.vs.cfg.SkipDeleteConfirm {
		kb := bot.Keyboard{{{Text: c.T(msgs.ButtonConfirm), Data: c.Token(ActionDelete, rec.ID, ConfirmArg)}}}
		if c.vs.enabled[ActionShowElem] {
			kb = append(kb, []bot.Button{{Text: c.T(msgs.ButtonGoBack), Data: c.Token(ActionShowElem, rec.ID)}})
		}
		return bot.NewResponse(c.T(msgs.ConfirmDelete, name, rec.ID), kb), nil
	}

	if err := c.vs.cfg.Collection.Delete(ctx, c.scope, rec); err != nil {
		return nil, fmt.Errorf("delete %s %s: %w", c.vs.cfg.Name, id, err)
	}
	var kb bot.Keyboard
	if c.vs.enabled[ActionShowList] {
		kb = bot.Keyboard{{{Text: c.T(msgs.ButtonList), Data: c.Token(ActionShowList)}}}
	}
	return bot.NewResponse(c.T(msgs.Deleted, name, rec.ID), kb), nil
}

// abandon drops a create or change flow left pending when the participant
// navigates to a record or a list instead of answering the prompt.
func (c *Controller) abandon() {
	if cur := c.cursor(); cur.Route != "" {
		cur.Clear()
	}
}

func (c *Controller) ShowElem(ctx context.Context, id string) (*bot.Response, error) {
	c.abandon()
	rec, err := c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return c.notFound(id), nil
	}
	return c.renderElem(ctx, rec, "")
}

// ShowList renders one page of the collection. Out of range pages are
// clamped to the nearest existing one.
func (c *Controller) ShowList(ctx context.Context, page int) (*bot.Response, error) {
	c.abandon()
	per := c.vs.cfg.PerPage * c.vs.cfg.ListColumns
	if page < 0 {
		page = 0
	}
	if page > maxListPage/per {
		page = maxListPage / per
	}

	list := func(offset int) ([]Record, int, error) {
		recs, total, err := c.vs.cfg.Collection.List(ctx, c.scope, ListOptions{
			Offset: offset,
			Limit:  per,
			Order:  c.vs.cfg.Order,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("list %s: %w", c.vs.cfg.Name, err)
		}
		return recs, total, nil
	}

	recs, total, err := list(page * per)
	if err != nil {
		return nil, err
	}
	window := pagination.Window(page, per, total)
	if window.Start != page*per {
		if recs, total, err = list(window.Start); err != nil {
			return nil, err
		}
		window = pagination.Window(window.Index, per, total)
	}

	if total == 0 || len(recs) == 0 {
		return bot.NewResponse(c.T(c.vs.messages.NothingToShow), nil), nil
	}
	return c.renderList(ctx, recs, window)
}

func (c *Controller) notFound(id string) *bot.Response {
	return bot.NewResponse(c.T(c.vs.messages.NotFound, c.T(c.vs.cfg.Name), id), nil)
}
