package dispatcher

import (
	"context"
	"errors"
	"testing"

	"viewset-bot/pkg/bot"
	"viewset-bot/pkg/cursor"
	"viewset-bot/pkg/form"
	"viewset-bot/pkg/routing"
	"viewset-bot/pkg/viewset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	cursors map[int64][]byte
	saves   int
}

func (s *fakeStore) Load(_ context.Context, id int64) (*cursor.Cursor, error) {
	return cursor.Unmarshal(id, s.cursors[id])
}

func (s *fakeStore) Save(_ context.Context, c *cursor.Cursor) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	s.saves++
	s.cursors[c.ParticipantID] = data
	return nil
}

func (s *fakeStore) put(t *testing.T, c *cursor.Cursor) {
	data, err := c.Marshal()
	require.NoError(t, err)
	s.cursors[c.ParticipantID] = data
}

type fakeParticipants struct{}

func (fakeParticipants) Resolve(_ context.Context, e *bot.Event) (bot.Actor, error) {
	return bot.Actor{ID: e.ParticipantID, Locale: "en"}, nil
}

type fakeDelivery struct{ sent []*bot.Response }

func (d *fakeDelivery) Render(_ context.Context, _ bot.Actor, _ *bot.Event, resp *bot.Response) error {
	d.sent = append(d.sent, resp)
	return nil
}

type fakeAuditor struct{ routes []string }

func (a *fakeAuditor) Record(_ int64, route string) { a.routes = append(a.routes, route) }

type fakeFallback struct{ payloads []string }

func (f *fakeFallback) Lookup(_ context.Context, _ bot.Actor, payload string) (*bot.Response, error) {
	f.payloads = append(f.payloads, payload)
	if payload == "menu" {
		return bot.NewResponse("menu block", nil), nil
	}
	return nil, nil
}

type harness struct {
	d        *Dispatcher
	table    *routing.Table
	store    *fakeStore
	delivery *fakeDelivery
	auditor  *fakeAuditor
	fallback *fakeFallback
	seen     []*bot.Request
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		table:    routing.NewTable(),
		store:    &fakeStore{cursors: map[int64][]byte{}},
		delivery: &fakeDelivery{},
		auditor:  &fakeAuditor{},
		fallback: &fakeFallback{},
	}
	record := func(text string) bot.Handler {
		return bot.HandlerFunc(func(_ context.Context, req *bot.Request) (*bot.Response, error) {
			h.seen = append(h.seen, req)
			return bot.NewResponse(text, nil), nil
		})
	}
	h.table.MustRegister("start", "start", record("hello"))
	h.table.MustRegister("cat/", "CategoryViewSet", record("categories"))
	h.table.MustRegister("fail", "", bot.HandlerFunc(func(context.Context, *bot.Request) (*bot.Response, error) {
		return nil, errors.New("store is down")
	}))
	h.table.MustRegister("boom", "", bot.HandlerFunc(func(context.Context, *bot.Request) (*bot.Response, error) {
		panic("nil map")
	}))
	h.table.MustRegister("bad/", "", bot.HandlerFunc(func(context.Context, *bot.Request) (*bot.Response, error) {
		return nil, routing.ErrMalformedToken
	}))
	h.table.MustRegister("wait", "", bot.HandlerFunc(func(_ context.Context, req *bot.Request) (*bot.Response, error) {
		req.Cursor.Route = "cat/cr&name"
		return bot.NewResponse("type a name", nil), nil
	}))

	h.d = New(Options{
		Table:        h.table,
		Cursors:      h.store,
		Participants: fakeParticipants{},
		Fallback:     h.fallback,
		Delivery:     h.delivery,
		Auditor:      h.auditor,
	})
	return h
}

func TestCallbackTakesPriority(t *testing.T) {
	h := newHarness(t)
	c := cursor.New(1)
	c.Route = "start"
	h.store.put(t, c)

	resp, err := h.d.Handle(context.Background(), &bot.Event{ParticipantID: 1, CallbackData: "cat/sl&1", Text: "/start"})
	require.NoError(t, err)
	assert.Equal(t, "categories", resp.Text)
	require.Len(t, h.seen, 1)
	assert.Equal(t, "cat/sl&1", h.seen[0].Token)
	assert.Equal(t, "cat/", h.seen[0].Prefix)
	assert.False(t, h.seen[0].FromCursor)
	assert.Equal(t, []string{"cat/sl&1"}, h.auditor.routes)
	assert.Len(t, h.delivery.sent, 1)
}

func TestCommandWithArgs(t *testing.T) {
	h := newHarness(t)

	_, err := h.d.Handle(context.Background(), &bot.Event{ParticipantID: 1, Text: "/start ref42"})
	require.NoError(t, err)
	require.Len(t, h.seen, 1)
	assert.Equal(t, []string{"ref42"}, h.seen[0].Args)
	assert.Equal(t, "", h.seen[0].Prefix)
}

func TestFreeTextContinuesCursorRoute(t *testing.T) {
	h := newHarness(t)
	c := cursor.New(1)
	c.Route = "cat/cr&name"
	h.store.put(t, c)

	_, err := h.d.Handle(context.Background(), &bot.Event{ParticipantID: 1, Text: "Widgets"})
	require.NoError(t, err)
	require.Len(t, h.seen, 1)
	assert.True(t, h.seen[0].FromCursor)
	assert.Equal(t, "cat/cr&name", h.seen[0].Token)
	assert.Equal(t, "Widgets", h.seen[0].Event.Text)
	assert.Zero(t, h.store.saves)
}

func TestFallbackLookup(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	resp, err := h.d.Handle(ctx, &bot.Event{ParticipantID: 1, Text: "menu"})
	require.NoError(t, err)
	assert.Equal(t, "menu block", resp.Text)

	resp, err = h.d.Handle(ctx, &bot.Event{ParticipantID: 1, CallbackData: "abracadabra"})
	require.NoError(t, err)
	assert.Equal(t, MessageUnknown, resp.Text)

	resp, err = h.d.Handle(ctx, &bot.Event{ParticipantID: 1, CallbackData: "bad/xx"})
	require.NoError(t, err)
	assert.Equal(t, MessageUnknown, resp.Text)

	assert.Equal(t, []string{"menu", "abracadabra", "bad/xx"}, h.fallback.payloads)
	assert.Empty(t, h.seen)
}

func TestHandlerErrorIsAnsweredThenReturned(t *testing.T) {
	h := newHarness(t)

	for _, cmd := range []string{"/fail", "/boom"} {
		resp, err := h.d.Handle(context.Background(), &bot.Event{ParticipantID: 1, Text: cmd})
		assert.Error(t, err, cmd)
		require.NotNil(t, resp)
		assert.Equal(t, MessageError, resp.Text)
	}
	require.Len(t, h.delivery.sent, 2)
	assert.Equal(t, MessageError, h.delivery.sent[1].Text)
	assert.Equal(t, []string{"fail", "boom"}, h.auditor.routes)
}

func TestFailedTurnKeepsStoredCursor(t *testing.T) {
	h := newHarness(t)
	h.table.MustRegister("half", "", bot.HandlerFunc(func(_ context.Context, req *bot.Request) (*bot.Response, error) {
		req.Cursor.Route = "cat/cr&name"
		return nil, errors.New("store is down")
	}))
	h.table.MustRegister("halfpanic", "", bot.HandlerFunc(func(_ context.Context, req *bot.Request) (*bot.Response, error) {
		req.Cursor.Route = "cat/cr&name"
		panic("nil map")
	}))
	c := cursor.New(1)
	c.Route = "cat/up&3&info"
	h.store.put(t, c)
	before := append([]byte(nil), h.store.cursors[1]...)

	for _, cmd := range []string{"/half", "/halfpanic"} {
		resp, err := h.d.Handle(context.Background(), &bot.Event{ParticipantID: 1, Text: cmd})
		assert.Error(t, err, cmd)
		require.NotNil(t, resp)
		assert.Equal(t, MessageError, resp.Text)
	}
	assert.Zero(t, h.store.saves)
	assert.Equal(t, before, h.store.cursors[1])
}

func TestChoiceLoadFailureDoesNotStartWizard(t *testing.T) {
	h := newHarness(t)
	vs, err := viewset.New(viewset.Config{
		Name: "Thing",
		Form: &form.Form{Name: "ThingForm", Fields: []form.Field{
			{
				Name: "kind", Label: "Kind", Kind: cursor.KindString, Required: true, Strict: true,
				LoadChoices: func(context.Context) ([]form.Choice, error) { return nil, errors.New("db down") },
			},
		}},
		Collection: &emptyCollection{},
	})
	require.NoError(t, err)
	h.table.MustRegister("th/", "ThingViewSet", vs)

	resp, err := h.d.Handle(context.Background(), &bot.Event{ParticipantID: 1, CallbackData: "th/cr"})
	assert.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, MessageError, resp.Text)
	assert.Zero(t, h.store.saves)

	c, err := h.store.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, c.Route)
}

type brokenStore struct{}

func (brokenStore) Load(context.Context, int64) (*cursor.Cursor, error) {
	return nil, errors.New("redis down")
}

func (brokenStore) Save(context.Context, *cursor.Cursor) error { return errors.New("redis down") }

type brokenParticipants struct{}

func (brokenParticipants) Resolve(context.Context, *bot.Event) (bot.Actor, error) {
	return bot.Actor{}, errors.New("db down")
}

func TestSetupFailureStillReplies(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(h *harness)
	}{
		{name: "cursor store down", mutate: func(h *harness) { h.d.cursors = brokenStore{} }},
		{name: "participant lookup down", mutate: func(h *harness) { h.d.participants = brokenParticipants{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			tt.mutate(h)

			resp, err := h.d.Handle(context.Background(), &bot.Event{ParticipantID: 1, LanguageCode: "en", Text: "/start"})
			assert.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, MessageError, resp.Text)
			require.Len(t, h.delivery.sent, 1)
			assert.Equal(t, MessageError, h.delivery.sent[0].Text)
			assert.Empty(t, h.seen)
			assert.Empty(t, h.auditor.routes)
		})
	}
}

func TestCursorSavedOnlyWhenChanged(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.d.Handle(ctx, &bot.Event{ParticipantID: 1, Text: "/start"})
	require.NoError(t, err)
	assert.Zero(t, h.store.saves)

	_, err = h.d.Handle(ctx, &bot.Event{ParticipantID: 1, Text: "/wait"})
	require.NoError(t, err)
	assert.Equal(t, 1, h.store.saves)

	c, err := h.store.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "cat/cr&name", c.Route)
}

type emptyCollection struct{ writes int }

func (c *emptyCollection) Get(context.Context, viewset.Scope, string) (*viewset.Record, error) {
	return &viewset.Record{ID: "1", Values: map[string]cursor.Value{"name": cursor.String("hats")}}, nil
}

func (c *emptyCollection) List(context.Context, viewset.Scope, viewset.ListOptions) ([]viewset.Record, int, error) {
	return nil, 0, nil
}

func (c *emptyCollection) Create(context.Context, viewset.Scope, map[string]cursor.Value) (*viewset.Record, error) {
	c.writes++
	return &viewset.Record{ID: "2"}, nil
}

func (c *emptyCollection) Update(_ context.Context, _ viewset.Scope, rec *viewset.Record, _ map[string]cursor.Value) (*viewset.Record, error) {
	c.writes++
	return rec, nil
}

func (c *emptyCollection) Delete(context.Context, viewset.Scope, *viewset.Record) error {
	c.writes++
	return nil
}

func TestDeniedPermissionLeavesCursorUntouched(t *testing.T) {
	h := newHarness(t)
	coll := &emptyCollection{}
	vs, err := viewset.New(viewset.Config{
		Name:        "Secret",
		Form:        categoryLikeForm(),
		Collection:  coll,
		Permissions: []viewset.Permission{viewset.StaffOnly},
	})
	require.NoError(t, err)
	h.table.MustRegister("sec/", "SecretViewSet", vs)

	c := cursor.New(1)
	c.Route = "sec/cr&name"
	c.Context["step"] = "x"
	h.store.put(t, c)
	before := append([]byte(nil), h.store.cursors[1]...)

	resp, err := h.d.Handle(context.Background(), &bot.Event{ParticipantID: 1, Text: "Widgets"})
	require.NoError(t, err)
	assert.Equal(t, viewset.DefaultMessages.Denied, resp.Text)
	assert.Equal(t, before, h.store.cursors[1])
	assert.Zero(t, h.store.saves)
	assert.Zero(t, coll.writes)
}

func categoryLikeForm() *form.Form {
	return &form.Form{Name: "SecretForm", Fields: []form.Field{
		{Name: "name", Label: "Name", Kind: cursor.KindString, Required: true},
	}}
}
