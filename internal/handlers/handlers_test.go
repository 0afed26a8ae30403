package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"viewset-bot/internal/pkg/logger"
	"viewset-bot/internal/viewsets"
	"viewset-bot/pkg/bot"
	"viewset-bot/pkg/cursor"
	"viewset-bot/pkg/i18n"
	"viewset-bot/pkg/routing"
	"viewset-bot/pkg/viewset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profiles struct{}

func (profiles) Get(_ context.Context, scope viewset.Scope, id string) (*viewset.Record, error) {
	return &viewset.Record{ID: id, Values: map[string]cursor.Value{
		"timezone": cursor.String("+03:00"),
		"language": cursor.String(scope.Actor.Locale),
	}}, nil
}

func (profiles) List(context.Context, viewset.Scope, viewset.ListOptions) ([]viewset.Record, int, error) {
	return nil, 0, nil
}

func (profiles) Create(context.Context, viewset.Scope, map[string]cursor.Value) (*viewset.Record, error) {
	return nil, nil
}

func (profiles) Update(_ context.Context, _ viewset.Scope, rec *viewset.Record, _ map[string]cursor.Value) (*viewset.Record, error) {
	return rec, nil
}

func (profiles) Delete(context.Context, viewset.Scope, *viewset.Record) error { return nil }

func newHandlers(t *testing.T, log logger.ILogger) (*Handlers, *routing.Table) {
	t.Helper()
	table := routing.NewTable()
	noop := bot.HandlerFunc(func(context.Context, *bot.Request) (*bot.Response, error) { return nil, nil })
	for prefix, name := range map[string]string{
		viewsets.CategoryPrefix: "category",
		viewsets.ProductPrefix:  "product",
		viewsets.OrderPrefix:    "order",
		viewsets.ProfilePrefix:  "profile",
		viewsets.MenuPrefix:     "menu",
	} {
		table.MustRegister(prefix, name, noop)
	}
	profile := viewset.MustNew(viewset.Config{
		Name:       "Profile",
		Form:       viewsets.ProfileForm,
		Collection: profiles{},
		Actions:    []viewset.Action{viewset.ActionChange, viewset.ActionShowElem},
	})
	h := New(table, profile, i18n.MustNew(), log)
	require.NoError(t, h.Register())
	return h, table
}

func request(actor bot.Actor, text string, args ...string) *bot.Request {
	return &bot.Request{
		Event:  &bot.Event{ParticipantID: actor.ID, Text: text},
		Actor:  actor,
		Cursor: cursor.New(actor.ID),
		Args:   args,
	}
}

func TestStartMenu(t *testing.T) {
	h, table := newHandlers(t, logger.NewNopLogger())

	m, err := table.Resolve("/start abc")
	require.NoError(t, err)
	assert.Equal(t, StartPattern, m.Route.Pattern)

	tests := []struct {
		name     string
		actor    bot.Actor
		greeting string
		buttons  int
	}{
		{name: "new participant", actor: bot.Actor{ID: 5, Name: "Ann", Locale: "en", Created: true}, greeting: "Hello, Ann! Use the menu below.", buttons: 4},
		{name: "returning staff", actor: bot.Actor{ID: 6, Name: "Bob", Locale: "en", IsStaff: true}, greeting: "Welcome back, Bob!", buttons: 5},
		{name: "russian", actor: bot.Actor{ID: 7, Name: "Иван", Locale: "ru"}, greeting: "С возвращением, Иван!", buttons: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := h.Start(context.Background(), request(tt.actor, "/start"))
			require.NoError(t, err)
			assert.Equal(t, tt.greeting, resp.Text)
			assert.True(t, resp.OnlySend)
			assert.Equal(t, tt.buttons, resp.Buttons.Count())
			assert.Equal(t, "cat/sl", resp.Buttons[0][0].Data)
			assert.Equal(t, "ord/sl&", resp.Buttons[1][0].Data)
		})
	}
}

func TestMeShowsOwnProfile(t *testing.T) {
	h, _ := newHandlers(t, logger.NewNopLogger())

	resp, err := h.Me(context.Background(), request(bot.Actor{ID: 5, Locale: "en"}, "/me"))
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "Profile #5")
	assert.Contains(t, resp.Text, "+03:00")
}

func TestLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.log")
	lines := `{"level":"INFO","timestamp":"2026-01-01T10:00:00Z","message":"started","module":"Main"}
{"level":"ERROR","timestamp":"2026-01-01T10:01:00Z","message":"boom","module":"Dispatcher"}
`
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))
	h, _ := newHandlers(t, logger.NewIsolatedLogger(path))
	ctx := context.Background()

	resp, err := h.Logs(ctx, request(bot.Actor{ID: 1, Locale: "en"}, "/logs"))
	require.NoError(t, err)
	assert.Equal(t, viewset.DefaultMessages.Denied, resp.Text)

	staff := bot.Actor{ID: 1, Locale: "en", IsStaff: true}
	resp, err = h.Logs(ctx, request(staff, "/logs"))
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01T10:01:00Z [ERROR] Dispatcher: boom\n", resp.Text)

	resp, err = h.Logs(ctx, request(staff, "/logs debug", "debug"))
	require.NoError(t, err)
	assert.Equal(t, "No errors logged.", resp.Text)
}
