package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"viewset-bot/internal/pkg/logger"
	"viewset-bot/internal/viewsets"
	"viewset-bot/pkg/bot"
	"viewset-bot/pkg/routing"
	"viewset-bot/pkg/viewset"
)

// Command patterns of the plain handlers.
const (
	StartPattern = "start"
	MePattern    = "me"
	LogsPattern  = "logs"
)

const (
	logsLimit       = 10
	logsLevelFilter = "ERROR"
)

type Handlers struct {
	table      *routing.Table
	profile    *viewset.Viewset
	translator bot.Translator
	logger     logger.ILogger
}

func New(table *routing.Table, profile *viewset.Viewset, tr bot.Translator, log logger.ILogger) *Handlers {
	return &Handlers{table: table, profile: profile, translator: tr, logger: log}
}

// Register mounts the plain command handlers.
func (h *Handlers) Register() error {
	routes := []struct {
		pattern string
		handler bot.HandlerFunc
	}{
		{StartPattern, h.Start},
		{MePattern, h.Me},
		{LogsPattern, h.Logs},
	}
	for _, r := range routes {
		if err := h.table.Register(r.pattern, r.pattern, r.handler); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handlers) t(actor bot.Actor, format string, args ...interface{}) string {
	return h.translator.Sprintf(actor.Locale, format, args...)
}

func (h *Handlers) link(actor bot.Actor, label, name string, args ...string) (bot.Button, error) {
	token, err := h.table.Reverse(name, args...)
	if err != nil {
		return bot.Button{}, err
	}
	return bot.Button{Text: h.t(actor, label), Data: token}, nil
}

// Start greets the participant with the main menu. Arguments (deep-link
// codes) are consumed when the participant is resolved.
func (h *Handlers) Start(_ context.Context, req *bot.Request) (*bot.Response, error) {
	actor := req.Actor
	greeting := "Welcome back, %s!"
	if actor.Created {
		greeting = "Hello, %s! Use the menu below."
	}
	if req.Cursor != nil {
		req.Cursor.Clear()
	}

	type entry struct {
		label, name string
		args        []string
	}
	entries := []entry{
		{"Categories", "category", []string{viewset.DefaultCodes[viewset.ActionShowList]}},
		{"Products", "product", []string{viewset.DefaultCodes[viewset.ActionShowList]}},
		{"Orders", "order", []string{viewset.DefaultCodes[viewset.ActionShowList], ""}},
		{"Profile", "profile", []string{viewset.DefaultCodes[viewset.ActionShowElem], strconv.FormatInt(actor.ID, 10)}},
	}
	if actor.IsStaff {
		entries = append(entries, entry{"Menu", "menu", []string{viewset.DefaultCodes[viewset.ActionShowList], ""}})
	}

	var kb bot.Keyboard
	var row []bot.Button
	for _, e := range entries {
		b, err := h.link(actor, e.label, e.name, e.args...)
		if err != nil {
			return nil, fmt.Errorf("build start menu: %w", err)
		}
		row = append(row, b)
		if len(row) == 2 {
			kb = append(kb, row)
			row = nil
		}
	}
	if len(row) > 0 {
		kb = append(kb, row)
	}

	resp := bot.NewResponse(h.t(actor, greeting, actor.Name), kb)
	resp.OnlySend = true
	return resp, nil
}

// Me shows the participant's own profile record.
func (h *Handlers) Me(ctx context.Context, req *bot.Request) (*bot.Response, error) {
	return h.profile.
		Controller(viewsets.ProfilePrefix, req).
		ShowElem(ctx, strconv.FormatInt(req.Actor.ID, 10))
}

// Logs shows the newest error entries of the log file to staff.
func (h *Handlers) Logs(_ context.Context, req *bot.Request) (*bot.Response, error) {
	actor := req.Actor
	if !actor.IsStaff {
		return bot.NewResponse(h.t(actor, viewset.DefaultMessages.Denied), nil), nil
	}

	level := logsLevelFilter
	if len(req.Args) > 0 {
		level = strings.ToUpper(req.Args[0])
	}
	entries, err := h.logger.Tail(level, logsLimit)
	if err != nil {
		return nil, fmt.Errorf("tail log: %w", err)
	}
	if len(entries) == 0 {
		return bot.NewResponse(h.t(actor, "No errors logged."), nil), nil
	}

	var text strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&text, "%s [%s] %s: %s\n", e.Timestamp, e.Level, e.Module, e.Message)
	}
	return bot.NewResponse(text.String(), nil), nil
}
